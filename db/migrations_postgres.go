package db

// PostgreSQL schema for the product library

var postgresMigrations = []Migration{
	{
		Version:     1,
		Name:        "create_linkintel_products_table",
		Description: "product library keyed by normalized URL with a unique slug",
		Tables:      []string{"linkintel_products"},
		Up: `
			CREATE TABLE IF NOT EXISTS linkintel_products (
				id TEXT PRIMARY KEY,
				url TEXT NOT NULL UNIQUE,
				slug TEXT NOT NULL UNIQUE,
				domain TEXT NOT NULL DEFAULT '',
				brand TEXT NOT NULL DEFAULT '',
				product_name TEXT NOT NULL DEFAULT '',
				full_name TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				image_url TEXT NOT NULL DEFAULT '',
				price TEXT NOT NULL DEFAULT '',
				currency TEXT NOT NULL DEFAULT '',
				confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
				primary_source TEXT NOT NULL DEFAULT 'none',
				created_at TIMESTAMPTZ DEFAULT NOW(),
				updated_at TIMESTAMPTZ DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_linkintel_products_created_at ON linkintel_products(created_at);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_linkintel_products_created_at;
			DROP TABLE IF EXISTS linkintel_products;
		`,
	},
	{
		Version:     2,
		Name:        "add_products_domain_brand_indexes",
		Description: "list filters by retailer domain and case-insensitive brand",
		Tables:      []string{"linkintel_products"},
		Up: `
			CREATE INDEX IF NOT EXISTS idx_linkintel_products_domain ON linkintel_products(domain);
			CREATE INDEX IF NOT EXISTS idx_linkintel_products_brand ON linkintel_products(LOWER(brand));
		`,
		Down: `
			DROP INDEX IF EXISTS idx_linkintel_products_brand;
			DROP INDEX IF EXISTS idx_linkintel_products_domain;
		`,
	},
	{
		Version:     3,
		Name:        "add_products_snapshot_key",
		Description: "storage key of the archived extraction snapshot",
		Tables:      []string{"linkintel_products"},
		Up: `
			ALTER TABLE linkintel_products ADD COLUMN IF NOT EXISTS snapshot_key TEXT;
		`,
		Down: `
			ALTER TABLE linkintel_products DROP COLUMN IF EXISTS snapshot_key;
		`,
	},
	{
		Version:     4,
		Name:        "add_products_health_columns",
		Description: "latest link health verdict and when it was checked",
		Tables:      []string{"linkintel_products"},
		Up: `
			ALTER TABLE linkintel_products ADD COLUMN IF NOT EXISTS health_status TEXT;
			ALTER TABLE linkintel_products ADD COLUMN IF NOT EXISTS health_checked_at TIMESTAMPTZ;
		`,
		Down: `
			ALTER TABLE linkintel_products DROP COLUMN IF EXISTS health_checked_at;
			ALTER TABLE linkintel_products DROP COLUMN IF EXISTS health_status;
		`,
	},
	{
		Version:     5,
		Name:        "add_products_availability",
		Description: "stock state declared by the page or seen by the last health check",
		Tables:      []string{"linkintel_products"},
		Up: `
			ALTER TABLE linkintel_products ADD COLUMN IF NOT EXISTS availability TEXT;
			CREATE INDEX IF NOT EXISTS idx_linkintel_products_health ON linkintel_products(health_status, availability);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_linkintel_products_health;
			ALTER TABLE linkintel_products DROP COLUMN IF EXISTS availability;
		`,
	},
}
