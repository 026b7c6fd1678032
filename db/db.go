package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/slug"
)

// ErrNotFound is returned when a product does not exist
var ErrNotFound = errors.New("product not found")

// maxSlugAttempts bounds the counter appended to colliding slugs
const maxSlugAttempts = 100

// DB wraps the database connection and provides product library access
type DB struct {
	conn *sql.DB
}

// Config contains database configuration
type Config struct {
	DSN string // PostgreSQL connection string
}

// DefaultConfig returns a configuration for a local development database
func DefaultConfig() Config {
	return Config{
		DSN: "host=localhost port=5432 user=linkintel password=linkintel_dev_pass dbname=linkintel sslmode=disable",
	}
}

// New creates a new database connection and applies pending migrations
func New(config Config) (*DB, error) {
	conn, err := sql.Open("postgres", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// DB returns the underlying database connection for metrics collection
func (db *DB) DB() *sql.DB {
	return db.conn
}

const productColumns = `id, url, slug, domain, brand, product_name, full_name, category,
	image_url, price, currency, availability, confidence, primary_source, snapshot_key,
	health_status, health_checked_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p             models.Product
		source        string
		availability  sql.NullString
		snapshotKey   sql.NullString
		healthStatus  sql.NullString
		healthChecked sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.URL, &p.Slug, &p.Domain, &p.Brand, &p.ProductName, &p.FullName, &p.Category,
		&p.ImageURL, &p.Price, &p.Currency, &availability, &p.Confidence, &source, &snapshotKey,
		&healthStatus, &healthChecked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PrimarySource = models.ExtractionSource(source)
	p.Availability = models.Availability(availability.String)
	p.SnapshotKey = snapshotKey.String
	p.HealthStatus = models.HealthStatus(healthStatus.String)
	if healthChecked.Valid {
		t := healthChecked.Time
		p.HealthChecked = &t
	}
	return &p, nil
}

// ProductFromExtraction builds a library entry from an extraction result
func ProductFromExtraction(result models.ExtractionResult, domain string) *models.Product {
	return &models.Product{
		URL:           result.URL,
		Domain:        domain,
		Brand:         result.Brand,
		ProductName:   result.ProductName,
		FullName:      result.FullName,
		Category:      result.Category,
		ImageURL:      result.ImageURL,
		Price:         result.Price,
		Currency:      result.Currency,
		Availability:  result.Availability,
		Confidence:    result.Confidence,
		PrimarySource: result.PrimarySource,
	}
}

// SaveProduct inserts a product or updates the entry with the same URL.
// On return p carries the stored id, slug and timestamps.
func (db *DB) SaveProduct(p *models.Product) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Keep the id and slug of an existing entry stable across re-extractions
	var existingID, existingSlug string
	err = tx.QueryRow("SELECT id, slug FROM linkintel_products WHERE url = $1", p.URL).Scan(&existingID, &existingSlug)
	switch {
	case err == sql.ErrNoRows:
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.Slug, err = uniqueSlug(tx, slug.FromProduct(p.Brand, p.ProductName, p.URL), p.URL)
		if err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to look up product: %w", err)
	default:
		p.ID = existingID
		p.Slug = existingSlug
	}

	now := time.Now()
	query := `
		INSERT INTO linkintel_products (id, url, slug, domain, brand, product_name, full_name, category,
			image_url, price, currency, availability, confidence, primary_source, snapshot_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT(url) DO UPDATE SET
			domain = excluded.domain,
			brand = excluded.brand,
			product_name = excluded.product_name,
			full_name = excluded.full_name,
			category = excluded.category,
			image_url = excluded.image_url,
			price = excluded.price,
			currency = excluded.currency,
			availability = COALESCE(excluded.availability, linkintel_products.availability),
			confidence = excluded.confidence,
			primary_source = excluded.primary_source,
			snapshot_key = COALESCE(excluded.snapshot_key, linkintel_products.snapshot_key),
			updated_at = excluded.updated_at
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(
		query,
		p.ID,
		p.URL,
		p.Slug,
		p.Domain,
		p.Brand,
		p.ProductName,
		p.FullName,
		p.Category,
		p.ImageURL,
		p.Price,
		p.Currency,
		nullAvailability(p.Availability),
		p.Confidence,
		string(p.PrimarySource),
		nullString(p.SnapshotKey),
		now,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// uniqueSlug appends a counter to base until no other URL uses it
func uniqueSlug(tx *sql.Tx, base, productURL string) (string, error) {
	if base == "" {
		base = "product"
	}
	for counter := 0; counter < maxSlugAttempts; counter++ {
		candidate := slug.MakeUnique(base, counter)
		var owner string
		err := tx.QueryRow("SELECT url FROM linkintel_products WHERE slug = $1", candidate).Scan(&owner)
		if err == sql.ErrNoRows || owner == productURL {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
	}
	return base + "-" + uuid.New().String()[:8], nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullAvailability is NULL for states that should not overwrite a stored one
func nullAvailability(a models.Availability) sql.NullString {
	if a == models.AvailabilityUnknown {
		return sql.NullString{}
	}
	return nullString(string(a))
}

// GetByID retrieves a product by ID. It returns nil, nil when absent.
func (db *DB) GetByID(id string) (*models.Product, error) {
	return db.getOne("SELECT "+productColumns+" FROM linkintel_products WHERE id = $1", id)
}

// GetByURL retrieves a product by its normalized URL
func (db *DB) GetByURL(url string) (*models.Product, error) {
	return db.getOne("SELECT "+productColumns+" FROM linkintel_products WHERE url = $1", url)
}

// GetBySlug retrieves a product by slug
func (db *DB) GetBySlug(s string) (*models.Product, error) {
	return db.getOne("SELECT "+productColumns+" FROM linkintel_products WHERE slug = $1", s)
}

func (db *DB) getOne(query string, arg any) (*models.Product, error) {
	p, err := scanProduct(db.conn.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// DeleteByID deletes a product by ID
func (db *DB) DeleteByID(id string) error {
	result, err := db.conn.Exec("DELETE FROM linkintel_products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("no product with id %s: %w", id, ErrNotFound)
	}

	return nil
}

// ListOptions filters a product listing
type ListOptions struct {
	Limit  int
	Offset int
	Domain string // exact root domain, empty for all
	Brand  string // case-insensitive brand, empty for all
}

// List returns products, newest first
func (db *DB) List(opts ListOptions) ([]*models.Product, error) {
	var (
		where []string
		args  []any
	)
	if opts.Domain != "" {
		args = append(args, opts.Domain)
		where = append(where, fmt.Sprintf("domain = $%d", len(args)))
	}
	if opts.Brand != "" {
		args = append(args, opts.Brand)
		where = append(where, fmt.Sprintf("LOWER(brand) = LOWER($%d)", len(args)))
	}

	query := "SELECT " + productColumns + " FROM linkintel_products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, opts.Limit, opts.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	results := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// Count returns the total number of products
func (db *DB) Count() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM linkintel_products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// URLExists checks if a URL is already in the library
func (db *DB) URLExists(url string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM linkintel_products WHERE url = $1)"
	err := db.conn.QueryRow(query, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check URL existence: %w", err)
	}
	return exists, nil
}

// RecordHealth stores the latest health status of a library URL.
// URLs outside the library are ignored.
func (db *DB) RecordHealth(result models.HealthResult) error {
	checked := result.CheckedAt
	if checked.IsZero() {
		checked = time.Now()
	}
	_, err := db.conn.Exec(
		`UPDATE linkintel_products SET health_status = $1, health_checked_at = $2,
			availability = COALESCE($4, availability) WHERE url = $3`,
		string(result.Status), checked, result.URL, nullAvailability(result.Availability),
	)
	if err != nil {
		return fmt.Errorf("failed to record health: %w", err)
	}
	return nil
}
