package db

import (
	"os"
	"testing"
	"time"

	"github.com/teedgg/linkintel/models"
)

func TestMigrationsValid(t *testing.T) {
	if err := validateMigrations(postgresMigrations); err != nil {
		t.Fatal(err)
	}
	prev := 0
	for _, m := range sortedMigrations() {
		if m.Version <= prev {
			t.Errorf("migration %d out of order", m.Version)
		}
		prev = m.Version
	}
}

func TestValidateMigrationsRejects(t *testing.T) {
	valid := Migration{Version: 1, Name: "a", Description: "d", Tables: []string{"linkintel_products"}, Up: "SELECT 1", Down: "SELECT 1"}
	tests := map[string]func(m *Migration){
		"zero version":   func(m *Migration) { m.Version = 0 },
		"missing down":   func(m *Migration) { m.Down = "  " },
		"no description": func(m *Migration) { m.Description = "" },
		"no tables":      func(m *Migration) { m.Tables = nil },
		"foreign table":  func(m *Migration) { m.Tables = []string{"users"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			m := valid
			mutate(&m)
			if err := validateMigrations([]Migration{m}); err == nil {
				t.Error("expected an error")
			}
		})
	}

	dup := valid
	dup.Name = "b"
	if err := validateMigrations([]Migration{valid, dup}); err == nil {
		t.Error("expected an error for a duplicate version")
	}
}

func TestPendingMigrations(t *testing.T) {
	migrations := []Migration{{Version: 3}, {Version: 1}, {Version: 2}, {Version: 5}}
	applied := map[int]time.Time{1: time.Now(), 3: time.Now()}

	pending := pendingMigrations(migrations, applied)
	if len(pending) != 2 || pending[0].Version != 2 || pending[1].Version != 5 {
		t.Errorf("pending = %+v, want versions 2 and 5", pending)
	}
	if got := pendingMigrations(migrations, map[int]time.Time{1: {}, 2: {}, 3: {}, 5: {}}); len(got) != 0 {
		t.Errorf("pending = %+v, want none", got)
	}
}

func TestMigrationStatusFromApplied(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	status := migrationStatus(sortedMigrations(), map[int]time.Time{1: at})

	if len(status) != len(postgresMigrations) {
		t.Fatalf("got %d statuses", len(status))
	}
	if !status[0].Applied || status[0].AppliedAt == nil || !status[0].AppliedAt.Equal(at) {
		t.Errorf("status[0] = %+v, want applied at %v", status[0], at)
	}
	for _, s := range status[1:] {
		if s.Applied || s.AppliedAt != nil {
			t.Errorf("migration %d reported applied", s.Version)
		}
		if s.Description == "" {
			t.Errorf("migration %d has no description", s.Version)
		}
	}
}

func TestNullAvailability(t *testing.T) {
	if ns := nullAvailability(models.AvailabilityUnknown); ns.Valid {
		t.Error("unknown availability should be NULL")
	}
	if ns := nullAvailability(""); ns.Valid {
		t.Error("empty availability should be NULL")
	}
	if ns := nullAvailability(models.AvailabilityOutOfStock); !ns.Valid || ns.String != "out_of_stock" {
		t.Errorf("nullAvailability = %+v", ns)
	}
}

func TestProductFromExtraction(t *testing.T) {
	result := models.ExtractionResult{
		URL:           "https://www.sony.com/headphones/wh-1000xm5",
		Brand:         "Sony",
		ProductName:   "WH-1000XM5",
		Price:         "399.99",
		Currency:      "USD",
		Availability:  models.AvailabilityInStock,
		Confidence:    0.95,
		PrimarySource: models.SourceStructuredData,
	}
	p := ProductFromExtraction(result, "sony.com")
	if p.Availability != models.AvailabilityInStock {
		t.Errorf("Availability = %q", p.Availability)
	}
	if p.URL != result.URL || p.Domain != "sony.com" || p.Brand != "Sony" {
		t.Errorf("product = %+v", p)
	}
	if p.PrimarySource != models.SourceStructuredData || p.Confidence != 0.95 {
		t.Errorf("source/confidence = %q %v", p.PrimarySource, p.Confidence)
	}
	if p.ID != "" || p.Slug != "" {
		t.Error("id and slug are assigned on save")
	}
}

func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Error("empty string should be NULL")
	}
	if ns := nullString("snapshots/a.json"); !ns.Valid || ns.String != "snapshots/a.json" {
		t.Errorf("nullString = %+v", ns)
	}
}

// setupTestDB connects to the database named by TEST_DATABASE_URL and
// empties the product table. Tests are skipped when it is unset.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database integration test")
	}

	db, err := New(Config{DSN: dsn})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.conn.Exec("TRUNCATE linkintel_products"); err != nil {
		t.Fatalf("Failed to reset products table: %v", err)
	}
	return db
}
