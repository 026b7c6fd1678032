package db

import (
	"errors"
	"testing"
	"time"

	"github.com/teedgg/linkintel/models"
)

func TestSaveAndGetProduct(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := &models.Product{
		URL:           "https://www.sony.com/headphones/wh-1000xm5",
		Domain:        "sony.com",
		Brand:         "Sony",
		ProductName:   "WH-1000XM5",
		ImageURL:      "https://www.sony.com/img/xm5.jpg",
		Price:         "399.99",
		Currency:      "USD",
		Confidence:    0.95,
		PrimarySource: models.SourceStructuredData,
		SnapshotKey:   "extractions/2026/10/sony-wh-1000xm5.json",
	}
	if err := db.SaveProduct(p); err != nil {
		t.Fatalf("Failed to save product: %v", err)
	}
	if p.ID == "" || p.Slug != "sony-wh-1000xm5" {
		t.Errorf("assigned id/slug = %q %q", p.ID, p.Slug)
	}

	t.Run("GetByID", func(t *testing.T) {
		got, err := db.GetByID(p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got == nil || got.Brand != "Sony" || got.SnapshotKey != p.SnapshotKey {
			t.Errorf("GetByID = %+v", got)
		}
	})

	t.Run("GetByURL", func(t *testing.T) {
		got, err := db.GetByURL(p.URL)
		if err != nil || got == nil || got.ID != p.ID {
			t.Errorf("GetByURL = %+v, %v", got, err)
		}
	})

	t.Run("GetBySlug", func(t *testing.T) {
		got, err := db.GetBySlug("sony-wh-1000xm5")
		if err != nil || got == nil || got.ID != p.ID {
			t.Errorf("GetBySlug = %+v, %v", got, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		got, err := db.GetByID("does-not-exist")
		if err != nil || got != nil {
			t.Errorf("GetByID(missing) = %+v, %v", got, err)
		}
	})
}

func TestSaveProductUpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first := &models.Product{URL: "https://www.rei.com/product/123/camp-stove", Domain: "rei.com", ProductName: "Camp Stove", Confidence: 0.35, PrimarySource: models.SourceScrape, SnapshotKey: "extractions/a.json"}
	if err := db.SaveProduct(first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := &models.Product{URL: first.URL, Domain: "rei.com", Brand: "MSR", ProductName: "PocketRocket 2", Confidence: 0.9, PrimarySource: models.SourceAI}
	if err := db.SaveProduct(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if second.ID != first.ID || second.Slug != first.Slug {
		t.Errorf("re-extraction changed id/slug: %q/%q vs %q/%q", second.ID, second.Slug, first.ID, first.Slug)
	}

	got, err := db.GetByURL(first.URL)
	if err != nil || got == nil {
		t.Fatalf("GetByURL: %+v, %v", got, err)
	}
	if got.Brand != "MSR" || got.PrimarySource != models.SourceAI {
		t.Errorf("update not applied: %+v", got)
	}
	if got.SnapshotKey != "extractions/a.json" {
		t.Errorf("SnapshotKey = %q, want the earlier key kept", got.SnapshotKey)
	}

	count, err := db.Count()
	if err != nil || count != 1 {
		t.Errorf("Count = %d, %v", count, err)
	}
}

func TestSaveProductUniqueSlugs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	a := &models.Product{URL: "https://shop-a.example/p/widget", Brand: "Acme", ProductName: "Widget"}
	b := &models.Product{URL: "https://shop-b.example/p/widget", Brand: "Acme", ProductName: "Widget"}
	for _, p := range []*models.Product{a, b} {
		if err := db.SaveProduct(p); err != nil {
			t.Fatalf("save %s: %v", p.URL, err)
		}
	}
	if a.Slug != "acme-widget" || b.Slug != "acme-widget-1" {
		t.Errorf("slugs = %q, %q", a.Slug, b.Slug)
	}
}

func TestListAndDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	products := []*models.Product{
		{URL: "https://www.nike.com/t/pegasus-41", Domain: "nike.com", Brand: "Nike", ProductName: "Pegasus 41"},
		{URL: "https://www.nike.com/t/vomero-18", Domain: "nike.com", Brand: "Nike", ProductName: "Vomero 18"},
		{URL: "https://www.patagonia.com/product/nano-puff", Domain: "patagonia.com", Brand: "Patagonia", ProductName: "Nano Puff"},
	}
	for _, p := range products {
		if err := db.SaveProduct(p); err != nil {
			t.Fatalf("save: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	all, err := db.List(ListOptions{Limit: 10})
	if err != nil || len(all) != 3 {
		t.Fatalf("List = %d, %v", len(all), err)
	}
	if all[0].URL != products[2].URL {
		t.Errorf("List not newest first: %s", all[0].URL)
	}

	nike, err := db.List(ListOptions{Limit: 10, Domain: "nike.com"})
	if err != nil || len(nike) != 2 {
		t.Errorf("domain filter = %d, %v", len(nike), err)
	}

	brand, err := db.List(ListOptions{Limit: 10, Brand: "patagonia"})
	if err != nil || len(brand) != 1 {
		t.Errorf("brand filter = %d, %v", len(brand), err)
	}

	page, err := db.List(ListOptions{Limit: 1, Offset: 1})
	if err != nil || len(page) != 1 || page[0].URL != products[1].URL {
		t.Errorf("pagination = %+v, %v", page, err)
	}

	if err := db.DeleteByID(products[0].ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := db.DeleteByID(products[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}

	exists, err := db.URLExists(products[0].URL)
	if err != nil || exists {
		t.Errorf("URLExists after delete = %v, %v", exists, err)
	}
}

func TestRecordHealth(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := &models.Product{URL: "https://www.amazon.com/dp/B000000000", Domain: "amazon.com", ProductName: "Gone Gadget"}
	if err := db.SaveProduct(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	checked := time.Now().Truncate(time.Second)
	if err := db.RecordHealth(models.HealthResult{URL: p.URL, Status: models.HealthSoft404, CheckedAt: checked}); err != nil {
		t.Fatalf("RecordHealth: %v", err)
	}
	if err := db.RecordHealth(models.HealthResult{URL: "https://not-in-library.example", Status: models.HealthBroken}); err != nil {
		t.Errorf("RecordHealth for unknown URL: %v", err)
	}

	got, err := db.GetByID(p.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}
	if got.HealthStatus != models.HealthSoft404 {
		t.Errorf("HealthStatus = %q", got.HealthStatus)
	}
	if got.HealthChecked == nil || !got.HealthChecked.Equal(checked) {
		t.Errorf("HealthChecked = %v, want %v", got.HealthChecked, checked)
	}
}

func TestMigrationStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	status, err := GetMigrationStatus(db.DB())
	if err != nil {
		t.Fatalf("GetMigrationStatus: %v", err)
	}
	if len(status) != len(postgresMigrations) {
		t.Fatalf("got %d statuses", len(status))
	}
	for _, s := range status {
		if !s.Applied || s.AppliedAt == nil {
			t.Errorf("migration %d (%s) not applied", s.Version, s.Name)
		}
	}

	// A second run finds nothing pending
	if err := Migrate(db.DB()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	var descriptions int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM " + schemaVersionTable + " WHERE description <> ''").Scan(&descriptions); err != nil {
		t.Fatalf("count descriptions: %v", err)
	}
	if descriptions != len(postgresMigrations) {
		t.Errorf("%d of %d migrations recorded a description", descriptions, len(postgresMigrations))
	}
}

func TestAvailabilityPersists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := &models.Product{URL: "https://www.rei.com/product/12345", Domain: "rei.com", ProductName: "Half Dome Tent", Availability: models.AvailabilityInStock}
	if err := db.SaveProduct(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := db.RecordHealth(models.HealthResult{URL: p.URL, Status: models.HealthUnavailable, Availability: models.AvailabilityOutOfStock}); err != nil {
		t.Fatalf("RecordHealth: %v", err)
	}
	got, err := db.GetByID(p.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}
	if got.Availability != models.AvailabilityOutOfStock {
		t.Errorf("Availability = %q, want out_of_stock", got.Availability)
	}

	// An unknown verdict keeps the stored state
	if err := db.RecordHealth(models.HealthResult{URL: p.URL, Status: models.HealthHealthy, Availability: models.AvailabilityUnknown}); err != nil {
		t.Fatalf("RecordHealth: %v", err)
	}
	got, _ = db.GetByID(p.ID)
	if got.Availability != models.AvailabilityOutOfStock {
		t.Errorf("Availability = %q after unknown verdict", got.Availability)
	}
}
