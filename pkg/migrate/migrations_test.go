package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rabuste-coffee/rabuste-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestCartMigrationEnforcesUniqueItemPerUser(t *testing.T) {
	content := readMigration(t, "*_create_cart_items.sql")

	checks := []string{
		"CREATE UNIQUE INDEX cart_items_user_item_key ON cart_items (user_id, item_id)",
		"CHECK (quantity >= 1)",
		"REFERENCES users (id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS cart_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWishlistMigrationEnforcesUniqueItemPerUser(t *testing.T) {
	content := readMigration(t, "*_create_wishlist_items.sql")

	if !strings.Contains(content, "CREATE UNIQUE INDEX wishlist_items_user_item_key ON wishlist_items (user_id, item_id)") {
		t.Errorf("missing unique (user_id, item_id) index")
	}
}

func TestOrdersMigrationCascadesLineItems(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"REFERENCES orders (id) ON DELETE CASCADE",
		"total_amount NUMERIC(12,2) NOT NULL",
		"status TEXT NOT NULL DEFAULT 'pending'",
		"CREATE INDEX orders_created_at_idx ON orders (created_at DESC, id DESC)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
