package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestUsersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CREATE UNIQUE INDEX idx_users_officer_number ON users (officer_number)",
		"DROP TABLE IF EXISTS users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestNameplateMigrationCoversBothTables(t *testing.T) {
	content := readMigration(t, "*_create_nameplates.sql")

	checks := []string{
		"CREATE TABLE unverified_nameplates",
		"CREATE TABLE verified_nameplates",
		"verified BOOLEAN NOT NULL DEFAULT FALSE",
		"CREATE INDEX idx_unverified_hierarchy ON unverified_nameplates (rmo, officer, lot)",
		"CREATE INDEX idx_verified_hierarchy ON verified_nameplates (rmo, officer_id, lot)",
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
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
