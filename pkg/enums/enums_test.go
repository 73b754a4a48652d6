package enums

import "testing"

func TestCartOutcomeIsValid(t *testing.T) {
	for _, outcome := range validCartOutcomes {
		if !outcome.IsValid() {
			t.Fatalf("expected %q to be valid", outcome)
		}
	}
	if CartOutcome("Added").IsValid() {
		t.Fatal("expected cart outcomes to be case sensitive")
	}
	if CartOutcome("bogus").IsValid() {
		t.Fatal("expected unknown outcome to be invalid")
	}
}

func TestNoticeSeverityIsValid(t *testing.T) {
	if !NoticeSeverityWarning.IsValid() || NoticeSeverityWarning.String() != "warning" {
		t.Fatalf("unexpected warning severity %q", NoticeSeverityWarning)
	}
	if NoticeSeverity("fatal").IsValid() || NoticeSeverity("").IsValid() {
		t.Fatal("expected unknown severities to be invalid")
	}
}

func TestParseStorageDriver(t *testing.T) {
	cases := map[string]StorageDriver{
		"redis":      StorageDriverRedis,
		" Postgres ": StorageDriverPostgres,
		"SQLITE":     StorageDriverSQLite,
		"memory":     StorageDriverMemory,
	}
	for raw, want := range cases {
		got, err := ParseStorageDriver(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", raw, want, got)
		}
	}
	if _, err := ParseStorageDriver("mongo"); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func TestStorageDriverUsesSQL(t *testing.T) {
	if !StorageDriverPostgres.UsesSQL() || !StorageDriverSQLite.UsesSQL() {
		t.Fatal("expected sql drivers to report UsesSQL")
	}
	if StorageDriverRedis.UsesSQL() || StorageDriverMemory.UsesSQL() {
		t.Fatal("expected kv drivers not to report UsesSQL")
	}
}
