package pgtestutil

import (
	"strings"
	"testing"
)

func TestReplaceDBInDSN(t *testing.T) {
	t.Parallel()

	out, err := ReplaceDBInDSN(DefaultDSN, "testdb_foo")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "/testdb_foo?") {
		t.Fatalf("db not replaced: %s", out)
	}
	if !strings.Contains(out, "sslmode=disable") {
		t.Fatalf("query lost: %s", out)
	}
}

func TestSanitizeForPgIdent(t *testing.T) {
	t.Parallel()

	got := sanitizeForPgIdent("TestDB/Sub Test:" + strings.Repeat("x", 80))
	if len(got) > 63 {
		t.Fatalf("identifier too long: %d", len(got))
	}
	if strings.ContainsAny(got, "/ :") || got != strings.ToLower(got) {
		t.Fatalf("identifier not sanitized: %q", got)
	}
}
