package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitSQL(t *testing.T) {
	sql := "-- header\nCREATE TABLE a (id INT);\n\nCREATE INDEX b ON a (id);\n"
	got := splitSQL(sql)
	want := []string{"CREATE TABLE a (id INT)", "CREATE INDEX b ON a (id)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSQL = %q", got)
	}
}

func TestExtractTablesFromMigration(t *testing.T) {
	tables, err := extractTables(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	if err != nil {
		if os.IsNotExist(err) {
			t.Skip("migration not found")
		}
		t.Fatalf("extractTables: %v", err)
	}
	want := []string{"restaurants", "bookings"}
	if !reflect.DeepEqual(tables, want) {
		t.Fatalf("tables = %v", tables)
	}
}
