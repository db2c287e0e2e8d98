package core

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.json")
	r, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r, path
}

func TestNewRegistrySeedsDefaults(t *testing.T) {
	r, path := newTestRegistry(t)

	if len(r.Predefined()) == 0 {
		t.Fatal("expected seeded predefined clients")
	}
	if addr, ok := r.AddressOf("Yazle Media"); !ok || addr == "" {
		t.Errorf("AddressOf(Yazle Media) = %q, %v", addr, ok)
	}
	if got := r.NextInvoiceNumber(); got != "001" {
		t.Errorf("NextInvoiceNumber = %q, want %q", got, "001")
	}

	// The seed file is written so a later process starts from the same state.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed file not written: %v", err)
	}
}

func TestAddCustomClient(t *testing.T) {
	r, path := newTestRegistry(t)

	if err := r.AddCustom("Acme Media", "1 Trade Centre\nDubai, UAE"); err != nil {
		t.Fatalf("AddCustom: %v", err)
	}

	addr, ok := r.AddressOf("Acme Media")
	if !ok || addr != "1 Trade Centre\nDubai, UAE" {
		t.Errorf("AddressOf = %q, %v", addr, ok)
	}

	// Duplicates are rejected in both sets.
	if err := r.AddCustom("Acme Media", "elsewhere"); !errors.Is(err, ErrDuplicateClient) {
		t.Errorf("duplicate custom: err = %v, want ErrDuplicateClient", err)
	}
	if err := r.AddCustom("Yazle Media", "elsewhere"); !errors.Is(err, ErrDuplicateClient) {
		t.Errorf("duplicate predefined: err = %v, want ErrDuplicateClient", err)
	}

	// Blank input is rejected before touching the store.
	if err := r.AddCustom("  ", "addr"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}
	if err := r.AddCustom("Name", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank address: err = %v, want ErrInvalidInput", err)
	}

	// The addition survives a reload.
	reloaded, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded.AddressOf("Acme Media"); !ok {
		t.Error("custom client lost after reload")
	}
}

func TestRemoveCustomClient(t *testing.T) {
	r, _ := newTestRegistry(t)

	if err := r.AddCustom("Acme Media", "addr"); err != nil {
		t.Fatalf("AddCustom: %v", err)
	}

	removed, err := r.RemoveCustom("Acme Media")
	if err != nil || !removed {
		t.Fatalf("RemoveCustom = %v, %v", removed, err)
	}
	if _, ok := r.AddressOf("Acme Media"); ok {
		t.Error("client still present after removal")
	}

	// Absent and predefined names report not-removed without error.
	if removed, err := r.RemoveCustom("Acme Media"); err != nil || removed {
		t.Errorf("second remove = %v, %v", removed, err)
	}
	if removed, err := r.RemoveCustom("Yazle Media"); err != nil || removed {
		t.Errorf("predefined remove = %v, %v", removed, err)
	}
	if _, ok := r.AddressOf("Yazle Media"); !ok {
		t.Error("predefined client lost")
	}
}

func TestInvoiceNumberSequence(t *testing.T) {
	r, path := newTestRegistry(t)

	// Peeking is idempotent.
	if a, b := r.NextInvoiceNumber(), r.NextInvoiceNumber(); a != b {
		t.Errorf("peek not idempotent: %q vs %q", a, b)
	}

	if err := r.AdvanceInvoiceNumber(); err != nil {
		t.Fatalf("AdvanceInvoiceNumber: %v", err)
	}
	if got := r.NextInvoiceNumber(); got != "002" {
		t.Errorf("after advance = %q, want %q", got, "002")
	}

	// The counter survives a reload.
	reloaded, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.NextInvoiceNumber(); got != "002" {
		t.Errorf("reloaded counter = %q, want %q", got, "002")
	}
}

func TestLoadBackfillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	raw, _ := json.Marshal(map[string]any{
		"predefined":          map[string]string{"Solo Client": "Somewhere"},
		"next_invoice_number": 0,
	})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := r.NextInvoiceNumber(); got != "001" {
		t.Errorf("backfilled counter = %q, want %q", got, "001")
	}
	if err := r.AddCustom("New One", "addr"); err != nil {
		t.Errorf("AddCustom on backfilled custom map: %v", err)
	}
}

func TestLoadCorruptFileFallsBackToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry on corrupt file: %v", err)
	}
	if len(r.Predefined()) == 0 {
		t.Error("expected seeded defaults after corrupt load")
	}
	if got := r.NextInvoiceNumber(); got != "001" {
		t.Errorf("counter = %q, want %q", got, "001")
	}
}

func TestAllOrdersPredefinedFirst(t *testing.T) {
	r, _ := newTestRegistry(t)
	if err := r.AddCustom("AAA First Alphabetically", "addr"); err != nil {
		t.Fatal(err)
	}

	all := r.All()
	if len(all) < 2 {
		t.Fatalf("All returned %d clients", len(all))
	}
	if all[0].Custom {
		t.Error("predefined clients should come first")
	}
	if last := all[len(all)-1]; !last.Custom {
		t.Error("custom clients should come last")
	}
}
