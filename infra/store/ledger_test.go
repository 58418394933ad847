package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLedger_SaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deleted_ids.json")

	l, err := OpenLedger(path, true)
	if err != nil {
		t.Fatalf("open on missing file should not fail: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}

	l.Add("2")
	l.Add("1")
	l.Add("2")
	if err := l.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	restored, err := OpenLedger(path, true)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !restored.Contains("1") || !restored.Contains("2") {
		t.Fatalf("restored ledger lost ids")
	}
	if restored.Contains("3") {
		t.Fatalf("id never added must not be reported")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ledger file: %v", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("ledger must be a JSON array: %v", err)
	}
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Fatalf("unexpected ledger contents: %v", ids)
	}
}

func TestLedger_NoRestoreStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deleted_ids.json")
	if err := os.WriteFile(path, []byte(`["9"]`), 0o600); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	l, err := OpenLedger(path, false)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if l.Contains("9") {
		t.Fatalf("ledger must ignore the file unless restoring")
	}
}

func TestLedger_SaveOverwritesWholeSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	l, _ := OpenLedger(path, false)
	l.Add("a")
	if err := l.Save(); err != nil {
		t.Fatalf("first save: %v", err)
	}
	l.Add("b")
	if err := l.Save(); err != nil {
		t.Fatalf("second save: %v", err)
	}

	again, err := OpenLedger(path, true)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if again.Len() != 2 {
		t.Fatalf("expected both ids after overwrite, got %d", again.Len())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not be left behind, found %d entries", len(entries))
	}
}

func TestLedger_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := OpenLedger(path, true); err == nil {
		t.Fatalf("expected parse error for corrupt ledger")
	}
}
