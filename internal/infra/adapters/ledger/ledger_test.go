package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Discard())
}

func TestOpenCreatesLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.log")
	g, err := Open(testContext(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected ledger file to be created: %v", err)
	}
	if g.Len() != 0 || g.Contains("anything") {
		t.Error("new ledger should be empty")
	}
}

func TestRecordAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.log")
	g, err := Open(testContext(), path)
	if err != nil {
		t.Fatal(err)
	}
	for _, guid := range []string{"guid-1", "https://example.com/?p=2"} {
		if err := g.Record(guid); err != nil {
			t.Fatal(err)
		}
		if !g.Contains(guid) {
			t.Errorf("Contains(%q) false right after Record", guid)
		}
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), "guid-1\nhttps://example.com/?p=2\n"; got != want {
		t.Errorf("ledger content was incorrect, got: %q, want: %q", got, want)
	}

	g, err = Open(testContext(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if !g.Contains("guid-1") || g.Len() != 2 {
		t.Errorf("reopened ledger lost entries, Len()=%d", g.Len())
	}
}

func TestContainsIsExactLineMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.log")
	if err := os.WriteFile(path, []byte("abc-123\r\n\n  \nxyz\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := Open(testContext(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	tables := []struct {
		guid     string
		contains bool
	}{
		{"abc-123", true},
		{"xyz", true},
		{"abc", false},
		{"123", false},
		{"", false},
	}
	for _, table := range tables {
		if got := g.Contains(table.guid); got != table.contains {
			t.Errorf("Contains(%q) was incorrect, got: %t, want: %t", table.guid, got, table.contains)
		}
	}
}

func TestSecondOpenIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.log")
	g, err := Open(testContext(), path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(testContext(), path); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked while the ledger is open, got %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	g, err = Open(testContext(), path)
	if err != nil {
		t.Fatalf("expected open to succeed after close: %v", err)
	}
	g.Close()
}

func TestRecordAfterClose(t *testing.T) {
	g, err := Open(testContext(), filepath.Join(t.TempDir(), "archive.log"))
	if err != nil {
		t.Fatal(err)
	}
	g.Close()
	if err := g.Record("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestRecordRejectsLineBreaks(t *testing.T) {
	g, err := Open(testContext(), filepath.Join(t.TempDir(), "archive.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if err := g.Record("two\nlines"); err == nil || !strings.Contains(err.Error(), "line break") {
		t.Errorf("expected line break error, got %v", err)
	}
}
