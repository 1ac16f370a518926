package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), New(buf, false))
	FromContext(ctx).Info("archived", "guid", "abc-123")
	if !strings.Contains(buf.String(), "archived") || !strings.Contains(buf.String(), "abc-123") {
		t.Errorf("expected message and attribute in output, got: %q", buf.String())
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil without a logger in the context")
	}
}

func TestVerbose(t *testing.T) {
	tables := []struct {
		verbose bool
		logged  bool
	}{
		{false, false},
		{true, true},
	}
	for _, table := range tables {
		buf := &bytes.Buffer{}
		New(buf, table.verbose).Debug("state", "to", "downloading")
		if got := strings.Contains(buf.String(), "downloading"); got != table.logged {
			t.Errorf("New(verbose=%t) debug logged was incorrect, got: %t, want: %t", table.verbose, got, table.logged)
		}
	}
}
