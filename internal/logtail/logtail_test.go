package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"time":"2026-03-01T10:00:%02dZ","level":"INFO","msg":"event %d"}`, i, i))
	}
	path := writeLog(t, lines)

	tests := []struct {
		name      string
		maxLines  int
		wantCount int
		wantFirst string
	}{
		{"zero", 0, 0, ""},
		{"negative", -1, 0, ""},
		{"partial", 5, 5, "event 6"},
		{"exact", 10, 10, "event 1"},
		{"more than exists", 20, 10, "event 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("Read returned %d records, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount > 0 {
				if got[0].Message != tt.wantFirst {
					t.Fatalf("first record = %q, want %q", got[0].Message, tt.wantFirst)
				}
				if got[len(got)-1].Message != "event 10" {
					t.Fatalf("last record = %q, want event 10", got[len(got)-1].Message)
				}
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Read = %#v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	rec := Parse(`{"time":"2026-03-01T10:00:00Z","level":"WARN","msg":"operation failed","op":"delete","error":"boom"}`)
	if rec.Level != "WARN" || rec.Message != "operation failed" {
		t.Fatalf("Parse = %#v", rec)
	}
	if !rec.Time.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("Time = %v", rec.Time)
	}
	if rec.Attrs["op"] != "delete" || rec.Attrs["error"] != "boom" {
		t.Fatalf("Attrs = %#v", rec.Attrs)
	}
	summary := rec.Summary()
	if !strings.HasSuffix(summary, "WARN operation failed error=boom op=delete") {
		t.Fatalf("Summary = %q", summary)
	}
}

func TestParse_NonJSONKeepsRaw(t *testing.T) {
	rec := Parse("plain text line")
	if rec.Summary() != "plain text line" {
		t.Fatalf("Summary = %q, want raw line", rec.Summary())
	}
}
