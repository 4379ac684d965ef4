package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Record is one decoded JSON log line.
type Record struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   map[string]string
	Raw     string // the line as written, kept when it is not JSON
}

// Summary renders the record on a single line: "15:04:05 WARN msg key=value".
func (r Record) Summary() string {
	if r.Message == "" && r.Raw != "" {
		return r.Raw
	}
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if r.Level != "" {
		b.WriteString(r.Level)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)
	keys := make([]string, 0, len(r.Attrs))
	for k := range r.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, r.Attrs[k])
	}
	return b.String()
}

// Read returns at most maxLines records from the end of the file at path.
// A missing file yields no records.
func Read(path string, maxLines int) ([]Record, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	records := make([]Record, count)
	start := 0
	if count == maxLines {
		start = idx
	}
	for i := 0; i < count; i++ {
		records[i] = Parse(ring[(start+i)%maxLines])
	}
	return records, nil
}

// Parse decodes a slog JSON line. Lines that are not JSON objects are
// returned with only Raw set.
func Parse(line string) Record {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Record{Raw: line}
	}
	rec := Record{Raw: line, Attrs: map[string]string{}}
	for key, value := range fields {
		switch key {
		case "time":
			if s, ok := value.(string); ok {
				rec.Time, _ = time.Parse(time.RFC3339Nano, s)
			}
		case "level":
			rec.Level = fmt.Sprint(value)
		case "msg":
			rec.Message = fmt.Sprint(value)
		default:
			rec.Attrs[key] = fmt.Sprint(value)
		}
	}
	return rec
}
