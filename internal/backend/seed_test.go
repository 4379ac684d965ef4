package backend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/todo/internal/todo"
)

func TestLoadSeed_EmptyPathUsesDefaults(t *testing.T) {
	items, err := LoadSeed("  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultItems(), items)
}

func TestLoadSeed_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: 10
  title: Water plants
- id: 12
  title: Call mum
  isCompleted: true
`), 0o600))

	items, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []todo.Item{
		{ID: 10, Title: "Water plants"},
		{ID: 12, Title: "Call mum", Completed: true},
	}, items)

	m := NewMock(WithLatency(0), WithItems(items))
	assert.Equal(t, int64(13), m.nextID)
}

func TestLoadSeed_MissingFileFails(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open seed")
}

func TestDecodeSeed_EmptyDocument(t *testing.T) {
	items, err := decodeSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeSeed_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"duplicate", "- {id: 1, title: a}\n- {id: 1, title: b}\n", "duplicate id 1"},
		{"zero id", "- {id: 0, title: a}\n", "id must be positive"},
		{"bad yaml", "- id: [", "parse seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeSeed(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
