package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/todo/internal/todo"
)

// DefaultItems is the collection a fresh Mock starts with.
func DefaultItems() []todo.Item {
	return []todo.Item{
		{ID: 1, Title: "Learn Bubble Tea", Completed: false},
		{ID: 2, Title: "Read the lipgloss documentation", Completed: false},
		{ID: 3, Title: "Buy bread", Completed: true},
	}
}

// LoadSeed reads a YAML list of items. An empty path yields DefaultItems.
//
//	- id: 1
//	  title: Buy milk
//	  isCompleted: false
func LoadSeed(path string) ([]todo.Item, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultItems(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer func() { _ = file.Close() }()

	return decodeSeed(file)
}

func decodeSeed(r io.Reader) ([]todo.Item, error) {
	var items []todo.Item
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return []todo.Item{}, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := validateSeed(items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []todo.Item{}
	}
	return items, nil
}

func validateSeed(items []todo.Item) error {
	seen := make(map[int64]struct{}, len(items))
	for i, it := range items {
		if it.ID <= 0 {
			return fmt.Errorf("seed entry %d: id must be positive, got %d", i, it.ID)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("seed entry %d: duplicate id %d", i, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
