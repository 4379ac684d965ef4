// Package todo defines the domain types shared by the backend, the state
// container, and the UI.
package todo

import "strings"

// Item is a single todo entry.
type Item struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"isCompleted" yaml:"isCompleted"`
}

// Toggled returns a copy of the item with the completion flag flipped.
func (i Item) Toggled() Item {
	i.Completed = !i.Completed
	return i
}

// Retitled returns a copy of the item carrying the given title.
func (i Item) Retitled(title string) Item {
	i.Title = title
	return i
}

// FilterValue is the text matched by the list filter.
func (i Item) FilterValue() string {
	return strings.TrimSpace(i.Title)
}

// Op identifies one of the asynchronous operations.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Ops lists every operation in dispatch order.
var Ops = []Op{OpFetch, OpCreate, OpUpdate, OpDelete}

// ParseOp maps a config value onto an Op.
func ParseOp(value string) (Op, bool) {
	op := Op(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Ops {
		if op == known {
			return op, true
		}
	}
	return "", false
}

// FailureMessage is the text recorded when an operation fails without a
// message of its own.
func (o Op) FailureMessage() string {
	switch o {
	case OpFetch:
		return "Failed to fetch todos"
	case OpCreate:
		return "Failed to add todo"
	case OpUpdate:
		return "Failed to update todo"
	case OpDelete:
		return "Failed to delete todo"
	default:
		return "Operation failed"
	}
}

// Progress returns a short present-tense label for the operation.
func (o Op) Progress() string {
	switch o {
	case OpFetch:
		return "Loading"
	case OpCreate:
		return "Adding"
	case OpUpdate:
		return "Saving"
	case OpDelete:
		return "Deleting"
	default:
		return "Working"
	}
}
