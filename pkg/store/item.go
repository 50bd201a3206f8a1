package store

import (
	"time"
)

// TodoItem represents a single todo task
type TodoItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	DueDate     time.Time `json:"duedate"`
	Location    string    `json:"location"`
}

// Equal reports whether two items match field by field.
// Timestamps are compared by instant, not by wall-clock representation.
func (t TodoItem) Equal(o TodoItem) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Description == o.Description &&
		t.Created.Equal(o.Created) &&
		t.DueDate.Equal(o.DueDate) &&
		t.Location == o.Location
}
