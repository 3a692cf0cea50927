package store

import (
	"errors"

	"github.com/lagunalabs/sucesos/internal/domain"
	"gorm.io/gorm"
)

// ErrIDPreassigned is returned when an insert carries a nonzero ID. IDs are
// assigned by the store and immutable afterwards.
var ErrIDPreassigned = errors.New("id is assigned by the store on insert")

// Repository is the data access layer for event records. It is deliberately
// append-only: there is no update and no delete, because stored records are
// immutable history.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository on an open database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends a record and fills in its freshly assigned unique ID.
func (r *Repository) Insert(event *domain.Event) error {
	if event.ID != 0 {
		return &StorageError{Op: "insert", Err: ErrIDPreassigned}
	}
	if err := r.db.Create(event).Error; err != nil {
		return &StorageError{Op: "insert", Err: err}
	}
	return nil
}

// LoadAll returns every record in insertion order (ID ascending). An empty
// table yields an empty slice, never an error.
func (r *Repository) LoadAll() ([]domain.Event, error) {
	events := make([]domain.Event, 0)
	if err := r.db.Order("id ASC").Find(&events).Error; err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return events, nil
}

// Count returns the number of stored records.
func (r *Repository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Event{}).Count(&n).Error; err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}
