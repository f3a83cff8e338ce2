package user

import (
	"context"
	"fmt"

	"github.com/kbukum/authgate/database"
)

// GormStore is the database-backed Store.
type GormStore struct {
	db *database.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a GormStore.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the users table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

// FindByUsername implements Store.
func (s *GormStore) FindByUsername(ctx context.Context, username string) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if database.IsNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user: find %q: %w", username, err)
	}
	return &rec, nil
}

// Create implements Store. Uniqueness is left to the unique index so two
// concurrent registrations of one name cannot both succeed.
func (s *GormStore) Create(ctx context.Context, rec *Record) (*Record, error) {
	row := &Record{
		Username:       rec.Username,
		Email:          rec.Email,
		HashedPassword: rec.HashedPassword,
	}
	err := s.db.WithContext(ctx).Create(row).Error
	if database.IsDuplicateError(err) {
		return nil, fmt.Errorf("user: create %q: %w", rec.Username, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("user: create %q: %w", rec.Username, err)
	}
	return row, nil
}
