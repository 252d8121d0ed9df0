// Package options persists installation-wide named values.
package options

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "shorty/internal/log"
	"shorty/models"
)

// Store reads and writes options through gorm.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the value of the named option and whether it exists.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, gorm.ErrInvalidDB
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, errors.New("option name must not be empty")
	}

	var option models.Option
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}
	return option.Value, true, nil
}

// Update sets the named option, creating it when missing.
func (s *Store) Update(ctx context.Context, name, value string) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("option name must not be empty")
	}

	option := models.Option{Name: name, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&option).Error
	if err != nil {
		return fmt.Errorf("update option %s: %w", name, err)
	}
	applog.Debug(ctx, "option updated", "name", name)
	return nil
}

// Delete removes the named option. Deleting a missing option is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Option{}).Error; err != nil {
		return fmt.Errorf("delete option %s: %w", name, err)
	}
	return nil
}
