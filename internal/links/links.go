// Package links reads aggregate figures about the stored short links.
package links

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shorty/models"
)

// Totals is the number of links and the sum of their clicks.
type Totals struct {
	Links  int64
	Clicks int64
}

// Stats queries the links table.
type Stats struct {
	db *gorm.DB
}

// New returns Stats backed by db.
func New(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

// Totals counts links and clicks.
func (s *Stats) Totals(ctx context.Context) (Totals, error) {
	if s == nil || s.db == nil {
		return Totals{}, gorm.ErrInvalidDB
	}
	var row struct {
		Links  int64
		Clicks int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Link{}).
		Select("COUNT(*) AS links, COALESCE(SUM(clicks), 0) AS clicks").
		Scan(&row).Error
	if err != nil {
		return Totals{}, fmt.Errorf("count links: %w", err)
	}
	return Totals{Links: row.Links, Clicks: row.Clicks}, nil
}

// Recent returns up to limit links, newest first.
func (s *Stats) Recent(ctx context.Context, limit int) ([]models.Link, error) {
	if s == nil || s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if limit <= 0 {
		limit = 10
	}
	var out []models.Link
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("keyword").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list recent links: %w", err)
	}
	return out, nil
}
