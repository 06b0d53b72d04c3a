package repository

import (
	"context"

	"golang-stock-dashboard/internal/entity"

	"gorm.io/gorm"
)

// NewSearchHistoryRepository creates a new instance of SearchHistoryRepository.
func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepository{
		db: db,
	}
}

type searchHistoryRepository struct {
	db *gorm.DB
}

func (r *searchHistoryRepository) Create(ctx context.Context, record *entity.SearchHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindRecent returns the latest records, newest first.
func (r *searchHistoryRepository) FindRecent(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	var records []entity.SearchHistory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// NewNoopSearchHistoryRepository returns a repository that stores nothing, used when no database is configured.
func NewNoopSearchHistoryRepository() SearchHistoryRepository {
	return noopSearchHistoryRepository{}
}

type noopSearchHistoryRepository struct{}

func (noopSearchHistoryRepository) Create(context.Context, *entity.SearchHistory) error { return nil }

func (noopSearchHistoryRepository) FindRecent(context.Context, int) ([]entity.SearchHistory, error) {
	return []entity.SearchHistory{}, nil
}
