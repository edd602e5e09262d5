package diary

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nutrilog/entities"
)

type (
	DiaryRepository interface {
		AddEntry(ctx context.Context, entry *entities.LogEntry) error
		GetEntryByID(ctx context.Context, id string) (*entities.LogEntry, error)
		GetEntriesByIDs(ctx context.Context, userID string, ids []string) ([]*entities.LogEntry, error)
		GetEntriesByRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.LogEntry, error)
		UpdateEntry(ctx context.Context, entry *entities.LogEntry) error
		DeleteEntry(ctx context.Context, id string) error
	}

	diaryRepository struct {
		db *gorm.DB
	}
)

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) AddEntry(ctx context.Context, entry *entities.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *diaryRepository) GetEntryByID(ctx context.Context, id string) (*entities.LogEntry, error) {
	var entry entities.LogEntry
	if err := r.db.WithContext(ctx).
		Preload("CatalogItem").
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *diaryRepository) GetEntriesByIDs(ctx context.Context, userID string, ids []string) ([]*entities.LogEntry, error) {
	var entries []*entities.LogEntry
	if err := r.db.WithContext(ctx).
		Preload("CatalogItem").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepository) GetEntriesByRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.LogEntry, error) {
	var entries []*entities.LogEntry
	if err := r.db.WithContext(ctx).
		Preload("CatalogItem").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepository) UpdateEntry(ctx context.Context, entry *entities.LogEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *diaryRepository) DeleteEntry(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.LogEntry{}).Error
}
