package catalog

import (
	"context"

	"gorm.io/gorm"

	"nutrilog/entities"
)

type (
	CatalogRepository interface {
		AddItem(ctx context.Context, item *entities.CatalogItem) error
		GetItemByID(ctx context.Context, id string) (*entities.CatalogItem, error)
		GetItemsByIDs(ctx context.Context, ids []string) ([]*entities.CatalogItem, error)
		UpdateItem(ctx context.Context, item *entities.CatalogItem) error
		DeleteItem(ctx context.Context, id string) error
		SearchItems(ctx context.Context, userID string, query string, page, limit int) ([]*entities.CatalogItem, int64, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) AddItem(ctx context.Context, item *entities.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) GetItemByID(ctx context.Context, id string) (*entities.CatalogItem, error) {
	var item entities.CatalogItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) GetItemsByIDs(ctx context.Context, ids []string) ([]*entities.CatalogItem, error) {
	var items []*entities.CatalogItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) UpdateItem(ctx context.Context, item *entities.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *catalogRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.CatalogItem{}).Error
}

func (r *catalogRepository) SearchItems(ctx context.Context, userID string, query string, page, limit int) ([]*entities.CatalogItem, int64, error) {
	var items []*entities.CatalogItem
	var count int64

	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if query != "" {
		q = q.Where("name ILIKE ?", query+"%")
	}

	if err := q.Model(&entities.CatalogItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Offset(offset).Limit(limit).Order("name asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}
