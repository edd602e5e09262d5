package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/internal/utils/storage"
	"nutrilog/pkg/gemini"
	"nutrilog/pkg/nutrition"
)

type (
	CatalogService interface {
		AddItem(ctx context.Context, req domain.AddCatalogItemRequest, userID string) (domain.CatalogItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateCatalogItemRequest, userID string) error
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItems(ctx context.Context, userID string, query string, page, limit int) ([]domain.CatalogItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.CatalogItemResponse, error)
		UploadItemPhoto(ctx context.Context, req domain.UploadItemPhotoRequest, userID string) (string, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		ai                gemini.Client
		s3                storage.AwsS3
	}
)

func NewCatalogService(catalogRepository CatalogRepository, ai gemini.Client, s3 storage.AwsS3) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		ai:                ai,
		s3:                s3,
	}
}

func validServingUnit(unit string) bool {
	for _, u := range domain.ServingUnits {
		if u == unit {
			return true
		}
	}
	return false
}

func vectorFromValues(n domain.NutrientValues) nutrition.Vector {
	get := func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	}
	return nutrition.Vector{
		Protein:      get(n.Protein),
		Fat:          get(n.Fat),
		Carbs:        get(n.Carbs),
		Fibers:       get(n.Fibers),
		Sugar:        get(n.Sugar),
		Mufa:         get(n.Mufa),
		Pufa:         get(n.Pufa),
		Sfa:          get(n.Sfa),
		GlycemicLoad: get(n.GlycemicLoad),
		Omega3:       get(n.Omega3),
		Omega6:       get(n.Omega6),
	}
}

// ValuesFromVector maps an arithmetic vector back into the response shape.
func ValuesFromVector(v nutrition.Vector) domain.NutrientValues {
	return domain.NutrientValues{
		Protein:      &v.Protein,
		Fat:          &v.Fat,
		Carbs:        &v.Carbs,
		Fibers:       &v.Fibers,
		Sugar:        &v.Sugar,
		Mufa:         &v.Mufa,
		Pufa:         &v.Pufa,
		Sfa:          &v.Sfa,
		GlycemicLoad: &v.GlycemicLoad,
		Omega3:       &v.Omega3,
		Omega6:       &v.Omega6,
	}
}

func toResponse(item *entities.CatalogItem) domain.CatalogItemResponse {
	return domain.CatalogItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		ServingQty:  item.ServingQty,
		ServingUnit: item.ServingUnit,
		Nutrients: domain.NutrientValues{
			Protein:      item.Protein,
			Fat:          item.Fat,
			Carbs:        item.Carbs,
			Fibers:       item.Fibers,
			Sugar:        item.Sugar,
			Mufa:         item.Mufa,
			Pufa:         item.Pufa,
			Sfa:          item.Sfa,
			GlycemicLoad: item.GlycemicLoad,
			Omega3:       item.Omega3,
			Omega6:       item.Omega6,
		},
		Kcal:      nutrition.Kcal(item.Vector()),
		Comment:   item.Comment,
		ImageURL:  item.ImageURL,
		CreatedAt: item.CreatedAt,
	}
}

func (s *catalogService) AddItem(ctx context.Context, req domain.AddCatalogItemRequest, userID string) (domain.CatalogItemResponse, error) {
	if req.ServingQty <= 0 {
		return domain.CatalogItemResponse{}, domain.ErrInvalidServingQty
	}
	if !validServingUnit(req.ServingUnit) {
		return domain.CatalogItemResponse{}, domain.ErrInvalidServingUnit
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CatalogItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.CatalogItem{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        req.Name,
		ServingQty:  req.ServingQty,
		ServingUnit: req.ServingUnit,
		Comment:     req.Comment,
	}

	if req.Estimate {
		vector, err := s.ai.EstimateNutrients(ctx, gemini.EstimateRequest{
			Name:        req.Name,
			ServingQty:  req.ServingQty,
			ServingUnit: req.ServingUnit,
		})
		if err != nil {
			return domain.CatalogItemResponse{}, err
		}
		item.SetVector(vector)
	} else {
		item.Protein = req.Nutrients.Protein
		item.Fat = req.Nutrients.Fat
		item.Carbs = req.Nutrients.Carbs
		item.Fibers = req.Nutrients.Fibers
		item.Sugar = req.Nutrients.Sugar
		item.Mufa = req.Nutrients.Mufa
		item.Pufa = req.Nutrients.Pufa
		item.Sfa = req.Nutrients.Sfa
		item.GlycemicLoad = req.Nutrients.GlycemicLoad
		item.Omega3 = req.Nutrients.Omega3
		item.Omega6 = req.Nutrients.Omega6
	}

	if err := s.catalogRepository.AddItem(ctx, item); err != nil {
		return domain.CatalogItemResponse{}, err
	}

	return toResponse(item), nil
}

func (s *catalogService) UpdateItem(ctx context.Context, id string, req domain.UpdateCatalogItemRequest, userID string) error {
	item, err := s.catalogRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCatalogItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.ServingQty != nil {
		if *req.ServingQty <= 0 {
			return domain.ErrInvalidServingQty
		}
		item.ServingQty = *req.ServingQty
	}
	if req.ServingUnit != nil {
		if !validServingUnit(*req.ServingUnit) {
			return domain.ErrInvalidServingUnit
		}
		item.ServingUnit = *req.ServingUnit
	}
	if req.Comment != nil {
		item.Comment = *req.Comment
	}

	// Inline nutrient edits: only provided fields are overwritten.
	if req.Nutrients.Protein != nil {
		item.Protein = req.Nutrients.Protein
	}
	if req.Nutrients.Fat != nil {
		item.Fat = req.Nutrients.Fat
	}
	if req.Nutrients.Carbs != nil {
		item.Carbs = req.Nutrients.Carbs
	}
	if req.Nutrients.Fibers != nil {
		item.Fibers = req.Nutrients.Fibers
	}
	if req.Nutrients.Sugar != nil {
		item.Sugar = req.Nutrients.Sugar
	}
	if req.Nutrients.Mufa != nil {
		item.Mufa = req.Nutrients.Mufa
	}
	if req.Nutrients.Pufa != nil {
		item.Pufa = req.Nutrients.Pufa
	}
	if req.Nutrients.Sfa != nil {
		item.Sfa = req.Nutrients.Sfa
	}
	if req.Nutrients.GlycemicLoad != nil {
		item.GlycemicLoad = req.Nutrients.GlycemicLoad
	}
	if req.Nutrients.Omega3 != nil {
		item.Omega3 = req.Nutrients.Omega3
	}
	if req.Nutrients.Omega6 != nil {
		item.Omega6 = req.Nutrients.Omega6
	}

	return s.catalogRepository.UpdateItem(ctx, item)
}

func (s *catalogService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.catalogRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCatalogItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	// Log entries referencing this item stay; they drop out of totals once
	// the reference no longer resolves.
	return s.catalogRepository.DeleteItem(ctx, id)
}

func (s *catalogService) GetItems(ctx context.Context, userID string, query string, page, limit int) ([]domain.CatalogItemResponse, int64, error) {
	items, count, err := s.catalogRepository.SearchItems(ctx, userID, query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out, count, nil
}

func (s *catalogService) GetItemByID(ctx context.Context, id string, userID string) (domain.CatalogItemResponse, error) {
	item, err := s.catalogRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CatalogItemResponse{}, domain.ErrCatalogItemNotFound
		}
		return domain.CatalogItemResponse{}, err
	}

	if item.UserID.String() != userID {
		return domain.CatalogItemResponse{}, domain.ErrUnauthorizedAccess
	}

	return toResponse(item), nil
}

func (s *catalogService) UploadItemPhoto(ctx context.Context, req domain.UploadItemPhotoRequest, userID string) (string, error) {
	item, err := s.catalogRepository.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrCatalogItemNotFound
		}
		return "", err
	}

	if item.UserID.String() != userID {
		return "", domain.ErrUnauthorizedAccess
	}

	objectKey, err := s.s3.UploadFile(
		ctx,
		"catalog-items",
		req.Image,
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.catalogRepository.UpdateItem(ctx, item); err != nil {
		return "", err
	}
	return item.ImageURL, nil
}
