package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/internal/errs"
	"github.com/simmerhq/cookbook-backend/internal/model"
	"github.com/simmerhq/cookbook-backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger zerolog.Logger) *RecipeService {
	return &RecipeService{db: db, logger: logger}
}

// Create persists a validated recipe and returns the full record. New
// recipes always start active with an empty cook log.
func (s *RecipeService) Create(ctx context.Context, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	recipe := &model.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  model.JSONBStringArray(req.Ingredients),
		Instructions: model.JSONBStringArray(req.Instructions),
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Tags:         model.JSONBStringArray{},
		GalleryURLs:  model.JSONBStringArray{},
		ImageURL:     req.ImageURL,
		CookLogs:     model.CookLogList{},
	}
	if req.Tags != nil {
		recipe.Tags = model.JSONBStringArray(req.Tags)
	}
	if req.GalleryURLs != nil {
		recipe.GalleryURLs = model.JSONBStringArray(req.GalleryURLs)
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", recipe.ID.String()).Msg("created recipe")
	return recipe, nil
}

// Get retrieves a recipe by ID. Soft-deleted recipes are reported as absent.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	return &recipe, nil
}

// List returns one page of active recipes matching the query, newest first
// (ties broken by id ascending), plus the pre-pagination total.
func (s *RecipeService) List(ctx context.Context, q ListRecipesQuery) (*types.RecipeListResponse, error) {
	q = q.Normalize()

	var total int64
	if err := q.apply(s.db.WithContext(ctx).Model(&model.Recipe{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []model.Recipe
	err := q.apply(s.db.WithContext(ctx)).
		Order("created_at DESC, id ASC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return &types.RecipeListResponse{
		Recipes:    recipes,
		Total:      total,
		Page:       q.Page,
		TotalPages: q.TotalPages(total),
	}, nil
}

// Update overwrites only the fields present in the request and returns the
// updated record. A non-nil empty imageUrl clears the cover image; missing
// or soft-deleted recipes are not found.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Ingredients != nil {
		updates["ingredients"] = model.JSONBStringArray(req.Ingredients)
	}
	if req.Instructions != nil {
		updates["instructions"] = model.JSONBStringArray(req.Instructions)
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.CookTime != nil {
		updates["cook_time"] = *req.CookTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.Tags != nil {
		updates["tags"] = model.JSONBStringArray(req.Tags)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.GalleryURLs != nil {
		updates["gallery_urls"] = model.JSONBStringArray(req.GalleryURLs)
	}

	if len(updates) == 0 {
		return recipe, nil
	}

	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", id.String()).Msg("updated recipe")
	return s.Get(ctx, id)
}

// SoftDelete marks a recipe deleted by setting deleted_at. The data stays in
// place; there is no resurrection path.
func (s *RecipeService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(recipe).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", id.String()).Msg("soft-deleted recipe")
	return nil
}

// AppendCookLog appends a log entry to a recipe, defaulting a blank date to
// today's local calendar date. The lookup bypasses the soft-delete scope so
// an existing row always accepts a log; entries keep insertion order and are
// never deduplicated.
func (s *RecipeService) AppendCookLog(ctx context.Context, id uuid.UUID, entry *types.AddCookLogRequest) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Unscoped().First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}

	date := strings.TrimSpace(entry.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	logs := append(recipe.CookLogs, model.CookLog{
		Date:     date,
		Location: entry.Location,
		Notes:    entry.Notes,
	})

	if err := s.db.WithContext(ctx).Unscoped().Model(&recipe).Update("cook_logs", logs).Error; err != nil {
		return nil, fmt.Errorf("failed to append cook log: %w", err)
	}

	recipe.CookLogs = logs
	s.logger.Info().Str("recipe_id", id.String()).Str("date", date).Msg("appended cook log")
	return &recipe, nil
}
