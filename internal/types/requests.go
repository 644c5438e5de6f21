package types

import (
	"github.com/simmerhq/cookbook-backend/internal/model"
)

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=1000"`
	Ingredients  []string `json:"ingredients" validate:"min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"min=1,dive,required"`
	PrepTime     *int     `json:"prepTime" validate:"omitnil,gte=0"`
	CookTime     *int     `json:"cookTime" validate:"omitnil,gte=0"`
	Servings     *int     `json:"servings" validate:"omitnil,gte=1"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
	GalleryURLs  []string `json:"galleryUrls" validate:"omitnil,dive,required,url"`
}

// UpdateRecipeRequest represents the request body for a partial update.
// Nil fields are left untouched; a non-nil empty ImageURL or Difficulty
// clears the stored value.
type UpdateRecipeRequest struct {
	Title        *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitnil,max=1000"`
	Ingredients  []string `json:"ingredients" validate:"omitnil,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"omitnil,min=1,dive,required"`
	PrepTime     *int     `json:"prepTime" validate:"omitnil,gte=0"`
	CookTime     *int     `json:"cookTime" validate:"omitnil,gte=0"`
	Servings     *int     `json:"servings" validate:"omitnil,gte=1"`
	Difficulty   *string  `json:"difficulty" validate:"omitnil,oneof='' easy medium hard"`
	Tags         []string `json:"tags"`
	ImageURL     *string  `json:"imageUrl" validate:"omitnil,eq=|url"`
	GalleryURLs  []string `json:"galleryUrls" validate:"omitnil,dive,required,url"`
}

// AddCookLogRequest represents the request body for appending a cook log.
// A blank date defaults to today's local calendar date.
type AddCookLogRequest struct {
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Notes    string `json:"notes" validate:"omitempty,max=2000"`
}

// RecipeListResponse is the paginated response for recipe listing and search.
type RecipeListResponse struct {
	Recipes    []model.Recipe `json:"recipes"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// UploadResponse returns the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// HealthResponse reports the readiness of the backing services.
type HealthResponse struct {
	Database DatabaseHealth `json:"database"`
	Blob     BlobHealth     `json:"blob"`
}

type DatabaseHealth struct {
	Configured bool   `json:"configured"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

type BlobHealth struct {
	Configured bool `json:"configured"`
}
