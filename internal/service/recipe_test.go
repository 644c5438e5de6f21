package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/internal/errs"
	"github.com/simmerhq/cookbook-backend/internal/model"
	"github.com/simmerhq/cookbook-backend/internal/types"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Recipe{}))
	return db
}

func newTestService(t *testing.T) *RecipeService {
	t.Helper()
	return NewRecipeService(setupTestDB(t), zerolog.Nop())
}

func createRequest(title string) *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Title:        title,
		Ingredients:  []string{"flour", "water"},
		Instructions: []string{"mix", "bake"},
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Bread"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.False(t, recipe.DeletedAt.Valid)
	assert.Equal(t, model.CookLogList{}, recipe.CookLogs)
	assert.Equal(t, model.JSONBStringArray{}, recipe.Tags)
	assert.Equal(t, model.JSONBStringArray{}, recipe.GalleryURLs)
	assert.Nil(t, recipe.PrepTime)
	assert.Nil(t, recipe.Servings)

	fetched, err := svc.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", fetched.Title)
	assert.Equal(t, model.JSONBStringArray{"flour", "water"}, fetched.Ingredients)
	assert.Len(t, fetched.CookLogs, 0)
}

func TestCreateWithAllFields(t *testing.T) {
	svc := newTestService(t)

	req := createRequest("Pizza")
	req.Description = "Neapolitan style."
	req.PrepTime = intPtr(30)
	req.CookTime = intPtr(10)
	req.Servings = intPtr(2)
	req.Difficulty = "medium"
	req.Tags = []string{"italian", "pizza"}
	req.ImageURL = "https://example.com/pizza.jpg"
	req.GalleryURLs = []string{"https://example.com/side.jpg"}

	recipe, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JSONBStringArray{"italian", "pizza"}, fetched.Tags)
	assert.Equal(t, "https://example.com/pizza.jpg", fetched.ImageURL)
	assert.Equal(t, 30, *fetched.PrepTime)
	assert.Equal(t, "medium", fetched.Difficulty)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSoftDeleteHidesRecipe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Soup"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, recipe.ID))

	_, err = svc.Get(ctx, recipe.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	page, err := svc.List(ctx, ListRecipesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Len(t, page.Recipes, 0)

	_, err = svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{Title: strPtr("Stew")})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.SoftDelete(ctx, recipe.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// The row itself survives with deleted_at set.
	var raw model.Recipe
	err = svc.db.Unscoped().First(&raw, "id = ?", recipe.ID).Error
	require.NoError(t, err)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, createRequest("Recipe "+uuid.New().String()[:8]))
		require.NoError(t, err)
	}

	page1, err := svc.List(ctx, ListRecipesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page1.Total)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Recipes, 12)

	page2, err := svc.List(ctx, ListRecipesQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Recipes, 12)

	page3, err := svc.List(ctx, ListRecipesQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Recipes, 1)

	// Past the end is an empty page, not an error.
	page4, err := svc.List(ctx, ListRecipesQuery{Page: 4})
	require.NoError(t, err)
	assert.Len(t, page4.Recipes, 0)
	assert.Equal(t, int64(25), page4.Total)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestListOrdering(t *testing.T) {
	svc := newTestService(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		recipe := &model.Recipe{
			ID:           uuid.New(),
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			Title:        title,
			Ingredients:  model.JSONBStringArray{"x"},
			Instructions: model.JSONBStringArray{"y"},
		}
		require.NoError(t, svc.db.Create(recipe).Error)
	}

	page, err := svc.List(context.Background(), ListRecipesQuery{})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 3)
	assert.Equal(t, "Newest", page.Recipes[0].Title)
	assert.Equal(t, "Middle", page.Recipes[1].Title)
	assert.Equal(t, "Oldest", page.Recipes[2].Title)
}

func TestListSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Pasta Bake"))
	require.NoError(t, err)

	salad := createRequest("Green Salad")
	salad.Description = "Great alongside pasta."
	_, err = svc.Create(ctx, salad)
	require.NoError(t, err)

	tagged := createRequest("Mystery Dish")
	tagged.Tags = []string{"pasta"}
	_, err = svc.Create(ctx, tagged)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("Omelette"))
	require.NoError(t, err)

	page, err := svc.List(ctx, ListRecipesQuery{Search: "pasta"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	// Title and description match case-insensitively.
	page, err = svc.List(ctx, ListRecipesQuery{Search: "PASTA BAKE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = svc.List(ctx, ListRecipesQuery{Search: "tiramisu"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Len(t, page.Recipes, 0)
}

func TestListTagFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	quick := createRequest("Stir Fry")
	quick.Tags = []string{"quick", "dinner"}
	_, err := svc.Create(ctx, quick)
	require.NoError(t, err)

	slow := createRequest("Brisket")
	slow.Tags = []string{"superquick"}
	_, err = svc.Create(ctx, slow)
	require.NoError(t, err)

	page, err := svc.List(ctx, ListRecipesQuery{Tag: "quick"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Stir Fry", page.Recipes[0].Title)

	// Tag matching is exact membership, not substring.
	page, err = svc.List(ctx, ListRecipesQuery{Tag: "quik"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	page, err = svc.List(ctx, ListRecipesQuery{Tag: "dinner"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestListSearchWildcardsAreLiteral(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("100% Rye Bread"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("White Bread"))
	require.NoError(t, err)

	// A % in the term is a literal character, not a match-anything wildcard.
	page, err := svc.List(ctx, ListRecipesQuery{Search: "100%"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "100% Rye Bread", page.Recipes[0].Title)

	page, err = svc.List(ctx, ListRecipesQuery{Search: "_"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestListSearchAndTagCombine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createRequest("Pasta Bake")
	a.Tags = []string{"dinner"}
	_, err := svc.Create(ctx, a)
	require.NoError(t, err)

	b := createRequest("Pasta Salad")
	b.Tags = []string{"lunch"}
	_, err = svc.Create(ctx, b)
	require.NoError(t, err)

	page, err := svc.List(ctx, ListRecipesQuery{Search: "pasta", Tag: "dinner"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Pasta Bake", page.Recipes[0].Title)
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest("Curry")
	req.Description = "Spicy."
	req.PrepTime = intPtr(10)
	req.Tags = []string{"indian"}
	recipe, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{
		Title:    strPtr("Chickpea Curry"),
		Servings: intPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, "Chickpea Curry", updated.Title)
	assert.Equal(t, 4, *updated.Servings)
	// Untouched fields keep their values.
	assert.Equal(t, "Spicy.", updated.Description)
	assert.Equal(t, 10, *updated.PrepTime)
	assert.Equal(t, model.JSONBStringArray{"indian"}, updated.Tags)
}

func TestUpdateReplacesArrays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest("Tacos")
	req.Tags = []string{"mexican", "dinner"}
	recipe, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{
		Tags:        []string{"mexican"},
		Ingredients: []string{"tortillas", "beef", "salsa"},
	})
	require.NoError(t, err)

	assert.Equal(t, model.JSONBStringArray{"mexican"}, updated.Tags)
	assert.Equal(t, model.JSONBStringArray{"tortillas", "beef", "salsa"}, updated.Ingredients)
}

func TestUpdateClearsImageURL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest("Cake")
	req.ImageURL = "https://example.com/cake.jpg"
	recipe, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{ImageURL: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.ImageURL)
}

func TestUpdateClearsDifficulty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest("Pie")
	req.Difficulty = "hard"
	recipe, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{Difficulty: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Difficulty)
}

func TestUpdateNoFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Stew"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, recipe.ID, &types.UpdateRecipeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), &types.UpdateRecipeRequest{Title: strPtr("X")})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAppendCookLog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Ramen"))
	require.NoError(t, err)

	first, err := svc.AppendCookLog(ctx, recipe.ID, &types.AddCookLogRequest{
		Date: "2026-08-30", Location: "home", Notes: "extra egg",
	})
	require.NoError(t, err)
	require.Len(t, first.CookLogs, 1)
	assert.Equal(t, "2026-08-30", first.CookLogs[0].Date)
	assert.Equal(t, "home", first.CookLogs[0].Location)

	second, err := svc.AppendCookLog(ctx, recipe.ID, &types.AddCookLogRequest{Date: "2026-08-31"})
	require.NoError(t, err)
	require.Len(t, second.CookLogs, 2)
	// Entries keep insertion order.
	assert.Equal(t, "2026-08-30", second.CookLogs[0].Date)
	assert.Equal(t, "2026-08-31", second.CookLogs[1].Date)

	fetched, err := svc.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.CookLogs, 2)
}

func TestAppendCookLogDefaultsDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Pancakes"))
	require.NoError(t, err)

	updated, err := svc.AppendCookLog(ctx, recipe.ID, &types.AddCookLogRequest{Notes: "fluffy"})
	require.NoError(t, err)
	require.Len(t, updated.CookLogs, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.CookLogs[0].Date)
}

func TestAppendCookLogOnSoftDeletedRecipe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, createRequest("Chili"))
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, recipe.ID))

	// Logging a cook still works on a row hidden from the rest of the API.
	updated, err := svc.AppendCookLog(ctx, recipe.ID, &types.AddCookLogRequest{Date: "2026-08-30"})
	require.NoError(t, err)
	assert.Len(t, updated.CookLogs, 1)
}

func TestAppendCookLogNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AppendCookLog(context.Background(), uuid.New(), &types.AddCookLogRequest{})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
