package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/internal/database"
	"github.com/simmerhq/cookbook-backend/internal/service"
	"github.com/simmerhq/cookbook-backend/internal/types"
)

func intPtr(v int) *int { return &v }

var sampleRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Classic Margherita Pizza",
		Description: "A Neapolitan staple with fresh mozzarella, basil, and a thin chewy crust.",
		Ingredients: []string{
			"500g bread flour",
			"325ml warm water",
			"7g active dry yeast",
			"400g canned San Marzano tomatoes",
			"250g fresh mozzarella",
			"Fresh basil leaves",
			"Olive oil",
			"Salt",
		},
		Instructions: []string{
			"Mix flour, water, yeast, and salt into a shaggy dough and knead for 10 minutes.",
			"Let rise covered for 2 hours until doubled.",
			"Crush the tomatoes by hand with a pinch of salt.",
			"Stretch the dough into a 12-inch round.",
			"Top with tomato, torn mozzarella, and a drizzle of olive oil.",
			"Bake at the highest oven setting for 8-10 minutes.",
			"Finish with fresh basil.",
		},
		PrepTime:   intPtr(30),
		CookTime:   intPtr(10),
		Servings:   intPtr(2),
		Difficulty: "medium",
		Tags:       []string{"italian", "pizza", "vegetarian"},
	},
	{
		Title:       "Weeknight Chicken Stir-Fry",
		Description: "Fast skillet dinner with crisp vegetables and a soy-ginger glaze.",
		Ingredients: []string{
			"2 chicken breasts, sliced thin",
			"1 red bell pepper",
			"1 head broccoli, cut into florets",
			"3 tbsp soy sauce",
			"1 tbsp grated ginger",
			"2 cloves garlic",
			"1 tsp cornstarch",
			"Cooked rice, to serve",
		},
		Instructions: []string{
			"Whisk soy sauce, ginger, garlic, and cornstarch into a glaze.",
			"Sear the chicken over high heat until browned, then set aside.",
			"Stir-fry the vegetables for 3-4 minutes.",
			"Return the chicken, pour in the glaze, and toss until thickened.",
			"Serve over rice.",
		},
		PrepTime:   intPtr(15),
		CookTime:   intPtr(12),
		Servings:   intPtr(4),
		Difficulty: "easy",
		Tags:       []string{"quick", "dinner", "asian"},
	},
	{
		Title:       "Overnight Oats with Berries",
		Description: "No-cook breakfast that sets up in the fridge while you sleep.",
		Ingredients: []string{
			"1/2 cup rolled oats",
			"1/2 cup milk",
			"1/4 cup Greek yogurt",
			"1 tbsp chia seeds",
			"1 tsp honey",
			"Handful of mixed berries",
		},
		Instructions: []string{
			"Stir everything except the berries together in a jar.",
			"Refrigerate overnight.",
			"Top with berries before eating.",
		},
		PrepTime:   intPtr(5),
		CookTime:   intPtr(0),
		Servings:   intPtr(1),
		Difficulty: "easy",
		Tags:       []string{"breakfast", "quick", "vegetarian"},
	},
	{
		Title:       "Beef Bourguignon",
		Description: "Slow-braised beef in red wine with pearl onions and mushrooms.",
		Ingredients: []string{
			"1kg beef chuck, cubed",
			"200g bacon lardons",
			"750ml red Burgundy",
			"500ml beef stock",
			"250g pearl onions",
			"250g button mushrooms",
			"2 carrots",
			"2 tbsp tomato paste",
			"Bouquet garni",
		},
		Instructions: []string{
			"Render the bacon, then brown the beef in batches in the fat.",
			"Soften the carrots and onions, stir in tomato paste.",
			"Deglaze with wine, add stock and the bouquet garni.",
			"Braise covered at 160C for 3 hours.",
			"Saute the mushrooms and fold in for the last 30 minutes.",
			"Reduce the sauce until it coats a spoon.",
		},
		PrepTime:   intPtr(45),
		CookTime:   intPtr(210),
		Servings:   intPtr(6),
		Difficulty: "hard",
		Tags:       []string{"french", "braise", "dinner"},
	},
	{
		Title:       "Spicy Chickpea Curry",
		Description: "Pantry-friendly vegan curry with coconut milk and warming spices.",
		Ingredients: []string{
			"2 cans chickpeas, drained",
			"1 can coconut milk",
			"1 can diced tomatoes",
			"1 onion, diced",
			"2 tbsp curry powder",
			"1 tsp chili flakes",
			"Fresh cilantro",
		},
		Instructions: []string{
			"Soften the onion, then bloom the curry powder and chili flakes.",
			"Add tomatoes, chickpeas, and coconut milk.",
			"Simmer uncovered for 20 minutes.",
			"Garnish with cilantro and serve with rice or flatbread.",
		},
		PrepTime:   intPtr(10),
		CookTime:   intPtr(25),
		Servings:   intPtr(4),
		Difficulty: "easy",
		Tags:       []string{"vegan", "curry", "quick"},
	},
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().
		Output(zerolog.ConsoleWriter{Out: os.Stderr})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations", logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	svc := service.NewRecipeService(db, logger)
	ctx := context.Background()

	for i := range sampleRecipes {
		recipe, err := svc.Create(ctx, &sampleRecipes[i])
		if err != nil {
			logger.Fatal().Err(err).Str("title", sampleRecipes[i].Title).Msg("failed to seed recipe")
		}
		logger.Info().Str("recipe_id", recipe.ID.String()).Str("title", recipe.Title).Msg("seeded recipe")
	}

	logger.Info().Int("count", len(sampleRecipes)).Msg("seeding complete")
}
