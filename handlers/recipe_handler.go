package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"Backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func serializeRecipe(recipe models.Recipe) gin.H {
	ingredients := make([]gin.H, 0, len(recipe.Items))
	for _, item := range recipe.Items {
		ingredients = append(ingredients, serializeItem(item))
	}
	return gin.H{
		"id":             recipe.ID,
		"name":           recipe.Name,
		"description":    recipe.Description,
		"is_vegan":       recipe.IsVegan,
		"is_gluten_free": recipe.IsGlutenFree,
		"ingredients":    ingredients,
	}
}

// GetRecipeListHandler returns every recipe with its ingredients.
func GetRecipeListHandler(c *gin.Context, db *gorm.DB) {
	var recipes []models.Recipe
	if err := db.Preload("Items").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read recipe list",
		})
		return
	}

	recipesData := make([]gin.H, 0, len(recipes))
	for _, recipe := range recipes {
		recipesData = append(recipesData, serializeRecipe(recipe))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe list read successfully",
		"recipes": recipesData,
	})
}

// GetRecipeDataHandler returns one recipe by id.
func GetRecipeDataHandler(c *gin.Context, db *gorm.DB) {
	recipeID := c.Param("id")

	var recipe models.Recipe
	err := db.Preload("Items").First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Recipe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read recipe",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe read successfully",
		"recipe":  serializeRecipe(recipe),
	})
}

// SearchRecipesHandler searches recipes by name with optional vegan and
// gluten-free filters, paginated.
func SearchRecipesHandler(c *gin.Context, db *gorm.DB) {
	searchTerm := c.DefaultQuery("q", "")
	isVegan := c.DefaultQuery("vegan", "") == "true"
	isGlutenFree := c.DefaultQuery("gluten_free", "") == "true"

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		perPage = 20
	}
	if perPage > 50 {
		perPage = 50
	}

	query := db.Model(&models.Recipe{})
	if searchTerm != "" {
		query = query.Where("name LIKE ?", "%"+searchTerm+"%")
	}
	if isVegan {
		query = query.Where("is_vegan = ?", true)
	}
	if isGlutenFree {
		query = query.Where("is_gluten_free = ?", true)
	}

	var recipes []models.Recipe
	err = query.
		Preload("Items").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&recipes).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not search recipes",
		})
		return
	}

	recipesData := make([]gin.H, 0, len(recipes))
	for _, recipe := range recipes {
		recipesData = append(recipesData, serializeRecipe(recipe))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipes searched successfully",
		"recipes": recipesData,
	})
}

// GetRecipeIngredientsHandler returns the items making up one recipe.
func GetRecipeIngredientsHandler(c *gin.Context, db *gorm.DB) {
	recipeID := c.Param("id")

	var recipe models.Recipe
	err := db.Preload("Items").First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Recipe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read recipe ingredients",
		})
		return
	}

	ingredients := make([]gin.H, 0, len(recipe.Items))
	for _, item := range recipe.Items {
		ingredients = append(ingredients, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Recipe ingredients read successfully",
		"ingredients": ingredients,
	})
}
