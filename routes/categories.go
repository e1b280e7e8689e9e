package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterCategoryRoutes registers category-related routes
func RegisterCategoryRoutes(rg *gin.RouterGroup, factory *services.Factory) {
	categories := rg.Group("/categories")
	{
		categories.GET("", listCategories(factory))
		categories.GET("/active", listActiveCategories(factory))
		categories.GET("/:id", getCategory(factory))
		categories.POST("", createCategory(factory))
		categories.PUT("/:id", updateCategory(factory))
		categories.DELETE("/:id", deleteCategory(factory))
	}
}

func listCategories(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := factory.Categories.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func listActiveCategories(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := factory.Categories.GetActive()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func getCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		category, err := factory.Categories.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func createCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ServiceCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		category, err := factory.Categories.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func updateCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.ServiceCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Categories.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
	}
}

func deleteCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Categories.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
