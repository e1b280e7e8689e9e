package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// Register mounts the full API surface under /api/v1.
func Register(router *gin.Engine, factory *services.Factory, media *services.MediaService, db *gorm.DB) {
	api := router.Group("/api/v1")
	{
		RegisterJobRoutes(api, factory, media)
		RegisterBidRoutes(api, factory)
		RegisterBookingRoutes(api, factory)
		RegisterWorkerRoutes(api, factory)
		RegisterCustomerRoutes(api, factory)
		RegisterCategoryRoutes(api, factory)
		RegisterStatsRoutes(api, factory, db)
	}
}

// parseIDParam reads a numeric path parameter; a second return of false means
// the 400 response has already been written.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// parseQueryID reads a required numeric query parameter.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged server-side and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// RegisterStatsRoutes exposes row counts and the active data-access variant.
func RegisterStatsRoutes(rg *gin.RouterGroup, factory *services.Factory, db *gorm.DB) {
	rg.GET("/stats/counts", func(c *gin.Context) {
		counts := gin.H{}
		for name, model := range map[string]interface{}{
			"users":              &models.User{},
			"customers":          &models.Customer{},
			"workers":            &models.Worker{},
			"service_categories": &models.ServiceCategory{},
			"jobs":               &models.Job{},
			"bids":               &models.Bid{},
			"bookings":           &models.Booking{},
			"reviews":            &models.Review{},
			"notifications":      &models.Notification{},
		} {
			var count int64
			if err := db.Model(model).Count(&count).Error; err != nil {
				respondError(c, err)
				return
			}
			counts[name] = count
		}
		c.JSON(http.StatusOK, counts)
	})

	// The variant is fixed at startup; this endpoint only reports it.
	rg.GET("/config/bll-type", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"bll_type": string(factory.Type)})
	})
}
