package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterCustomerRoutes registers customer-related routes
func RegisterCustomerRoutes(rg *gin.RouterGroup, factory *services.Factory) {
	customers := rg.Group("/customers")
	{
		customers.GET("", listCustomers(factory))
		customers.GET("/analytics", getCustomerAnalytics(factory))
		customers.GET("/city/:city", listCustomersByCity(factory))
		customers.GET("/:id", getCustomer(factory))
		customers.POST("", createCustomer(factory))
		customers.PUT("/:id", updateCustomer(factory))
		customers.DELETE("/:id", deleteCustomer(factory))
	}
}

func listCustomers(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := factory.Customers.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func getCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		customer, err := factory.Customers.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func createCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CustomerCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		customer, err := factory.Customers.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func updateCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.CustomerUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Customers.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully"})
	}
}

func deleteCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Customers.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listCustomersByCity(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")
		if city == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city parameter"})
			return
		}
		customers, err := factory.Customers.GetByCity(city)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func getCustomerAnalytics(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		analytics, err := factory.Customers.Analytics()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, analytics)
	}
}
