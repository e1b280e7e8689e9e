package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterBookingRoutes registers booking-related routes
func RegisterBookingRoutes(rg *gin.RouterGroup, factory *services.Factory) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", listBookings(factory))
		bookings.GET("/summary-by-category", getBookingSummaryByCategory(factory))
		bookings.GET("/worker/:workerId", listBookingsByWorker(factory))
		bookings.GET("/customer/:customerId", listBookingsByCustomer(factory))
		bookings.GET("/:id", getBooking(factory))
		bookings.POST("", createBooking(factory))
		bookings.PUT("/:id", updateBooking(factory))
		bookings.DELETE("/:id", deleteBooking(factory))
		bookings.POST("/:id/complete", completeBooking(factory))
	}
}

func listBookings(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := factory.Bookings.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func getBooking(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		booking, err := factory.Bookings.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

func createBooking(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		booking, err := factory.Bookings.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

func updateBooking(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.BookingUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Bookings.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully"})
	}
}

func deleteBooking(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Bookings.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listBookingsByWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID, ok := parseIDParam(c, "workerId")
		if !ok {
			return
		}
		bookings, err := factory.Bookings.GetByWorker(workerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func listBookingsByCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "customerId")
		if !ok {
			return
		}
		bookings, err := factory.Bookings.GetByCustomer(customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func completeBooking(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		// Body is optional, completion notes only.
		var req struct {
			CompletionNotes *string `json:"completion_notes"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
				return
			}
		}

		if err := factory.Bookings.Complete(id, req.CompletionNotes); err != nil {
			respondError(c, err)
			return
		}
		log.Printf("✅ Booking %d completed", id)
		c.JSON(http.StatusOK, gin.H{"message": "Booking completed successfully"})
	}
}

func getBookingSummaryByCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := factory.Bookings.SummaryByCategory()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
