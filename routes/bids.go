package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterBidRoutes registers bid-related routes
func RegisterBidRoutes(rg *gin.RouterGroup, factory *services.Factory) {
	bids := rg.Group("/bids")
	{
		bids.GET("", listBids(factory))
		bids.GET("/job/:jobId", listBidsByJob(factory))
		bids.GET("/job/:jobId/stats", getBidStats(factory))
		bids.GET("/worker/:workerId", listBidsByWorker(factory))
		bids.GET("/:id", getBid(factory))
		bids.POST("", createBid(factory))
		bids.PUT("/:id", updateBid(factory))
		bids.DELETE("/:id", deleteBid(factory))
		bids.POST("/:id/accept", acceptBid(factory))
	}
}

func listBids(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		bids, err := factory.Bids.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bids)
	}
}

func getBid(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		bid, err := factory.Bids.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bid)
	}
}

func createBid(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BidCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		bid, err := factory.Bids.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, bid)
	}
}

func updateBid(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.BidUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Bids.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bid updated successfully"})
	}
}

func deleteBid(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Bids.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listBidsByJob(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := parseIDParam(c, "jobId")
		if !ok {
			return
		}
		bids, err := factory.Bids.GetByJob(jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bids)
	}
}

func listBidsByWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID, ok := parseIDParam(c, "workerId")
		if !ok {
			return
		}
		bids, err := factory.Bids.GetByWorker(workerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bids)
	}
}

func acceptBid(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		bookingCode, err := factory.Bids.Accept(id)
		if err != nil {
			respondError(c, err)
			return
		}
		log.Printf("✅ Bid %d accepted, booking %s created", id, bookingCode)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Bid accepted successfully",
			"booking_code": bookingCode,
		})
	}
}

func getBidStats(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := parseIDParam(c, "jobId")
		if !ok {
			return
		}
		stats, err := factory.Bids.Stats(jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
