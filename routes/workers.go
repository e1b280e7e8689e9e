package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterWorkerRoutes registers worker-related routes
func RegisterWorkerRoutes(rg *gin.RouterGroup, factory *services.Factory) {
	workers := rg.Group("/workers")
	{
		workers.GET("", listWorkers(factory))
		workers.GET("/top-rated", listTopRatedWorkers(factory))
		workers.GET("/available", listAvailableWorkers(factory))
		workers.GET("/skill/:categoryId", listWorkersBySkill(factory))
		workers.GET("/city/:city", listWorkersByCity(factory))
		workers.GET("/category/:categoryId/top-performers", listTopPerformers(factory))
		workers.GET("/:id", getWorker(factory))
		workers.POST("", createWorker(factory))
		workers.PUT("/:id", updateWorker(factory))
		workers.DELETE("/:id", deleteWorker(factory))
		workers.GET("/:id/performance", getWorkerPerformance(factory))
		workers.GET("/:id/reliability", getWorkerReliability(factory))
	}
}

func listWorkers(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		workers, err := factory.Workers.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, workers)
	}
}

func getWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		worker, err := factory.Workers.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, worker)
	}
}

func createWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.WorkerCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		worker, err := factory.Workers.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, worker)
	}
}

func updateWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.WorkerUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Workers.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Worker updated successfully"})
	}
}

func deleteWorker(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Workers.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listWorkersBySkill(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseIDParam(c, "categoryId")
		if !ok {
			return
		}
		workers, err := factory.Workers.GetBySkill(categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, workers)
	}
}

func listWorkersByCity(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")
		if city == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city parameter"})
			return
		}
		workers, err := factory.Workers.GetByCity(city)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, workers)
	}
}

func listAvailableWorkers(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseQueryID(c, "category_id")
		if !ok {
			return
		}
		workers, err := factory.Workers.AvailableForJob(categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, workers)
	}
}

func getWorkerPerformance(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		perf, err := factory.Workers.Performance(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, perf)
	}
}

func getWorkerReliability(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		score, err := factory.Workers.ReliabilityScore(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"worker_id":         id,
			"reliability_score": score,
		})
	}
}

func listTopPerformers(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseIDParam(c, "categoryId")
		if !ok {
			return
		}
		performers, err := factory.Workers.TopPerformersByCategory(categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, performers)
	}
}

func listTopRatedWorkers(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		workers, err := factory.Workers.TopRated()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, workers)
	}
}
