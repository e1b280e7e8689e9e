package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

// RegisterJobRoutes registers job-related routes
func RegisterJobRoutes(rg *gin.RouterGroup, factory *services.Factory, media *services.MediaService) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", listJobs(factory))
		jobs.GET("/open", listOpenJobs(factory))
		jobs.GET("/active-with-bids", listActiveJobsWithBids(factory))
		jobs.GET("/category/:categoryId", listJobsByCategory(factory))
		jobs.GET("/customer/:customerId", listJobsByCustomer(factory))
		jobs.GET("/location/:city/category/:categoryId", listJobsByLocation(factory))
		jobs.GET("/:id", getJob(factory))
		jobs.POST("", createJob(factory))
		jobs.PUT("/:id", updateJob(factory))
		jobs.DELETE("/:id", deleteJob(factory))
		jobs.GET("/:id/complexity", getJobComplexity(factory))
		jobs.GET("/:id/attachments", listJobAttachments(factory))
		jobs.POST("/:id/attachments", uploadJobAttachment(factory, media))
	}
}

func listJobs(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := factory.Jobs.GetAll()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func getJob(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		job, err := factory.Jobs.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

func createJob(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JobCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		job, err := factory.Jobs.Create(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, job)
	}
}

func updateJob(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req models.JobUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if err := factory.Jobs.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully"})
	}
}

func deleteJob(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := factory.Jobs.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listOpenJobs(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := factory.Jobs.GetOpen()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func listJobsByCategory(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := parseIDParam(c, "categoryId")
		if !ok {
			return
		}
		jobs, err := factory.Jobs.GetByCategory(categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func listJobsByCustomer(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "customerId")
		if !ok {
			return
		}
		jobs, err := factory.Jobs.GetByCustomer(customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func listJobsByLocation(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")
		if city == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city parameter"})
			return
		}
		categoryID, ok := parseIDParam(c, "categoryId")
		if !ok {
			return
		}
		jobs, err := factory.Jobs.GetByLocation(city, categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func listActiveJobsWithBids(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := factory.Jobs.GetActiveWithBids()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func getJobComplexity(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		job, err := factory.Jobs.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}

		budget := 0.0
		if job.Budget != nil {
			budget = *job.Budget
		}
		urgency := ""
		if job.UrgencyLevel != nil {
			urgency = *job.UrgencyLevel
		}
		score := services.CalculateJobComplexity(budget, urgency, job.RequiredWorkers)

		c.JSON(http.StatusOK, gin.H{
			"job_id":           job.ID,
			"complexity_score": score,
		})
	}
}

func listJobAttachments(factory *services.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		attachments, err := factory.Jobs.GetAttachments(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, attachments)
	}
}

func uploadJobAttachment(factory *services.Factory, media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if media == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "attachment uploads are not configured"})
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		var description *string
		if d := c.PostForm("description"); d != "" {
			description = &d
		}

		url, err := media.UploadJobAttachment(c.Request.Context(), id, header)
		if err != nil {
			respondError(c, err)
			return
		}

		attachment, err := factory.Jobs.AddAttachment(id, url, header.Header.Get("Content-Type"), description)
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Attachment uploaded for job %d: %s", id, url)
		c.JSON(http.StatusCreated, attachment)
	}
}
