package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/edufees-api/internal/middleware"
)

// RegisterRoutes mounts the API on the /api/v1 group
func RegisterRoutes(v1 *gin.RouterGroup, h *Handlers, jwtSecret string) {
	// Health check (public)
	v1.GET("/health", h.Health.Index)

	// Protected routes (requires authentication)
	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtSecret))
	{
		// Any caller may reconcile payments they supply
		protected.POST("/fees/reconcile", h.Fee.Reconcile)

		// Student data access (staff or the student)
		student := protected.Group("/students/:contact_id")
		student.Use(middleware.RequireSelfOrStaff())
		{
			student.GET("/fees", h.Fee.Show)
			student.GET("/fees/statement", h.Statement.Download)
			student.POST("/fees/statement/jobs", h.Statement.CreateJob)
		}

		// Staff + Admin routes
		staff := protected.Group("")
		staff.Use(middleware.RequireStaff())
		{
			staff.POST("/fees/batch", h.Fee.Batch)
			staff.POST("/students/:contact_id/fees/reminder", h.Fee.Remind)
			staff.GET("/jobs/status", h.Job.Status)
		}

		// Job owners and staff
		protected.GET("/jobs/:job_id", h.Job.Show)
		protected.GET("/jobs/:job_id/download", h.Job.Download)
	}
}
