package routes

import (
	"school-meals-api/handlers"
	"school-meals-api/middleware"
	"school-meals-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Role-scoped dashboards ─────────────────────────────────────
	dashboard := r.Group("/api/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("/admin", middleware.RoleRequired(models.RoleAdmin), handlers.AdminDashboard)
		dashboard.GET("/cooker", middleware.RoleRequired(models.RoleCooker), handlers.CookerDashboard)
		dashboard.GET("/delivery", middleware.RoleRequired(models.RoleDelivery), handlers.DeliveryDashboard)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// School management
		admin.GET("/schools", handlers.ListSchools)
		admin.POST("/schools", handlers.CreateSchool)
		admin.PUT("/schools/:id", handlers.UpdateSchool)
		admin.DELETE("/schools/:id", handlers.DeleteSchool)

		// Worker management (cookers + delivery personnel)
		admin.GET("/workers", handlers.ListWorkers)
		admin.POST("/workers", handlers.CreateWorker)
		admin.PUT("/workers/:id", handlers.UpdateWorker)
		admin.DELETE("/workers/:id", handlers.DeleteWorker)

		// Delivery management
		admin.GET("/deliveries", handlers.ListDeliveries)
		admin.POST("/deliveries", handlers.CreateDelivery)
		admin.PUT("/deliveries/:id", handlers.UpdateDelivery)
		admin.PUT("/deliveries/:id/deliver", handlers.AdminMarkDelivered)
		admin.DELETE("/deliveries/:id", handlers.DeleteDelivery)

		// Reports and cross-cooker views
		admin.GET("/reports", handlers.DeliveryReport)
		admin.GET("/reports/export", handlers.ExportDeliveryReport)
		admin.GET("/deliveries/:id/report", handlers.SingleDeliveryReport)
		admin.GET("/learner-records", handlers.LearnerRecords)
		admin.GET("/attendance-records", handlers.AdminAttendanceRecords)
		admin.GET("/grocery-lists", handlers.AdminGroceryLists)
		admin.DELETE("/grocery-lists/:id", handlers.AdminDeleteGroceryItem)
	}

	// ── Cooker routes ──────────────────────────────────────────────
	cooker := r.Group("/api/cooker")
	cooker.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCooker))
	{
		cooker.POST("/attendance/clock-in", handlers.ClockIn)
		cooker.POST("/attendance/clock-out", handlers.ClockOut)
		cooker.GET("/attendance", handlers.ListAttendance)

		cooker.GET("/learners", handlers.ListMyLearners)
		cooker.POST("/learners", handlers.CreateLearner)
		cooker.DELETE("/learners/:id", handlers.DeleteLearner)

		cooker.GET("/grocery-list", handlers.ListMyGroceryItems)
		cooker.POST("/grocery-list", handlers.CreateGroceryItem)
		cooker.PUT("/grocery-list/:id", handlers.UpdateGroceryItem)
		cooker.DELETE("/grocery-list/:id", handlers.DeleteGroceryItem)
	}

	// ── Delivery person routes ─────────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDelivery))
	{
		delivery.GET("/my-deliveries", handlers.MyDeliveries)
		delivery.GET("/deliveries/:id/report", handlers.MyDeliveryReport)
		delivery.GET("/routes", handlers.DeliveryRoutes)
		delivery.POST("/complete", handlers.CompleteDelivery)
		delivery.GET("/stats", handlers.DeliveryStats)
	}
}
