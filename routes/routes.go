package routes

import (
	"os"
	"strings"

	"clinicpro-backend/config"
	"clinicpro-backend/controllers"
	"clinicpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-clinic", controllers.UpdateClinicProfile)
			profile.PUT("/update-hours", controllers.UpdateWorkingHours)
			profile.PUT("/update-notifications", controllers.UpdateNotificationSettings)
			profile.GET("/templates", controllers.GetReminderTemplates)
			profile.PUT("/update-templates", controllers.UpdateReminderTemplate)
		}
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Doctor routes
		doctors := api.Group("/doctors")
		{
			doctors.POST("", utils.RequireAdmin(), controllers.CreateDoctor)
			doctors.GET("", controllers.GetDoctors)
			doctors.GET("/search", controllers.SearchDoctors)
			doctors.GET("/:id", controllers.GetDoctor)
			doctors.PUT("/:id", controllers.UpdateDoctor)
			doctors.PATCH("/:id/status", utils.RequireAdmin(), controllers.UpdateDoctorStatus)
			doctors.DELETE("/:id", utils.RequireAdmin(), controllers.DeleteDoctor)
			doctors.GET("/:id/schedule", controllers.GetDoctorSchedule)
			doctors.PUT("/:id/schedule", controllers.UpdateDoctorSchedule)
		}

		// Patient routes
		patients := api.Group("/patients")
		{
			patients.POST("", controllers.CreatePatient)
			patients.GET("", controllers.GetPatients)
			patients.GET("/search", controllers.SearchPatients)
			patients.GET("/export", controllers.ExportPatients)
			patients.GET("/:id", controllers.GetPatient)
			patients.PUT("/:id", controllers.UpdatePatient)
			patients.DELETE("/:id", controllers.DeletePatient)
		}

		// Service category routes
		categories := api.Group("/service-categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.GET("/search", controllers.SearchCategories)
			categories.PUT("/reorder", controllers.ReorderCategories)
			categories.PUT("/bulk-status", controllers.BulkUpdateCategoryStatus)
			categories.GET("/:id", controllers.GetCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/export", controllers.ExportAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Inventory routes
		medicines := api.Group("/medicines")
		{
			medicines.POST("", controllers.CreateMedicine)
			medicines.GET("", controllers.GetMedicines)
			medicines.GET("/low-stock", controllers.GetLowStockMedicines)
			medicines.GET("/expiring", controllers.GetExpiringMedicines)
			medicines.GET("/:id", controllers.GetMedicine)
			medicines.PUT("/:id", controllers.UpdateMedicine)
			medicines.POST("/:id/adjust-stock", controllers.AdjustMedicineStock)
			medicines.DELETE("/:id", controllers.DeleteMedicine)
		}

		implants := api.Group("/implant-materials")
		{
			implants.POST("", controllers.CreateImplantMaterial)
			implants.GET("", controllers.GetImplantMaterials)
			implants.GET("/:id", controllers.GetImplantMaterial)
			implants.PUT("/:id", controllers.UpdateImplantMaterial)
			implants.POST("/:id/adjust-stock", controllers.AdjustImplantStock)
			implants.DELETE("/:id", controllers.DeleteImplantMaterial)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
