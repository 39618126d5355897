package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Alchinkaz/dream-rent-crm-new/controllers"
	"github.com/Alchinkaz/dream-rent-crm-new/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/refresh", controllers.RefreshToken)

		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)
		protected.POST("/profile/change-password", controllers.ChangePassword)

		protected.GET("/companies", controllers.GetCompanies)
		protected.POST("/uploads", controllers.UploadFile)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.POST("/users", controllers.Register)
		}

		// Everything below is scoped to a company fleet
		scoped := protected.Group("")
		scoped.Use(middleware.CompanyScopeMiddleware())
		{
			scoped.GET("/dashboard", controllers.GetDashboard)
			scoped.GET("/notifications", controllers.GetNotifications)
			scoped.POST("/notifications/:id/read", controllers.MarkNotificationRead)

			clients := scoped.Group("/clients")
			{
				clients.GET("", controllers.GetClients)
				clients.GET("/:id", controllers.GetClientByID)
				clients.POST("", controllers.SaveClient)
				clients.PUT("/:id", controllers.SaveClient)
				clients.DELETE("/:id", controllers.DeleteClient)
				clients.POST("/bulk-delete", controllers.DeleteClientsBulk)
				clients.POST("/:id/recompute", controllers.RecomputeClientAggregates)
			}

			vehicles := scoped.Group("/vehicles")
			{
				vehicles.GET("", controllers.GetVehicles)
				vehicles.GET("/:id", controllers.GetVehicleByID)
				vehicles.POST("", controllers.SaveVehicle)
				vehicles.PUT("/:id", controllers.SaveVehicle)
				vehicles.DELETE("/:id", controllers.DeleteVehicle)
				vehicles.POST("/bulk-delete", controllers.DeleteVehiclesBulk)
			}

			rentals := scoped.Group("/rentals")
			{
				rentals.GET("", controllers.GetRentals)
				rentals.GET("/:id", controllers.GetRentalByID)
				rentals.POST("", controllers.SaveRental)
				rentals.PUT("/:id", controllers.SaveRental)
				rentals.POST("/:id/transition", controllers.TransitionRental)
				rentals.POST("/:id/link-client", controllers.LinkClient)
				rentals.POST("/:id/link-vehicle", controllers.LinkVehicle)
				rentals.POST("/:id/tariff", controllers.SelectTariff)
				rentals.POST("/:id/online-order", controllers.CreateOnlinePaymentOrder)
				rentals.POST("/:id/comment", controllers.SaveComment)
				rentals.GET("/:id/history", controllers.GetRentalHistory)
				rentals.DELETE("/:id", controllers.DeleteRental)
				rentals.POST("/bulk-delete", controllers.DeleteRentalsBulk)
			}

			payments := scoped.Group("/payments")
			{
				payments.GET("", controllers.GetPayments)
				payments.POST("", controllers.CreatePayment)
				payments.DELETE("/:id", controllers.DeletePayment)
				payments.POST("/bulk-delete", controllers.DeletePaymentsBulk)
			}
		}
	}
}
