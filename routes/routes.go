package routes

import (
	"time"

	"tidybook/handlers"
	"tidybook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public read side: slot maps and
// service catalogs, which homeowners browse before authenticating.
func RegisterAvailabilityRoutes(r *gin.Engine) {
	api := r.Group("/api/housekeepers")
	{
		api.GET("/:id/slots", handlers.GetAvailability)
		api.GET("/:id/offerings", handlers.ListOfferings)
	}
}

// RegisterScheduleRoutes registers the housekeeper's schedule editing
// endpoints. Edits land on a draft; only the save endpoint persists.
func RegisterScheduleRoutes(r *gin.Engine) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleHousekeeper))
		api.GET("/draft", handlers.GetScheduleDraft)
		api.PUT("/draft/days/:day/working", handlers.SetWorkingDay)
		api.PUT("/draft/days/:day/jobs", handlers.SetJobCount)
		api.PUT("/draft/days/:day/start-time", handlers.SetStartTime)
		api.PUT("/draft/preferences", handlers.SetSchedulePreferences)
		api.POST("/save", handlers.SaveSchedule)
		api.DELETE("/draft", handlers.DiscardSchedule)

		api.GET("/time-off", handlers.ListTimeOff)
		api.POST("/time-off", handlers.AddTimeOff)
		api.DELETE("/time-off/:date", handlers.RemoveTimeOff)
	}
}

// RegisterRequestRoutes registers the service request lifecycle endpoints.
func RegisterRequestRoutes(r *gin.Engine) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthMiddleware())

		// Homeowner side.
		homeowner := middleware.RequireRole(middleware.RoleHomeowner)
		api.POST("", homeowner, handlers.SubmitRequest)
		api.GET("/mine", homeowner, handlers.ListHomeownerRequests)
		api.POST("/:id/accept-proposal", homeowner, handlers.AcceptProposal)
		api.POST("/:id/decline-proposal", homeowner, handlers.DeclineProposal)
		api.POST("/:id/cancel", homeowner, handlers.CancelRequestByHomeowner)

		// Housekeeper side.
		housekeeper := middleware.RequireRole(middleware.RoleHousekeeper)
		api.GET("/incoming", housekeeper, handlers.ListHousekeeperRequests)
		api.POST("/:id/propose", housekeeper, handlers.ProposeAlternative)
		api.POST("/:id/confirm", housekeeper, handlers.ConfirmRequest)
		api.POST("/:id/decline", housekeeper, handlers.DeclineRequest)
		api.POST("/:id/withdraw", housekeeper, handlers.CancelRequestByHousekeeper)
		api.POST("/:id/complete", housekeeper, handlers.CompleteRequest)

		api.GET("/:id", handlers.GetRequest)
	}
}

// RegisterBookingRoutes registers the confirmed-appointment endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware())

		housekeeper := middleware.RequireRole(middleware.RoleHousekeeper)
		api.POST("", housekeeper, handlers.CreateBooking)
		api.GET("", housekeeper, handlers.ListHousekeeperBookings)
		api.POST("/:id/cancel", housekeeper, handlers.CancelBooking)
		api.POST("/:id/complete", housekeeper, handlers.CompleteBooking)

		api.GET("/mine", middleware.RequireRole(middleware.RoleHomeowner), handlers.ListClientBookings)
		api.GET("/:id", handlers.GetBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r)
	RegisterScheduleRoutes(r)
	RegisterRequestRoutes(r)
	RegisterBookingRoutes(r)
}
