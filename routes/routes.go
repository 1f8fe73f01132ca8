package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/higordev223/salute-child/handlers"
	"github.com/higordev223/salute-child/middleware"
	"github.com/higordev223/salute-child/utils"
)

// RegisterAppointmentRoutes sets up the endpoints for the booking wizard and
// the stateless lookups.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		// Public lookups the widget makes before the patient signs in.
		api.POST("/slots", hb.SlotMenu)
		api.GET("/languages", hb.Languages)

		// Wizard endpoints run behind patient auth.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthPatientMiddleware())
		protected.POST("/session", hb.StartSession)
		protected.PUT("/session/:sessionID", hb.UpdateSession)
		protected.POST("/confirm", hb.ConfirmBooking)
		protected.DELETE("/session/:sessionID", hb.CancelSession)
		protected.POST("/:id/cancel", hb.CancelBooking)
	}
}

// RegisterPatientRoutes registers patient auth endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/token", hb.PatientToken)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAppointmentRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterHealthRoute(r)
}
