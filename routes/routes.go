package routes

import (
	"net/http"
	"time"

	"clinicore/handlers"
	"clinicore/middleware"
	"clinicore/models"
	"clinicore/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers back-office account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/login", hb.Users.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.PUT("/:id/password", hb.Users.ChangePasswordHandler)
		api.DELETE("/:id/session", hb.Users.RevokeHandler)

		admin := api.Group("", middleware.RequireRoles(models.RoleAdmin))
		admin.POST("/register", hb.Users.RegisterUserHandler)
		admin.GET("", hb.Users.ListUsersHandler)
		admin.GET("/:id", hb.Users.GetUserHandler)
		admin.PUT("/:id/active", hb.Users.SetUserActiveHandler)
		admin.DELETE("/:id", hb.Users.DeleteUserHandler)
	}
}

// RegisterTherapistRoutes registers therapist and schedule endpoints.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.Therapists.ListTherapistsHandler)
		api.GET("/:id", hb.Therapists.GetTherapistHandler)

		// Schedule and roster changes are an admin concern.
		admin := api.Group("", middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", hb.Therapists.RegisterTherapistHandler)
		admin.PUT("/:id", hb.Therapists.UpdateTherapistHandler)
		admin.DELETE("/:id", hb.Therapists.DeleteTherapistHandler)
		admin.PUT("/:id/active", hb.Therapists.SetActiveHandler)
		admin.PUT("/:id/schedule", hb.Therapists.SetScheduleHandler)
		admin.POST("/:id/blocked", hb.Therapists.AddBlockedSlotHandler)
		admin.DELETE("/:id/blocked/:blockedId", hb.Therapists.RemoveBlockedSlotHandler)
	}
}

// RegisterCalendarRoutes registers calendar grid endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/time-axis", hb.Calendar.TimeAxisHandler)
		api.GET("/:id/week", hb.Calendar.WeekCalendarHandler)
		api.GET("/:id/state", hb.Calendar.SlotStateHandler)
	}
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Appointments.BookHandler)
		api.GET("/:id", hb.Appointments.GetAppointmentHandler)
		api.PUT("/:id/status", hb.Appointments.UpdateStatusHandler)
		api.DELETE("/:id", hb.Appointments.CancelHandler)
		api.GET("/therapist/:id", hb.Appointments.ListForTherapistHandler)
		api.GET("/patient/:id", hb.Appointments.ListForPatientHandler)
	}
}

// RegisterPatientRoutes registers patient registry endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Patients.RegisterPatientHandler)
		api.GET("", hb.Patients.ListPatientsHandler)
		api.GET("/:id", hb.Patients.GetPatientHandler)
		api.PUT("/:id", hb.Patients.UpdatePatientHandler)
		api.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), hb.Patients.DeletePatientHandler)
	}
}

// RegisterRecordRoutes registers intake form and progress note endpoints.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/records")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("/intake", hb.Records.StartIntakeHandler)
		api.GET("/intake/:id", hb.Records.GetIntakeHandler)
		api.PUT("/intake/:id/sections/:section", hb.Records.SaveIntakeSectionHandler)
		api.POST("/intake/:id/submit", hb.Records.SubmitIntakeHandler)
		api.POST("/intake/:id/review", middleware.RequireRoles(models.RoleAdmin, models.RoleTherapist), hb.Records.ReviewIntakeHandler)
		api.GET("/intake/patient/:id", hb.Records.ListIntakeHandler)
		api.POST("/intake/:id/attachments", hb.Storage.UploadAttachmentHandler)
		api.GET("/intake/:id/attachments/:attachmentId/url", hb.Storage.AttachmentURLHandler)

		// Progress notes are written by therapists, not reception.
		notes := api.Group("/notes", middleware.RequireRoles(models.RoleAdmin, models.RoleTherapist))
		notes.POST("", hb.Records.CreateNoteHandler)
		notes.PUT("/:id", hb.Records.UpdateNoteHandler)
		notes.DELETE("/:id", hb.Records.DeleteNoteHandler)
		notes.GET("/patient/:id", hb.Records.ListNotesForPatientHandler)
		notes.GET("/therapist/:id", hb.Records.ListNotesForTherapistHandler)
	}
}

// RegisterReportRoutes registers utilization reporting endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRoles(models.RoleAdmin))
	{
		api.GET("/therapist/:id/week", hb.Reports.TherapistWeekHandler)
		api.GET("/therapist/:id/month", hb.Reports.TherapistMonthHandler)
		api.GET("/clinic/week", hb.Reports.ClinicWeekHandler)
		api.GET("/clinic/month", hb.Reports.ClinicMonthHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
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
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterTherapistRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterReportRoutes(r, hb)
}
