package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicore/config"
	"clinicore/cron"
	"clinicore/database"
	appointmentRepoPkg "clinicore/database/repository/appointment"
	patientRepoPkg "clinicore/database/repository/patient"
	recordsRepoPkg "clinicore/database/repository/records"
	therapistRepoPkg "clinicore/database/repository/therapist"
	userRepoPkg "clinicore/database/repository/user"
	"clinicore/handlers"
	"clinicore/routes"
	"clinicore/services/appointment"
	"clinicore/services/patient"
	"clinicore/services/records"
	"clinicore/services/report"
	"clinicore/services/storage"
	"clinicore/services/tasks"
	"clinicore/services/therapist"
	"clinicore/services/user"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	therapistRepo := therapistRepoPkg.NewMongoTherapistRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	recordRepo := recordsRepoPkg.NewMongoRecordRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Background task queue.
	queue := tasks.NewQueueClient()
	defer queue.Close()

	// Services.
	therapistService := &therapist.DefaultTherapistService{
		Repo:         therapistRepo,
		Appointments: appointmentRepo,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:          appointmentRepo,
		TherapistRepo: therapistRepo,
		PatientRepo:   patientRepo,
		Reminders:     queue,
	}
	patientService := &patient.DefaultPatientService{Repo: patientRepo}
	recordService := &records.DefaultRecordService{Repo: recordRepo}
	userService := &user.DefaultUserService{Repo: userRepo}
	reportService := &report.DefaultReportService{
		TherapistRepo:   therapistRepo,
		AppointmentRepo: appointmentRepo,
		Cache:           utils.GetCacheClient(),
	}
	// Occupancy and capacity changes drop the affected cached reports.
	therapistService.Reports = reportService
	appointmentService.Reports = reportService

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Therapists:   &handlers.TherapistHandler{Service: therapistService},
		Calendar:     &handlers.CalendarHandler{Service: therapistService},
		Appointments: &handlers.AppointmentHandler{Service: appointmentService},
		Patients:     &handlers.PatientHandler{Service: patientService},
		Records:      &handlers.RecordHandler{Service: recordService},
		Reports:      &handlers.ReportHandler{Service: reportService},
		Users:        &handlers.UserHandler{Service: userService},
		Storage:      &handlers.StorageHandler{Storage: storageService, Records: recordService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker and health monitoring.
	cron.InitWorker(reportService, queue)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.CacheClient, utils.AuthCacheClient},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
