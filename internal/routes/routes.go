package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/cache"
	"github.com/motorvia/autocare-scheduler/internal/chat"
	"github.com/motorvia/autocare-scheduler/internal/config"
	"github.com/motorvia/autocare-scheduler/internal/handlers"
	infraRepo "github.com/motorvia/autocare-scheduler/internal/infra/repository"
	"github.com/motorvia/autocare-scheduler/internal/lock"
	"github.com/motorvia/autocare-scheduler/internal/middleware"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
	"github.com/motorvia/autocare-scheduler/internal/payments"
	"github.com/motorvia/autocare-scheduler/internal/reminder"
	"github.com/motorvia/autocare-scheduler/internal/storage"
	ucAppointment "github.com/motorvia/autocare-scheduler/internal/usecase/appointment"
	ucTimelog "github.com/motorvia/autocare-scheduler/internal/usecase/timelog"
)

// RegisterRoutes wires the whole dependency graph and mounts the API.
// The returned reminder scheduler is started (and stopped) by main.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
) *reminder.Scheduler {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	slotLedger := infraRepo.NewSlotLedgerGorm(db)

	rdb := cache.NewRedis(cfg)
	availCache := cache.NewAvailabilityCache(rdb)

	bookingLocks := lock.NewKeyed()

	notificationStore := notify.NewStore(db)
	notifier := notify.NewDispatcher(notificationStore, log)

	chatService := chat.NewService(db, log)

	uploader := storage.NewUploader(cfg)

	paymentsClient, err := payments.New(cfg, log)
	if err != nil {
		log.Warn("payments client disabled", zap.Error(err))
	}

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		schedulingRepo,
		slotLedger,
		bookingLocks,
		notifier,
		chatService,
		availCache,
		log,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		slotLedger,
		notifier,
		chatService,
		availCache,
		log,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		schedulingRepo,
		slotLedger,
		notifier,
		chatService,
		availCache,
		paymentsClient,
		log,
	)

	assignEmployeesUC := ucAppointment.NewAssignEmployees(
		schedulingRepo,
		notifier,
		log,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(schedulingRepo)

	availabilityUC := ucAppointment.NewGetAvailability(
		schedulingRepo,
		slotLedger,
		availCache,
	)

	startTimeLogUC := ucTimelog.NewStartTimeLog(schedulingRepo)
	stopTimeLogUC := ucTimelog.NewStopTimeLog(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	centerHandler := handlers.NewCenterHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db, uploader, log)
	notificationHandler := handlers.NewNotificationHandler(db)
	chatHandler := handlers.NewChatHandler(db, chatService)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		listAppointmentsUC,
		availabilityUC,
		log,
	)

	employeeHandler := handlers.NewEmployeeHandler(
		updateStatusUC,
		startTimeLogUC,
		stopTimeLogUC,
	)

	adminHandler := handlers.NewAdminHandler(db, assignEmployeesUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/centers", centerHandler.ListCenters)
		api.GET("/centers/:id/availability", appointmentHandler.AvailableSlots)
		api.GET("/offerings", centerHandler.ListOfferings)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/vehicles", vehicleHandler.ListMine)
			secured.POST("/me/vehicles", vehicleHandler.Create)
			secured.POST("/me/vehicles/:id/photo", vehicleHandler.UploadPhoto)

			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/appointments/:id/messages", chatHandler.ListMessages)
			secured.POST("/appointments/:id/messages", chatHandler.PostMessage)

			secured.GET("/me/notifications", notificationHandler.ListMine)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// WORKSHOP STAFF
			// ------------------------------
			staff := secured.Group("/employee")
			staff.Use(middleware.RequireRole(models.RoleEmployee, models.RoleAdmin))
			{
				staff.PATCH("/appointments/:id/status", employeeHandler.UpdateStatus)
				staff.POST("/appointments/:id/timelog/start", employeeHandler.StartTimeLog)
				staff.PATCH("/appointments/:id/timelog/stop", employeeHandler.StopTimeLog)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/appointments/:id/employees", adminHandler.AssignEmployees)

				admin.POST("/centers", adminHandler.CreateCenter)
				admin.PATCH("/centers/:id", adminHandler.UpdateCenter)

				admin.POST("/offerings", adminHandler.CreateOffering)
				admin.PATCH("/offerings/:id", adminHandler.UpdateOffering)

				admin.GET("/employees", adminHandler.ListEmployees)
				admin.POST("/employees", adminHandler.CreateEmployee)
				admin.PUT("/employees/:id/center", adminHandler.SetEmployeeCenter)
			}
		}
	}

	// Daily reminder sweep for tomorrow's appointments.
	return reminder.NewScheduler(schedulingRepo, notifier, log)
}
