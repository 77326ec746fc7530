package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/audit"
	"github.com/nailroom/salon-scheduler/internal/cache"
	"github.com/nailroom/salon-scheduler/internal/config"
	"github.com/nailroom/salon-scheduler/internal/handlers"
	infraRepo "github.com/nailroom/salon-scheduler/internal/infra/repository"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/storage"
	ucPriceList "github.com/nailroom/salon-scheduler/internal/usecase/pricelist"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	visits cache.VisitCounter,
	uploader storage.Uploader,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	priceListRepo := infraRepo.NewPriceListGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	replacePriceListUC := ucPriceList.NewReplace(priceListRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, visits)

	masterHandler := handlers.NewMasterHandler(db, replacePriceListUC, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	priceListHandler := handlers.NewPriceListHandler(db, auditDispatcher)
	eventHandler := handlers.NewEventHandler(db, auditDispatcher)
	avatarHandler := handlers.NewAvatarHandler(db, uploader)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/auth/register/master", authHandler.RegisterMaster)
	r.POST("/auth/register/customer", authHandler.RegisterCustomer)
	r.POST("/auth/login", authHandler.Login)

	// registration aliases kept from the original URL surface
	r.POST("/master/create/", authHandler.RegisterMaster)
	r.POST("/customer/create/", authHandler.RegisterCustomer)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/", dashboardHandler.Index)
		secured.GET("/me", meHandler.GetMe)

		// ------------------------------
		// MASTERS
		// ------------------------------
		secured.GET("/master/", masterHandler.List)
		secured.GET("/master/:id/", masterHandler.Detail)
		secured.POST("/master/:id/update/", masterHandler.Update)
		secured.POST("/master/:id/delete/", masterHandler.Delete)
		secured.POST("/master/:id/avatar/", avatarHandler.Upload)

		// ------------------------------
		// PRICE LIST
		// ------------------------------
		secured.POST("/master/:id/create_price_list/", priceListHandler.Create)
		secured.POST("/master/:id/update_price_list/", priceListHandler.Update)
		secured.POST("/master/:id/delete_price_list/", priceListHandler.Delete)

		// ------------------------------
		// CUSTOMERS
		// ------------------------------
		secured.GET("/customer/", customerHandler.List)
		secured.GET("/customer/:id/", customerHandler.Detail)
		secured.POST("/customer/:id/update/", customerHandler.Update)
		secured.POST("/customer/:id/delete/", customerHandler.Delete)

		secured.POST("/customer/:id/masters/:master_id", customerHandler.SubscribeMaster)
		secured.DELETE("/customer/:id/masters/:master_id", customerHandler.UnsubscribeMaster)
		secured.POST("/customer/:id/services/:service_id", customerHandler.AddService)
		secured.DELETE("/customer/:id/services/:service_id", customerHandler.RemoveService)

		// ------------------------------
		// SERVICES
		// ------------------------------
		secured.GET("/services/", serviceHandler.List)

		masterOnly := secured.Group("/")
		masterOnly.Use(middleware.RequireRole(models.RoleMaster))
		{
			masterOnly.POST("/services/create/", serviceHandler.Create)
			masterOnly.POST("/services/:id/update/", serviceHandler.Update)
			masterOnly.POST("/services/:id/delete/", serviceHandler.Delete)

			// ------------------------------
			// CALENDAR
			// ------------------------------
			masterOnly.GET("/add_event/", eventHandler.AddEvent)
			masterOnly.GET("/update/", eventHandler.Update)
			masterOnly.GET("/remove/", eventHandler.Remove)
		}

		secured.GET("/all_events/", eventHandler.AllEvents)

		// ------------------------------
		// AUDIT
		// ------------------------------
		adminOnly := secured.Group("/")
		adminOnly.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.GET("/audit_logs/", auditLogsHandler.List)
		}
	}
}
