package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fleetdesk/internal/billing"
	"fleetdesk/internal/config"
	"fleetdesk/internal/database"
	"fleetdesk/internal/middleware"
	"fleetdesk/internal/modules/auth"
	"fleetdesk/internal/modules/client"
	"fleetdesk/internal/modules/feed"
	"fleetdesk/internal/modules/fleet"
	"fleetdesk/internal/modules/inspection"
	"fleetdesk/internal/modules/report"
	"fleetdesk/internal/modules/reservation"
	"fleetdesk/internal/pkg/currency"
	jwtsvc "fleetdesk/internal/pkg/jwt"
	"fleetdesk/internal/repository"
)

// defaultOrgID is the single agency this deployment serves. Multi-tenant
// routing would resolve it per request instead.
const defaultOrgID = 1

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	billing.SetDefaultHour(cfg.PickupHour)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	fixedChargeRepo := repository.NewFixedChargeRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	currencyCache := currency.NewCache(cfg.CurrencyTTL, func(ctx context.Context, orgID int64) (currency.Info, error) {
		org, err := orgRepo.GetByID(ctx, orgID)
		if err != nil {
			return currency.Info{}, err
		}
		return currency.Info{Code: org.CurrencyCode, Symbol: org.CurrencySymbol}, nil
	})

	hub := feed.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	fleetService := fleet.NewService(vehicleRepo)
	fleetHandler := fleet.NewHandler(fleetService)

	clientService := client.NewService(clientRepo)
	clientHandler := client.NewHandler(clientService)

	reservationService := reservation.NewService(reservationRepo, vehicleRepo, hub, currencyCache, defaultOrgID)
	reservationHandler := reservation.NewHandler(reservationService)

	inspectionService := inspection.NewService(inspectionRepo, reservationRepo, vehicleRepo, fixedChargeRepo, hub, currencyCache, defaultOrgID)
	inspectionHandler := inspection.NewHandler(inspectionService)

	reportService := report.NewService(reservationRepo, vehicleRepo, clientRepo, inspectionRepo, currencyCache, defaultOrgID)
	reportHandler := report.NewHandler(reportService)

	feedHandler := feed.NewHandler(hub, j)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.GET("/ws/feed", feedHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		reservationHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			fleetHandler.RegisterRoutes(protected)
			clientHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			inspectionHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				fleetHandler.RegisterAdminRoutes(admin)
				inspectionHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on %s (env=%s)", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
