package main

import (
	"fmt"
	"os"

	"github.com/skillforge/bids-service/internal/auth"
	"github.com/skillforge/bids-service/internal/config"
	"github.com/skillforge/bids-service/internal/db"
	"github.com/skillforge/bids-service/internal/excel"
	httphandler "github.com/skillforge/bids-service/internal/http"
	"github.com/skillforge/bids-service/internal/http/middleware"
	"github.com/skillforge/bids-service/internal/logger"
	"github.com/skillforge/bids-service/internal/pdf"
	"github.com/skillforge/bids-service/internal/repository"
	"github.com/skillforge/bids-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	bidRepo := repository.NewBidRepository(database)
	contractRepo := repository.NewContractRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	reportRepo := repository.NewReportRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(userRepo, tokenIssuer)
	projectService := service.NewProjectService(projectRepo, userRepo)
	bidService := service.NewBidService(bidRepo, projectRepo, notificationRepo, userRepo, cfg)
	contractService := service.NewContractService(contractRepo, pdf.NewGenerator())
	notificationService := service.NewNotificationService(notificationRepo)
	reportService := service.NewReportService(reportRepo, excel.NewGenerator())

	handlers := httphandler.Handlers{
		Auth:          httphandler.NewAuthHandler(authService, log),
		Bids:          httphandler.NewBidHandler(bidService, log),
		Projects:      httphandler.NewProjectHandler(projectService, log),
		Notifications: httphandler.NewNotificationHandler(notificationService, log),
		Contracts:     httphandler.NewContractHandler(contractService, log),
		Reports:       httphandler.NewReportHandler(reportService, log),
	}

	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handlers, authMiddleware, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting bids service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
