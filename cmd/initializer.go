package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"nextride/internal/config"
	"nextride/internal/handlers"
	"nextride/internal/repositories"
	"nextride/internal/services"
	"nextride/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	vehicleHandler       *handlers.VehicleHandler
	rentHandler          *handlers.RentHandler
	updateRequestHandler *handlers.UpdateRequestHandler
	paymentHandler       *handlers.PaymentHandler
	summaryHandler       *handlers.SummaryHandler
	dashboardHandler     *handlers.DashboardHandler
	settingsHandler      *handlers.SettingsHandler
	fcmHandler           *handlers.FCMHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	logger := slog.Default()

	// Repositories
	vehicleRepo := repositories.VehicleRepository{DB: db}
	rentRepo := repositories.RentVehicleRepository{DB: db}
	updateRequestRepo := repositories.UpdateRequestRepository{DB: db}
	transactionRepo := repositories.PaymentTransactionRepository{DB: db}
	summaryRepo := repositories.UserSummaryRepository{DB: db}
	settingsRepo := repositories.SettingsRepository{DB: db}
	tokenRepo := repositories.FCMTokenRepository{DB: db}

	// Collaborators
	fileStore, err := utils.NewFileStoreFromEnv()
	if err != nil {
		infoLog.Printf("File storage disabled: %v", err)
	}

	var fcmClient *messaging.Client
	if cfg.Firebase.CredentialsFile != "" {
		app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		if err != nil {
			errorLog.Printf("Firebase init failed: %v", err)
		} else if fcmClient, err = app.Messaging(context.Background()); err != nil {
			errorLog.Printf("Firebase messaging init failed: %v", err)
		}
	}

	gateway, err := services.NewSSLCommerzService(services.SSLCommerzConfig{
		StoreID:       cfg.Gateway.StoreID,
		StorePassword: cfg.Gateway.StorePassword,
		BaseURL:       cfg.Gateway.BaseURL,
		SuccessURL:    cfg.Gateway.SuccessURL,
		FailURL:       cfg.Gateway.FailURL,
		CancelURL:     cfg.Gateway.CancelURL,
		Logger:        logger,
	})
	if err != nil {
		infoLog.Printf("Payment gateway disabled: %v", err)
	}

	// Services
	notifier := &services.NotifierService{Client: fcmClient, TokenRepo: &tokenRepo, Logger: logger}
	summaryService := &services.SummaryService{
		SummaryRepo: &summaryRepo,
		RentRepo:    &rentRepo,
		Redis:       rdb,
		Logger:      logger,
	}

	var files services.FileRemover
	var saver handlers.FileSaver
	if fileStore != nil {
		files = fileStore
		saver = fileStore
	}

	vehicleService := &services.VehicleService{
		VehicleRepo:       &vehicleRepo,
		UpdateRequestRepo: &updateRequestRepo,
		SettingsRepo:      &settingsRepo,
		Summary:           summaryService,
		Files:             files,
		Notify:            notifier,
		Logger:            logger,
	}
	rentService := &services.RentService{
		RentRepo: &rentRepo,
		Summary:  summaryService,
		Files:    files,
		Notify:   notifier,
		Logger:   logger,
	}
	updateRequestService := &services.UpdateRequestService{
		UpdateRequestRepo: &updateRequestRepo,
		VehicleRepo:       &vehicleRepo,
		SettingsRepo:      &settingsRepo,
		Notify:            notifier,
		Logger:            logger,
	}
	var gatewayClient services.GatewayClient
	if gateway != nil {
		gatewayClient = gateway
	}
	paymentService := &services.PaymentService{
		TransactionRepo: &transactionRepo,
		VehicleRepo:     &vehicleRepo,
		Gateway:         gatewayClient,
		Summary:         summaryService,
		Logger:          logger,
	}
	settingsService := &services.SettingsService{SettingsRepo: &settingsRepo}
	dashboardService := &services.DashboardService{
		VehicleRepo:  &vehicleRepo,
		SummaryRepo:  &summaryRepo,
		SettingsRepo: &settingsRepo,
	}

	// Handlers
	return &application{
		errorLog:             errorLog,
		infoLog:              infoLog,
		db:                   db,
		vehicleHandler:       &handlers.VehicleHandler{Service: vehicleService, Files: saver},
		rentHandler:          &handlers.RentHandler{Service: rentService, Files: saver},
		updateRequestHandler: &handlers.UpdateRequestHandler{Service: updateRequestService},
		paymentHandler: &handlers.PaymentHandler{
			Service:         paymentService,
			SuccessRedirect: cfg.Frontend.SuccessRedirect,
			FailRedirect:    cfg.Frontend.FailRedirect,
			CancelRedirect:  cfg.Frontend.CancelRedirect,
		},
		summaryHandler:   &handlers.SummaryHandler{Service: summaryService},
		dashboardHandler: &handlers.DashboardHandler{Service: dashboardService},
		settingsHandler:  &handlers.SettingsHandler{Service: settingsService},
		fcmHandler:       &handlers.FCMHandler{Service: notifier},
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	return db, nil
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.errorLog.Print(err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
