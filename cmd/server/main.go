package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/lukegvoigt/vnr-checkin/config"
	_ "github.com/lukegvoigt/vnr-checkin/docs"
	"github.com/lukegvoigt/vnr-checkin/internal/adapters/auth"
	"github.com/lukegvoigt/vnr-checkin/internal/adapters/email"
	"github.com/lukegvoigt/vnr-checkin/internal/adapters/render"
	"github.com/lukegvoigt/vnr-checkin/internal/adapters/roster"
	"github.com/lukegvoigt/vnr-checkin/internal/database"
	delivery "github.com/lukegvoigt/vnr-checkin/internal/delivery/http"
	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/controllers"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
	"github.com/lukegvoigt/vnr-checkin/internal/repository/postgres"
	"github.com/lukegvoigt/vnr-checkin/internal/services"
)

// @title VNR Check-In API
// @version 1.0
// @description Event check-in and sponsor ticketing for the annual teacher appreciation dinner.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger("vnr-checkin")

	db, err := openDB(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		runner := database.NewRunner(db, logger, database.MigrateOptions{
			MigrationsDir: cfg.MigrationsDir,
			AutoMigrate:   cfg.AutoMigrate,
		})
		if err := runner.Up(); err != nil {
			logger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
		_ = runner.Close()
	}

	attendeeRepo := postgres.NewAttendeeRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	tokens := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(0)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	event := domain.EventDetails{
		Name:           cfg.EventName,
		Date:           cfg.EventDateText,
		DoorsOpen:      cfg.DoorsOpen,
		DinnerServed:   cfg.DinnerServed,
		EndTime:        cfg.EndTime,
		KeynoteSpeaker: cfg.KeynoteSpeaker,
		Venue:          cfg.Venue,
		Address:        cfg.VenueAddress,
	}

	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	ticketSvc := services.NewTicketService(ticketRepo, sponsorRepo, emailSvc, render.NewTicketRenderer(), event, logger, cfg.Year)
	sponsorSvc := services.NewSponsorService(sponsorRepo, ticketSvc, hasher, tokens, logger, cfg.Year, cfg.JWTExpiry)
	rosterSvc := services.NewRosterService(attendeeRepo, ticketRepo, roster.NewHTTPFetcher(http.DefaultClient), logger, cfg.Year)
	checkInSvc := services.NewCheckInService(attendeeRepo, tokens, logger, services.CheckInConfig{
		CodeRange:        domain.ScanCodeRange{Min: cfg.CodeMin, Max: cfg.CodeMax},
		Passphrase:       cfg.CheckInPassphrase,
		EventDate:        cfg.EventDate,
		EnforceEventDate: cfg.EnforceEventDate,
		Year:             cfg.Year,
		TokenExpiry:      cfg.JWTExpiry,
	})

	handler := delivery.NewRouter(delivery.RouterConfig{
		Logger:         logger,
		Verifier:       tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CheckIn:        controllers.NewCheckInController(logger, checkInSvc),
		Sponsor:        controllers.NewSponsorController(logger, sponsorSvc, ticketSvc),
		Admin:          controllers.NewAdminController(logger, sponsorSvc, rosterSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment, "year", cfg.Year)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
