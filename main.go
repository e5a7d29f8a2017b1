package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/mailer"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	log.Info().Msg("Initializing app...")

	cfg := config.Load()
	ctx := context.Background()

	if cfg.AdminSecretSSMParameter != "" {
		ssmClient, err := config.NewSSMClient(ctx, cfg.Storage.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating SSM client")
		}
		if err := config.ResolveAdminSecret(ctx, &cfg, ssmClient); err != nil {
			log.Fatal().Err(err).Msg("Error resolving admin secret")
		}
	}

	db, err := database.Open(cfg.Database, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)
	defer currentDB.Close()

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		report, err := models.GenerateColumnMismatchReport(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		report.Print(os.Stdout)
		return
	}

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Error running migrations")
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("Error initializing storage")
	}

	mail, err := mailer.New(cfg.Mail, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Mail.Provider).Msg("Error initializing mailer")
	}

	gate := auth.NewSharedSecret(cfg.AdminSecret)

	svcs := api.Services{
		Projects: services.NewProjectService(gate, currentDB.ProjectRepo(), blobs),
		Contact:  services.NewContactService(mail, cfg.Mail.Sender(), cfg.Mail.Recipient),
		Gate:     gate,
	}
	if local, ok := blobs.(*storage.LocalStore); ok {
		svcs.ImageDir = local.Dir()
	}

	// Both senders may fire; buffered so neither blocks after shutdown starts.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(cfg, svcs)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
