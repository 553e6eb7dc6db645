package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/EstateHub/internal/db"
	"github.com/arzan03/EstateHub/internal/handlers"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/arzan03/EstateHub/internal/storage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStore(true)
		if err != nil {
			return err
		}
		defer s.Close()

		objects, err := storage.New(ctx, s.cfg.Storage)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}

		app := handlers.NewApp(handlers.Options{
			BodyLimitMB:    s.cfg.BodyLimitMB,
			RequestTimeout: s.cfg.RequestTimeout,
			CORSOrigins:    s.cfg.CORSOrigins,
			RequestLogging: true,
		}, handlers.Services{
			Auth:       services.NewAuthService(s.users, s.cfg.JWTSecret, s.cfg.TokenTTL),
			Properties: services.NewPropertyService(s.properties, s.users),
			Users:      services.NewUserService(s.users),
			Uploads:    services.NewUploadService(objects, s.users),
			Ping:       db.Ping,
		})

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Printf("Shutdown failed: %v", err)
			}
		}()

		log.Printf("Listening on :%d (storage: %s)", s.cfg.Port, s.cfg.Storage.Backend)
		return app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
