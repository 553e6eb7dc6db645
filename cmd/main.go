package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/arzan03/EstateHub/internal/config"
	"github.com/arzan03/EstateHub/internal/db"
	"github.com/arzan03/EstateHub/internal/repository"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "estatehub",
	Short:         "Real-estate listings API server and maintenance tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// store bundles the Mongo-backed repositories used by every command.
type store struct {
	cfg        config.Config
	database   *mongo.Database
	users      *repository.UserRepository
	properties *repository.PropertyRepository
}

// openStore loads configuration and connects to Mongo. Server settings are
// validated only when forServer is set.
func openStore(forServer bool) (*store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if forServer {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	database, err := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	return &store{
		cfg:        cfg,
		database:   database,
		users:      repository.NewUserRepository(database),
		properties: repository.NewPropertyRepository(database),
	}, nil
}

func (s *store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
}
