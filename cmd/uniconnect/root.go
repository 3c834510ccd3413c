package main

import (
	"errors"
	"fmt"

	"uniconnect/config"
	"uniconnect/internal/database"
	"uniconnect/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const app = "uniconnect"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "uniconnect is the matchmaking engine behind the university dating bot",
		SilenceUsage:  true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is uniconnect.yaml in current directory, optional)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadConfig reads the config file when one exists. An explicit --config
// that cannot be read is an error; a missing default file is not.
func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return config.Load(v)
}

// bootstrap loads config and builds the logger every command shares.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}

func openDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db, log)
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	log.Debug("database ready", zap.String("driver", cfg.Database.Driver))
	return db, nil
}
