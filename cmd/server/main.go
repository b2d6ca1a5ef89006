package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pacemaker/config"
	"pacemaker/database"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pacemaker",
		Short:         "PaceMaker weekly planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(weekCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and installs the global zap logger.
func setup() (config.AppConfig, func(), error) {
	cfg, envErr := config.Load()

	zcfg := zap.NewProductionConfig()
	if cfg.LogLevel == "debug" {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lg, err := zcfg.Build()
	if err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(lg)
	if envErr != nil {
		zap.S().Debugw("[cfg] no .env file loaded", "err", envErr)
	}
	return cfg, func() { _ = lg.Sync() }, nil
}

func openDB(cfg config.AppConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.DBPath, level)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
