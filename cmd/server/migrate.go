package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := setup()
			if err != nil {
				return err
			}
			defer flush()
			if _, err := openDB(cfg); err != nil {
				return err
			}
			zap.S().Info("migrations applied")
			return nil
		},
	}
}
