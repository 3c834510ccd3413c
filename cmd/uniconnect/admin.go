package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"uniconnect/internal/database"
	"uniconnect/internal/maintenance"
	"uniconnect/internal/registration"
	"uniconnect/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Take one database backup and prune expired ones",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db, log)

		sched := maintenance.NewScheduler(db, cfg.Database.Driver, cfg.Backup, cfg.Maintenance, nil, nil, log)
		path, err := sched.RunBackup(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild-matches",
	Short: "Create match rows missing for mutual likes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db, log)

		svc := router.NewServices(cfg, db, registration.NewMemoryStore(time.Minute), nil, log)
		n, err := svc.Matching.RebuildMatches(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("matches rebuilt", zap.Int("created", n))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print global engine statistics as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db, log)

		svc := router.NewServices(cfg, db, registration.NewMemoryStore(time.Minute), nil, log)
		st, err := svc.Profiles.GlobalStats(cmd.Context())
		if err != nil {
			return err
		}
		report := svc.Checker.Check(cmd.Context())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"stats":  st,
			"health": report,
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd, rebuildCmd, statsCmd)
}
