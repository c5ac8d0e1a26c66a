// Command rule_seed bootstraps the platform-wide fee rule.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tutorly/internal/config"
	"tutorly/internal/logs"
	"tutorly/internal/repositories"
	"tutorly/internal/services/audit"
	"tutorly/internal/services/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		percent string
		dryRun  bool
		adminID string
	)

	cmd := &cobra.Command{
		Use:   "rule_seed",
		Short: "Seed the GLOBAL platform fee rule",
		Long: `Creates the GLOBAL fee rule used when no teacher or item rule matches.
The seed is skipped when an active GLOBAL rule already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			log := logs.New(logs.LoadConfig())

			feeCfg, err := config.LoadFeeConfig()
			if err != nil {
				return err
			}
			if percent == "" {
				percent = config.GetEnv("FEE_SEED_GLOBAL_PERCENT", feeCfg.FallbackPercent.String())
			}
			value, err := decimal.NewFromString(percent)
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", percent, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			var (
				ruleRepo repositories.FeeRuleRepository
				recorder pricing.AuditRecorder
			)
			if dryRun {
				ruleRepo = repositories.NewMemoryFeeRuleRepository()
				recorder = audit.NewLogRecorder(log)
			} else {
				db, err := repositories.NewDB(repositories.LoadDBConfig())
				if err != nil {
					return err
				}
				if sqlDB, err := db.DB(); err == nil {
					defer sqlDB.Close()
				}
				if err := repositories.Migrate(db); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
				ruleRepo = repositories.NewFeeRuleRepository(db)
				recorder = audit.NewMultiRecorder(repositories.NewAuditLogRepository(db), audit.NewLogRecorder(log))
			}

			fees := pricing.NewService(ruleRepo, recorder, pricing.Config{
				FallbackPercent: decimal.NewNullDecimal(feeCfg.FallbackPercent),
				MinorUnitPlaces: feeCfg.MinorUnitPlaces,
			}, nil, log)

			rule, created, err := seedGlobalRule(ctx, fees, pricing.Admin{ID: adminID, Name: "rule_seed"}, value)
			if err != nil {
				return err
			}
			if !created {
				log.Info("active GLOBAL fee rule already exists", "rule_id", rule.ID, "percent", rule.PlatformFeePercent.String())
				return nil
			}

			log.Info("GLOBAL fee rule seeded", "rule_id", rule.ID, "percent", rule.PlatformFeePercent.String(), "dry_run", dryRun)
			return nil
		},
	}

	cmd.Flags().StringVar(&percent, "percent", "", "platform fee percent (defaults to FEE_SEED_GLOBAL_PERCENT, then the fallback)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "seed into memory only")
	cmd.Flags().StringVar(&adminID, "admin-id", "system", "admin id stamped on the rule and audit entry")

	cmd.AddCommand(newMigrateCommand())
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the fee engine tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			db, err := repositories.NewDB(repositories.LoadDBConfig())
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := repositories.Migrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}
}
