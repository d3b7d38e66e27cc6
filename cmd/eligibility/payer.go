package main

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/postgres"
	"github.com/spf13/cobra"
)

func newPayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payer",
		Short: "Manage payer configurations",
	}
	cmd.AddCommand(newPayerPutCmd())
	return cmd
}

func newPayerPutCmd() *cobra.Command {
	var payer payerFlags

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Create or replace a payer configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			ctx := context.Background()
			db, err := postgres.Connect(ctx, &cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			pc := payer.config()
			if err := postgres.NewPayerRepository(db).Upsert(ctx, &pc); err != nil {
				return err
			}

			logger.Info("payer saved", "payer", pc.Name, "payer_code", pc.PayerCode)
			return nil
		},
	}

	payer.register(cmd)
	_ = cmd.MarkFlagRequired("payer-name")
	_ = cmd.MarkFlagRequired("payer-code")

	return cmd
}
