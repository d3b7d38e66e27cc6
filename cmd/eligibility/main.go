// @title           Eligibility Gateway API
// @version         1.0
// @description     Real-time X12 270/271 eligibility checks with clearinghouse failover.
// @BasePath        /
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/clearinghouse"
	"github.com/DanielPopoola/eligibility-gateway/internal/config"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/rules"
	"github.com/DanielPopoola/eligibility-gateway/internal/x12"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "eligibility",
		Short:         "Real-time insurance eligibility over X12 270/271",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPayerCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and installs the process logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger(cfg.Primary.Env)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newBuilder(cfg *config.Config) *x12.Builder {
	return x12.NewBuilder(x12.Submitter{
		SenderID:        cfg.Submitter.SenderID,
		ReceiverID:      cfg.Submitter.ReceiverID,
		UsageIndicator:  cfg.Submitter.UsageIndicator,
		ProviderName:    cfg.Submitter.ProviderName,
		ProviderNPI:     cfg.Submitter.ProviderNPI,
		TraceOriginator: cfg.Submitter.TraceOriginator,
	}, x12.NewControlNumbers(nil))
}

func newEngine(cfg *config.Config) *rules.Engine {
	return rules.NewEngine(rules.Policy{ProgramName: cfg.Rules.ProgramName})
}

// newTransport builds one HTTP client per configured clearinghouse, in
// failover order.
func newTransport(cfg *config.Config, logger *slog.Logger) (*clearinghouse.FailoverClient, error) {
	var endpoints []clearinghouse.Endpoint
	for _, ch := range cfg.Clearinghouses.Endpoints() {
		client, err := clearinghouse.NewHTTPClient(ch, cfg.Transport)
		if err != nil {
			return nil, fmt.Errorf("clearinghouse %s: %w", ch.Name, err)
		}
		endpoints = append(endpoints, client)
	}
	return clearinghouse.NewFailoverClient(logger, endpoints...), nil
}
