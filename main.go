package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"solbalance/internal/config"
	"solbalance/internal/coordinator"
	"solbalance/internal/report"
	"solbalance/internal/solana"
)

// Version is set by ldflags
var Version = "0.1.0"

func main() {
	// Optional .env with SOLBALANCE_* overrides
	_ = godotenv.Load()

	// Cancel in-flight requests on interrupt; the report is still printed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "solbalance",
		Short:        "Report SOL balances for a list of wallets",
		Long:         `Reads an RPC endpoint and wallet addresses from a YAML file, queries every wallet's balance concurrently with getBalance and prints one line per wallet.`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, out)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")

	return cmd
}

// run loads the configuration, queries every wallet and writes the report
// to out. Only configuration failures are returned; per-wallet failures are
// logged and skipped.
func run(ctx context.Context, configPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(out, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level in config file %q: %w", configPath, err)
	}
	slog.SetDefault(logger)

	balanceFetcher := solana.NewBalanceFetcher(cfg.RPCURL,
		solana.WithRetryCount(cfg.RetryCount),
		solana.WithTimeout(cfg.RequestTimeout),
		solana.WithAddressValidation(cfg.ValidateAddresses),
	)
	defer balanceFetcher.Close()

	coord := coordinator.New(balanceFetcher,
		coordinator.WithMaxConcurrency(cfg.MaxConcurrency),
		coordinator.WithLogger(logger),
	)

	logger.Debug("querying balances",
		"rpc_url", cfg.RPCURL,
		"wallets", len(cfg.Wallets),
		"max_concurrency", cfg.MaxConcurrency)

	balances := coord.Run(ctx, cfg.Wallets)

	return report.Write(out, balances, cfg.Unit)
}

// newLogger builds the text logger warnings go to
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
