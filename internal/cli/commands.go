package cli

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quantfold/straddlego/internal/config"
	"github.com/quantfold/straddlego/internal/dataflows"
	"github.com/quantfold/straddlego/internal/display"
	"github.com/quantfold/straddlego/internal/ledger"
	"github.com/quantfold/straddlego/internal/straddle"
)

const version = "0.2.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "straddlego [SYMBOL]",
		Short: "ATM straddle calculator",
		Long: `straddlego prices the at-the-money straddle for the next few option
expirations of a ticker: spot price, call/put mids, implied volatility,
implied move and expected range. Each expiration is appended as one row
to a CSV ledger.
Example: straddlego AAPL`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if cfg.Debug {
				log.SetLevel(log.DebugLevel)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var symbol string
			if len(args) == 1 {
				symbol = args[0]
			} else {
				ticker, err := PromptForTicker()
				if err != nil {
					return err
				}
				symbol = ticker
			}
			return runScan(cfg, symbol)
		},
	}

	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("straddlego %s\n", version)
		},
	}
}

// runScan executes the straddle pipeline and persists the results.
func runScan(cfg *config.Config, symbol string) error {
	provider := dataflows.NewDataFlow(cfg)

	report, err := straddle.Scan(provider, symbol, straddle.Options{
		MaxExpirations: cfg.MaxExpirations,
		HVWindowDays:   cfg.HVWindowDays,
	})
	if err != nil {
		display.ShowFatal(err.Error())
		return err
	}

	display.ShowHeader(report)
	for _, res := range report.Results {
		display.ShowResult(res)
	}
	for _, skip := range report.Skips {
		log.Debugf("skip %s: %s", skip.Expiration.Format("2006-01-02"), skip.Reason)
		display.ShowSkip(skip)
	}

	rows := ledger.FromReport(report, time.Now())
	book := ledger.New(cfg.CSVFile)
	if err := book.Append(rows); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	log.Infof("appended %d rows for %s to %s", len(rows), report.Symbol, book.Path())
	display.ShowSaved(book.Path(), len(rows))

	return nil
}
