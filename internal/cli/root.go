// Package cli implements the bidcalc command line: one-shot estimates from a
// snapshot file, express loads, and a watch mode that re-prices a snapshot
// every time it is saved.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/config"
	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/logger"
)

type app struct {
	configFile string
	dbPath     string

	cfg  config.Config
	log  *zap.Logger
	calc *estimate.Service
}

// NewRootCmd builds the bidcalc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bidcalc",
		Short: "Price commercial cleaning scopes from the command line",
		Long: `bidcalc turns a scope snapshot (YAML or JSON) into labor hours, crew size,
a cost breakdown and a recommended monthly price.

Snapshots without production rates are priced with the stored rate table
when --db is given, and with the built-in defaults otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "sqlite database to read production rates from")

	root.AddCommand(a.newCalcCmd(), a.newExpressCmd(), a.newWatchCmd())
	return root
}

// Execute runs the command tree until ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) init() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	a.calc = estimate.NewService(cfg.WorkloadPolicy(), cfg.PricingPolicy(), a.log.Named("estimate"))
	return nil
}
