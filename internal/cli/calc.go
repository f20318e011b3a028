package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/scope"
)

func (a *app) newCalcCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "calc <snapshot>",
		Short: "Estimate a scope snapshot",
		Long: `Validate a scope snapshot and print its estimate.

Examples:
  # Plain-text price explanation
  bidcalc calc tower.yaml

  # Full estimate as JSON
  bidcalc calc tower.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			snap, err = a.withRates(cmd.Context(), snap)
			if err != nil {
				return err
			}
			if err := scope.Validate(snap); err != nil {
				return fmt.Errorf("invalid snapshot: %w", err)
			}

			est, err := a.calc.Estimate(snap)
			if err != nil {
				return err
			}
			return writeEstimate(cmd, est, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}

func writeEstimate(cmd *cobra.Command, est estimate.Estimate, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(est)
	case "text", "":
		_, err := fmt.Fprint(out, estimate.Summary(est))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
