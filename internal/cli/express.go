package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cleanbid/internal/scope"
)

func (a *app) newExpressCmd() *cobra.Command {
	var (
		params    scope.ExpressParams
		occupancy int
		template  string
	)

	cmd := &cobra.Command{
		Use:   "express",
		Short: "Generate an area list from a building type and size",
		Long: fmt.Sprintf(`Generate the canonical areas for a building and print them as YAML,
ready to paste under "areas:" in a snapshot.

Building types: %s`, strings.Join(scope.BuildingTypes(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("occupancy") {
				params.Occupancy = &occupancy
			}
			generated, err := scope.ExpressLoad(params)
			if err != nil {
				return err
			}

			areas := scope.Areas(generated)
			if template != "" {
				if areas, err = scope.ApplyServiceTemplate(areas, template); err != nil {
					return err
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(map[string][]scope.Area{"areas": areas}); err != nil {
				return fmt.Errorf("encode areas: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&params.BuildingType, "building-type", "", "building type, e.g. OFFICE")
	cmd.Flags().Float64Var(&params.TotalSqft, "sqft", 0, "total cleanable square footage")
	cmd.Flags().IntVar(&occupancy, "occupancy", 0, "building occupancy, used to size restroom fixtures")
	cmd.Flags().StringVar(&template, "template", "", "service template to attach tasks from")
	_ = cmd.MarkFlagRequired("building-type")
	_ = cmd.MarkFlagRequired("sqft")
	return cmd
}
