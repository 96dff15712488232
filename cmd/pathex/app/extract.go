package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/pathex"
)

// Output shapes for the extract command.
const (
	shapeParams = "params"
	shapeRecord = "record"
	shapeTuple  = "tuple"
)

func (c *cli) extractCmd() *cobra.Command {
	var shape string
	cmd := &cobra.Command{
		Use:   "extract <candidate> <pattern>",
		Short: "Match a path against a template and print the parameters as JSON",
		Example: `  pathex extract /dynamic/resource/42/axum /dynamic/resource/{id}/{name}
  pathex extract --shape tuple /X/Y /{b}/{a}`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, pattern := args[0], args[1]
			switch shape {
			case shapeParams:
				ps, err := pathex.ExtractParams(candidate, pattern)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), ps)
			case shapeRecord:
				m, err := pathex.ExtractInto[map[string]any](candidate, pattern)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), m)
			case shapeTuple:
				vals, err := pathex.ExtractInto[[]pathex.Scalar](candidate, pattern)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), vals)
			default:
				return fmt.Errorf("unknown shape %q (want params, record or tuple)", shape)
			}
		},
	}
	cmd.Flags().StringVar(&shape, "shape", shapeParams, "Output shape: params, record or tuple")
	return cmd
}
