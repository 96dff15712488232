package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/pathex"
)

type resolveOutput struct {
	Template string              `json:"template"`
	URI      string              `json:"uriTemplate"`
	Params   pathex.ParameterSet `json:"params"`
}

func (c *cli) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <uri>",
		Short: "Find the first template matching a URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}
			m, err := set.Resolve(args[0])
			if err != nil {
				c.logger.Info("no template matched", zap.String("uri", args[0]))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resolveOutput{
				Template: m.Template.Name,
				URI:      m.Template.URITemplate,
				Params:   m.Params,
			})
		},
	}
}
