package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a host document once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := a.orchestrator().Generate(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			return a.write(flags.out, output)
		},
	}
	flags.bind(cmd)
	return cmd
}
