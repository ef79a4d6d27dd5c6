package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardkit/pkg/styles"
)

type hookRow struct {
	Name        string `json:"name"`
	Light       string `json:"light"`
	Dark        string `json:"dark"`
	Description string `json:"description"`
}

func newHooksCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List the documented style hooks and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooks := styles.Hooks()
			switch format {
			case "json":
				rows := make([]hookRow, 0, len(hooks))
				for _, hook := range hooks {
					rows = append(rows, hookRow{
						Name:        hook.Name,
						Light:       hook.Light,
						Dark:        hook.Dark,
						Description: hook.Description,
					})
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "table", "":
				t := table.New().
					Border(lipgloss.RoundedBorder()).
					Headers("HOOK", "LIGHT", "DARK", "DESCRIPTION")
				for _, hook := range hooks {
					t.Row(hook.Name, hook.Light, hook.Dark, hook.Description)
				}
				_, err := fmt.Fprintln(a.out, t.Render())
				return err
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}
