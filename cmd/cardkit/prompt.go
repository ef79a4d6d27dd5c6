package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardkit/pkg/host"
	"github.com/goliatone/go-cardkit/pkg/orchestrator"
	"github.com/goliatone/go-cardkit/pkg/prompt"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/renderers/terminal"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		docPath string
		scheme  string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Compose or load elements and interact with them",
		Long: "Without --doc, asks for an element variant and its attributes. " +
			"Then lets you activate elements, press keys and edit attributes, " +
			"printing every emitted event and re-render.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.prompt(cmd.Context(), docPath, scheme)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "host document to load instead of composing one")
	cmd.Flags().StringVar(&scheme, "scheme", render.ColorSchemeAuto, "color scheme: auto, light or dark")
	return cmd
}

func (a *app) prompt(ctx context.Context, docPath, scheme string) error {
	driver := a.newDriver(a.out)

	var doc host.Document
	if docPath != "" {
		loaded, err := host.LoadFile(docPath)
		if err != nil {
			return err
		}
		doc = loaded
	} else {
		decl, err := prompt.Compose(ctx, driver)
		if err != nil {
			return err
		}
		doc = host.Document{Elements: []host.Declaration{decl}}
	}

	h := host.New(host.WithLogger(a.logger))
	defer h.Close()
	if err := h.Mount(doc); err != nil {
		return err
	}

	orch := a.orchestrator()
	req := orchestrator.Request{
		Renderer:      terminal.Name,
		RenderOptions: render.RenderOptions{ColorScheme: scheme},
	}
	session := prompt.NewSession(h, driver,
		prompt.WithLogger(a.logger),
		prompt.WithOutput(a.out),
		prompt.WithRender(func(ctx context.Context) ([]byte, error) {
			return orch.Render(ctx, h.Snapshot(), req)
		}),
	)
	return session.Run(ctx)
}
