package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/internal/logging"
	"github.com/goliatone/go-cardkit/pkg/orchestrator"
	"github.com/goliatone/go-cardkit/pkg/prompt"
	"github.com/goliatone/go-cardkit/pkg/render"
)

// app carries state shared by the subcommands.
type app struct {
	out     io.Writer
	errOut  io.Writer
	logMode string
	logger  *zap.Logger

	newDriver func(out io.Writer) prompt.Driver
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		logger:    zap.NewNop(),
		newDriver: prompt.NewSurveyDriver,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cardkit",
		Short:         "Render and explore identity card and tag badge pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(a.logMode)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.logMode, "log-mode", logging.ModeNop, "logging mode: dev, prod or nop")

	root.AddCommand(
		newRenderCmd(a),
		newWatchCmd(a),
		newPromptCmd(a),
		newHooksCmd(a),
	)
	return root
}

// renderFlags are shared by render and watch.
type renderFlags struct {
	doc      string
	renderer string
	scheme   string
	out      string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.doc, "doc", "", "host document (YAML or JSON)")
	cmd.Flags().StringVar(&f.renderer, "renderer", "html", "renderer: html or terminal")
	cmd.Flags().StringVar(&f.scheme, "scheme", render.ColorSchemeAuto, "color scheme: auto, light or dark")
	cmd.Flags().StringVar(&f.out, "out", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("doc")
}

func (f *renderFlags) request() orchestrator.Request {
	return orchestrator.Request{
		Path:          f.doc,
		Renderer:      f.renderer,
		RenderOptions: render.RenderOptions{ColorScheme: f.scheme},
	}
}

func (a *app) orchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.WithLogger(a.logger))
}

func (a *app) write(path string, data []byte) error {
	if path == "" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("output written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
