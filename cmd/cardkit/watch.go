package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/host"
	"github.com/goliatone/go-cardkit/pkg/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags    renderFlags
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a host document whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.watch(cmd.Context(), flags, debounce)
		},
	}
	flags.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")
	return cmd
}

func (a *app) watch(ctx context.Context, flags renderFlags, debounce time.Duration) error {
	doc, err := host.LoadFile(flags.doc)
	if err != nil {
		return err
	}
	h := host.New(host.WithLogger(a.logger))
	defer h.Close()
	if err := h.Mount(doc); err != nil {
		return err
	}
	h.Flush()

	orch := a.orchestrator()
	req := flags.request()
	emit := func(snapshot host.Snapshot) error {
		output, err := orch.Render(ctx, snapshot, req)
		if err != nil {
			return err
		}
		return a.write(flags.out, output)
	}
	if err := emit(h.Snapshot()); err != nil {
		return err
	}

	w, err := watch.New(flags.doc, h,
		watch.WithLogger(a.logger),
		watch.WithDebounce(debounce),
		watch.OnChange(func(snapshot host.Snapshot) {
			if err := emit(snapshot); err != nil {
				a.logger.Error("render after reload failed", zap.Error(err))
			}
		}),
		watch.OnError(func(err error) {
			a.logger.Error("reload failed", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}
