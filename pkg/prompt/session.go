// Package prompt drives a mounted host from an interactive terminal: pick an
// element, activate it, press keys on it or edit its attributes, and watch
// the events and re-renders that follow.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/host"
)

const (
	actionActivate = "Activate"
	actionKey      = "Press a key"
	actionEdit     = "Set an attribute"
	actionBack     = "Back"

	choiceDone = "Done"
)

// RenderFunc produces the current page output, e.g. terminal text.
type RenderFunc func(ctx context.Context) ([]byte, error)

// Session is an interactive loop over a host.
type Session struct {
	host   *host.Host
	driver Driver
	out    io.Writer
	render RenderFunc
	logger *zap.Logger
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithRender prints the page after every mutation and on exit.
func WithRender(fn RenderFunc) SessionOption {
	return func(s *Session) {
		s.render = fn
	}
}

// WithOutput sets where rendered pages are written. Defaults to io.Discard.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger injects a zap logger.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession binds a driver to a host.
func NewSession(h *host.Host, driver Driver, options ...SessionOption) *Session {
	s := &Session{
		host:   h,
		driver: driver,
		out:    io.Discard,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run loops until the user picks Done. Aborting a prompt ends the session
// with ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if s.host == nil || s.driver == nil {
		return fmt.Errorf("prompt: session requires a host and a driver")
	}
	if len(s.host.Elements()) == 0 {
		return ErrNoElements
	}

	s.host.Flush()
	detach := s.listen(ctx)
	defer detach()

	if err := s.show(ctx); err != nil {
		return err
	}

	for {
		elements := s.host.Elements()
		options := make([]string, 0, len(elements)+1)
		for idx, el := range elements {
			options = append(options, describe(idx, el))
		}
		options = append(options, choiceDone)

		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: "Choose an element",
			Options: options,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(elements) {
			return s.finish(ctx)
		}
		if err := s.element(ctx, choice); err != nil {
			return err
		}
	}
}

func (s *Session) element(ctx context.Context, index int) error {
	for {
		action, err := s.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Element %d", index),
			Options: []string{actionActivate, actionKey, actionEdit, actionBack},
		})
		if err != nil {
			return err
		}

		switch action {
		case 0:
			if err := s.host.Activate(index); err != nil {
				return err
			}
		case 1:
			if err := s.key(ctx, index); err != nil {
				return err
			}
		case 2:
			if err := s.edit(ctx, index); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *Session) key(ctx context.Context, index int) error {
	raw, err := s.driver.Input(ctx, InputConfig{
		Message: "Key",
		Help:    `Activation keys are "enter" and "space"`,
		Default: "enter",
	})
	if err != nil {
		return err
	}
	key := element.NormalizeKey(raw)
	prevented, err := s.host.Key(index, key)
	if err != nil {
		return err
	}
	s.logger.Debug("key handled",
		zap.Int("index", index),
		zap.String("key", string(key)),
		zap.Bool("prevented", prevented),
	)
	if prevented {
		return s.driver.Info(ctx, "default action prevented")
	}
	return s.driver.Info(ctx, "key ignored")
}

func (s *Session) edit(ctx context.Context, index int) error {
	el, err := s.host.Element(index)
	if err != nil {
		return err
	}
	attrs := el.Attributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	choice, err := s.driver.Select(ctx, SelectConfig{
		Message: "Attribute",
		Options: names,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(names) {
		return nil
	}
	name := names[choice]

	value, err := s.driver.Input(ctx, InputConfig{
		Message: name,
		Default: attrs[name],
	})
	if err != nil {
		return err
	}
	if _, err := s.host.SetAttribute(index, name, value); err != nil {
		return err
	}
	if flushed := s.host.Flush(); flushed > 0 {
		return s.show(ctx)
	}
	return nil
}

func (s *Session) finish(ctx context.Context) error {
	if s.render == nil {
		return nil
	}
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Print the final page?",
		Default: true,
	})
	if err != nil || !ok {
		return err
	}
	return s.show(ctx)
}

func (s *Session) show(ctx context.Context) error {
	if s.render == nil {
		return nil
	}
	out, err := s.render(ctx)
	if err != nil {
		return fmt.Errorf("prompt: render: %w", err)
	}
	_, err = s.out.Write(out)
	return err
}

// listen reports every activation event reaching the host.
func (s *Session) listen(ctx context.Context) func() {
	report := func(evt element.Event) {
		if err := s.driver.Info(ctx, FormatEvent(evt)); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("event report failed", zap.Error(err))
		}
	}
	detachCard := s.host.On(element.EventIdentityCardActivation, report)
	detachTag := s.host.On(element.EventTagActivation, report)
	return func() {
		detachCard()
		detachTag()
	}
}

// FormatEvent renders an event as a single line with its payload keys sorted.
func FormatEvent(evt element.Event) string {
	keys := make([]string, 0, len(evt.Payload))
	for key := range evt.Payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", key, evt.Payload[key]))
	}
	return fmt.Sprintf("%s from %s {%s}", evt.Type, evt.Target, strings.Join(parts, " "))
}

func describe(index int, el element.Element) string {
	attrs := el.Attributes()
	label := attrs[element.AttrIdentifierText]
	if el.TagName() == element.TagTagBadge {
		label = attrs[element.AttrLabelText]
	}
	return fmt.Sprintf("%d. %s %q", index, el.TagName(), label)
}
