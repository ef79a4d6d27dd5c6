package prompt

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-cardkit/pkg/element"
	"github.com/goliatone/go-cardkit/pkg/host"
)

// Compose asks for an element variant and its attributes and returns the
// resulting declaration.
func Compose(ctx context.Context, driver Driver) (host.Declaration, error) {
	variants := []string{element.TagIdentityCard, element.TagTagBadge}
	choice, err := driver.Select(ctx, SelectConfig{
		Message: "Element",
		Options: variants,
	})
	if err != nil {
		return host.Declaration{}, err
	}
	if choice < 0 || choice >= len(variants) {
		return host.Declaration{}, fmt.Errorf("prompt: invalid element choice %d", choice)
	}

	decl := host.Declaration{Tag: variants[choice], Attributes: map[string]string{}}
	if decl.Tag == element.TagIdentityCard {
		err = composeCard(ctx, driver, &decl)
	} else {
		err = composeBadge(ctx, driver, &decl)
	}
	if err != nil {
		return host.Declaration{}, err
	}

	interactive, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Interactive?",
		Help:    "Interactive elements are focusable and emit activation events",
	})
	if err != nil {
		return host.Declaration{}, err
	}
	decl.Attributes[element.AttrInteractive] = strconv.FormatBool(interactive)
	return decl, nil
}

func composeCard(ctx context.Context, driver Driver, decl *host.Declaration) error {
	fields := []InputConfig{
		{Message: "Name", Validator: required("name")},
		{Message: "Title"},
		{Message: "Avatar URL", Help: "Leave empty to render without an image"},
		{Message: "Content", Help: "Optional HTML shown inside the card"},
	}
	values := make([]string, len(fields))
	for idx, field := range fields {
		value, err := driver.Input(ctx, field)
		if err != nil {
			return err
		}
		values[idx] = value
	}
	decl.Attributes[element.AttrIdentifierText] = values[0]
	decl.Attributes[element.AttrSecondaryText] = values[1]
	decl.Attributes[element.AttrMediaReference] = values[2]
	decl.Content = values[3]
	return nil
}

func composeBadge(ctx context.Context, driver Driver, decl *host.Declaration) error {
	label, err := driver.Input(ctx, InputConfig{Message: "Label", Validator: required("label")})
	if err != nil {
		return err
	}

	levels := element.Levels()
	options := make([]string, 0, len(levels))
	defaultIndex := 0
	for idx, level := range levels {
		options = append(options, level.String())
		if level == element.DefaultLevel {
			defaultIndex = idx
		}
	}
	choice, err := driver.Select(ctx, SelectConfig{
		Message:      "Level",
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}

	decl.Attributes[element.AttrLabelText] = label
	if choice >= 0 && choice < len(options) {
		decl.Attributes[element.AttrLevel] = options[choice]
	}
	return nil
}

func required(field string) func(string) error {
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
