package rules

import (
	"errors"
	"fmt"

	"gridgames/game"

	"golang.org/x/exp/slices"
)

var ErrUnknownVariant = errors.New("unknown variant")

var registry = map[string]func() game.Rules{
	"checkers":   func() game.Rules { return NewEnglish() },
	"suicide":    func() game.Rules { return NewSuicide() },
	"dama":       func() game.Rules { return NewDama() },
	"shashki":    func() game.Rules { return NewShashki() },
	"columns":    func() game.Rules { return NewColumns() },
	"kingscourt": func() game.Rules { return NewKingsCourt() },
	"ugolki":     func() game.Rules { return NewUgolki() },
	"chess":      func() game.Rules { return NewChess() },
}

// ByName returns fresh rules for a variant name.
func ByName(name string) (game.Rules, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("rules %q: %w", name, ErrUnknownVariant)
	}
	return build(), nil
}

// Names lists the registered variants in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
