// Package antialias selects the active anti-aliasing strategy of a post-processing composer.
// A Registry describes how each strategy maps onto the composer (a pre-built pass, a
// multisampling level, or nothing) and a Controller owns the single active strategy and keeps
// the composer's pass list in sync with it.
package antialias

import (
	"fmt"
	"strings"
)

// Strategy identifies one of the fixed anti-aliasing strategies.
type Strategy int

const (
	// TRAA is temporal reprojection anti-aliasing, applied as a discrete pass. It is the default strategy.
	TRAA Strategy = iota

	// NativeAA bypasses the composer and renders through the renderer's own multisample path.
	NativeAA

	// MSAA uses the composer's pipeline-level multisampling.
	MSAA

	// FXAA is fast approximate anti-aliasing, applied as a discrete pass.
	FXAA

	// SMAA is subpixel morphological anti-aliasing, applied as a discrete pass.
	SMAA

	// Disabled installs no pass and no multisampling.
	Disabled

	strategyCount
)

var strategyNames = [...]string{
	TRAA:     "TRAA",
	NativeAA: "NativeAA",
	MSAA:     "MSAA",
	FXAA:     "FXAA",
	SMAA:     "SMAA",
	Disabled: "Disabled",
}

var strategyLabels = [...]string{
	TRAA:     "TRAA",
	NativeAA: "Native AA",
	MSAA:     "MSAA",
	FXAA:     "FXAA",
	SMAA:     "SMAA",
	Disabled: "Disabled",
}

// Adding a Strategy without extending the tables above fails to compile here.
var (
	_ = [1]struct{}{}[len(strategyNames)-int(strategyCount)]
	_ = [1]struct{}{}[len(strategyLabels)-int(strategyCount)]
)

// strategyAliases are extra accepted spellings, keyed in lower case.
var strategyAliases = map[string]Strategy{
	"three.js aa": NativeAA,
	"native":      NativeAA,
	"none":        Disabled,
	"off":         Disabled,
}

// Strategies returns every strategy in declaration order.
//
// Returns:
//   - []Strategy: all strategies
func Strategies() []Strategy {
	all := make([]Strategy, 0, strategyCount)
	for s := Strategy(0); s < strategyCount; s++ {
		all = append(all, s)
	}
	return all
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= 0 && s < strategyCount
}

// String returns the canonical name of the strategy, e.g. "NativeAA".
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Label returns the default human-readable label of the strategy, e.g. "Native AA".
func (s Strategy) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return strategyLabels[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseStrategy.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy resolves a strategy from its canonical name, its label or a known alias.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Parameters:
//   - name: the strategy name to resolve
//
// Returns:
//   - Strategy: the resolved strategy
//   - error: ErrUnknownStrategy (wrapped) if the name does not resolve
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for s := Strategy(0); s < strategyCount; s++ {
		if key == strings.ToLower(strategyNames[s]) || key == strings.ToLower(strategyLabels[s]) {
			return s, nil
		}
	}
	if s, ok := strategyAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Direction selects the way Controller.Cycle moves through the navigation order.
type Direction int

const (
	// Forward moves to the next strategy, wrapping from the last to the first.
	Forward Direction = iota

	// Backward moves to the previous strategy, wrapping from the first to the last.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
