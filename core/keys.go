package core

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ActionQuit      = "quit"
	ActionNext      = "next"
	ActionBack      = "back"
	ActionFocusNext = "focus-next"
	ActionFocusPrev = "focus-prev"
	ActionSelect    = "select"
	ActionIncrease  = "increase"
	ActionDecrease  = "decrease"
)

const (
	ScopeForm = "form"
	ScopeRing = "ring"
	ScopeDial = "dial"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// Binding is the bubbles form of b. The first key doubles as its help label.
func (b KeyBinding) Binding() key.Binding {
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		if k = normalizeKey(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], b.Description))
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// ActionFor returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) ActionFor(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) && key.Matches(msg, b.Binding()) {
			return b.Action
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: ActionQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: ActionQuit, Description: "quit", Scopes: []string{ScopeRing, ScopeDial}},
		{Keys: []string{"ctrl+n"}, Action: ActionNext, Description: "next", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: ActionNext, Description: "next", Scopes: []string{ScopeRing, ScopeDial}},
		{Keys: []string{"ctrl+b"}, Action: ActionBack, Description: "back", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: ActionBack, Description: "back", Scopes: []string{ScopeRing, ScopeDial}},
		{Keys: []string{"right", "l"}, Action: ActionIncrease, Description: "turn", Scopes: []string{ScopeRing, ScopeDial}},
		{Keys: []string{"left", "h"}, Action: ActionDecrease, Description: "turn back", Scopes: []string{ScopeRing, ScopeDial}},
		{Keys: []string{"tab"}, Action: ActionFocusNext, Description: "next field", Scopes: []string{"*"}},
		{Keys: []string{"shift+tab"}, Action: ActionFocusPrev, Description: "prev field", Scopes: []string{"*"}},
		{Keys: []string{"down"}, Action: ActionFocusNext, Description: "next field", Scopes: []string{ScopeForm}},
		{Keys: []string{"up"}, Action: ActionFocusPrev, Description: "prev field", Scopes: []string{ScopeForm}},
		{Keys: []string{"enter"}, Action: ActionSelect, Description: "confirm field", Scopes: []string{ScopeForm}},
	}
}

// ApplyActionKeybindings replaces the keys of every binding whose action is
// overridden in actionKeys.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
