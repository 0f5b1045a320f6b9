package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/rolodex/internal/config"
)

// KeyMap holds the board key bindings built from the configured mappings
type KeyMap struct {
	PrevColumn key.Binding
	NextColumn key.Binding
	PrevDeal   key.Binding
	NextDeal   key.Binding

	PickUp key.Binding
	Drop   key.Binding
	Cancel key.Binding

	ShowDetail key.Binding
	Refresh    key.Binding
	ShowHelp   key.Binding
	Quit       key.Binding
}

// NewKeyMap builds bindings from config. ctrl+c always quits.
func NewKeyMap(km config.KeyMappings) KeyMap {
	bind := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(displayKey(k), desc))
	}

	return KeyMap{
		PrevColumn: bind(km.PrevColumn, "prev stage"),
		NextColumn: bind(km.NextColumn, "next stage"),
		PrevDeal:   bind(km.PrevDeal, "up"),
		NextDeal:   bind(km.NextDeal, "down"),
		PickUp:     bind(km.PickUp, "pick up"),
		Drop:       bind(km.Drop, "drop"),
		Cancel:     bind(km.Cancel, "cancel"),
		ShowDetail: bind(km.ShowDetail, "details"),
		Refresh:    bind(km.Refresh, "refresh"),
		ShowHelp:   bind(km.ShowHelp, "help"),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(displayKey(km.Quit), "quit"),
		),
	}
}

// ShortHelp is shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.ShowHelp, k.Quit}
}

// FullHelp is shown on the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevDeal, k.NextDeal},
		{k.PickUp, k.Drop, k.Cancel},
		{k.ShowDetail, k.Refresh, k.ShowHelp, k.Quit},
	}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
