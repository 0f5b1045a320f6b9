package config

// KeyMappings defines all configurable key bindings of the board
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevDeal   string `yaml:"prev_deal"`
	NextDeal   string `yaml:"next_deal"`

	// Drag and drop
	PickUp string `yaml:"pick_up"`
	Drop   string `yaml:"drop"`
	Cancel string `yaml:"cancel"`

	// Other
	ShowDetail string `yaml:"show_detail"`
	Refresh    string `yaml:"refresh"`
	ShowHelp   string `yaml:"show_help"`
	Quit       string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevDeal:   "k",
		NextDeal:   "j",

		PickUp: " ",
		Drop:   "enter",
		Cancel: "esc",

		ShowDetail: "i",
		Refresh:    "r",
		ShowHelp:   "?",
		Quit:       "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevDeal == "" {
		k.PrevDeal = defaults.PrevDeal
	}
	if k.NextDeal == "" {
		k.NextDeal = defaults.NextDeal
	}
	if k.PickUp == "" {
		k.PickUp = defaults.PickUp
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.ShowDetail == "" {
		k.ShowDetail = defaults.ShowDetail
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
