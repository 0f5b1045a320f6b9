package theme

// Colors of the board. The palette matches the CLI card styles.
var (
	Highlight      = "#7D56F4"
	Subtle         = "#6B7280"
	Normal         = "#E5E7EB"
	SelectedBorder = "#A78BFA"
	SelectedBg     = "#3B3355"
	CardBg         = "#1F2330"
	LiftedBg       = "#4C1D95"
	InfoFg         = "#E5E7EB"
	InfoBg         = "#1E3A8A"
	WarningFg      = "#1F2937"
	WarningBg      = "#F59E0B"
	ErrorFg        = "#FFFFFF"
	ErrorBg        = "#B91C1C"
)
