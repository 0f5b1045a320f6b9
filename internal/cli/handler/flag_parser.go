package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/types"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// Changed reports whether the user set the flag
func (p *FlagParser) Changed(flagName string) bool {
	return p.cmd.Flags().Changed(flagName)
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", cli.Usagef("--%s is required", flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) string {
	value, _ := p.cmd.Flags().GetString(flagName)
	return value
}

// ParseStringSlice extracts a repeatable or comma separated flag
func (p *FlagParser) ParseStringSlice(flagName string) []string {
	value, _ := p.cmd.Flags().GetStringSlice(flagName)
	return value
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) bool {
	value, _ := p.cmd.Flags().GetBool(flagName)
	return value
}

// ParseInt extracts an int flag, returning fallback when unset
func (p *FlagParser) ParseInt(flagName string, fallback int) (int, error) {
	if !p.Changed(flagName) {
		return fallback, nil
	}
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// ParseIntOptional extracts an int flag, nil when unset
func (p *FlagParser) ParseIntOptional(flagName string) (*int, error) {
	if !p.Changed(flagName) {
		return nil, nil
	}
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return &value, nil
}

// ParseInt64Optional extracts an int64 flag, nil when unset
func (p *FlagParser) ParseInt64Optional(flagName string) (*int64, error) {
	if !p.Changed(flagName) {
		return nil, nil
	}
	value, err := p.cmd.Flags().GetInt64(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return &value, nil
}

// ParseStage extracts a stage flag. An unset flag yields the empty stage.
func (p *FlagParser) ParseStage(flagName string) (models.Stage, error) {
	raw := p.ParseStringOptional(flagName)
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParseStage(raw)
}

// ParseDate extracts a YYYY-MM-DD flag, nil when unset
func (p *FlagParser) ParseDate(flagName string) (*time.Time, error) {
	raw := strings.TrimSpace(p.ParseStringOptional(flagName))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, models.ValidationError(fmt.Sprintf("--%s must be formatted as YYYY-MM-DD, got %q", flagName, raw))
	}
	return &t, nil
}

// Arg returns positional id argument i normalized for lookup, or a usage
// error naming what is missing
func (a *Arguments) Arg(i int, name string) (string, error) {
	if i >= len(a.Args) || strings.TrimSpace(a.Args[i]) == "" {
		return "", cli.Usagef("missing <%s> argument", name)
	}
	return types.NormalizeID(a.Args[i]), nil
}
