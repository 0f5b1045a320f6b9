package handler

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// ============================================================================
// Test Helpers
// ============================================================================

// createTestCommand creates a cobra.Command with the flags the parser reads
func createTestCommand(t *testing.T, args ...string) *FlagParser {
	t.Helper()
	cmd := &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
	cmd.Flags().String("title", "", "")
	cmd.Flags().String("stage", "", "")
	cmd.Flags().String("close-date", "", "")
	cmd.Flags().Int64("value", 0, "")
	cmd.Flags().Int("years", 0, "")
	cmd.Flags().Int("page", 0, "")
	cmd.Flags().StringSlice("skills", nil, "")
	require.NoError(t, cmd.ParseFlags(args))
	return NewFlagParser(cmd)
}

// ============================================================================
// ParseString Tests
// ============================================================================

func TestParseString(t *testing.T) {
	p := createTestCommand(t, "--title", "  Backend hire ")
	title, err := p.ParseString("title")
	require.NoError(t, err)
	assert.Equal(t, "Backend hire", title)

	p = createTestCommand(t, "--title", "   ")
	_, err = p.ParseString("title")
	var usage *cli.UsageError
	if !errors.As(err, &usage) {
		t.Errorf("Expected usage error for blank title, got %v", err)
	}
}

// ============================================================================
// Optional Number Tests
// ============================================================================

func TestParseOptionalNumbers(t *testing.T) {
	p := createTestCommand(t)
	value, err := p.ParseInt64Optional("value")
	require.NoError(t, err)
	assert.Nil(t, value, "unset flag should be nil")

	years, err := p.ParseIntOptional("years")
	require.NoError(t, err)
	assert.Nil(t, years)

	page, err := p.ParseInt("page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	p = createTestCommand(t, "--value", "0", "--years", "7", "--page", "3")
	value, err = p.ParseInt64Optional("value")
	require.NoError(t, err)
	require.NotNil(t, value, "explicit zero should be kept")
	assert.Equal(t, int64(0), *value)

	years, err = p.ParseIntOptional("years")
	require.NoError(t, err)
	require.NotNil(t, years)
	assert.Equal(t, 7, *years)

	page, err = p.ParseInt("page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
}

// ============================================================================
// Domain Flag Tests
// ============================================================================

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    models.Stage
		wantErr bool
	}{
		{"unset", nil, "", false},
		{"case insensitive", []string{"--stage", "won"}, models.StageWon, false},
		{"unknown", []string{"--stage", "archived"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createTestCommand(t, tt.args...)
			got, err := p.ParseStage("stage")
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	p := createTestCommand(t, "--close-date", "2026-11-30")
	got, err := p.ParseDate("close-date")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-11-30", got.Format(models.DateLayout))

	p = createTestCommand(t, "--close-date", "30/11/2026")
	_, err = p.ParseDate("close-date")
	assert.ErrorIs(t, err, models.ErrValidation)

	p = createTestCommand(t)
	got, err = p.ParseDate("close-date")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseStringSlice(t *testing.T) {
	p := createTestCommand(t, "--skills", "go,sql", "--skills", "k8s")
	assert.Equal(t, []string{"go", "sql", "k8s"}, p.ParseStringSlice("skills"))
}

func TestArgumentsArg(t *testing.T) {
	a := &Arguments{Args: []string{" 3F2504E0-4F89-11D3-9A0C-0305E82C3301 "}}

	got, err := a.Arg(0, "id")
	require.NoError(t, err)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", got)

	_, err = a.Arg(1, "activity-id")
	var usage *cli.UsageError
	require.True(t, errors.As(err, &usage))
	assert.Contains(t, usage.Message, "activity-id")
}
