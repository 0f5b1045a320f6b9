package models

import (
	"errors"
	"fmt"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestValidationError_WrapsCategory(t *testing.T) {
	err := ValidationError("name cannot be empty")

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError should not match ErrNotFound")
	}
	if err.Error() != "name cannot be empty" {
		t.Errorf("Expected message 'name cannot be empty', got '%s'", err.Error())
	}

	wrapped := fmt.Errorf("failed to create: %w", err)
	if !errors.Is(wrapped, err) {
		t.Error("wrapped error should still match the sentinel")
	}
}

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrUnauthenticated, ErrNotFound) {
		t.Error("ErrUnauthenticated should not equal ErrNotFound")
	}
	if errors.Is(ErrValidation, ErrNotFound) {
		t.Error("ErrValidation should not equal ErrNotFound")
	}
}

// ============================================================================
// Stage Tests
// ============================================================================

func TestStage_Index(t *testing.T) {
	tests := []struct {
		stage Stage
		want  int
	}{
		{StageLead, 0},
		{StageQualified, 1},
		{StageProposal, 2},
		{StageWon, 3},
		{StageLost, 4},
		{Stage("Archived"), -1},
		{Stage(""), -1},
	}

	for _, tt := range tests {
		if got := tt.stage.Index(); got != tt.want {
			t.Errorf("Stage(%q).Index() = %d, want %d", tt.stage, got, tt.want)
		}
		if got := tt.stage.Valid(); got != (tt.want >= 0) {
			t.Errorf("Stage(%q).Valid() = %v", tt.stage, got)
		}
	}
}

func TestStage_IsOpen(t *testing.T) {
	open := map[Stage]bool{
		StageLead:      true,
		StageQualified: true,
		StageProposal:  true,
		StageWon:       false,
		StageLost:      false,
	}
	for stage, want := range open {
		if stage.IsOpen() != want {
			t.Errorf("Stage(%q).IsOpen() = %v, want %v", stage, !want, want)
		}
	}
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage("  qualified ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stage != StageQualified {
		t.Errorf("Expected Qualified, got %s", stage)
	}

	_, err = ParseStage("archived")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

// ============================================================================
// Enum Tests
// ============================================================================

func TestContactType_Valid(t *testing.T) {
	if !ContactCandidate.Valid() || !ContactClient.Valid() {
		t.Error("candidate and client should be valid")
	}
	if ContactType("vendor").Valid() {
		t.Error("vendor should not be valid")
	}
}

func TestActivityType_Valid(t *testing.T) {
	for _, typ := range []ActivityType{ActivityNote, ActivityCall, ActivityEmail} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if ActivityType("meeting").Valid() {
		t.Error("meeting should not be valid")
	}
}
