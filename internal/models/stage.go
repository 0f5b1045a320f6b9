package models

import (
	"fmt"
	"strings"
)

// Stage is one of the five fixed pipeline phases a deal occupies
type Stage string

const (
	StageLead      Stage = "Lead"
	StageQualified Stage = "Qualified"
	StageProposal  Stage = "Proposal"
	StageWon       Stage = "Won"
	StageLost      Stage = "Lost"
)

// Stages lists the pipeline in board order (left to right)
var Stages = []Stage{StageLead, StageQualified, StageProposal, StageWon, StageLost}

// Valid reports whether s is one of the fixed stages
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Index returns the board column of the stage, or -1 if unknown
func (s Stage) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsOpen reports whether deals in this stage still count towards the pipeline
func (s Stage) IsOpen() bool {
	return s != StageWon && s != StageLost
}

// ParseStage maps a case-insensitive name to its Stage
func ParseStage(name string) (Stage, error) {
	for _, stage := range Stages {
		if strings.EqualFold(string(stage), strings.TrimSpace(name)) {
			return stage, nil
		}
	}
	return "", fmt.Errorf("%w: unknown stage %q (must be one of: %s)", ErrValidation, name, StageNames())
}

// StageNames returns the stage list formatted for messages
func StageNames() string {
	names := make([]string, len(Stages))
	for i, stage := range Stages {
		names[i] = string(stage)
	}
	return strings.Join(names, ", ")
}
