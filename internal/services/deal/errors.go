package deal

import (
	"fmt"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Deal-related errors
var (
	// Validation errors
	ErrEmptyTitle       = models.ValidationError("title cannot be empty")
	ErrTitleTooLong     = models.ValidationError(fmt.Sprintf("title cannot exceed %d characters", models.MaxTitleLength))
	ErrInvalidStage     = models.ValidationError("invalid stage (must be one of: " + models.StageNames() + ")")
	ErrNegativeValue    = models.ValidationError("value cannot be negative")
	ErrInvalidDealID    = models.ValidationError("invalid deal ID")
	ErrInvalidContactID = models.ValidationError("invalid contact ID")
	ErrInvalidPosition  = models.ValidationError("position cannot be negative")

	// Business logic errors
	ErrContactNotFound = models.ValidationError("linked contact not found")
)
