package contact

import (
	"fmt"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Contact-related errors
var (
	// Validation errors
	ErrEmptyName           = models.ValidationError("name cannot be empty")
	ErrNameTooLong         = models.ValidationError(fmt.Sprintf("name cannot exceed %d characters", models.MaxTitleLength))
	ErrInvalidType         = models.ValidationError("invalid contact type (must be candidate or client)")
	ErrInvalidEmail        = models.ValidationError("invalid email address")
	ErrInvalidContactID    = models.ValidationError("invalid contact ID")
	ErrNegativeNumber      = models.ValidationError("numeric fields cannot be negative")
	ErrBudgetRange         = models.ValidationError("salary budget minimum cannot exceed the maximum")
	ErrInvalidRemote       = models.ValidationError("invalid remote preference (must be remote, hybrid, onsite or flexible)")
	ErrInvalidAvailability = models.ValidationError("invalid availability (must be actively_looking, open or not_looking)")
	ErrInvalidPage         = models.ValidationError("page must be at least 1")
	ErrPageTooLarge        = models.ValidationError(fmt.Sprintf("page cannot exceed %d", models.MaxPage))
)
