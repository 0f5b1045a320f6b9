package activity

import "github.com/thenoetrevino/rolodex/internal/models"

// Activity-related errors
var (
	ErrEmptyBody         = models.ValidationError("body cannot be empty")
	ErrInvalidType       = models.ValidationError("invalid activity type (must be note, call or email)")
	ErrInvalidActivityID = models.ValidationError("invalid activity ID")
	ErrInvalidContactID  = models.ValidationError("invalid contact ID")
)
