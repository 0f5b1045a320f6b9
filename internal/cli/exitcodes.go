package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates a general error occurred.
	// Use for: Database errors, cache errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitGeneral = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, missing positional arguments,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Deal, contact or activity ids that don't exist for the
	// current user.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Invalid JSON input such as a position batch file.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid stages, contact types, negative amounts,
	// or any case where input fails validation rules.
	ExitValidation = 5

	// ExitAuth indicates the caller could not be authenticated.
	// Use for: Missing, expired or rejected session tokens.
	ExitAuth = 6
)
