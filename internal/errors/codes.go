package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrTimeout         ErrorCode = "operation_timeout"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig      ErrorCode = "invalid_configuration"
	ErrBindFlags          ErrorCode = "bind_flags_failed"
	ErrReadConfig         ErrorCode = "read_config_failed"
	ErrInvalidInterval    ErrorCode = "invalid_interval"
	ErrInvalidRegion      ErrorCode = "invalid_region"
	ErrMissingCredentials ErrorCode = "missing_credentials"
	ErrNoCharacters       ErrorCode = "no_characters_configured"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp  ErrorCode = "init_app_failed"
	ErrMainLoop ErrorCode = "main_loop_failed"

	// Battle.net API errors
	ErrAuthFailure       ErrorCode = "auth_failure"
	ErrRequestFailed     ErrorCode = "request_failed"
	ErrThrottled         ErrorCode = "request_throttled"
	ErrDecodeFailed      ErrorCode = "decode_response_failed"
	ErrCannotConnect     ErrorCode = "cannot_connect"
	ErrCharacterNotFound ErrorCode = "character_not_found"

	// Poll cycle errors
	ErrCycleFailed ErrorCode = "poll_cycle_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:           "Internal error occurred",
	ErrInvalidArgument:    "Invalid argument provided",
	ErrTimeout:            "Operation timed out",
	ErrAlreadyRunning:     "Another instance is already running",
	ErrInvalidConfig:      "Invalid configuration",
	ErrBindFlags:          "Failed to bind flags",
	ErrReadConfig:         "Failed to read config file",
	ErrInvalidInterval:    "Invalid polling interval",
	ErrInvalidRegion:      "Unknown API region",
	ErrMissingCredentials: "API client id and secret are required",
	ErrNoCharacters:       "No characters configured",
	ErrInvalidLogLevel:    "Invalid log level",
	ErrInitFailed:         "Initialization failed",
	ErrShutdownFailed:     "Shutdown failed",
	ErrInitApp:            "Failed to initialize application",
	ErrMainLoop:           "Error in main loop",
	ErrAuthFailure:        "Failed to obtain access token",
	ErrRequestFailed:      "API request failed",
	ErrThrottled:          "API request throttled",
	ErrDecodeFailed:       "Failed to decode API response",
	ErrCannotConnect:      "Cannot connect to the API",
	ErrCharacterNotFound:  "Character not found",
	ErrCycleFailed:        "Poll cycle failed",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
