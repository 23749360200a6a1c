package cli

import (
	"encoding/json"
	"fmt"
)

// Error codes for structured error responses
const (
	ErrCodeRecordNotFound  = "RECORD_NOT_FOUND"
	ErrCodeConfigNotFound  = "CONFIG_NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeViewUnavailable = "VIEW_UNAVAILABLE"
)

// JSONError represents a structured error response for --json output
type JSONError struct {
	Error   bool                   `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ExitWithError outputs an error message and exits.
// If --json flag is set, outputs structured JSON error to stdout.
// Otherwise outputs plain text to stderr.
func ExitWithError(code int, errCode, message string, details map[string]interface{}) {
	if GetJSONOutput() {
		errResp := JSONError{
			Error:   true,
			Code:    errCode,
			Message: message,
			Details: details,
		}
		data, _ := json.Marshal(errResp)
		fmt.Fprintln(rootCmd.OutOrStdout(), string(data))
	} else {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", message)
	}
	Exit(code)
}

// ExitRecordNotFound outputs a record not found error
func ExitRecordNotFound(recordID string) {
	ExitWithError(1, ErrCodeRecordNotFound,
		fmt.Sprintf("record '%s' not found", recordID),
		map[string]interface{}{"record_id": recordID})
}

// ExitConfigNotFound outputs a view config not found error
func ExitConfigNotFound(configID string) {
	ExitWithError(1, ErrCodeConfigNotFound,
		fmt.Sprintf("view config '%s' not found", configID),
		map[string]interface{}{"config_id": configID})
}

// ExitValidationError outputs a validation error
func ExitValidationError(message string, details map[string]interface{}) {
	ExitWithError(2, ErrCodeValidation, message, details)
}

// ExitViewUnavailable outputs an error for a view the table cannot use
func ExitViewUnavailable(table, view, reason, suggestion string) {
	ExitWithError(3, ErrCodeViewUnavailable,
		fmt.Sprintf("%s view is not available for %s: %s", view, table, reason),
		map[string]interface{}{"table": table, "view": view, "suggestion": suggestion})
}
