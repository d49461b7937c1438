package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter renders command results as human-readable text or as
// a machine-readable JSON envelope, depending on the global --format
// flag. Diagnostic output goes to ErrWriter so JSON on stdout stays
// parseable.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // falls back to Writer when nil
	Verbose   bool
}

// CLIResponse is the JSON envelope every command emits in JSON mode.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError names the failing subsystem so callers can branch on it.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes for CLIError.Code.
const (
	ErrCodeDefs   = "defs"   // definition set failed to load or validate
	ErrCodeStore  = "store"  // database could not be opened or queried
	ErrCodeScript = "script" // replay script failed to load or execute
	ErrCodeGame   = "game"   // game not found or failed verification
)

// Success renders data in the configured format. In text mode the data
// is printed as-is, so commands pass a preformatted string.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error renders an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a diagnostic line when --verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
