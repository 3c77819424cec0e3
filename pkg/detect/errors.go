package detect

import "fmt"

// Code identifies a detection failure class. Codes are stable across
// releases; messages are for humans and may change.
type Code string

const (
	CodeInvalidFunctionGlob     Code = "invalid_function_glob"
	CodeInvalidFunction         Code = "invalid_function"
	CodeInvalidFunctionDuration Code = "invalid_function_duration"
	CodeInvalidFunctionMemory   Code = "invalid_function_memory"
	CodeInvalidFunctionSource   Code = "invalid_function_source"
	CodeInvalidFunctionRuntime  Code = "invalid_function_runtime"
	CodeInvalidFunctionProperty Code = "invalid_function_property"
	CodeMissingBuildScript      Code = "missing_build_script"
	CodeUnusedFunction          Code = "unused_function"
	CodeConflictingPathSegment  Code = "conflicting_path_segment"
	CodeConflictingFilePath     Code = "conflicting_file_path"
	CodeConflictingFiles        Code = "conflicting_files"
)

// Error is a coded detection error. The first fatal error aborts the whole
// detection run; warnings reuse the same shape on a successful result.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
