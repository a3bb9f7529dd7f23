package errors

// ErrorCode identifies a class of application error.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND

	// Precondition errors: the request is rejected before any pipeline work.
	ErrorCode_FILE_MISSING
	ErrorCode_FILE_EMPTY
	ErrorCode_FILE_TOO_LARGE
	ErrorCode_AUDIO_TOO_LONG
	ErrorCode_UNSUPPORTED_FORMAT
	ErrorCode_SERVICE_MISCONFIGURED

	// Integration errors: external collaborators outside the pipeline core.
	ErrorCode_STORAGE_FAILED
	ErrorCode_CACHE_FAILED
	ErrorCode_SESSION_NOT_FOUND

	// Auth errors.
	ErrorCode_UNAUTHENTICATED
	ErrorCode_AUTH_INVALID_TOKEN
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:               "UNKNOWN",
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_FILE_MISSING:          "FILE_MISSING",
	ErrorCode_FILE_EMPTY:            "FILE_EMPTY",
	ErrorCode_FILE_TOO_LARGE:        "FILE_TOO_LARGE",
	ErrorCode_AUDIO_TOO_LONG:        "AUDIO_TOO_LONG",
	ErrorCode_UNSUPPORTED_FORMAT:    "UNSUPPORTED_FORMAT",
	ErrorCode_SERVICE_MISCONFIGURED: "SERVICE_MISCONFIGURED",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
	ErrorCode_CACHE_FAILED:          "CACHE_FAILED",
	ErrorCode_SESSION_NOT_FOUND:     "SESSION_NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:       "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:    "AUTH_INVALID_TOKEN",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
