package log

const (
	ModeDevelopment = "debug"
	ModeProduction  = "release"

	EncodingJSON    = "json"
	EncodingConsole = "console"

	FieldRequestID = "request_id"
)
