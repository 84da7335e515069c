package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBUnknownDriverError
	DBQueryError
	DBScanError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaIndexError
	SchemaCollationError

	// Pipeline errors
	PipelineInvalidError

	// Species errors
	SpeciesNotFoundError
	InvalidInputError
	ServiceUnavailableError

	// Assistant errors
	AssistantUnavailableError

	// HTTP server errors
	ServerListenError
)
