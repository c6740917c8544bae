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

	// Table errors
	TableReadError
	TableSchemaError
	TableWriteError
	GroupSplitError

	// Fetch errors
	FetchRequestError
	FetchStatusError
	FetchDecodeError

	// Database errors
	DBOpenError
	DBCreateError
	DBImportError
	DBQueryError
	DBMissingError

	// Reference data errors
	RefReadError
	RefFormatError

	// Output errors
	PlotError
	NothingToPlotError
	XLSXWriteError
)
