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

	// Configuration errors
	ConfigUnknownDriverError
	ConfigUnknownEngineError

	// Database errors
	DBConnectionError
	DBCreateTableError
	DBDropTableError
	DBInsertError
	DBSelectError
	DBCloseError

	// eBird errors
	EBirdNoAPIKeyError
	EBirdConnectionError
	EBirdDecodeError

	// Taxonomy errors
	TaxonMalformedError
	TaxonNoFormsError

	// Import errors
	ImportReplaceError
	ImportSubspeciesError
)
