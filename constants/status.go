package constants

// FileStatus is the per-document outcome of a batch run.
type FileStatus string

// Stable values (these exact strings are logged and shown on the form page).
const (
	FileStatusOK     FileStatus = "OK"     // record produced
	FileStatusEmpty  FileStatus = "EMPTY"  // document yielded no text
	FileStatusFailed FileStatus = "FAILED" // text extraction or model call failed
)
