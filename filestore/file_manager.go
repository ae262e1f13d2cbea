package filestore

import (
	"io"
)

// FileManager abstracts where the weekly export files live. The pipeline
// consumes a set of tabular files with the agreed schema and never the
// retrieval mechanism.
type FileManager interface {
	// Get opens the named file under path in read-only mode. Caller closes
	// the returned io.ReadCloser.
	Get(path, fileName string) (io.ReadCloser, error)
	// ListFiles returns the file names directly under path, sorted.
	ListFiles(path string) ([]string, error)
}
