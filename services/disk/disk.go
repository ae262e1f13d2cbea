package disk

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"deliverylens/filestore"

	log "github.com/sirupsen/logrus"
)

var _ filestore.FileManager = (*DiskDriver)(nil)

// DiskDriver serves export files from a local directory. baseDir acts as the
// namespace all paths are resolved against.
type DiskDriver struct {
	baseDir string
}

func New(baseDir string) *DiskDriver {
	return &DiskDriver{baseDir: baseDir}
}

// Get opens a file in read only mode.
// Caller should take care of closing the returned io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	log.WithFields(log.Fields{
		"Path":     path,
		"FileName": fileName,
	}).Debug("DiskDriver opening file")

	return os.OpenFile(filepath.Join(dd.baseDir, path, fileName), os.O_RDONLY, 0444)
}

// ListFiles lists file names directly under path, sorted for deterministic
// load order.
func (dd *DiskDriver) ListFiles(path string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dd.baseDir, path))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
