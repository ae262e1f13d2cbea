package ziparchive

import (
	"archive/zip"
	"io"
	"path"
	"sort"

	"deliverylens/filestore"

	"github.com/pkg/errors"
)

var _ filestore.FileManager = (*ZipDriver)(nil)

// ZipDriver serves export files straight out of the downloaded .zip archive,
// so the weekly CSVs never need to be unpacked to disk.
type ZipDriver struct {
	archive *zip.ReadCloser
}

func Open(archivePath string) (*ZipDriver, error) {
	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open export archive %s", archivePath)
	}
	return &ZipDriver{archive: rc}, nil
}

func (zd *ZipDriver) Close() error {
	return zd.archive.Close()
}

// Get opens the named archive entry under dir. Caller closes the returned
// io.ReadCloser.
func (zd *ZipDriver) Get(dir, fileName string) (io.ReadCloser, error) {
	name := path.Join(dir, fileName)
	for _, f := range zd.archive.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, errors.Errorf("no entry %s in export archive", name)
}

// ListFiles returns the entry names directly under dir, sorted.
func (zd *ZipDriver) ListFiles(dir string) ([]string, error) {
	want := path.Clean(dir) // "" cleans to "."
	var files []string
	for _, f := range zd.archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if path.Dir(f.Name) != want {
			continue
		}
		files = append(files, path.Base(f.Name))
	}
	sort.Strings(files)
	return files, nil
}
