package export

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Saver drops a finished archive into the download directory.
type Saver struct {
	FS  afero.Fs
	Dir string
}

// NewSaver saves to dir on the real filesystem.
func NewSaver(dir string) *Saver {
	return &Saver{FS: afero.NewOsFs(), Dir: dir}
}

// Save writes data as name inside the download directory and returns the
// final path. The file appears atomically via a temp file and rename.
func (s *Saver) Save(name string, data []byte) (string, error) {
	if err := s.FS.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir download dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.FS, tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	if err := s.FS.Rename(tmp, path); err != nil {
		_ = s.FS.Remove(tmp)
		return "", fmt.Errorf("rename archive: %w", err)
	}
	return path, nil
}
