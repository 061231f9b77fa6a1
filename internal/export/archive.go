package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// Names used inside and for the produced archive.
const (
	FolderName  = "Leadership Declaration Images"
	ArchiveName = FolderName + ".zip"
	imagePrefix = "Leadership Declaration"
)

// ErrArchiveFolder means the image folder entry could not be added, so no
// archive is produced.
var ErrArchiveFolder = errors.New("create archive folder")

// ImageName returns the file name for the zero-based answer index.
func ImageName(index int) string {
	return fmt.Sprintf("%s %d.png", imagePrefix, index+1)
}

// ImagePath returns the entry path of image index inside the archive.
func ImagePath(index int) string {
	return FolderName + "/" + ImageName(index)
}

// BuildArchive writes images into a single zip, inside FolderName, and
// returns the serialized archive. images are PNG bytes in answer order.
func BuildArchive(images [][]byte, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	dir := &zip.FileHeader{Name: FolderName + "/", Method: zip.Store, Modified: modified}
	if _, err := zw.CreateHeader(dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveFolder, err)
	}

	for i, img := range images {
		hdr := &zip.FileHeader{Name: ImagePath(i), Method: zip.Store, Modified: modified}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", ImageName(i), err)
		}
		if _, err := w.Write(img); err != nil {
			return nil, fmt.Errorf("write %s: %w", ImageName(i), err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
