package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/galister/freedesktop/internal/security"
)

// maxLinkTarget bounds the size of a symlink target stored in a zip entry.
const maxLinkTarget = 4096

// extractZip writes every zip entry below root.
func extractZip(data []byte, root *os.Root, budget *security.LimitedReader) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to create zip reader: %w", err)
	}

	files := 0
	for _, f := range zr.File {
		name := cleanEntryName(f.Name)
		if name == "" {
			continue
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			err = makeDir(root, name)
		case mode&os.ModeSymlink != 0:
			err = extractZipSymlink(f, root, name)
		case mode.IsRegular():
			err = extractZipFile(f, root, name, budget)
			files++
		default:
			continue
		}
		if err != nil {
			return files, err
		}
	}

	return files, nil
}

func extractZipFile(f *zip.File, root *os.Root, name string, budget *security.LimitedReader) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()

	return writeFile(root, name, rc, budget)
}

// extractZipSymlink reads the link target stored as the entry's content.
func extractZipSymlink(f *zip.File, root *os.Root, name string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()

	target, err := io.ReadAll(io.LimitReader(rc, maxLinkTarget))
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", name, err)
	}

	return writeSymlink(root, name, string(target))
}
