package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/galister/freedesktop/internal/security"
)

// extractTar writes every tar entry below root.
func extractTar(r io.Reader, root *os.Root, budget *security.LimitedReader) (int, error) {
	tr := tar.NewReader(r)
	files := 0

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, fmt.Errorf("failed to read tar archive: %w", err)
		}

		name := cleanEntryName(header.Name)
		if name == "" {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = makeDir(root, name)
		case tar.TypeReg:
			err = writeFile(root, name, tr, budget)
			files++
		case tar.TypeSymlink:
			err = writeSymlink(root, name, header.Linkname)
		case tar.TypeLink:
			err = writeHardlink(root, name, cleanEntryName(header.Linkname))
		default:
			// Devices, fifos and other special files have no place in a theme.
			continue
		}
		if err != nil {
			return files, err
		}
	}
}
