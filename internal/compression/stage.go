package compression

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/galister/freedesktop/internal/security"
)

const descriptorName = "index.theme"

// Entries are written through an os.Root opened on the staging directory,
// so symlinks created by earlier entries can never redirect a write outside
// it. The lexical checks still run first to reject hostile names early.

// cleanEntryName normalises an archive entry name to a slash-free relative
// form. The archive root itself ("./") becomes empty.
func cleanEntryName(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	name = strings.TrimSuffix(name, "/")
	if name == "." {
		return ""
	}
	return filepath.FromSlash(name)
}

func makeDir(root *os.Root, name string) error {
	if err := security.ValidateFilePath(name, root.Name()); err != nil {
		return err
	}
	if err := root.MkdirAll(name, 0o755); err != nil { // #nosec G301 - icon directories need standard permissions
		return fmt.Errorf("failed to create directory %s: %w", name, err)
	}
	return nil
}

// makeParent creates the directory holding name.
func makeParent(root *os.Root, name string) error {
	dir := filepath.Dir(name)
	if dir == "." {
		return nil
	}
	if err := root.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - icon directories need standard permissions
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	return nil
}

// writeFile copies r to name, charging the bytes to budget. An existing
// entry that is not a regular file is never followed or truncated.
func writeFile(root *os.Root, name string, r io.Reader, budget *security.LimitedReader) error {
	if err := security.ValidateFilePath(name, root.Name()); err != nil {
		return err
	}
	if err := makeParent(root, name); err != nil {
		return err
	}

	if info, err := root.Lstat(name); err == nil && !info.Mode().IsRegular() {
		return fmt.Errorf("refusing to overwrite %s: existing entry is not a regular file", name)
	}

	out, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	budget.R = r
	_, copyErr := io.Copy(out, budget)
	closeErr := out.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to extract %s: %w", name, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", name, closeErr)
	}
	return nil
}

func writeSymlink(root *os.Root, name, target string) error {
	if err := security.ValidateSymlink(name, target, root.Name()); err != nil {
		return err
	}
	if err := makeParent(root, name); err != nil {
		return err
	}
	if err := root.Symlink(target, name); err != nil {
		return fmt.Errorf("failed to create symlink %s: %w", name, err)
	}
	return nil
}

// writeHardlink links name to an entry extracted earlier in the archive.
func writeHardlink(root *os.Root, name, target string) error {
	if err := security.ValidateFilePath(name, root.Name()); err != nil {
		return err
	}
	if err := security.ValidateFilePath(target, root.Name()); err != nil {
		return fmt.Errorf("invalid hard link target: %w", err)
	}
	if err := makeParent(root, name); err != nil {
		return err
	}
	if err := root.Link(target, name); err != nil {
		return fmt.Errorf("failed to create hard link %s: %w", name, err)
	}
	return nil
}

// findThemeRoots returns every directory holding an index.theme. Theme
// roots are not searched for nested themes.
func findThemeRoots(staging string) ([]string, error) {
	var roots []string

	err := filepath.WalkDir(staging, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		info, err := os.Stat(filepath.Join(path, descriptorName))
		if err == nil && info.Mode().IsRegular() {
			roots = append(roots, path)
			return filepath.SkipDir
		}
		return nil
	})

	return roots, err
}

// checkThemeLinks verifies that every symlink below themeRoot stays inside
// it, both as written and as resolved on disk. A link that is valid for the
// whole archive may still leave a single theme once it is moved.
func checkThemeLinks(themeRoot string) error {
	realRoot, err := filepath.EvalSymlinks(themeRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", themeRoot, err)
	}

	return filepath.WalkDir(themeRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		rel, err := filepath.Rel(themeRoot, path)
		if err != nil {
			return err
		}
		target, err := os.Readlink(path)
		if err != nil {
			return fmt.Errorf("failed to read symlink %s: %w", rel, err)
		}
		if err := security.ValidateSymlink(rel, target, themeRoot); err != nil {
			return err
		}

		// Dangling aliases are common in icon themes and harmless.
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if !security.Within(resolved, realRoot) {
			return fmt.Errorf("symlink %s resolves outside the theme: %s", rel, target)
		}
		return nil
	})
}
