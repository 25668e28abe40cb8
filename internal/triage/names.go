package triage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kurochkinivan/image_sorter/internal/domain"
)

// splitName separates the final extension from name. A leading dot does not start an
// extension (".png" has none) and neither does a trailing one ("a.").
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// candidateName returns name for n == 0 and "{stem}_{n}{ext}" otherwise.
func candidateName(name string, n int) string {
	if n == 0 {
		return name
	}
	stem, ext := splitName(name)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// ValidateName accepts only a bare filename that stays inside the target directory. Only the
// platform's own separators are rejected, so any name the scanner lists can also be moved.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	case name == "." || name == "..",
		strings.ContainsAny(name, "/\x00"+string(os.PathSeparator)),
		!filepath.IsLocal(name),
		filepath.Base(name) != name:
		return fmt.Errorf("%w: filename %q must name a file directly inside the target directory", domain.ErrInvalidInput, name)
	}
	return nil
}
