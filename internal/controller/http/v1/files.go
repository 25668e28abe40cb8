package v1

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/kurochkinivan/image_sorter/internal/domain"
	"github.com/kurochkinivan/image_sorter/internal/triage"
)

// FileHandler serves raw bytes of files directly inside the target directory. Reads go through
// a billy filesystem bound to that directory, so paths cannot escape it.
type FileHandler struct {
	log *slog.Logger
	fs  billy.Filesystem
}

func NewFileHandler(log *slog.Logger, dir string) *FileHandler {
	return NewFileHandlerFS(log, osfs.New(dir, osfs.WithBoundOS()))
}

func NewFileHandlerFS(log *slog.Logger, fsys billy.Filesystem) *FileHandler {
	return &FileHandler{
		log: log,
		fs:  fsys,
	}
}

func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name, err := filenameParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := triage.ValidateName(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	info, err := h.fs.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		h.log.ErrorContext(r.Context(), "failed to stat file", slog.String("filename", name), slog.String("err", err.Error()))
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	if !info.Mode().IsRegular() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	f, err := h.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		h.log.ErrorContext(r.Context(), "failed to open file", slog.String("filename", name), slog.String("err", err.Error()))
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Cache-Control", "no-store")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// filenameParam decodes the route parameter. chi matches on RawPath when the request carried
// escapes such as %2F, and then hands the parameter back still escaped.
func filenameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "filename")
	if r.URL.RawPath == "" {
		return name, nil
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrInvalidInput, name)
	}

	return decoded, nil
}
