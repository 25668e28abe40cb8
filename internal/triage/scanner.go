package triage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kurochkinivan/image_sorter/internal/config"
	"github.com/kurochkinivan/image_sorter/internal/domain"
)

// Scanner lists the images waiting for a decision. Outcome directories are never entered,
// so triaged files drop out of the listing on their own.
type Scanner struct {
	log        *slog.Logger
	dir        string
	extensions map[string]struct{}
	metrics    *Metrics
}

func NewScanner(log *slog.Logger, cfg config.App, metrics *Metrics) *Scanner {
	return &Scanner{
		log:        log,
		dir:        cfg.TargetDirectory,
		extensions: extensionSet(cfg.Extensions),
		metrics:    metrics,
	}
}

// ListImages returns bare filenames, oldest modification time first.
func (s *Scanner) ListImages(ctx context.Context) ([]string, error) {
	images, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Name)
	}

	return names, nil
}

// Scan reads the directory fresh on every call. Ties on modification time are broken by name.
func (s *Scanner) Scan(ctx context.Context) ([]domain.ImageEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.metrics.observeList(outcomeError, 0)
		return nil, domain.NewPathError("read directory", s.dir, domain.ErrIO, err)
	}

	images := make([]domain.ImageEntry, 0, len(entries))
	for _, entry := range entries {
		img, ok, err := s.processEntry(entry)
		if err != nil {
			s.metrics.observeList(outcomeError, 0)
			return nil, err
		}
		if ok {
			images = append(images, img)
		}
	}

	slices.SortFunc(images, func(a, b domain.ImageEntry) int {
		if c := a.ModTime.Compare(b.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	s.metrics.observeList(outcomeSuccess, len(images))
	s.log.DebugContext(ctx, "scanned directory",
		slog.String("dir", s.dir),
		slog.Int("entries", len(entries)),
		slog.Int("images", len(images)),
	)

	return images, nil
}

// Eligible reports whether name carries an allowed extension.
func (s *Scanner) Eligible(name string) bool {
	_, ext := splitName(name)
	_, ok := s.extensions[strings.ToLower(ext)]
	return ok
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range config.NormalizeExtensions(exts) {
		set[ext] = struct{}{}
	}
	return set
}

func (s *Scanner) processEntry(entry os.DirEntry) (domain.ImageEntry, bool, error) {
	// only regular files; symlinks are not followed
	if !entry.Type().IsRegular() || !s.Eligible(entry.Name()) {
		return domain.ImageEntry{}, false, nil
	}

	path := filepath.Join(s.dir, entry.Name())

	info, err := entry.Info()
	if err != nil {
		// moved away between ReadDir and Info
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ImageEntry{}, false, nil
		}
		return domain.ImageEntry{}, false, domain.NewPathError("stat", path, domain.ErrIO, err)
	}

	return domain.ImageEntry{
		Name:    entry.Name(),
		Path:    path,
		ModTime: info.ModTime(),
	}, true, nil
}
