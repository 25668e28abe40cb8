package triage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/config"
	"github.com/kurochkinivan/image_sorter/internal/domain"
	"github.com/kurochkinivan/image_sorter/internal/infrastructure/fsx"
)

const maxProbes = 10000

// Mover relocates a file into the outcome directory named after the decision, appending
// _1, _2, ... before the extension when the name is taken. It never overwrites.
type Mover struct {
	log     *slog.Logger
	dir     string
	metrics *Metrics
	move    func(src, dst string) (copied bool, err error)
}

func NewMover(log *slog.Logger, cfg config.App, metrics *Metrics) *Mover {
	return &Mover{
		log:     log,
		dir:     cfg.TargetDirectory,
		metrics: metrics,
		move:    fsx.Move,
	}
}

func (m *Mover) Move(ctx context.Context, filename, decision string) (*domain.MoveResult, error) {
	start := time.Now()

	result, err := m.relocate(ctx, filename, decision)

	m.metrics.observeMove(decision, err, result, time.Since(start))

	if err != nil {
		m.log.WarnContext(ctx, "failed to move image",
			slog.String("filename", filename),
			slog.String("decision", decision),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	m.log.InfoContext(ctx, "moved image",
		slog.String("filename", filename),
		slog.String("decision", decision),
		slog.String("moved_to", result.RelativePath),
		slog.Int("collisions", result.Collisions),
		slog.Bool("cross_device", result.CrossDevice),
	)

	return result, nil
}

func (m *Mover) relocate(ctx context.Context, filename, decision string) (*domain.MoveResult, error) {
	d, err := domain.ParseDecision(decision)
	if err != nil {
		return nil, err
	}

	if err := ValidateName(filename); err != nil {
		return nil, err
	}

	src := filepath.Join(m.dir, filename)
	if err := checkSource(src); err != nil {
		return nil, err
	}

	outDir := filepath.Join(m.dir, string(d))
	// MkdirAll treats an existing directory as success, which covers racing first moves.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, domain.NewPathError("create outcome directory", outDir, domain.ErrIO, err)
	}

	for n := 0; n < maxProbes; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := candidateName(filename, n)
		dst := filepath.Join(outDir, name)

		taken, err := exists(dst)
		if err != nil {
			return nil, domain.NewPathError("probe destination", dst, domain.ErrIO, err)
		}
		if taken {
			continue
		}

		copied, err := m.move(src, dst)
		switch {
		case err == nil:
			return &domain.MoveResult{
				Source:       filename,
				Decision:     d,
				RelativePath: path.Join(string(d), name),
				Collisions:   n,
				CrossDevice:  copied,
			}, nil

		case errors.Is(err, fs.ErrExist):
			// taken after the probe; the move itself is authoritative
			m.log.DebugContext(ctx, "destination taken during move, probing next",
				slog.String("destination", dst),
			)
			continue

		case errors.Is(err, fs.ErrNotExist):
			if srcErr := checkSource(src); srcErr != nil {
				return nil, srcErr
			}
			return nil, domain.NewPathError("move", src, domain.ErrIO, err)

		default:
			return nil, domain.NewPathError("move", src, domain.ErrIO, err)
		}
	}

	return nil, domain.NewPathError("move", src, domain.ErrIO,
		fmt.Errorf("no free destination name after %d attempts", maxProbes))
}

func checkSource(src string) error {
	info, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewPathError("stat", src, domain.ErrNotFound, nil)
		}
		return domain.NewPathError("stat", src, domain.ErrIO, err)
	}

	if !info.Mode().IsRegular() {
		return domain.NewPathError("stat", src, domain.ErrNotFound, errors.New("not a regular file"))
	}

	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
