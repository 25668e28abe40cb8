package triage

import (
	"context"

	"github.com/kurochkinivan/image_sorter/internal/domain"
)

// Service is what the HTTP layer talks to.
type Service struct {
	dir     string
	scanner *Scanner
	mover   *Mover
}

func NewService(dir string, scanner *Scanner, mover *Mover) *Service {
	return &Service{
		dir:     dir,
		scanner: scanner,
		mover:   mover,
	}
}

// Directory is the absolute target directory, for display.
func (s *Service) Directory() string {
	return s.dir
}

func (s *Service) ListImages(ctx context.Context) ([]string, error) {
	return s.scanner.ListImages(ctx)
}

func (s *Service) Move(ctx context.Context, filename, decision string) (*domain.MoveResult, error) {
	return s.mover.Move(ctx, filename, decision)
}
