package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/domain"
	"github.com/urfave/cli/v3"
)

var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "tiff"}

type Config struct {
	App
	HTTP
	Log
}

type App struct {
	// TargetDirectory is absolute after Validate.
	TargetDirectory string
	Extensions      []string
	OpenBrowser     bool
	LockDirectory   string
}

type HTTP struct {
	Host            string
	Port            string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type Log struct {
	Level string
}

func Load(cmd *cli.Command) *Config {
	dir := cmd.String("dir")
	if arg := cmd.StringArg("directory"); arg != "" {
		dir = arg
	}

	return &Config{
		App: App{
			TargetDirectory: dir,
			Extensions:      cmd.StringSlice("extensions"),
			OpenBrowser:     cmd.Bool("open-browser"),
			LockDirectory:   cmd.String("lock-dir"),
		},
		HTTP: HTTP{
			Host:            cmd.String("host"),
			Port:            cmd.String("port"),
			IdleTimeout:     cmd.Duration("http-idle-timeout"),
			ReadTimeout:     cmd.Duration("http-read-timeout"),
			WriteTimeout:    cmd.Duration("http-write-timeout"),
			ShutdownTimeout: cmd.Duration("shutdown-timeout"),
			CORSOrigins:     cmd.StringSlice("cors-origins"),
		},
		Log: Log{
			Level: cmd.String("log-level"),
		},
	}
}

// Validate resolves the target directory and checks it exists. Failures wrap
// domain.ErrConfiguration; the process must not start on them.
func (c *Config) Validate() error {
	if c.TargetDirectory == "" {
		c.TargetDirectory = "."
	}

	abs, err := filepath.Abs(c.TargetDirectory)
	if err != nil {
		return fmt.Errorf("%w: resolve %q: %w", domain.ErrConfiguration, c.TargetDirectory, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: directory %q does not exist", domain.ErrConfiguration, abs)
		}
		return fmt.Errorf("%w: stat %q: %w", domain.ErrConfiguration, abs, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", domain.ErrConfiguration, abs)
	}

	c.TargetDirectory = abs

	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}

	exts := NormalizeExtensions(c.Extensions)
	if len(exts) == 0 {
		return fmt.Errorf("%w: at least one image extension is required", domain.ErrConfiguration)
	}

	c.Extensions = exts

	return nil
}

// NormalizeExtensions lowercases the allow-set and makes sure every entry starts with a dot.
// Blank entries and a bare "." are dropped; order is kept.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}
