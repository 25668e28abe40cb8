package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/app"
	"github.com/kurochkinivan/image_sorter/internal/config"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var version = "dev"

const envPrefix = "IMAGE_SORTER_"

func cmd() *cli.Command {
	return &cli.Command{
		Name:      "image_sorter",
		Usage:     "Sort a folder of images into SI/NO from the browser",
		UsageText: "image_sorter [options] [DIRECTORY]",
		Version:   version,
		Flags:     flags(),
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "directory",
				UsageText: "Directory with the images to sort (default: current directory)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
			if !ok {
				return errors.New("failed to get logger from context")
			}

			cfg := config.Load(cmd)

			level, err := parseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			levelVar.Set(level)

			if err := cfg.Validate(); err != nil {
				return err
			}

			return app.New(log, cfg).Run(ctx)
		},
	}
}

// sources looks a flag up in the environment first, then in the config file.
func sources(env, key string, configFile *string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		cli.EnvVar(envPrefix+env),
		yaml.YAML(key, altsrc.NewStringPtrSourcer(configFile)),
		toml.TOML(key, altsrc.NewStringPtrSourcer(configFile)),
	)
}

func flags() []cli.Flag {
	var configFile string

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE` (.yaml, .yml or .toml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:      "dir",
			Aliases:   []string{"d"},
			Usage:     "Set directory with the images to sort, overridden by the positional argument",
			Value:     ".",
			Sources:   sources("DIR", "app.dir", &configFile),
			Validator: validateDirectory,
		},
		&cli.StringSliceFlag{
			Name:    "extensions",
			Aliases: []string{"e"},
			Usage:   "Set accepted image extensions",
			Value:   config.DefaultExtensions,
			Sources: sources("EXTENSIONS", "app.extensions", &configFile),
		},
		&cli.BoolFlag{
			Name:    "open-browser",
			Usage:   "Open the UI in the default browser on start",
			Value:   true,
			Sources: sources("OPEN_BROWSER", "app.open_browser", &configFile),
		},
		&cli.StringFlag{
			Name:    "lock-dir",
			Usage:   "Set directory for the single-instance lock file (default: system temp dir)",
			Sources: sources("LOCK_DIR", "app.lock_dir", &configFile),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set log level: debug, info, warn, error",
			Value:   "info",
			Sources: sources("LOG_LEVEL", "log.level", &configFile),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Set HTTP server host",
			Value:   "0.0.0.0",
			Sources: sources("HOST", "http.host", &configFile),
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Set HTTP server port",
			Value:   "8000",
			Sources: sources("PORT", "http.port", &configFile),
		},
		&cli.StringSliceFlag{
			Name:    "cors-origins",
			Usage:   "Set allowed CORS origins",
			Value:   []string{"*"},
			Sources: sources("CORS_ORIGINS", "http.cors_origins", &configFile),
		},
		&cli.DurationFlag{
			Name:    "http-idle-timeout",
			Usage:   "Set HTTP server idle timeout",
			Value:   1 * time.Minute,
			Sources: sources("HTTP_IDLE_TIMEOUT", "http.idle_timeout", &configFile),
		},
		&cli.DurationFlag{
			Name:    "http-read-timeout",
			Usage:   "Set HTTP server read timeout",
			Value:   15 * time.Second,
			Sources: sources("HTTP_READ_TIMEOUT", "http.read_timeout", &configFile),
		},
		&cli.DurationFlag{
			Name:    "http-write-timeout",
			Usage:   "Set HTTP server write timeout",
			Value:   1 * time.Minute,
			Sources: sources("HTTP_WRITE_TIMEOUT", "http.write_timeout", &configFile),
		},
		&cli.DurationFlag{
			Name:    "shutdown-timeout",
			Usage:   "Set graceful shutdown timeout",
			Value:   5 * time.Second,
			Sources: sources("SHUTDOWN_TIMEOUT", "http.shutdown_timeout", &configFile),
		},
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func validateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", dir)
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	return nil
}

func validateConfig(config string) error {
	info, err := os.Stat(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", config)
		}
		return fmt.Errorf("failed to stat %q: %w", config, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", config)
	}

	switch filepath.Ext(info.Name()) {
	case ".yml", ".yaml", ".toml":
		return nil
	default:
		return fmt.Errorf("invalid extension %q", config)
	}
}
