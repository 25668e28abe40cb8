package browser

import (
	"context"
	"log/slog"

	"github.com/pkg/browser"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

// Open launches the user's browser. Failures are logged and otherwise ignored.
func Open(ctx context.Context, log *slog.Logger, url string) {
	if err := openURL(url); err != nil {
		log.WarnContext(ctx, "failed to open browser", slog.String("url", url), slog.String("err", err.Error()))
		return
	}

	log.InfoContext(ctx, "opened browser", slog.String("url", url))
}
