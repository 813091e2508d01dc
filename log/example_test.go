package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/srcfile/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger = logger.With(slog.String("path", ".env"))
	logger.Debug("sourced variables", slog.Int("count", 3))
	logger.Trace("not shown")
	// Output:
	// level=DEBUG msg="sourced variables" path=.env count=3
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""),
		log.WithPretty(false))

	logger.Warn("variable reassigned", slog.String("key", "A"), slog.Int("line", 7))
	// Output:
	// {"level":"WARN","msg":"variable reassigned","key":"A","line":7}
}
