//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/pkg"
	"github.com/ardnew/srcfile/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Record a profile of the given kind." placeholder:"${pprofModeEnum}"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory."           type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling options"}
}

// start records the selected profile until the returned function is called.
func (c pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.New(
		profile.WithMode(c.Mode),
		profile.WithPath(c.Dir),
		profile.WithQuiet(true),
	)

	if !p.Enabled() {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", c.Mode), slog.String("dir", c.Dir)}

	log.DebugContext(ctx, "profiling started", attrs...)

	s := p.Start()

	return func() {
		s.Stop()
		log.DebugContext(ctx, "profiling stopped", attrs...)
	}
}
