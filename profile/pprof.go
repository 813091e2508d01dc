//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

//nolint:gochecknoglobals
var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the supported profiling modes in sorted order.
//
//nolint:gochecknoglobals
var Modes = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(mode))
})

func supported(m string) bool {
	_, ok := mode[m]

	return ok
}

func start(p Profiler) Stopper {
	opts := []func(*profile.Profile){mode[p.Mode], profile.NoShutdownHook}

	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return &once{stop: profile.Start(opts...).Stop}
}

// once guards against stopping twice, which pkg/profile does not allow.
type once struct {
	sync.Once
	stop func()
}

func (o *once) Stop() { o.Do(o.stop) }
