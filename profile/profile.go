package profile

// Stopper ends a recording started by [Profiler.Start].
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported mode disables profiling.
	Mode string
	// Path is the output directory. Empty means a temporary directory.
	Path string
	// Quiet suppresses the profiler's own status messages.
	Quiet bool
}

// Option modifies a Profiler.
type Option func(Profiler) Profiler

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the kind of profile recorded.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet suppresses status messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Enabled reports whether Start would record anything.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && supported(p.Mode)
}

// Start begins recording. The returned Stopper is never nil, and stopping
// it more than once is harmless.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
