// Package profile starts optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
//
// A [Profiler] names the kind of profile to record and the directory it is
// written to. Recording runs until the returned [Stopper] is stopped:
//
//	defer profile.New(profile.WithMode("cpu"), profile.WithPath(dir)).Start().Stop()
//
// The resulting files are read with "go tool pprof".
package profile

// Tag is the build tag that enables profiling.
const Tag = "pprof"
