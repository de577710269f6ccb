// Package pprof adds the profiling flags of the dpm program.
package pprof

import (
	"fmt"
	"os"
	"runtime/pprof"

	"src.dpm.sh/pkg/logutil"
	"src.dpm.sh/pkg/prog"
)

var logger = logutil.GetLogger("[pprof] ")

// Program handles -cpuprofile and -allocsprofile, then passes control to the
// next subprogram. The profiles are finished when that subprogram returns.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "write memory allocation profile to file")
}

// A profile is started by creating its file, and finished by stop.
type profile struct {
	path  string
	what  string
	doing string
	start func(*os.File) error
	stop  func(*os.File)
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	profiles := []profile{
		{p.cpuProfile, "CPU profile", "CPU profiling",
			func(f *os.File) error { return pprof.StartCPUProfile(f) },
			func(*os.File) { pprof.StopCPUProfile() }},
		{p.allocsProfile, "memory allocation profile", "memory allocation profiling",
			nil,
			func(f *os.File) { pprof.Lookup("allocs").WriteTo(f, 0) }},
	}
	var cleanups []func([3]*os.File)
	for _, prof := range profiles {
		if prof.path == "" {
			continue
		}
		if cleanup, err := prof.begin(); err != nil {
			fmt.Fprintf(fds[2], "Warning: cannot create %s: %v\n", prof.what, err)
			fmt.Fprintf(fds[2], "Continuing without %s.\n", prof.doing)
		} else {
			cleanups = append(cleanups, cleanup)
		}
	}
	return prog.NextProgram(cleanups...)
}

func (prof profile) begin() (func([3]*os.File), error) {
	f, err := os.Create(prof.path)
	if err != nil {
		return nil, err
	}
	if prof.start != nil {
		if err := prof.start(f); err != nil {
			f.Close()
			return nil, err
		}
	}
	logger.Printf("writing %s to %s", prof.what, prof.path)
	return func([3]*os.File) {
		prof.stop(f)
		if err := f.Close(); err != nil {
			logger.Printf("closing %s: %v", prof.path, err)
		}
	}, nil
}
