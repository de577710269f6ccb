// Package shell is the entry point for the command interpreter of dpm. It
// evaluates expressions given as arguments, read from a file with -f, or read
// line by line from stdin.
package shell

import (
	"flag"
	"fmt"
	"os"

	"src.dpm.sh/pkg/config"
	"src.dpm.sh/pkg/logutil"
	"src.dpm.sh/pkg/proc"
	"src.dpm.sh/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct {
	file        string
	rc          string
	noRC        bool
	debug       bool
	basedir     string
	configPath  string
	noHistory   bool
	compileOnly bool
	json        *bool
	db          *string

	flags *flag.FlagSet

	// Runner runs external processes for the process commands. Nil means
	// proc.OS.
	Runner proc.Runner
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.file, "f", "",
		"evaluate the content of a file as one program")
	fs.StringVar(&p.rc, "rc", "",
		"path to the rc file evaluated before reading stdin")
	fs.BoolVar(&p.noRC, "norc", false,
		"don't evaluate the rc file")
	fs.BoolVar(&p.debug, "debug", false,
		"enable debug printing")
	fs.StringVar(&p.basedir, "basedir", "",
		"initial base directory")
	fs.StringVar(&p.configPath, "config", "",
		"path to the configuration file")
	fs.BoolVar(&p.noHistory, "nohistory", false,
		"don't record evaluated lines in the store")
	fs.BoolVar(&p.compileOnly, "compileonly", false,
		"parse the input without evaluating it")
	p.json = fs.JSON()
	p.db = fs.DB()
	p.flags = fs.FlagSet
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.file != "" && len(args) > 0 {
		return prog.BadUsage("-f can't be used together with expression arguments")
	}
	if p.compileOnly {
		return prog.Exit(check(fds, p.file, args, *p.json))
	}

	cfg, err := p.loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if cfg.Log != "" && !p.isSet("log") {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	interactive := p.file == "" && len(args) == 0
	rc := ""
	if interactive && !p.noRC {
		rc = p.rcPath(fds)
	}
	rt := p.initRuntime(fds, cfg, rc, interactive)
	defer rt.cleanup()

	switch {
	case p.file != "":
		return prog.Exit(evalFile(fds, rt.ctx, p.file))
	case len(args) > 0:
		return prog.Exit(evalArgs(fds, rt.ctx, args))
	}

	icfg := &interactCfg{RC: rc}
	if !p.noHistory && cfg.HistoryEnabled() && rt.store != nil {
		icfg.History = rt.store
	}
	interact(fds, rt.ctx, icfg)
	return nil
}

func (p *Program) loadConfig() (*config.Config, error) {
	if p.configPath != "" {
		return config.Load(p.configPath)
	}
	return config.LoadDefault()
}

func (p *Program) isSet(name string) bool {
	set := false
	if p.flags != nil {
		p.flags.Visit(func(f *flag.Flag) {
			if f.Name == name {
				set = true
			}
		})
	}
	return set
}
