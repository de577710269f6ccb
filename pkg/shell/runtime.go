package shell

import (
	"fmt"
	"os"
	"os/signal"

	"src.dpm.sh/pkg/config"
	"src.dpm.sh/pkg/diag"
	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/mods"
	"src.dpm.sh/pkg/parse"
	"src.dpm.sh/pkg/store"
	"src.dpm.sh/pkg/sys"

	modruntime "src.dpm.sh/pkg/mods/runtime"
)

type runtime struct {
	ctx     *eval.Context
	store   store.DBStore
	cleanup func()
}

// Opens the store, builds the registry and the context, and applies the
// configuration to it. Failing to open the store is not fatal: the store
// commands are then not available.
func (p *Program) initRuntime(fds [3]*os.File, cfg *config.Config, rc string, interactive bool) *runtime {
	rt := &runtime{}

	db, err := dbPath(*p.db, cfg)
	if err == nil {
		rt.store, err = store.NewStore(db)
	}
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot open store:", err)
		fmt.Fprintln(fds[2], "History and persistent variables are not available.")
	}

	r := eval.NewRegistry()
	svc := mods.Services{
		Runner: p.Runner,
		Paths:  modruntime.Paths{Config: cfg.Path, RC: rc},
	}
	if rt.store != nil {
		svc.Store = rt.store
		svc.Paths.DB = db
	}
	mods.AddTo(r, svc)

	ctx := eval.NewContext(r)
	ctx.Stdout = fds[1]
	ctx.Stderr = fds[2]
	logger.Println("session", ctx.SessionID)

	switch {
	case p.basedir != "":
		ctx.SetBasedir(p.basedir)
	case cfg.Basedir != "":
		ctx.SetBasedir(cfg.Basedir)
	}
	ctx.SetDebugPrint(p.debug || cfg.Debug)
	for name, value := range cfg.Variables {
		ctx.SetVariable(name, vals.Str(value))
	}
	for i, code := range cfg.Prelude {
		src := parse.Source{Name: fmt.Sprintf("[prelude %d]", i+1), Code: code}
		if _, err := eval.EvalSource(src, ctx); err != nil {
			diag.ShowError(fds[2], err, sys.IsATTY(fds[2]))
		}
	}
	rt.ctx = ctx

	stopSignal, _ := initSignal(fds[2], interactive)
	rt.cleanup = func() {
		stopSignal()
		if rt.store != nil {
			if err := rt.store.Close(); err != nil {
				fmt.Fprintln(fds[2], "Warning: failed to close store:", err)
			}
		}
	}
	return rt
}

// Handles signals until the returned function is called. done is closed when
// the handling goroutine has exited.
func initSignal(stderr *os.File, interactive bool) (stop func(), done <-chan struct{}) {
	sigCh := sys.NotifySignals()
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for sig := range sigCh {
			if ignoreSignal(sig) {
				continue
			}
			logger.Println("signal", sig)
			handleSignal(sig, stderr, interactive)
		}
	}()
	return func() {
		signal.Stop(sigCh)
		// Nothing is sent after Stop returns, so this ends the goroutine.
		close(sigCh)
	}, exited
}
