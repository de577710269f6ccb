package mods

import (
	"testing"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/store"
)

func TestAddTo(t *testing.T) {
	r := eval.NewRegistry()
	AddTo(r, Services{})
	for _, name := range []string{
		"print", "pipe", "help", "set-var", "basedir", "fs-list", "path-join",
		"process-command", "platform-os", "str-split", "re-find", "math-max",
		"dir-md5", "git-head", "runtime-paths",
	} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("command %s is not registered", name)
		}
	}
	if _, ok := r.Get("history"); ok {
		t.Errorf("store commands registered without a store")
	}

	r = eval.NewRegistry()
	AddTo(r, Services{Store: store.MustTempStore(t)})
	if _, ok := r.Get("history"); !ok {
		t.Errorf("store commands not registered with a store")
	}
}

func TestAddTo_TagsAllCommands(t *testing.T) {
	r := eval.NewRegistry()
	AddTo(r, Services{Store: store.MustTempStore(t)})
	for _, g := range r.GroupedByTag() {
		for _, c := range g.Commands {
			if c.Description == "No description available" {
				t.Errorf("command %s has no description", c.Name)
			}
		}
	}
}
