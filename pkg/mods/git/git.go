// Package git provides commands that inspect the Git repository containing the
// base directory.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/mods/basedir"
)

// Commands returns the Git commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("basedir-git", "Set the base directory to the root of the enclosing Git repository", basedirGit).
			WithHelp("(basedir-git)",
				"  (basedir \"src/app\")\n"+
					"  (basedir-git)         ; Base directory is now the repository root").
			WithTag(eval.TagCommands),
		eval.NewFunc("git-head", "Get the current branch and commit of the enclosing Git repository", gitHead).
			WithHelp("(git-head)",
				"  (git-head)  ; Returns (\"main\" \"4b825dc6...\"), branch is nil when detached").
			WithTag(eval.TagCommands),
		eval.NewFunc("git-is-clean", "Check whether the worktree of the enclosing Git repository has no changes", gitIsClean).
			WithHelp("(git-is-clean)", "  (git-is-clean)  ; Returns #t when there is nothing to commit").
			WithTag(eval.TagCommands),
	}
}

// open opens the repository that contains the base directory.
func open(ctx *eval.Context) (*git.Repository, error) {
	dir, err := basedir.Abs(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("no git repository found from %s", dir)
		}
		return nil, fmt.Errorf("failed to open git repository from %s: %w", dir, err)
	}
	return repo, nil
}

func basedirGit(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("basedir-git", args); err != nil {
		return nil, err
	}
	repo, err := open(ctx)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := filepath.Clean(wt.Filesystem.Root())
	ctx.SetBasedir(root)
	ctx.Debugf("basedir-git", "repository root: %s", root)
	return vals.Str(fmt.Sprintf("Found git repository at: %s\nBase directory set to: %s", root, root)), nil
}

func gitHead(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("git-head", args); err != nil {
		return nil, err
	}
	repo, err := open(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, errors.New("git repository has no commits")
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	var branch vals.Value = vals.Nil
	if ref.Name().IsBranch() {
		branch = vals.Str(ref.Name().Short())
	}
	return vals.MakeList(branch, vals.Str(ref.Hash().String())), nil
}

func gitIsClean(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("git-is-clean", args); err != nil {
		return nil, err
	}
	repo, err := open(ctx)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}
	return vals.Bool(st.IsClean()), nil
}
