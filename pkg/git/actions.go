package git

import (
	"context"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Actions is the capability-gated repository action set. Every action
// checks the repository's flags before touching git: a denied operation
// is a skip that reports failure, logged at info, with no subprocess
// spawned. A permitted operation reports whether git exited zero.
type Actions struct {
	runner Runner
	dryRun bool
}

// NewActions builds the action set on top of a Runner. With dryRun set,
// permitted actions log what they would run and report success without
// spawning anything.
func NewActions(runner Runner, dryRun bool) *Actions {
	return &Actions{runner: runner, dryRun: dryRun}
}

// Clone runs `git clone <url> <name>` in the repository's parent
// directory.
func (a *Actions) Clone(ctx context.Context, repo *config.Repo) bool {
	return a.run(ctx, repo, config.OpClone, repo.Path, "clone", repo.URL, repo.Name)
}

// Pull runs `git pull` in the repository's working directory.
func (a *Actions) Pull(ctx context.Context, repo *config.Repo) bool {
	return a.run(ctx, repo, config.OpPull, repo.WorkDir(), "pull")
}

// AddAll runs `git add .` in the repository's working directory.
func (a *Actions) AddAll(ctx context.Context, repo *config.Repo) bool {
	return a.run(ctx, repo, config.OpAdd, repo.WorkDir(), "add", ".")
}

// Commit runs a bare `git commit`, handing the message over to git's
// configured editor.
func (a *Actions) Commit(ctx context.Context, repo *config.Repo) bool {
	return a.run(ctx, repo, config.OpCommit, repo.WorkDir(), "commit")
}

// CommitWithMessage runs `git commit -m <msg>`.
func (a *Actions) CommitWithMessage(ctx context.Context, repo *config.Repo, msg string) bool {
	return a.run(ctx, repo, config.OpCommit, repo.WorkDir(), "commit", "-m", msg)
}

// Push runs `git push` in the repository's working directory.
func (a *Actions) Push(ctx context.Context, repo *config.Repo) bool {
	return a.run(ctx, repo, config.OpPush, repo.WorkDir(), "push")
}

func (a *Actions) run(ctx context.Context, repo *config.Repo, op config.Op, dir string, args ...string) bool {
	logger := logging.GetLogger("git.actions")

	if !repo.Permits(op) {
		logger.Info().
			Str("repo", repo.Name).
			Str("op", string(op)).
			Msg("operation not permitted by repo flags, skipping")
		return false
	}

	if a.dryRun {
		logger.Info().
			Str("repo", repo.Name).
			Str("dir", dir).
			Strs("args", args).
			Msg("dry run, not executing")
		return true
	}

	if err := a.runner.Run(ctx, dir, args...); err != nil {
		logger.Warn().
			Err(err).
			Str("repo", repo.Name).
			Str("op", string(op)).
			Msg("git operation failed")
		return false
	}
	return true
}
