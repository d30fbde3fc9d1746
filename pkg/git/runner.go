// Package git drives the external git binary. Nothing here interprets
// git's data model; repositories are operated on strictly through
// subcommands, each run in an explicit working directory.
//
// Shelling out rather than binding a git library keeps the tool
// compatible with user configuration (SSH keys, credential helpers,
// includes) the same way git itself is.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Runner executes a git subcommand in a working directory. A nil error
// means git exited zero; spawn failures and non-zero exits are the same
// failure class to callers.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) error
}

// ExecRunner is the real Runner, backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that invokes the git binary.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes `git args...` with dir as the working directory, capturing
// stderr so failures carry git's own message.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) error {
	logger := logging.GetLogger("git")
	logger.Debug().
		Str("dir", dir).
		Strs("args", args).
		Msg("running git")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Newf(errors.ErrGitExec, "git %s in %s: %s", strings.Join(args, " "), dir, msg)
		}
		return errors.Wrapf(err, errors.ErrGitExec, "git %s in %s", strings.Join(args, " "), dir)
	}
	return nil
}
