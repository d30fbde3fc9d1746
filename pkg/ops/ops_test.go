package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/link"
)

// spyRunner records git invocations and fails those whose first argument
// is listed in failOn.
type spyRunner struct {
	calls  []spyCall
	failOn map[string]bool
}

type spyCall struct {
	dir  string
	args []string
}

func (s *spyRunner) Run(_ context.Context, dir string, args ...string) error {
	s.calls = append(s.calls, spyCall{dir: dir, args: args})
	if s.failOn[args[0]] {
		return errors.New(errors.ErrGitExec, "boom")
	}
	return nil
}

func (s *spyRunner) subcommands() []string {
	var names []string
	for _, c := range s.calls {
		names = append(names, c.args[0])
	}
	return names
}

func cloneOnlyConfig() *config.Config {
	return &config.Config{
		Categories: map[string]config.Category{
			"dots": {
				Repos: map[string]config.Repo{
					"gg": {
						Name:  "gg",
						Path:  "/tmp/",
						URL:   "https://github.com/cafkafk/gg",
						Flags: config.FlagSet{config.FlagClone},
					},
				},
			},
		},
	}
}

func TestCloneAllInvokesGitCloneOnce(t *testing.T) {
	spy := &spyRunner{}
	o := New(cloneOnlyConfig(), spy, nil, Options{})

	summary := o.CloneAll(context.Background())
	assert.True(t, summary.OK())

	require.Len(t, spy.calls, 1)
	assert.Equal(t, "/tmp/", spy.calls[0].dir)
	assert.Equal(t, []string{"clone", "https://github.com/cafkafk/gg", "gg"}, spy.calls[0].args)
}

func TestBatchOpsDeniedByFlagsSpawnNothing(t *testing.T) {
	ctx := context.Background()

	batches := map[string]func(o *Orchestrator) int{
		"pull":       func(o *Orchestrator) int { return o.PullAll(ctx).Failed() },
		"add":        func(o *Orchestrator) int { return o.AddAll(ctx).Failed() },
		"commit":     func(o *Orchestrator) int { return o.CommitAll(ctx).Failed() },
		"commit-msg": func(o *Orchestrator) int { return o.CommitAllMsg(ctx, "msg").Failed() },
	}

	for name, run := range batches {
		t.Run(name, func(t *testing.T) {
			spy := &spyRunner{}
			o := New(cloneOnlyConfig(), spy, nil, Options{})

			// The clone-only repo denies the op: one reported failure,
			// zero subprocesses.
			assert.Equal(t, 1, run(o))
			assert.Empty(t, spy.calls)
		})
	}
}

func quickConfig() *config.Config {
	return &config.Config{
		Categories: map[string]config.Category{
			"dots": {
				Repos: map[string]config.Repo{
					"gg": {
						Name:  "gg",
						Path:  "/tmp/",
						URL:   "https://github.com/cafkafk/gg",
						Flags: config.FlagSet{config.FlagFast},
					},
				},
			},
		},
	}
}

func TestQuickAttemptsEveryStep(t *testing.T) {
	spy := &spyRunner{failOn: map[string]bool{"add": true}}
	o := New(quickConfig(), spy, nil, Options{})

	summary := o.Quick(context.Background(), "msg")
	assert.Equal(t, 1, summary.Failed())

	// Continue-on-error: the failing add does not stop commit and push.
	assert.Equal(t, []string{"pull", "add", "commit", "push"}, spy.subcommands())
}

func TestFastStopsAtFirstFailure(t *testing.T) {
	spy := &spyRunner{failOn: map[string]bool{"add": true}}
	o := New(quickConfig(), spy, nil, Options{})

	summary := o.Fast(context.Background(), "msg")
	assert.Equal(t, 1, summary.Failed())

	// Stop-on-error: commit and push are never invoked after add fails.
	assert.Equal(t, []string{"pull", "add"}, spy.subcommands())
}

func TestQuickDefaultsCommitMessage(t *testing.T) {
	spy := &spyRunner{}
	o := New(quickConfig(), spy, nil, Options{})

	o.Quick(context.Background(), "")
	require.Len(t, spy.calls, 4)
	assert.Equal(t, []string{"commit", "-m", DefaultCommitMessage}, spy.calls[2].args)
}

func TestLinkAll(t *testing.T) {
	dir := t.TempDir()
	tx := filepath.Join(dir, "source")
	require.NoError(t, os.WriteFile(tx, []byte("payload"), 0644))
	rx := filepath.Join(dir, "dest")

	occupied := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("keep me"), 0644))

	cfg := &config.Config{
		Categories: map[string]config.Category{
			"dots": {
				Links: map[string]config.Link{
					"good": {Name: "good", Tx: tx, Rx: rx},
					"bad":  {Name: "bad", Tx: tx, Rx: occupied},
				},
			},
		},
	}
	o := New(cfg, &spyRunner{}, nil, Options{})

	summary := o.LinkAll(context.Background())
	require.Len(t, summary.Results, 2)

	// Sorted link order: bad first, good second. The conflicting link
	// fails without blocking the other.
	assert.Equal(t, "bad", summary.Results[0].Name)
	assert.Equal(t, link.StatusFileExists, summary.Results[0].Result.Status)
	assert.Equal(t, "good", summary.Results[1].Name)
	assert.Equal(t, link.StatusCreated, summary.Results[1].Result.Status)
	assert.Equal(t, 1, summary.Failed())

	// Second run is idempotent for the link that succeeded.
	again := o.LinkAll(context.Background())
	assert.Equal(t, link.StatusAlreadyLinked, again.Results[1].Result.Status)
}

func TestJump(t *testing.T) {
	cfg := &config.Config{
		Categories: map[string]config.Category{
			"dots": {
				Repos: map[string]config.Repo{
					"gg": {Name: "gg", Path: "/home/user/.dots/"},
				},
				Links: map[string]config.Link{
					"starship": {Name: "starship", Rx: "/home/user/.config/starship.toml", Tx: "/t"},
				},
			},
		},
	}
	o := New(cfg, &spyRunner{}, nil, Options{})

	path, err := o.Jump("dots", "gg")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.dots/gg", path)

	path, err = o.Jump("dots", "starship")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/starship.toml", path)

	_, err = o.Jump("dots", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}
