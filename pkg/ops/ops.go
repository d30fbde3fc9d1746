// Package ops exposes the batch entry points the CLI dispatches to:
// the git pipelines over every repository and link resolution over every
// declared link.
package ops

import (
	"context"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/git"
	"github.com/arthur-debert/grove/pkg/link"
	"github.com/arthur-debert/grove/pkg/logging"
	"github.com/arthur-debert/grove/pkg/pipeline"
)

// DefaultCommitMessage is used when a commit operation gets no message.
const DefaultCommitMessage = "grove: quick commit"

// Options carries the explicit per-run options. They are threaded as an
// argument into every collaborator, never held as process-wide state.
type Options struct {
	Force  bool
	DryRun bool
}

// Orchestrator owns the read-only config and the collaborators operating
// on it.
type Orchestrator struct {
	cfg      *config.Config
	actions  *git.Actions
	runner   *pipeline.Runner
	reporter pipeline.Reporter
	opts     Options
}

// New wires the orchestrator. A nil gitRunner gets the real exec-backed
// one; a nil reporter discards progress.
func New(cfg *config.Config, gitRunner git.Runner, reporter pipeline.Reporter, opts Options) *Orchestrator {
	if gitRunner == nil {
		gitRunner = git.NewExecRunner()
	}
	if reporter == nil {
		reporter = pipeline.NullReporter{}
	}
	return &Orchestrator{
		cfg:      cfg,
		actions:  git.NewActions(gitRunner, opts.DryRun),
		runner:   pipeline.New(cfg, reporter),
		reporter: reporter,
		opts:     opts,
	}
}

func (o *Orchestrator) cloneStep() pipeline.Step {
	return pipeline.Step{Name: "clone", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.Clone(ctx, r)
	}}
}

func (o *Orchestrator) pullStep() pipeline.Step {
	return pipeline.Step{Name: "pull", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.Pull(ctx, r)
	}}
}

func (o *Orchestrator) addStep() pipeline.Step {
	return pipeline.Step{Name: "add", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.AddAll(ctx, r)
	}}
}

func (o *Orchestrator) commitStep() pipeline.Step {
	return pipeline.Step{Name: "commit", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.Commit(ctx, r)
	}}
}

func (o *Orchestrator) commitMsgStep(msg string) pipeline.Step {
	return pipeline.Step{Name: "commit", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.CommitWithMessage(ctx, r, msg)
	}}
}

func (o *Orchestrator) pushStep() pipeline.Step {
	return pipeline.Step{Name: "push", Fn: func(ctx context.Context, r *config.Repo) bool {
		return o.actions.Push(ctx, r)
	}}
}

// CloneAll clones every repository permitted to clone.
func (o *Orchestrator) CloneAll(ctx context.Context) pipeline.Summary {
	return o.runner.RunAll(ctx, []pipeline.Step{o.cloneStep()})
}

// PullAll pulls every repository permitted to pull.
func (o *Orchestrator) PullAll(ctx context.Context) pipeline.Summary {
	return o.runner.RunAll(ctx, []pipeline.Step{o.pullStep()})
}

// AddAll stages everything in every repository permitted to add.
func (o *Orchestrator) AddAll(ctx context.Context) pipeline.Summary {
	return o.runner.RunAll(ctx, []pipeline.Step{o.addStep()})
}

// CommitAll runs a bare git commit in every repository permitted to
// commit.
func (o *Orchestrator) CommitAll(ctx context.Context) pipeline.Summary {
	return o.runner.RunAll(ctx, []pipeline.Step{o.commitStep()})
}

// CommitAllMsg commits with the given message in every repository
// permitted to commit.
func (o *Orchestrator) CommitAllMsg(ctx context.Context, msg string) pipeline.Summary {
	if msg == "" {
		msg = DefaultCommitMessage
	}
	return o.runner.RunAll(ctx, []pipeline.Step{o.commitMsgStep(msg)})
}

// Quick runs pull, add, commit and push on every repository,
// continue-on-error: each step is attempted regardless of earlier
// failures.
func (o *Orchestrator) Quick(ctx context.Context, msg string) pipeline.Summary {
	return o.runner.RunAll(ctx, o.quickSteps(msg))
}

// Fast runs the same steps as Quick but stop-on-error: a repository's
// first failing step ends its remaining steps.
func (o *Orchestrator) Fast(ctx context.Context, msg string) pipeline.Summary {
	return o.runner.RunSeries(ctx, o.quickSteps(msg))
}

func (o *Orchestrator) quickSteps(msg string) []pipeline.Step {
	if msg == "" {
		msg = DefaultCommitMessage
	}
	return []pipeline.Step{
		o.pullStep(),
		o.addStep(),
		o.commitMsgStep(msg),
		o.pushStep(),
	}
}

// LinkResult is the outcome of resolving one declared link.
type LinkResult struct {
	Category string
	Name     string
	Result   link.Result
}

// LinkSummary aggregates a LinkAll run.
type LinkSummary struct {
	Results []LinkResult
}

// Failed counts the rejected or failed links.
func (s LinkSummary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if !r.Result.OK() {
			n++
		}
	}
	return n
}

// LinkAll resolves every link in every category. One link's failure
// never blocks another.
func (o *Orchestrator) LinkAll(ctx context.Context) LinkSummary {
	logger := logging.GetLogger("ops")
	linkOpts := link.Options{Force: o.opts.Force, DryRun: o.opts.DryRun}

	var summary LinkSummary
	for _, catName := range o.cfg.CategoryNames() {
		cat := o.cfg.Categories[catName]
		for _, linkName := range cat.LinkNames() {
			if ctx.Err() != nil {
				logger.Warn().Err(ctx.Err()).Msg("link run cancelled")
				return summary
			}

			l := cat.Links[linkName]
			o.reporter.StepStart(l.Name, "link")
			res := link.Resolve(&l, linkOpts)
			o.reporter.StepDone(l.Name, res.Status.Message(), res.OK())

			summary.Results = append(summary.Results, LinkResult{
				Category: catName,
				Name:     linkName,
				Result:   res,
			})
		}
	}
	return summary
}

// Jump resolves a repository's working directory or a link's rx path by
// category and name, repositories first.
func (o *Orchestrator) Jump(category, name string) (string, error) {
	if repo, err := o.cfg.FindRepo(category, name); err == nil {
		return repo.WorkDir(), nil
	}
	if l, err := o.cfg.FindLink(category, name); err == nil {
		return l.Rx, nil
	}
	return "", errors.Newf(errors.ErrNotFound, "nothing named %s in category %s", name, category)
}
