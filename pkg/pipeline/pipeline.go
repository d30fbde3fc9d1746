// Package pipeline applies an ordered list of named operations across
// every repository of every category. Two failure policies exist:
// continue-on-error runs every step everywhere regardless of prior
// failures, stop-on-error abandons a repository's remaining steps on its
// first failure but always moves on to the next repository.
package pipeline

import (
	"context"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Step is one named operation applied per repository.
type Step struct {
	Name string
	Fn   func(ctx context.Context, repo *config.Repo) bool
}

// Reporter receives every step outcome before control returns to the
// caller. Terminal progress output lives behind this interface.
type Reporter interface {
	StepStart(repo, op string)
	StepDone(repo, op string, ok bool)
}

// NullReporter discards all progress events.
type NullReporter struct{}

func (NullReporter) StepStart(string, string) {}

func (NullReporter) StepDone(string, string, bool) {}

// Result records the outcome of one step on one repository.
type Result struct {
	Category string
	Repo     string
	Step     string
	OK       bool
}

// Summary aggregates the results of a pipeline run.
type Summary struct {
	Results []Result
}

// Failed counts the failed steps.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if !r.OK {
			n++
		}
	}
	return n
}

// OK reports whether every step succeeded.
func (s Summary) OK() bool {
	return s.Failed() == 0
}

// Runner traverses a config's categories and repositories in sorted
// order. The config is read-only; the runner holds no mutable state
// between runs.
type Runner struct {
	cfg      *config.Config
	reporter Reporter
}

// New builds a Runner. A nil reporter discards progress events.
func New(cfg *config.Config, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NullReporter{}
	}
	return &Runner{cfg: cfg, reporter: reporter}
}

// RunAll applies every step to every repository, continue-on-error: a
// failed step never prevents later steps or later repositories.
func (r *Runner) RunAll(ctx context.Context, steps []Step) Summary {
	return r.run(ctx, steps, false)
}

// RunSeries applies the steps in order per repository, stop-on-error:
// the first failing step ends that repository's remaining steps, other
// repositories still run.
func (r *Runner) RunSeries(ctx context.Context, steps []Step) Summary {
	return r.run(ctx, steps, true)
}

func (r *Runner) run(ctx context.Context, steps []Step, stopOnError bool) Summary {
	logger := logging.GetLogger("pipeline")
	var summary Summary

	for _, catName := range r.cfg.CategoryNames() {
		cat := r.cfg.Categories[catName]
		// Categories without repositories contribute no work.
		for _, repoName := range cat.RepoNames() {
			repo := cat.Repos[repoName]
			for _, step := range steps {
				// Cancellation is honored between steps, never inside a
				// running git subprocess.
				if ctx.Err() != nil {
					logger.Warn().Err(ctx.Err()).Msg("pipeline cancelled")
					return summary
				}

				r.reporter.StepStart(repo.Name, step.Name)
				ok := step.Fn(ctx, &repo)
				r.reporter.StepDone(repo.Name, step.Name, ok)

				summary.Results = append(summary.Results, Result{
					Category: catName,
					Repo:     repoName,
					Step:     step.Name,
					OK:       ok,
				})

				if !ok {
					logger.Debug().
						Str("category", catName).
						Str("repo", repoName).
						Str("step", step.Name).
						Msg("step failed")
					if stopOnError {
						break
					}
				}
			}
		}
	}
	return summary
}
