// Package link materializes declared symlinks. The resolver classifies
// whatever already sits at the link location before doing anything, and
// every ambiguous or conflicting state is a rejection: an incorrect
// overwrite would destroy a real dotfile, so nothing is replaced unless
// Force is explicitly set.
package link

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Status classifies the outcome of resolving one link.
type Status string

const (
	// StatusCreated means the symlink was created.
	StatusCreated Status = "created"
	// StatusAlreadyLinked means rx is already a symlink to tx. The only
	// conflict state that counts as success; re-running is safe.
	StatusAlreadyLinked Status = "already-linked"
	// StatusDifferentLink means rx is a symlink to something else.
	StatusDifferentLink Status = "different-link"
	// StatusBrokenSymlink means rx is a symlink whose target is gone.
	StatusBrokenSymlink Status = "broken-symlink"
	// StatusFileExists means rx is a regular file or directory.
	StatusFileExists Status = "file-exists"
	// StatusFailed means probing or creating failed with an I/O error.
	StatusFailed Status = "failed"
)

// Message returns the user-facing description of a status.
func (s Status) Message() string {
	switch s {
	case StatusCreated:
		return "linked"
	case StatusAlreadyLinked:
		return "already linked"
	case StatusDifferentLink:
		return "link to different file exists"
	case StatusBrokenSymlink:
		return "broken symlink exists"
	case StatusFileExists:
		return "file exists"
	case StatusFailed:
		return "failed"
	}
	return string(s)
}

// Result is the outcome of resolving one link.
type Result struct {
	Status Status
	// Err carries the cause for StatusFailed results.
	Err error
}

// OK reports whether the outcome counts as success.
func (r Result) OK() bool {
	return r.Status == StatusCreated || r.Status == StatusAlreadyLinked
}

// Options carries the explicit run options for the resolver.
type Options struct {
	// Force resolves different-link and file-exists by moving the
	// existing rx aside to rx~ before creating, and recreates broken
	// symlinks.
	Force bool
	// DryRun classifies without touching the filesystem.
	DryRun bool
}

// Resolve brings one declared link into existence, or reports why it
// cannot. The filesystem is never mutated on a rejection.
func Resolve(l *config.Link, opts Options) Result {
	logger := logging.GetLogger("link")

	status, err := classify(l)
	if err != nil {
		logger.Error().Err(err).Str("tx", l.Tx).Str("rx", l.Rx).Msg("probing link location failed")
		return Result{Status: StatusFailed, Err: err}
	}

	switch status {
	case StatusAlreadyLinked:
		logger.Debug().Str("tx", l.Tx).Str("rx", l.Rx).Msg("already linked")
		return Result{Status: StatusAlreadyLinked}

	case StatusDifferentLink, StatusFileExists, StatusBrokenSymlink:
		if !opts.Force {
			logger.Error().
				Str("tx", l.Tx).
				Str("rx", l.Rx).
				Str("state", string(status)).
				Msg("not linking over existing state")
			return Result{Status: status}
		}
		if opts.DryRun {
			logger.Info().Str("rx", l.Rx).Msg("dry run, would replace and link")
			return Result{Status: StatusCreated}
		}
		if err := clear(l.Rx, status); err != nil {
			return Result{Status: StatusFailed, Err: err}
		}

	case StatusCreated:
		if opts.DryRun {
			logger.Info().Str("tx", l.Tx).Str("rx", l.Rx).Msg("dry run, would link")
			return Result{Status: StatusCreated}
		}
	}

	if err := os.Symlink(l.Tx, l.Rx); err != nil {
		logger.Error().Err(err).Str("tx", l.Tx).Str("rx", l.Rx).Msg("creating link failed")
		return Result{
			Status: StatusFailed,
			Err:    errors.Wrapf(err, errors.ErrLinkCreate, "linking %s -> %s", l.Tx, l.Rx),
		}
	}

	logger.Debug().Str("tx", l.Tx).Str("rx", l.Rx).Msg("link created")
	return Result{Status: StatusCreated}
}

// classify inspects the filesystem state at rx. StatusCreated stands in
// for "nothing there, safe to create".
func classify(l *config.Link) (Status, error) {
	info, err := os.Lstat(l.Rx)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusCreated, nil
		}
		return StatusFailed, errors.Wrapf(err, errors.ErrIO, "probing %s", l.Rx)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return StatusFileExists, nil
	}

	rxTarget, err := filepath.EvalSymlinks(l.Rx)
	if err != nil {
		// The symlink is there but its target is not.
		return StatusBrokenSymlink, nil
	}

	txTarget, err := filepath.EvalSymlinks(l.Tx)
	if err != nil {
		return StatusFailed, errors.Wrapf(err, errors.ErrIO, "canonicalizing %s", l.Tx)
	}

	if rxTarget == txTarget {
		return StatusAlreadyLinked, nil
	}
	return StatusDifferentLink, nil
}

// clear moves a conflicting rx out of the way. Links to other files and
// regular files are kept as a backup; a broken symlink has nothing worth
// keeping.
func clear(rx string, status Status) error {
	if status == StatusBrokenSymlink {
		if err := os.Remove(rx); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "removing broken symlink %s", rx)
		}
		return nil
	}
	backup := rx + "~"
	if err := os.Rename(rx, backup); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "backing up %s to %s", rx, backup)
	}
	return nil
}
