// Package repository clones branches of the published icons repository.
package repository

import (
	"context"
	"io"
	"os"
	"strings"

	"gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
)

// CloneOptions controls a clone.
type CloneOptions struct {
	// Depth limits history. 0 clones everything.
	Depth int

	// Overwrite removes an existing checkout before cloning.
	Overwrite bool

	// Progress receives the remote's progress output. May be nil.
	Progress io.Writer
}

// Result describes a finished clone.
type Result struct {
	Dir    string
	Branch string
	Head   string
}

// Cloner clones single branches of one remote.
type Cloner struct {
	URL string
}

// New returns a cloner for url, defaulting to the published icons repository.
func New(url string) *Cloner {
	if url == "" {
		url = constants.RepositoryURL
	}
	return &Cloner{URL: url}
}

// Clone checks out branch into dir.
func (c *Cloner) Clone(ctx context.Context, dir, branch string, opts CloneOptions) (*Result, error) {
	if strings.TrimSpace(branch) == "" {
		return nil, errors.NewValidationError("branch", branch, "branch is required")
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.NewValidationError("dir", dir, "target directory is required")
	}
	if opts.Depth < 0 {
		return nil, errors.NewValidationError("depth", opts.Depth, "depth must not be negative")
	}

	if _, err := os.Stat(dir); err == nil {
		if !opts.Overwrite {
			return nil, &errors.ProcessError{
				Operation: "clone " + branch,
				Command:   "git clone",
				Err:       errors.ErrAlreadyExists,
			}
		}
		if err := os.RemoveAll(dir); err != nil {
			return nil, errors.WrapIO("delete", dir, err)
		}
	}

	logging.FromContext(ctx).Debug().
		Str("url", c.URL).
		Str("branch", branch).
		Int("depth", opts.Depth).
		Msg("Cloning branch")

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           c.URL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         opts.Depth,
		Tags:          git.NoTags,
		Progress:      opts.Progress,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		if ctx.Err() != nil {
			return nil, errors.ErrCanceled
		}
		return nil, errors.NewProcessError("clone "+branch, "git clone "+c.URL, "", err)
	}

	res := &Result{Dir: dir, Branch: branch}
	if h, err := repo.Head(); err == nil {
		res.Head = h.Hash().String()
	}
	return res, nil
}

// Head returns the commit hash checked out in dir, or "" if dir is not a
// repository.
func Head(dir string) string {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return ""
	}
	h, err := r.Head()
	if err != nil {
		return ""
	}
	return h.Hash().String()
}
