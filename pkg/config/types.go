// Package config holds the declarative model grove operates on: a YAML
// file mapping category names to categories, each owning repositories and
// links, plus the capability flags gating git operations.
package config

import (
	"sort"

	"github.com/arthur-debert/grove/pkg/errors"
)

// Kind distinguishes plain-git repositories from hosted-provider ones.
// Only GitRepo is validated; the other kinds are declared but their
// validators are not implemented yet.
type Kind string

const (
	KindGitRepo    Kind = "GitRepo"
	KindGitHubRepo Kind = "GitHubRepo"
	KindGitLabRepo Kind = "GitLabRepo"
	KindGiteaRepo  Kind = "GiteaRepo"
	KindURLRepo    Kind = "UrlRepo"
	KindLink       Kind = "Link"
)

// Repo describes a single git repository checkout.
type Repo struct {
	Name string `yaml:"name"`
	// Path is the parent directory of the checkout, trailing separator
	// included; it is concatenated with Name, never joined.
	Path  string  `yaml:"path"`
	URL   string  `yaml:"url"`
	Kind  Kind    `yaml:"kind,omitempty"`
	Flags FlagSet `yaml:"flags,omitempty"`
}

// WorkDir returns the repository's working directory, Path + Name.
func (r *Repo) WorkDir() string {
	return r.Path + r.Name
}

// Permits reports whether the repository's flags allow op. A repository
// without flags permits nothing.
func (r *Repo) Permits(op Op) bool {
	return r.Flags.Permits(op)
}

// Link describes a symlink to materialize: Tx is the existing source
// file, Rx the symlink location to create.
type Link struct {
	Name string `yaml:"name"`
	Rx   string `yaml:"rx"`
	Tx   string `yaml:"tx"`
}

// Category is a named grouping of repositories and links. All fields are
// optional; an empty category contributes no work.
type Category struct {
	// Flags at the category level are accepted by the schema but not
	// applied to member repositories yet.
	Flags FlagSet         `yaml:"flags,omitempty"`
	Repos map[string]Repo `yaml:"repos,omitempty"`
	Links map[string]Link `yaml:"links,omitempty"`
}

// RepoNames returns the category's repository keys in sorted order.
func (c *Category) RepoNames() []string {
	return sortedKeys(c.Repos)
}

// LinkNames returns the category's link keys in sorted order.
func (c *Category) LinkNames() []string {
	return sortedKeys(c.Links)
}

// Config is the top-level aggregate. It exclusively owns its categories
// and is read-only after load.
type Config struct {
	Categories map[string]Category `yaml:"categories"`
}

// CategoryNames returns the category keys in sorted order. Iteration in
// sorted order keeps output and tests deterministic.
func (c *Config) CategoryNames() []string {
	return sortedKeys(c.Categories)
}

// FindRepo looks up a repository by category and repository name.
func (c *Config) FindRepo(category, name string) (*Repo, error) {
	cat, ok := c.Categories[category]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no such category: %s", category)
	}
	repo, ok := cat.Repos[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no repo %s in category %s", name, category)
	}
	return &repo, nil
}

// FindLink looks up a link by category and link name.
func (c *Config) FindLink(category, name string) (*Link, error) {
	cat, ok := c.Categories[category]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no such category: %s", category)
	}
	link, ok := cat.Links[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no link %s in category %s", name, category)
	}
	return &link, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
