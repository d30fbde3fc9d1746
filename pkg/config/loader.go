package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/grove/pkg/errors"
	"github.com/arthur-debert/grove/pkg/logging"
)

// Load reads, parses and validates the declarative config file. Any
// failure here is fatal to the run; no operation starts on a config that
// did not load cleanly.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("categories", len(cfg.Categories)).
		Msg("config loaded")
	return cfg, nil
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing config yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save serializes the config back to the declarative format. Loading the
// written file yields a field-for-field equal config.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "serializing config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "writing config file %s", path)
	}
	return nil
}

// Validate checks every category member against the schema: flags must be
// known, repositories must carry the fields their kind needs. Kinds other
// than GitRepo have no validator yet and are rejected rather than let
// through unchecked.
func (c *Config) Validate() error {
	for _, catName := range c.CategoryNames() {
		cat := c.Categories[catName]
		if err := validateFlags(cat.Flags); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "category %s", catName)
		}
		for _, repoName := range cat.RepoNames() {
			repo := cat.Repos[repoName]
			if err := validateRepo(&repo); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "repo %s in category %s", repoName, catName)
			}
		}
		for _, linkName := range cat.LinkNames() {
			link := cat.Links[linkName]
			if link.Rx == "" || link.Tx == "" {
				return errors.Newf(errors.ErrConfigValid, "link %s in category %s needs both rx and tx", linkName, catName)
			}
		}
	}
	return nil
}

func validateRepo(repo *Repo) error {
	if err := validateFlags(repo.Flags); err != nil {
		return err
	}
	switch repo.Kind {
	case KindGitRepo, "":
		// Empty kind defaults to GitRepo for wire compatibility.
		return validateGitRepo(repo)
	case KindGitHubRepo, KindGitLabRepo, KindGiteaRepo, KindURLRepo, KindLink:
		return errors.Newf(errors.ErrNotImplemented, "validator for repo kind %s is not implemented", repo.Kind)
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown repo kind: %s", repo.Kind)
	}
}

func validateGitRepo(repo *Repo) error {
	if repo.Name == "" {
		return errors.New(errors.ErrConfigValid, "repo needs a name")
	}
	if repo.Path == "" {
		return errors.New(errors.ErrConfigValid, "repo needs a path")
	}
	if repo.URL == "" && repo.Flags.Permits(OpClone) {
		return errors.Newf(errors.ErrConfigValid, "repo %s is clonable but has no url", repo.Name)
	}
	return nil
}

func validateFlags(flags FlagSet) error {
	for _, f := range flags {
		if _, ok := knownFlags[f]; !ok {
			return errors.Newf(errors.ErrConfigValid, "unknown flag: %s", f)
		}
	}
	return nil
}
