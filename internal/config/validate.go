package config

import (
	"github.com/ariel-frischer/copr-release/internal/errors"
)

// Validate checks that the fields every command needs are present.
func (c *Configuration) Validate() error {
	if c.Package == "" {
		return errors.NewConfigError("package is not set",
			"Set package in "+ProjectConfigPath(),
			"Or export COPR_RELEASE_PACKAGE")
	}
	if c.SpecFile == "" {
		return errors.NewConfigError("spec_file is not set",
			"Set spec_file in "+ProjectConfigPath())
	}
	if c.Changelog == "" {
		return errors.NewConfigError("changelog is not set",
			"Set changelog in "+ProjectConfigPath())
	}
	return nil
}

// ValidateForRelease additionally checks the fields the release pipeline
// needs beyond plain resolution.
func (c *Configuration) ValidateForRelease() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CoprProject == "" {
		return errors.NewConfigError("copr_project is not set",
			"Set copr_project in "+ProjectConfigPath(),
			"Or export COPR_RELEASE_COPR_PROJECT")
	}
	if c.Remote == "" {
		return errors.NewConfigError("remote is not set",
			"Set remote in "+ProjectConfigPath())
	}
	if c.Branch == "" {
		return errors.NewConfigError("branch is not set",
			"Set branch in "+ProjectConfigPath())
	}
	return nil
}
