package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// optionalMsg returns the commit message argument, if given.
func optionalMsg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

var linkCmd = &cobra.Command{
	Use:     "link",
	Aliases: []string{"l"},
	Short:   "Materialize all declared symlinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.LinkAll(cmd.Context())
		return nil
	},
}

var quickCmd = &cobra.Command{
	Use:     "quick [msg]",
	Aliases: []string{"q"},
	Short:   "Pull, add, commit and push all repositories",
	Long: `Runs pull, add, commit and push on every repository. Every step is
attempted even when an earlier one failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.Quick(cmd.Context(), optionalMsg(args))
		return nil
	},
}

var fastCmd = &cobra.Command{
	Use:     "fast [msg]",
	Aliases: []string{"f"},
	Short:   "Like quick, but a repository stops at its first failing step",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.Fast(cmd.Context(), optionalMsg(args))
		return nil
	},
}

var cloneCmd = &cobra.Command{
	Use:     "clone",
	Aliases: []string{"c"},
	Short:   "Clone all repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.CloneAll(cmd.Context())
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:     "pull",
	Aliases: []string{"p"},
	Short:   "Pull all repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.PullAll(cmd.Context())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Stage all changes in all repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.AddAll(cmd.Context())
		return nil
	},
}

var commitCmd = &cobra.Command{
	Use:     "commit",
	Aliases: []string{"ct"},
	Short:   "Commit in all repositories using git's editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.CommitAll(cmd.Context())
		return nil
	},
}

var commitMsgCmd = &cobra.Command{
	Use:     "commit-msg [msg]",
	Aliases: []string{"m"},
	Short:   "Commit in all repositories with the given message",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		o.CommitAllMsg(cmd.Context(), optionalMsg(args))
		return nil
	},
}

var jumpCmd = &cobra.Command{
	Use:     "jump <category> <name>",
	Aliases: []string{"j"},
	Short:   "Print the resolved path of a repository or link",
	Long: `Looks up a repository (printing its working directory) or a link
(printing its symlink location) by category and name, for use as
cd "$(grove jump dots gg)".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		path, err := o.Jump(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
