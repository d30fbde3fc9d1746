package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/grove/pkg/config"
	"github.com/arthur-debert/grove/pkg/display"
	"github.com/arthur-debert/grove/pkg/logging"
	"github.com/arthur-debert/grove/pkg/ops"
	"github.com/arthur-debert/grove/pkg/paths"
	"github.com/arthur-debert/grove/pkg/settings"
)

var (
	configFile string
	verbosity  int
	quiet      bool
	noEmoji    bool
	force      bool
	dryRun     bool

	rootCmd = &cobra.Command{
		Use:   "grove",
		Short: "GitOps for the masses",
		Long: `grove is a declarative GitOps and linkfarm orchestrator inspired by
GNU Stow: one YAML file describes your repositories and symlinks, grove
clones, pulls, commits and pushes the repositories and materializes the
links.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/grove/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-step progress output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "Use plain text result markers instead of emoji")
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "Replace conflicting link targets, backing the original up first")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview operations without executing them")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(fastCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(commitMsgCmd)
	rootCmd.AddCommand(jumpCmd)
}

// newOrchestrator loads settings and config and wires the operation
// layer. Flags set on the command line win over the settings file.
func newOrchestrator(cmd *cobra.Command) (*ops.Orchestrator, error) {
	s, err := settings.Load(paths.SettingsFile())
	if err != nil {
		return nil, err
	}

	effQuiet := s.Quiet
	if cmd.Flags().Changed("quiet") {
		effQuiet = quiet
	}
	effEmoji := s.Emoji
	if noEmoji {
		effEmoji = false
	}
	effForce := s.Force
	if cmd.Flags().Changed("force") {
		effForce = force
	}

	path := configFile
	if path == "" {
		path = paths.ConfigFile()
	}
	// The one fatal error class: nothing runs on a config that did not
	// load.
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	reporter := display.NewTerminalReporter(display.Options{
		Quiet: effQuiet,
		Emoji: effEmoji,
	})

	return ops.New(cfg, nil, reporter, ops.Options{
		Force:  effForce,
		DryRun: dryRun,
	}), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grove version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(grove completion bash)

Zsh:
  $ grove completion zsh > "${fpath[1]}/_grove"

Fish:
  $ grove completion fish | source

PowerShell:
  PS> grove completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
