package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alchemmist/tp/internal/app"
	"github.com/alchemmist/tp/internal/config"
	"github.com/alchemmist/tp/internal/logger"
	"github.com/alchemmist/tp/internal/project"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(config.Default(), stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer logger.Close()

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "tp: %s\n", formatError(err))
		return 1
	}
	return 0
}

func newRootCmd(base config.Config, out io.Writer) *cobra.Command {
	cfg := base

	root := &cobra.Command{
		Use:           "tp",
		Short:         "A simple tmux project loader",
		Long:          "tp creates tmux sessions from YAML or TOML project files and switches to them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cfg, cmd.Flags().Changed("log-file"))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.TmuxBin, "tmux-bin", base.TmuxBin, "tmux binary")
	flags.StringVar(&cfg.SessionsDir, "sessions-dir", base.SessionsDir, "project files directory")
	flags.BoolVar(&cfg.Debug, "debug", base.Debug, "enable debug logging")
	flags.StringVar(&cfg.LogFile, "log-file", base.LogFile, "debug log destination")

	root.AddCommand(
		newLoadCmd(&cfg, out),
		newListCmd(&cfg, out),
		newNewCmd(&cfg, out),
		newPickCmd(&cfg, out),
	)
	return root
}

// initLogging only opens a log file when asked to, so plain runs leave no
// trace on disk.
func initLogging(cfg config.Config, explicit bool) error {
	if !cfg.Debug && !explicit {
		return nil
	}
	logger.SetDebug(cfg.Debug)
	return logger.Init(cfg.LogFile)
}

func newLoadCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "load <project>",
		Short: "Create the project's session if needed and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return load(app.New(*cfg), args[0], dryRun, out)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print tmux commands instead of running them")
	return cmd
}

func newListCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, p := range app.New(*cfg).Summaries() {
				if p.Err != nil {
					fmt.Fprintf(out, "%s\t%s\n", p.Name, color.New(color.FgRed).Sprint("invalid"))
					continue
				}
				fmt.Fprintf(out, "%s\t%dw/%dp\n", p.Name, p.Windows, p.Panes)
			}
			return nil
		},
	}
}

func newNewCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Write a starter project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := app.New(*cfg).CreateProject(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("created"), path)
			return nil
		},
	}
}

func newPickCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	var useFZF bool
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a project interactively and load it",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a := app.New(*cfg)
			var (
				name string
				err  error
			)
			if useFZF {
				name, err = a.SelectWithFZF()
			} else {
				name, err = a.SelectWithTUI()
			}
			if err != nil {
				return err
			}
			return load(a, name, false, out)
		},
	}
	cmd.Flags().BoolVar(&useFZF, "fzf", false, "use fzf instead of the built-in picker")
	return cmd
}

func load(a *app.App, name string, dryRun bool, out io.Writer) error {
	opts := app.LoadOptions{DryRun: dryRun, Out: out}
	if !dryRun {
		opts.Ready = func(sess project.Session, created bool) {
			fmt.Fprintln(out, summary(sess, created))
		}
	}
	_, err := a.Load(name, opts)
	return err
}

func summary(sess project.Session, created bool) string {
	if !created {
		return fmt.Sprintf("%s to existing session %s", color.New(color.FgBlue).Sprint("switched"), sess.Name)
	}
	return fmt.Sprintf("%s session %s (%d windows, %d panes)",
		color.New(color.FgGreen).Sprint("created"), sess.Name, len(sess.Windows), sess.PaneCount())
}

func formatError(err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Sprintf("not found: %v", err)
	}
	return err.Error()
}
