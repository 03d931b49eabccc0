package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/niels/pre-commit-checkstyle/pkg/checkstyle"
	"github.com/niels/pre-commit-checkstyle/pkg/classify"
	"github.com/niels/pre-commit-checkstyle/pkg/config"
	"github.com/niels/pre-commit-checkstyle/pkg/git"
	"github.com/niels/pre-commit-checkstyle/pkg/hook"
	"github.com/niels/pre-commit-checkstyle/pkg/logging"
	"github.com/niels/pre-commit-checkstyle/pkg/output"
	"github.com/niels/pre-commit-checkstyle/pkg/runner"
	"github.com/niels/pre-commit-checkstyle/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	debug       bool
	showVersion bool
	noColor     bool
	force       bool
	binaryPath  string
	cfg         *config.Config
	cmdRunner   runner.Runner
)

// ExitError carries a non-zero hook exit status through cobra
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmd creates the root command for pre-commit-checkstyle
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithRunner(runner.NewExecRunner())
}

// NewRootCmdWithRunner creates the root command with a custom process runner
// This is primarily used for testing
func NewRootCmdWithRunner(r runner.Runner) *cobra.Command {
	cmdRunner = r

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: version.Description,
		Long: fmt.Sprintf(`%s - %s

Run from .git/hooks/pre-commit. Staged C sources and headers are passed to
the checkstyle tool and the commit is aborted when it reports violations.
`, version.AppName, version.Description),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Resolve(configPath)

			logging.InitGlobalLogger(debug, cfg)
			logging.DebugWith("Configuration resolved", map[string]interface{}{
				"config":     configPath,
				"tool":       cfg.Checkstyle.Tool,
				"extensions": cfg.Extensions,
				"timeout":    cfg.Timeout().String(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
				return nil
			}

			ctx, cancel := hookContext(cmd.Context())
			defer cancel()

			code := newDriver(cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(ctx)
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newInstallCmd())

	return rootCmd
}

func newInstallCmd() *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook into the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hooksDir, err := git.NewRepositoryWithRunner(cmdRunner, ".").HooksDir(ctx)
			if err != nil {
				return fmt.Errorf("locating hooks directory: %w", err)
			}

			binary := binaryPath
			if binary == "" {
				if binary, err = os.Executable(); err != nil {
					return fmt.Errorf("locating executable: %w", err)
				}
			}

			path, err := hook.Install(hooksDir, binary, force)
			if err != nil {
				return err
			}

			logging.InfoWith("Hook installed", map[string]interface{}{
				"path":   path,
				"binary": binary,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s hook at %s\n", hook.Name, path)
			return nil
		},
	}

	installCmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing pre-commit hook")
	installCmd.Flags().StringVar(&binaryPath, "binary", "", "Program the hook runs (defaults to this executable)")

	return installCmd
}

func newDriver(out io.Writer, errOut io.Writer) *hook.Driver {
	formatter := output.NewTerminalFormatter(!noColor && cfg.ColorEnabled(!color.NoColor))

	checker := checkstyle.NewChecker(cfg.Checkstyle.Tool,
		checkstyle.WithRunner(cmdRunner),
		checkstyle.WithOutput(out, errOut),
		checkstyle.WithFormatter(formatter),
	)

	return hook.NewDriver(
		git.NewRepositoryWithRunner(cmdRunner, "."),
		classify.NewClassifier(cfg.Extensions...),
		checker,
	).WithErrorOutput(errOut)
}

func hookContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}

// ExitCode maps the result of a command run to a process exit status
func ExitCode(err error, errOut io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(errOut, "Error: %s\n", err)
	return 1
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main().
func Execute() int {
	err := NewRootCmd().Execute()
	logging.Close()
	return ExitCode(err, os.Stderr)
}
