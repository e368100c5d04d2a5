package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/run-with-secrets/run-with-secrets/internal/config"
	"github.com/run-with-secrets/run-with-secrets/internal/interfaces/di"
	"github.com/run-with-secrets/run-with-secrets/internal/logging"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// Synopsis is the one-line usage shown with usage errors
const Synopsis = "run-with-secrets [-h] [-v] [-u user[:group]] [--prefix P] config [config ...] -- command"

// Exit statuses of the tool itself. A launched command's status is passed
// through unchanged.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// rootFlags holds the raw flag values
type rootFlags struct {
	verbose int
	user    string
	prefix  string
}

// NewRootCommand builds the run-with-secrets command. The command's exit
// status is written to *exitCode once it finishes.
func NewRootCommand(opts di.Options, exitCode *int) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   Synopsis,
		Short: "Run a command with secrets from YAML or JSON files in its environment",
		Long: `run-with-secrets reads one or more YAML or JSON files and runs a shell
command with every top-level key exported as {PREFIX}_{KEY}. The secrets
reach only that command; the calling shell's environment is left alone.

When several files define the same key the later file wins and a warning
names the file that was used. Mappings and lists are passed as compact JSON.

With --user the command runs as another user, and optionally group, which
usually requires starting as root.`,
		Example: `  # Run a deploy script with secrets from two files
  run-with-secrets base.yaml prod.json -- ./deploy.sh --now

  # Use APP_ instead of SECRET_ and drop to the app user
  sudo run-with-secrets --prefix app -u app:app secrets.yaml -- 'echo $APP_TOKEN'`,
		Version:               Version,
		Args:                  cobra.ArbitraryArgs,
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := ParseInvocation(args, cmd.ArgsLenAtDash())
			if err != nil {
				return err
			}

			settings, err := resolveSettings(cmd, flags, opts.Environment)
			if err != nil {
				return err
			}

			code, err := run(cmd.Context(), settings, inv, opts)
			if err != nil {
				return err
			}
			*exitCode = code
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.Flags().CountVarP(&flags.verbose, "verbose", "v", "Log progress to stderr; repeat for debug output")
	rootCmd.Flags().StringVarP(&flags.user, "user", "u", "", "Run the command as user[:group]")
	rootCmd.Flags().StringVar(&flags.prefix, "prefix", config.Defaults().Prefix, "Prefix for environment variable names")

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// resolveSettings layers defaults, RUN_WITH_SECRETS_* and the flags that
// were set explicitly
func resolveSettings(cmd *cobra.Command, flags *rootFlags, environment map[string]string) (config.Settings, error) {
	var layer config.Settings

	if cmd.Flags().Changed("prefix") {
		if flags.prefix == "" {
			return config.Settings{}, fmt.Errorf("%w: %w", ErrUsage, config.ErrEmptyPrefix)
		}
		layer.Prefix = flags.prefix
	}
	if cmd.Flags().Changed("user") {
		if flags.user == "" {
			return config.Settings{}, fmt.Errorf("%w: user cannot be empty", ErrUsage)
		}
		layer.User = flags.user
	}
	layer.Verbose = flags.verbose

	settings, err := config.NewBuilder().WithEnv(environment).With(layer).Build()
	if err != nil {
		return config.Settings{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return settings, nil
}

// Execute runs the tool with args and returns the process exit status
func Execute(ctx context.Context, args []string, opts di.Options) int {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var stdout io.Writer = os.Stdout
	if opts.Stdout != nil {
		stdout = opts.Stdout
	}

	// cobra falls back to os.Args for nil args
	if args == nil {
		args = []string{}
	}

	exitCode := 0
	rootCmd := NewRootCommand(opts, &exitCode)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reporter := logging.NewConsoleReporter(stderr)
		reporter.Errorf("%v", err)
		if errors.Is(err, ErrUsage) {
			reporter.Usage(Synopsis)
			return ExitUsage
		}
		return ExitFailure
	}

	return exitCode
}
