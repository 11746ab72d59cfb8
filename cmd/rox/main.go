package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mgomes/rox/internal/config"
	"github.com/mgomes/rox/internal/logging"
)

var version = "0.1.0"

// exitDataError is returned when the input has lexical or parse errors.
const exitDataError = 65

// exitError carries a process exit status. Its diagnostics have already been
// written when it is returned.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *log.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	errStyle lipgloss.Style
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.Discard(),
	}

	var cfgFile, logLevel string

	root := &cobra.Command{
		Use:   "rox",
		Short: "Lox scanner and expression parser",
		Long: `rox tokenizes Lox source and parses Lox expressions.

Commands:
  tokenize  Print the token stream of a file
  parse     Print the syntax tree of an expression
  check     Report lexical and syntax errors in files or directories
  repl      Parse expressions interactively
  lsp       Serve diagnostics over the language server protocol`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			logger, err := logging.New(a.stderr, cfg.Log.Level)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			a.errStyle = lipgloss.NewRenderer(a.stderr).NewStyle().Foreground(lipgloss.Color("#EF4444"))
			if cfg.Path != "" {
				logger.Debug("loaded config", "path", cfg.Path)
			}
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $ROX_CONFIG or ./rox.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newREPLCmd(a),
		newLSPCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "rox v%s\n", version)
			fmt.Fprintf(a.stdout, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(a.stdout, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// reportErrors writes one diagnostic line per error to stderr.
func (a *app) reportErrors(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(a.stderr, a.errStyle.Render(line))
	}
}

// readSource returns the text to work on: the -e expression when set,
// otherwise the named file. The returned name is used in messages.
func (a *app) readSource(args []string, expr string, exprSet bool) (name, source string, err error) {
	if exprSet {
		if len(args) > 0 {
			return "", "", errors.New("pass either a file or -e, not both")
		}
		return "<expr>", expr, nil
	}
	if len(args) != 1 {
		return "", "", errors.New("source file required")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	a.logger.Debug("read source", "file", args[0], "bytes", len(data))
	return args[0], string(data), nil
}
