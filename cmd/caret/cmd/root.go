package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"kriskowal.com/go/caret"
	"kriskowal.com/go/caret/internal/config"
	"kriskowal.com/go/caret/internal/logging"
)

// rootOptions holds the flag values of one command tree.
type rootOptions struct {
	cfgFile  string
	verbose  bool
	maxDepth int
	strict   bool

	input  string
	format string
	indent int
}

// Execute runs the caret command with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "caret [OUTPUT]",
		Short: "Convert caret configuration documents to JSON or YAML",
		Long: `caret reads a configuration document, resolves its constants and
writes the resulting value as JSON or YAML.

The document is read from stdin unless --input is given. The result goes to
OUTPUT, or to stdout when OUTPUT is omitted or "-". Nothing is written to
OUTPUT when the document fails to parse.

Examples:
  caret < server.cfg
  caret --input server.cfg server.json
  caret --format yaml --strict -i server.cfg`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config file (default: $"+config.EnvVar+", ./caret.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", caret.DefaultMaxDepth, "Maximum list and map nesting")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Reject content after the top-level value")

	rootCmd.Flags().StringVarP(&opts.input, "input", "i", "", "Read the document from this file instead of stdin")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatJSON, "Output format (json, yaml)")
	rootCmd.Flags().IntVar(&opts.indent, "indent", 2, "Indentation in spaces; 0 gives compact JSON, YAML uses at least 2")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig reads the config file and applies flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.cfgFile != "" {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("format") {
		cfg.Format = strings.ToLower(opts.format)
	}
	if flags.Changed("indent") {
		cfg.Indent = opts.indent
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, opts *rootOptions) logr.Logger {
	return logging.WithBuild(logging.New(cmd.ErrOrStderr(), opts.verbose), Version)
}

func parseOptions(cfg *config.Config, logger logr.Logger) caret.Options {
	return caret.Options{
		MaxDepth: cfg.MaxDepth,
		Strict:   cfg.Strict,
		Logger:   logger,
	}
}

func runConvert(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, opts)

	data, filename, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	parseOpts := parseOptions(cfg, logger)
	parseOpts.Filename = filename
	value, err := caret.UnmarshalOptions(data, parseOpts)
	if err != nil {
		return err
	}

	out, err := render(value, cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "-" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(args[0], out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.V(1).Info("wrote output", "path", args[0], "bytes", len(out))
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input: %w", err)
	}
	return data, path, nil
}

// render encodes value in the configured format, ending with a newline.
func render(value caret.Value, cfg *config.Config) ([]byte, error) {
	if cfg.Format == config.FormatYAML {
		return caret.MarshalYAMLIndent(value, cfg.Indent)
	}

	var (
		out []byte
		err error
	)
	if cfg.Indent > 0 {
		out, err = caret.MarshalJSONIndent(value, "", strings.Repeat(" ", cfg.Indent))
	} else {
		out, err = caret.MarshalJSON(value)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
