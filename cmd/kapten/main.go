// Command kapten is a configuration manager in your pocket: it loads
// one or more configuration files, merges them left to right, and
// prints the result in any supported format or the value at a single
// dotted path.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/0xalexb/kapten"
	"github.com/0xalexb/kapten/handler"
	"github.com/0xalexb/kapten/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoConfigFiles = errors.New("no config files supplied")

var errTopLevelNotMapping = errors.New("top level is not a mapping")

type options struct {
	handlerName string
	exportName  string
	key         string
	indent      int
	logLevel    string
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "kapten [flags] config_file[:handler]...",
		Short:         "Configuration manager in your pocket",
		Long:          "Kapten loads configuration from JSON, YAML, INI or Starlark sources,\nmerges multiple files left to right and prints the result.\nUse \"-\" to read from standard input; append \":handler\" to force a format.",
		Version:       kapten.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()

				return errNoConfigFiles
			}

			logger := logging.NewLogger(logging.Config{Level: opts.logLevel}, cmd.ErrOrStderr())
			slog.SetDefault(logger)

			return run(opts, args, stdin, stdout, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.handlerName, "handler", "json", "default handler for ambiguous or stdin input")
	cmd.Flags().StringVarP(&opts.exportName, "export", "e", "json", "format to export to")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "dotted path to print instead of the whole tree")
	cmd.Flags().IntVarP(&opts.indent, "indent", "i", 0, "indentation width for formats that support it")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func run(opts *options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	defaultFormat, err := handler.ParseFormat(opts.handlerName)
	if err != nil {
		return fmt.Errorf("--handler: %w", err)
	}

	exportFormat, err := handler.ParseFormat(opts.exportName)
	if err != nil {
		return fmt.Errorf("--export: %w", err)
	}

	base := kapten.New()

	for _, arg := range args {
		store, err := loadOne(arg, defaultFormat, stdin, stderr)
		if err != nil {
			return err
		}

		tree, err := store.Get("")
		if err != nil {
			return err
		}

		mapping, ok := tree.(map[string]any)
		if !ok {
			return fmt.Errorf("%q: %w", arg, errTopLevelNotMapping)
		}

		if mergeErr := base.Merge(mapping).Err(); mergeErr != nil {
			return mergeErr
		}
	}

	if opts.key != "" {
		value, err := base.Get(opts.key)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "%v\n", value)

		return nil
	}

	var dumpOpts []handler.DumpOption

	if opts.indent > 0 {
		dumpOpts = append(dumpOpts, handler.WithIndent(opts.indent))
	}

	out, err := base.ExportTo(exportFormat, dumpOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, strings.TrimRight(string(out), "\n"))

	return nil
}

// loadOne imports a single config_file argument of the form
// "path[:handler]" or "-" for standard input.
func loadOne(arg string, defaultFormat handler.Format, stdin io.Reader, stderr io.Writer) (*kapten.Store, error) {
	path, forced := splitArg(arg)

	if path == "-" {
		return loadStdin(forced, defaultFormat, stdin, stderr)
	}

	format := defaultFormat

	if forced != "" {
		parsed, err := handler.ParseFormat(forced)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", arg, err)
		}

		format = parsed
	} else if inferred, ok := handler.FromPath(path); ok {
		format = inferred
	}

	store := kapten.New()

	err := store.ImportFile(path, format)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func loadStdin(forced string, defaultFormat handler.Format, stdin io.Reader, stderr io.Writer) (*kapten.Store, error) {
	format := defaultFormat

	if forced != "" {
		parsed, err := handler.ParseFormat(forced)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}

		format = parsed
	}

	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprintln(stderr, "reading configuration from terminal, press Ctrl-D to finish")
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	store := kapten.New(kapten.WithFormat(format))

	err = store.Import(string(raw))
	if err != nil {
		return nil, err
	}

	return store, nil
}

// splitArg separates a "path[:handler]" argument. The handler suffix is
// only recognized after the last colon so that paths containing colons
// still work when no format is forced.
func splitArg(arg string) (path, forced string) {
	idx := strings.LastIndex(arg, ":")
	if idx < 0 {
		return arg, ""
	}

	if _, err := handler.ParseFormat(arg[idx+1:]); err != nil {
		return arg, ""
	}

	return arg[:idx], arg[idx+1:]
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errNoConfigFiles) {
			fmt.Fprintln(os.Stderr, "kapten:", err)
		}

		os.Exit(1)
	}
}
