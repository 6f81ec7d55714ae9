package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/framegrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// renderFlags holds the raw values of the render command's flags.
type renderFlags struct {
	document    string
	composition string
	frame       int
	recursive   bool
	width       float64
	height      float64
	logFormat   string
	logLevel    string
	settings    string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly (help was shown),
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if args == nil {
		args = []string{}
	}

	var cfg *app.Config
	root := newRootCommand()
	root.AddCommand(newRenderCommand(func(c *app.Config) { cfg = c }))
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		slog.Debug("No render requested, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "framegrid",
		Short: "Per-frame evaluation of animation compositions",
		Long: `framegrid evaluates animation documents frame by frame.
It resolves keyframed property values, runs node graphs and array modifiers,
and composes layer transforms, writing the result as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newRenderCommand(done func(*app.Config)) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [DOCUMENT_PATH]",
		Short: "Evaluate one composition frame",
		Long: `Evaluates a composition of an HCL document at a frame and prints its
render values. DOCUMENT_PATH is a single .hcl file or a directory containing
.hcl files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, f, done)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.document, "document", "d", "", "path to the document file or directory")
	flags.StringVarP(&f.composition, "composition", "c", "", "id of the composition to evaluate")
	flags.IntVarP(&f.frame, "frame", "f", 0, "frame to evaluate (default: the composition's current frame)")
	flags.BoolVar(&f.recursive, "recursive", false, "apply array modifiers and descend into nested compositions")
	flags.Float64Var(&f.width, "width", 0, "container width exposed to graphs (default: composition width)")
	flags.Float64Var(&f.height, "height", 0, "container height exposed to graphs (default: composition height)")
	flags.StringVar(&f.logFormat, "log-format", "json", "log output format. Options: 'text' or 'json'")
	flags.StringVar(&f.logLevel, "log-level", "info", "logging level. Options: 'debug', 'info', 'warn', 'error'")
	flags.StringVar(&f.settings, "config", "", "path to a YAML settings file")
	return cmd
}

// runRender merges the settings file with the flags, flags taking
// precedence, and validates the result.
func runRender(cmd *cobra.Command, args []string, f *renderFlags, done func(*app.Config)) error {
	flags := cmd.Flags()

	settings := &app.Settings{}
	if f.settings != "" {
		s, err := app.LoadSettings(f.settings)
		if err != nil {
			return err
		}
		settings = s
	}

	path := f.document
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	slog.Debug("Document path determined.", "path", path)
	if path == "" {
		slog.Debug("No document path provided, printing usage and exiting.")
		return cmd.Usage()
	}

	logFormat := strings.ToLower(settings.LogFormat())
	if flags.Changed("log-format") {
		logFormat = strings.ToLower(f.logFormat)
	}
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(settings.LogLevel())
	if flags.Changed("log-level") {
		logLevel = strings.ToLower(f.logLevel)
	}
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	recursive := settings.Recursive()
	if flags.Changed("recursive") {
		recursive = f.recursive
	}
	width, height := settings.Render.Container.Width, settings.Render.Container.Height
	if flags.Changed("width") {
		width = f.width
	}
	if flags.Changed("height") {
		height = f.height
	}

	var frame *int
	if flags.Changed("frame") {
		frame = &f.frame
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		DocumentPath:  path,
		CompositionID: f.composition,
		Frame:         frame,
		Recursive:     recursive,
		Width:         width,
		Height:        height,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return err
	}
	done(cfg)
	return nil
}
