// Command mfasm assembles MisbitFont sources into font containers.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/misbitfont/mfasm"
	"github.com/misbitfont/mfasm/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	output       string
	manifest     string
	preview      string
	previewScale int
	inspect      bool
	quiet        bool
	verbose      bool
	debugMode    bool
	debugFile    string
	debugPretty  bool
	showVersion  bool
	showHelp     bool
}

func newFlagSet(cfg *config, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("mfasm", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.output, "output", "o", "", "Path of the font container to write")
	fs.StringVar(&cfg.manifest, "manifest", "", "Also write a YAML manifest of the font to this path")
	fs.StringVar(&cfg.preview, "preview", "", "Also write a PNG glyph sheet to this path")
	fs.IntVar(&cfg.previewScale, "preview-scale", 4, "Magnification of the PNG glyph sheet")
	fs.BoolVar(&cfg.inspect, "inspect", false, "Decode an existing container and print its manifest")
	fs.BoolVarP(&cfg.quiet, "quiet", "q", false, "Only report errors")
	fs.BoolVarP(&cfg.verbose, "verbose", "V", false, "Also report every applied directive")
	fs.BoolVar(&cfg.debugMode, "debug", false, "Enable debug trace (outputs to stderr)")
	fs.StringVar(&cfg.debugFile, "debug-file", "", "Write debug trace to file instead of stderr")
	fs.BoolVar(&cfg.debugPretty, "debug-pretty", false, "Use pretty format for debug trace (default: JSON)")
	fs.BoolVarP(&cfg.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&cfg.showHelp, "help", "h", false, "Show help message")
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg, stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if cfg.showVersion {
		fmt.Fprintf(stdout, "mfasm version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	rest := fs.Args()
	if len(rest) != 1 {
		if len(rest) == 0 {
			fmt.Fprintln(stderr, "Error: no input file given")
		} else {
			fmt.Fprintf(stderr, "Error: expected one input file, got %d\n", len(rest))
		}
		printHelp(stderr, fs)
		return 1
	}
	input := rest[0]

	if cfg.inspect {
		return inspect(input, stdout, stderr)
	}

	if err := validatePaths(input, cfg.output); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	src, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: unable to open '%s': %v\n", input, err)
		return 1
	}
	defer src.Close()

	session, closeDebug, err := openDebug(&cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
		return 1
	}
	defer closeDebug()

	logger := newLogger(stderr, input, cfg.quiet, cfg.verbose)
	logger.Infof("assembling %s to %s", input, cfg.output)

	font, err := mfasm.Assemble(src,
		mfasm.WithSource(input),
		mfasm.WithLogger(logger),
		mfasm.WithDebug(session))
	if err != nil {
		var asmErr *mfasm.AssemblyError
		if errors.As(err, &asmErr) {
			logger.Errorf("%s, no output written", summary(asmErr.Errors, asmErr.Warnings))
			return 1
		}
		logger.Errorf("%v", err)
		return 1
	}

	n, err := writeContainer(font, cfg.output)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	session.Emit("write", "Done", debug.WriteDoneData{BytesWritten: n})

	if cfg.manifest != "" {
		if err := writeManifest(font, cfg.manifest); err != nil {
			logger.Errorf("%v", err)
			return 1
		}
	}
	if cfg.preview != "" {
		if err := writePreview(font, cfg.preview, cfg.previewScale); err != nil {
			logger.Errorf("%v", err)
			return 1
		}
	}

	logger.Infof("%s", summary(0, len(font.Warnings)))
	logger.Infof("%s assembled in total, %d bytes written", plural(font.Len(), "glyph"), n)
	return 0
}

// validatePaths checks the arguments before any parsing.
func validatePaths(input, output string) error {
	if output == "" {
		return errors.New("no output file given, use -o <output>")
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if in == out {
		return errors.New("the output file must not be the input file")
	}
	return nil
}

func openDebug(cfg *config, stderr io.Writer) (*debug.Session, func(), error) {
	debug.InitFromEnv()
	if cfg.debugMode || cfg.debugFile != "" {
		debug.SetEnabled(true)
	}
	if !debug.Enabled() {
		return nil, func() {}, nil
	}

	var output io.Writer = stderr
	var file *os.File
	if cfg.debugFile != "" {
		var err error
		file, err = os.Create(cfg.debugFile)
		if err != nil {
			return nil, nil, err
		}
		output = file
	}

	var sink debug.Sink
	if cfg.debugPretty || debug.PrettyFromEnv() {
		sink = debug.NewPrettySink(output)
	} else {
		sink = debug.NewJSONSink(output)
	}

	session := debug.NewSession(sink)
	return session, func() {
		session.Close()
		if file != nil {
			file.Close()
		}
	}, nil
}

// writeContainer writes the container through a temporary file so a failed
// write never leaves a partial output behind.
func writeContainer(font *mfasm.Font, path string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mfasm-*")
	if err != nil {
		return 0, fmt.Errorf("unable to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := font.WriteTo(tmp)
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("unable to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("unable to write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("unable to write output: %w", err)
	}
	return n, nil
}

func writeManifest(font *mfasm.Font, path string) error {
	data, err := font.Manifest().YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write manifest: %w", err)
	}
	return nil
}

func writePreview(font *mfasm.Font, path string, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create preview: %w", err)
	}
	if err := font.WritePreview(file, mfasm.PreviewOptions{Scale: scale}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func inspect(path string, stdout, stderr io.Writer) int {
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: unable to open '%s': %v\n", path, err)
		return 1
	}
	defer file.Close()

	font, err := mfasm.ReadFont(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	data, err := font.Manifest().YAML()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := stdout.Write(data); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func summary(errs, warnings int) string {
	verb := "were"
	if errs == 1 {
		verb = "was"
	}
	return fmt.Sprintf("there %s %s and %s", verb, plural(errs, "error"), plural(warnings, "warning"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "mfasm - MisbitFont assembler")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mfasm [flags] <input> -o <output>")
	fmt.Fprintln(w, "  mfasm --inspect <container>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MFASM_DEBUG=1         Enable debug trace")
	fmt.Fprintln(w, "  MFASM_DEBUG_PRETTY=1  Use pretty format for debug trace")
}
