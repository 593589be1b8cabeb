// Package cli implements the mcomp command line: running scripts and
// printing what the comprehension decorator turns their functions into.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/comprehension"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/evaluator"
	"github.com/funvibe/mcomp/internal/lexer"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/prettyprinter"
	"github.com/funvibe/mcomp/internal/rewriter"
	"github.com/funvibe/mcomp/internal/token"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const usage = `Usage:
  mcomp run [-config file] <file.mc>      evaluate a script
  mcomp desugar [-config file] <file.mc>  print decorated functions after the rewrite
  mcomp version                           print the version
`

// Run executes the command line args (without the program name) and
// returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return ExitUsage
	}

	switch args[0] {
	case "run":
		return withScript("run", args[1:], stderr, func(s *script) int { return s.run(stdout) })
	case "desugar":
		return withScript("desugar", args[1:], stderr, func(s *script) int { return s.desugar(stdout) })
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "mcomp %s\n", config.Version)
		return ExitOK
	case "help", "-help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return ExitOK
	}

	// `mcomp file.mc` is short for `mcomp run file.mc`
	if isSourceFile(args[0]) {
		return Run(append([]string{"run"}, args...), stdout, stderr)
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
	return ExitUsage
}

// script is a source file together with the configuration it runs under.
type script struct {
	path   string
	source string
	cfg    *config.Config
	stderr io.Writer
	color  bool
}

func withScript(cmd string, args []string, stderr io.Writer, do func(*script) int) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "configuration file (default: "+config.DefaultConfigFile+" next to the script)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s expects exactly one script\n\n%s", cmd, usage)
		return ExitUsage
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath, path)
	if err != nil {
		d := diagnostics.NewError(diagnostics.ErrF001, token.Token{}, err.Error())
		printDiagnostics(stderr, useColor(config.ColorAuto, stderr), []*diagnostics.DiagnosticError{d})
		return ExitError
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "cannot read %s: %s\n", path, errors.Unwrap(err))
		return ExitError
	}

	return do(&script{
		path:   path,
		source: string(src),
		cfg:    cfg,
		stderr: stderr,
		color:  useColor(cfg.Color, stderr),
	})
}

// loadConfig reads the explicit config file, or the optional one next to
// the script.
func loadConfig(explicit, scriptPath string) (*config.Config, error) {
	if explicit != "" {
		return config.LoadConfig(explicit)
	}
	return config.LoadOptional(filepath.Join(filepath.Dir(scriptPath), config.DefaultConfigFile))
}

func (s *script) context() *pipeline.PipelineContext {
	return &pipeline.PipelineContext{SourceCode: s.source, FilePath: s.path}
}

func (s *script) run(stdout io.Writer) int {
	opts := comprehension.FromConfig(s.cfg)
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{
			Out:   stdout,
			Setup: func(e *evaluator.Evaluator) { comprehension.Install(e, opts) },
		},
	).Run(s.context())
	return s.report(ctx.Errors)
}

// desugar prints every decorated top-level function as the decorator would
// rewrite it. Nothing is evaluated, so the monad argument is not checked.
func (s *script) desugar(stdout io.Writer) int {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(s.context())
	if len(ctx.Errors) > 0 {
		return s.report(ctx.Errors)
	}

	decorated := map[int]bool{}
	for i, stmt := range ctx.AstRoot.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && rewriter.HasDecorator(fn, s.cfg.Decorator) {
			decorated[i] = true
		}
	}

	rp := rewriter.NewProcessor(s.cfg)
	ctx = rp.Process(ctx)

	for i, stmt := range ctx.AstRoot.Statements {
		if !decorated[i] {
			continue
		}
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok || rewriter.HasDecorator(fn, s.cfg.Decorator) {
			// still decorated: the rewrite failed and was reported
			continue
		}
		if err := evaluator.Compile(fn, rp.Transformer.Names.Reserved()); err != nil {
			var d *diagnostics.DiagnosticError
			if errors.As(err, &d) {
				d.File = s.path
				ctx.Errors = append(ctx.Errors, d)
			}
			continue
		}
		fmt.Fprintln(stdout, prettyprinter.Print(fn))
	}
	return s.report(ctx.Errors)
}

func (s *script) report(errs []*diagnostics.DiagnosticError) int {
	if len(errs) == 0 {
		return ExitOK
	}
	printDiagnostics(s.stderr, s.color, errs)
	return ExitError
}

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// printDiagnostics writes one diagnostic per line as
// file:line:col: CODE: message, followed by any indented detail lines.
func printDiagnostics(w io.Writer, color bool, errs []*diagnostics.DiagnosticError) {
	for _, d := range errs {
		line := d.Error()
		if color {
			code := string(d.Code)
			if i := strings.Index(line, code+": "); i >= 0 {
				line = colorBold + line[:i] + colorReset + colorRed + code + colorReset + line[i+len(code):]
			}
		}
		fmt.Fprintln(w, line)
	}
}

// useColor decides whether diagnostics written to w are coloured.
func useColor(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
