package cli

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/mcomp/internal/config"
)

var update = flag.Bool("update", false, "rewrite the .want files with the current output")

// TestGolden runs every testdata/<command>/*.mc file through the command
// and compares stdout followed by stderr with the .want file next to it.
// Scripts named err_* must fail.
func TestGolden(t *testing.T) {
	for _, cmd := range []string{"run", "desugar"} {
		files, err := filepath.Glob(filepath.Join("testdata", cmd, "*"+config.SourceFileExt))
		if err != nil {
			t.Fatal(err)
		}
		if len(files) == 0 {
			t.Fatalf("no scripts for %s", cmd)
		}
		for _, file := range files {
			file := filepath.ToSlash(file)
			name := strings.TrimSuffix(filepath.Base(file), config.SourceFileExt)
			t.Run(cmd+"/"+name, func(t *testing.T) {
				var out bytes.Buffer
				code := Run([]string{cmd, file}, &out, &out)

				wantCode := ExitOK
				if strings.HasPrefix(name, "err_") {
					wantCode = ExitError
				}
				if code != wantCode {
					t.Errorf("exit code = %d, want %d\n%s", code, wantCode, out.String())
				}

				wantFile := strings.TrimSuffix(file, config.SourceFileExt) + ".want"
				if *update {
					if err := os.WriteFile(wantFile, out.Bytes(), 0o644); err != nil {
						t.Fatal(err)
					}
					return
				}
				want, err := os.ReadFile(wantFile)
				if err != nil {
					t.Fatalf("reading %s: %v (run with -update to create it)", wantFile, err)
				}
				if got := out.String(); got != string(want) {
					t.Errorf("output mismatch:\n--- want ---\n%s--- got ---\n%s", want, got)
				}
			})
		}
	}
}

func TestVersionAndUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"version"}, &out, &errOut); code != ExitOK {
		t.Errorf("version exit code = %d", code)
	}
	if out.String() != "mcomp "+config.Version+"\n" {
		t.Errorf("version output = %q", out.String())
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no_args", nil, "Usage:"},
		{"unknown", []string{"compile", "x.mc"}, `unknown command "compile"`},
		{"no_script", []string{"run"}, "run expects exactly one script"},
		{"two_scripts", []string{"desugar", "a.mc", "b.mc"}, "desugar expects exactly one script"},
		{"bad_flag", []string{"run", "-verbose", "a.mc"}, "flag provided but not defined: -verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := Run(tt.args, &out, &errOut); code != ExitUsage {
				t.Errorf("exit code = %d, want %d", code, ExitUsage)
			}
			if !strings.Contains(errOut.String(), tt.want) {
				t.Errorf("stderr %q does not contain %q", errOut.String(), tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const filterScript = `@comprehend(List)
fun evens(xs) { [x | x <- xs, x % 2 == 0] }

print(evens(range(5)))
`

func TestConfigNextToScript(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "evens.mc", filterScript)
	writeFile(t, dir, config.DefaultConfigFile, "filters: guard\n")

	var out, errOut bytes.Buffer
	if code := Run([]string{"run", script}, &out, &errOut); code != ExitOK {
		t.Fatalf("exit code = %d: %s", code, errOut.String())
	}
	if out.String() != "[0, 2, 4]\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "evens.mc", strings.ReplaceAll(filterScript, "@comprehend", "@monadic"))
	cfg := writeFile(t, dir, "custom.yaml", "decorator: monadic\nfilters: guard\nnames:\n  bind: andThen\n")

	var out, errOut bytes.Buffer
	if code := Run([]string{"desugar", "-config", cfg, script}, &out, &errOut); code != ExitOK {
		t.Fatalf("exit code = %d: %s", code, errOut.String())
	}
	want := `fun evens(xs) { andThen(xs, \x -> andThen(__guard__(x % 2 == 0), \_ -> __unit__(x))) }` + "\n"
	if out.String() != want {
		t.Errorf("got %s, want %s", out.String(), want)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "a.mc", "print(1)\n")
	writeFile(t, dir, config.DefaultConfigFile, "filters: sometimes\n")

	var out, errOut bytes.Buffer
	if code := Run([]string{"run", script}, &out, &errOut); code != ExitError {
		t.Errorf("exit code = %d, want %d", code, ExitError)
	}
	if out.Len() != 0 {
		t.Errorf("script should not run, printed %q", out.String())
	}
	if got := errOut.String(); !strings.HasPrefix(got, "F001: ") || !strings.Contains(got, `unknown mode "sometimes"`) {
		t.Errorf("unexpected stderr %q", got)
	}
}

func TestMissingScript(t *testing.T) {
	var out, errOut bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.mc")
	if code := Run([]string{"run", missing}, &out, &errOut); code != ExitError {
		t.Errorf("exit code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(errOut.String(), "cannot read "+missing) {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}

func TestSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "broken.mc", "@comprehend(List)\nfun broken(xs) { [x | x <- ] }\n")

	for _, cmd := range []string{"run", "desugar"} {
		var out, errOut bytes.Buffer
		if code := Run([]string{cmd, script}, &out, &errOut); code != ExitError {
			t.Errorf("%s: exit code = %d, want %d", cmd, code, ExitError)
		}
		if !strings.HasPrefix(errOut.String(), script+":2:") || !strings.Contains(errOut.String(), ": P00") {
			t.Errorf("%s: unexpected stderr %q", cmd, errOut.String())
		}
	}
}

func TestShorthandRun(t *testing.T) {
	script := writeFile(t, t.TempDir(), "hello.mc", `print("hello")`+"\n")
	var out, errOut bytes.Buffer
	if code := Run([]string{script}, &out, &errOut); code != ExitOK {
		t.Fatalf("exit code = %d: %s", code, errOut.String())
	}
	if out.String() != "hello\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestColor(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "a.mc", "x\n")
	writeFile(t, dir, config.DefaultConfigFile, "color: always\n")

	var out, errOut bytes.Buffer
	Run([]string{"run", script}, &out, &errOut)
	want := colorBold + script + ":1:1: " + colorReset + colorRed + "R001" + colorReset + ": identifier not found: x\n"
	if errOut.String() != want {
		t.Errorf("got %q, want %q", errOut.String(), want)
	}

	if useColor(config.ColorAuto, &errOut) {
		t.Error("a buffer is not a terminal")
	}
	if useColor(config.ColorNever, os.Stderr) {
		t.Error("never means never")
	}
}
