package main

// Notes:
// - run() paths that would reach the browser are covered through the batch
//   and flag tests with fakes; here we cover the wiring that fails before
//   a browser is ever needed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestRun - Pre-render failures
// ---------------------------------------------------------------------------

func TestRun_MissingPositionals(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"only-input.html"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	var stderr bytes.Buffer
	runErr := run(context.Background(), inv, strings.NewReader(""), &stderr)
	if !errors.Is(runErr, ErrUsage) {
		t.Errorf("run error = %v, want %v", runErr, ErrUsage)
	}
}

func TestRun_ConfigNotFound(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"-c", "/nonexistent/defaults.yaml", "in.html", "out.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	var stderr bytes.Buffer
	runErr := run(context.Background(), inv, strings.NewReader(""), &stderr)
	if !errors.Is(runErr, config.ErrConfigNotFound) {
		t.Errorf("run error = %v, want %v", runErr, config.ErrConfigNotFound)
	}
}

func TestRun_BadConfigValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("page:\n  marginTop: 10parsec\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	inv, err := parseArgs([]string{"-c", path, "in.html", "out.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	var stderr bytes.Buffer
	runErr := run(context.Background(), inv, strings.NewReader(""), &stderr)
	if !errors.Is(runErr, config.ErrConfigValue) {
		t.Errorf("run error = %v, want %v", runErr, config.ErrConfigValue)
	}
}

// ---------------------------------------------------------------------------
// TestWarnIgnored - Legacy flag warnings
// ---------------------------------------------------------------------------

func TestWarnIgnored(t *testing.T) {
	t.Parallel()

	inv := &invocation{ignored: []string{"--dpi", "--collate"}}

	var stderr bytes.Buffer
	warnIgnored(inv, &stderr)

	out := stderr.String()
	if !strings.Contains(out, "--dpi") || !strings.Contains(out, "--collate") {
		t.Errorf("stderr = %q, want both ignored flags reported", out)
	}
	if !strings.Contains(out, "no effect") {
		t.Errorf("stderr = %q, want warning wording", out)
	}
}

func TestWarnIgnored_QuietSuppresses(t *testing.T) {
	t.Parallel()

	inv := &invocation{ignored: []string{"--dpi"}, quiet: true}

	var stderr bytes.Buffer
	warnIgnored(inv, &stderr)

	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want silence in quiet mode", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestWithHints - Hint attachment
// ---------------------------------------------------------------------------

func TestWithHints(t *testing.T) {
	t.Parallel()

	plain := errors.New("something else")
	if got := withHints(plain); got != plain.Error() {
		t.Errorf("withHints(%v) = %q, want the bare message", plain, got)
	}

	// Browser errors carry the original message; whether hints follow
	// depends on the environment, so only the prefix is asserted.
	wrapped := fmt.Errorf("rendering a.html: %w", html2pdf.ErrBrowserConnect)
	if got := withHints(wrapped); !strings.HasPrefix(got, wrapped.Error()) {
		t.Errorf("withHints(%v) = %q, want message prefix preserved", wrapped, got)
	}
}

// ---------------------------------------------------------------------------
// TestPrintUsage - Help text
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	out := buf.String()

	wantMentions := []string{
		"Usage:",
		"--page-size",
		"--margin-top",
		"--viewport-size",
		"--custom-header",
		"--cookie",
		"--xsl-style-sheet",
		"--read-args-from-stdin",
		"--config",
		"toc",
		"stdin",
		"stdout",
	}
	for _, want := range wantMentions {
		if !strings.Contains(out, want) {
			t.Errorf("usage text missing %q", want)
		}
	}

	// Every documented long flag must actually parse.
	for _, line := range strings.Split(out, "\n") {
		for _, field := range strings.Fields(line) {
			if !strings.HasPrefix(field, "--") {
				continue
			}
			name := strings.TrimPrefix(field, "--")
			name = strings.TrimRight(name, ",);")
			if name == "" || strings.Contains(name, ".") {
				continue
			}
			if _, known := ignoredFlags["--"+name]; known {
				continue
			}
			if twoTokenFlags["--"+name] {
				continue
			}
			args := []string{"--" + name}
			switch name {
			case "page-size", "orientation", "page-width", "page-height",
				"margin-top", "margin-bottom", "margin-left", "margin-right":
				args = append(args, "10mm")
			case "viewport-size":
				args = append(args, "800x600")
			case "javascript-delay":
				args = append(args, "100")
			case "zoom":
				args = append(args, "1.0")
			case "proxy", "user-style-sheet", "run-script", "window-status",
				"title", "encoding", "xsl-style-sheet", "config", "cache-dir":
				args = append(args, "x")
			}
			args = append(args, "in.html", "out.pdf")
			if _, err := parseArgs(args); err != nil {
				t.Errorf("documented flag --%s does not parse: %v", name, err)
			}
		}
	}
}
