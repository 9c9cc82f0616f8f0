package main

// Notes:
// - pflag handles the modern flag surface; legacy two-token flags
//   (--custom-header, --cookie) and accepted-but-ignored switches are
//   stripped in a pre-pass
// - A literal "toc" positional requests the contents section
// - buildJob: last positional is the output, everything before it an input

import (
	"errors"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ---------------------------------------------------------------------------
// TestParseArgs - Flag Surface
// ---------------------------------------------------------------------------

func TestParseArgs_PageFlags(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{
		"-O", "Landscape",
		"--page-size", "Letter",
		"--margin-top", "15mm",
		"-B", "0.5in",
		"in.html", "out.pdf",
	})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	o := inv.overrides
	if o.Orientation == nil || *o.Orientation != "landscape" {
		t.Errorf("Orientation = %v, want landscape", o.Orientation)
	}
	if o.PageSize == nil || *o.PageSize != "letter" {
		t.Errorf("PageSize = %v, want letter", o.PageSize)
	}
	if o.MarginTop == nil || *o.MarginTop < 0.59 || *o.MarginTop > 0.60 {
		t.Errorf("MarginTop = %v, want ~0.59in", o.MarginTop)
	}
	if o.MarginBottom == nil || *o.MarginBottom != 0.5 {
		t.Errorf("MarginBottom = %v, want 0.5", o.MarginBottom)
	}
	if len(inv.positionals) != 2 {
		t.Errorf("positionals = %v", inv.positionals)
	}
}

func TestParseArgs_RenderFlags(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{
		"--no-background",
		"-n",
		"--javascript-delay", "250",
		"--zoom", "1.5",
		"--viewport-size", "1280x720",
		"--window-status", "ready",
		"--run-script", "a()",
		"--run-script", "b()",
		"in.html", "out.pdf",
	})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	o := inv.overrides
	if o.Background == nil || *o.Background {
		t.Errorf("Background = %v, want false", o.Background)
	}
	if o.JavaScript == nil || *o.JavaScript {
		t.Errorf("JavaScript = %v, want false", o.JavaScript)
	}
	if o.JavaScriptDelay == nil || *o.JavaScriptDelay != 250*time.Millisecond {
		t.Errorf("JavaScriptDelay = %v, want 250ms", o.JavaScriptDelay)
	}
	if o.Zoom == nil || *o.Zoom != 1.5 {
		t.Errorf("Zoom = %v, want 1.5", o.Zoom)
	}
	if o.Viewport == nil || o.Viewport.Width != 1280 || o.Viewport.Height != 720 {
		t.Errorf("Viewport = %v, want 1280x720", o.Viewport)
	}
	if o.WindowStatus == nil || *o.WindowStatus != "ready" {
		t.Errorf("WindowStatus = %v, want ready", o.WindowStatus)
	}
	if len(o.RunScripts) != 2 || o.RunScripts[0] != "a()" || o.RunScripts[1] != "b()" {
		t.Errorf("RunScripts = %v, want [a() b()]", o.RunScripts)
	}
}

func TestParseArgs_UntouchedFlagsStayNil(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"in.html", "out.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	o := inv.overrides
	if o.Orientation != nil || o.PageSize != nil || o.Zoom != nil ||
		o.Background != nil || o.JavaScript != nil || o.TOC != nil {
		t.Errorf("unset flags produced overrides: %+v", o)
	}
}

// ---------------------------------------------------------------------------
// TestParseArgs - Legacy Flags
// ---------------------------------------------------------------------------

func TestParseArgs_TwoTokenFlags(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{
		"--custom-header", "X-Auth", "secret",
		"--cookie", "session", "abc123",
		"--cookie", "theme", "dark",
		"in.html", "out.pdf",
	})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	o := inv.overrides
	if len(o.Headers) != 1 || o.Headers[0] != (html2pdf.Header{Name: "X-Auth", Value: "secret"}) {
		t.Errorf("Headers = %v", o.Headers)
	}
	if len(o.Cookies) != 2 || o.Cookies[0].Name != "session" || o.Cookies[1].Value != "dark" {
		t.Errorf("Cookies = %v", o.Cookies)
	}
	if len(inv.positionals) != 2 {
		t.Errorf("positionals = %v, legacy flags leaked through", inv.positionals)
	}
}

func TestParseArgs_TwoTokenFlagMissingValue(t *testing.T) {
	t.Parallel()

	_, err := parseArgs([]string{"in.html", "out.pdf", "--cookie", "session"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("parseArgs error = %v, want %v", err, ErrUsage)
	}
}

func TestParseArgs_IgnoredFlagsAreSwallowed(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{
		"--collate",
		"--dpi", "300",
		"--footer-center", "[page]/[topage]",
		"in.html", "out.pdf",
	})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	if len(inv.positionals) != 2 {
		t.Errorf("positionals = %v, ignored flag values leaked", inv.positionals)
	}
	if len(inv.ignored) != 3 {
		t.Errorf("ignored = %v, want 3 entries", inv.ignored)
	}
}

func TestParseArgs_IgnoredFlagMissingArgument(t *testing.T) {
	t.Parallel()

	_, err := parseArgs([]string{"in.html", "out.pdf", "--dpi"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("parseArgs error = %v, want %v", err, ErrUsage)
	}
}

// ---------------------------------------------------------------------------
// TestParseArgs - Positionals and Errors
// ---------------------------------------------------------------------------

func TestParseArgs_TOCPositional(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"toc", "chapter1.html", "chapter2.html", "book.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	if inv.overrides.TOC == nil || !*inv.overrides.TOC {
		t.Error("toc positional did not enable the contents section")
	}
	want := []string{"chapter1.html", "chapter2.html", "book.pdf"}
	if len(inv.positionals) != len(want) {
		t.Fatalf("positionals = %v, want %v", inv.positionals, want)
	}
	for i := range want {
		if inv.positionals[i] != want[i] {
			t.Errorf("positionals = %v, want %v", inv.positionals, want)
			break
		}
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := parseArgs([]string{"--frobnicate", "in.html", "out.pdf"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("parseArgs error = %v, want %v", err, ErrUsage)
	}
}

func TestParseArgs_BadUnitValue(t *testing.T) {
	t.Parallel()

	_, err := parseArgs([]string{"--margin-top", "10parsec", "in.html", "out.pdf"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("parseArgs error = %v, want %v", err, ErrUsage)
	}
}

func TestParseArgs_ProcessSwitches(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"-q", "-c", "defaults.yaml", "--cache-dir", "/tmp/cache", "in.html", "out.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	if !inv.quiet {
		t.Error("quiet not set")
	}
	if inv.configPath != "defaults.yaml" {
		t.Errorf("configPath = %q", inv.configPath)
	}
	if inv.cacheDir != "/tmp/cache" {
		t.Errorf("cacheDir = %q", inv.cacheDir)
	}
}

// ---------------------------------------------------------------------------
// TestBuildJob - Positional Split
// ---------------------------------------------------------------------------

func TestBuildJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		positionals []string
		wantInputs  []string
		wantOutput  string
		wantErr     error
	}{
		{
			name:        "one input",
			positionals: []string{"in.html", "out.pdf"},
			wantInputs:  []string{"in.html"},
			wantOutput:  "out.pdf",
		},
		{
			name:        "several inputs keep order",
			positionals: []string{"a.html", "b.html", "c.html", "out.pdf"},
			wantInputs:  []string{"a.html", "b.html", "c.html"},
			wantOutput:  "out.pdf",
		},
		{
			name:        "missing output",
			positionals: []string{"in.html"},
			wantErr:     ErrUsage,
		},
		{
			name:    "nothing",
			wantErr: ErrUsage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job, err := buildJob(&invocation{positionals: tt.positionals}, html2pdf.Default())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("buildJob error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildJob: %v", err)
			}

			if job.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", job.Output, tt.wantOutput)
			}
			if len(job.Inputs) != len(tt.wantInputs) {
				t.Fatalf("Inputs = %v, want %v", job.Inputs, tt.wantInputs)
			}
			for i := range tt.wantInputs {
				if job.Inputs[i] != tt.wantInputs[i] {
					t.Errorf("Inputs = %v, want %v", job.Inputs, tt.wantInputs)
					break
				}
			}
		})
	}
}

func TestBuildJob_AppliesOverrides(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs([]string{"--title", "Report", "--grayscale", "in.html", "out.pdf"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}

	job, err := buildJob(inv, html2pdf.Default())
	if err != nil {
		t.Fatalf("buildJob: %v", err)
	}

	if job.Config.Title != "Report" {
		t.Errorf("Title = %q, want Report", job.Config.Title)
	}
	if !job.Config.Grayscale {
		t.Error("Grayscale not applied")
	}
}
