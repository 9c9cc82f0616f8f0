package config_test

// Notes:
// - Load is strict: unknown YAML keys are a parse error, so a typoed
//   defaults file fails loudly instead of being silently ignored
// - Unit strings are converted at load time; a bad value surfaces as
//   ErrConfigValue before any rendering starts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-html2pdf/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoad - File loading
// ---------------------------------------------------------------------------

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
title: Default Title
page:
  size: letter
  orientation: landscape
  marginTop: 20mm
render:
  background: false
  javascriptDelayMs: 300
  viewportSize: 1920x1080
  zoom: 1.25
network:
  proxy: http://proxy:3128
  headers:
    - name: X-Auth
      value: secret
  cookies:
    - name: session
      value: abc
inject:
  userStylesheet: /styles/print.css
  runScripts:
    - collapseNav()
toc:
  enabled: true
`)

	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	o, err := f.Overrides()
	if err != nil {
		t.Fatalf("Overrides() error = %v", err)
	}

	if o.Title == nil || *o.Title != "Default Title" {
		t.Errorf("Title = %v", o.Title)
	}
	if o.PageSize == nil || *o.PageSize != "letter" {
		t.Errorf("PageSize = %v", o.PageSize)
	}
	if o.Orientation == nil || *o.Orientation != "landscape" {
		t.Errorf("Orientation = %v", o.Orientation)
	}
	if o.MarginTop == nil || *o.MarginTop < 0.78 || *o.MarginTop > 0.79 {
		t.Errorf("MarginTop = %v, want ~0.787in", o.MarginTop)
	}
	if o.Background == nil || *o.Background {
		t.Errorf("Background = %v, want false", o.Background)
	}
	if o.JavaScriptDelay == nil || *o.JavaScriptDelay != 300*time.Millisecond {
		t.Errorf("JavaScriptDelay = %v", o.JavaScriptDelay)
	}
	if o.Viewport == nil || o.Viewport.Width != 1920 || o.Viewport.Height != 1080 {
		t.Errorf("Viewport = %v", o.Viewport)
	}
	if o.Zoom == nil || *o.Zoom != 1.25 {
		t.Errorf("Zoom = %v", o.Zoom)
	}
	if o.Proxy == nil || *o.Proxy != "http://proxy:3128" {
		t.Errorf("Proxy = %v", o.Proxy)
	}
	if len(o.Headers) != 1 || o.Headers[0].Name != "X-Auth" {
		t.Errorf("Headers = %v", o.Headers)
	}
	if len(o.Cookies) != 1 || o.Cookies[0].Value != "abc" {
		t.Errorf("Cookies = %v", o.Cookies)
	}
	if o.UserStylesheet == nil || *o.UserStylesheet != "/styles/print.css" {
		t.Errorf("UserStylesheet = %v", o.UserStylesheet)
	}
	if len(o.RunScripts) != 1 || o.RunScripts[0] != "collapseNav()" {
		t.Errorf("RunScripts = %v", o.RunScripts)
	}
	if o.TOC == nil || !*o.TOC {
		t.Errorf("TOC = %v", o.TOC)
	}
}

func TestLoad_EmptySectionsStayNil(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "page:\n  size: a4\n")

	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	o, err := f.Overrides()
	if err != nil {
		t.Fatalf("Overrides() error = %v", err)
	}

	if o.PageSize == nil || *o.PageSize != "a4" {
		t.Errorf("PageSize = %v", o.PageSize)
	}
	if o.Orientation != nil || o.Zoom != nil || o.TOC != nil || o.Title != nil {
		t.Errorf("absent keys produced overrides: %+v", o)
	}
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want %v", err, config.ErrConfigNotFound)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "paeg:\n  size: a4\n")

	_, err := config.Load(path)
	if !errors.Is(err, config.ErrConfigParse) {
		t.Errorf("Load() error = %v, want %v", err, config.ErrConfigParse)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "page: [unclosed\n")

	_, err := config.Load(path)
	if !errors.Is(err, config.ErrConfigParse) {
		t.Errorf("Load() error = %v, want %v", err, config.ErrConfigParse)
	}
}

// ---------------------------------------------------------------------------
// TestOverrides - Value conversion errors
// ---------------------------------------------------------------------------

func TestOverrides_BadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad margin unit",
			yaml: "page:\n  marginTop: 10parsec\n",
		},
		{
			name: "bad viewport",
			yaml: "render:\n  viewportSize: wide\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := config.Load(writeConfig(t, tt.yaml))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if _, err := f.Overrides(); !errors.Is(err, config.ErrConfigValue) {
				t.Errorf("Overrides() error = %v, want %v", err, config.ErrConfigValue)
			}
		})
	}
}
