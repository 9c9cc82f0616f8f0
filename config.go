package html2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// paperSize holds page dimensions in inches.
type paperSize struct {
	width  float64
	height float64
}

// paperSizes maps lowercase page-size names to dimensions in inches.
var paperSizes = map[string]paperSize{
	"a3":      {11.69, 16.54},
	"a4":      {8.27, 11.69},
	"a5":      {5.83, 8.27},
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
}

// Margin bounds in inches.
const (
	maxMarginInches = 4.0
	// 10mm, the legacy converter's default margin.
	defaultMarginInches = 10.0 / mmPerInch
)

// Zoom bounds.
const (
	minZoom = 0.1
	maxZoom = 10.0
)

// Header is one custom HTTP header sent with every page request.
type Header struct {
	Name  string
	Value string
}

// Cookie is one cookie injected before navigation.
type Cookie struct {
	Name  string
	Value string
}

// Config holds the rendering directives shared by every input of a job.
// It is immutable once a job begins; build variants with Overrides.Apply.
type Config struct {
	// Page geometry.
	Orientation  string  // "portrait" or "landscape"
	PageSize     string  // "a4", "letter", ... ignored when PageWidth/PageHeight set
	PageWidth    float64 // inches; 0 means use PageSize
	PageHeight   float64 // inches; 0 means use PageSize
	MarginTop    float64 // inches
	MarginBottom float64 // inches
	MarginLeft   float64 // inches
	MarginRight  float64 // inches

	// Rendering behavior.
	Background      bool     // print CSS backgrounds
	Viewport        Viewport // zero value means browser default
	JavaScript      bool     // enable script execution
	JavaScriptDelay time.Duration
	Zoom            float64
	PrintMediaType  bool   // emulate CSS print media
	WindowStatus    string // wait until window.status equals this, best effort
	Grayscale       bool   // desaturate the document with a CSS filter before printing
	Encoding        string // charset for inline HTML read from stdin, default utf-8

	// Network.
	Proxy   string
	Headers []Header
	Cookies []Cookie

	// Injection.
	UserStylesheet string   // path or URL of a CSS file injected after load
	RunScripts     []string // JavaScript fragments run after load

	// Table of contents.
	TOC           bool
	TOCStylesheet string // path to a custom XSL stylesheet, empty = built-in

	// Document metadata.
	Title string
}

// Default returns the legacy-compatible defaults: A4 portrait, 10mm
// margins, backgrounds and JavaScript enabled, zoom 1.0.
func Default() Config {
	return Config{
		Orientation:  OrientationPortrait,
		PageSize:     "a4",
		MarginTop:    defaultMarginInches,
		MarginBottom: defaultMarginInches,
		MarginLeft:   defaultMarginInches,
		MarginRight:  defaultMarginInches,
		Background:   true,
		JavaScript:   true,
		Zoom:         1.0,
	}
}

// Validate checks that the configuration is renderable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidPageSize, c.Orientation)
	}

	if c.PageWidth == 0 && c.PageHeight == 0 {
		if _, ok := paperSizes[strings.ToLower(c.PageSize)]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPageSize, c.PageSize)
		}
	} else if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("%w: explicit dimensions must both be positive", ErrInvalidPageSize)
	}

	for _, m := range []float64{c.MarginTop, c.MarginBottom, c.MarginLeft, c.MarginRight} {
		if m < 0 || m > maxMarginInches {
			return fmt.Errorf("%w: %.2fin (must be between 0 and %.1fin)", ErrInvalidMargin, m, maxMarginInches)
		}
	}

	if c.Zoom < minZoom || c.Zoom > maxZoom {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidZoom, c.Zoom, minZoom, maxZoom)
	}

	return nil
}

// paper resolves the effective page dimensions in inches, honoring explicit
// width/height over the named size and swapping for landscape orientation.
func (c *Config) paper() paperSize {
	p := paperSizes["a4"]
	if c.PageWidth > 0 && c.PageHeight > 0 {
		p = paperSize{c.PageWidth, c.PageHeight}
	} else if s, ok := paperSizes[strings.ToLower(c.PageSize)]; ok {
		p = s
	}
	if strings.EqualFold(c.Orientation, OrientationLandscape) {
		p.width, p.height = p.height, p.width
	}
	return p
}

// Overrides is a partial configuration layered onto a base Config.
// Scalar fields override only when their pointer is non-nil; list fields
// concatenate. Overrides values are produced by the CLI (flags, defaults
// file, batch lines) and applied with Apply, which never mutates the base.
type Overrides struct {
	Orientation     *string
	PageSize        *string
	PageWidth       *float64
	PageHeight      *float64
	MarginTop       *float64
	MarginBottom    *float64
	MarginLeft      *float64
	MarginRight     *float64
	Background      *bool
	Viewport        *Viewport
	JavaScript      *bool
	JavaScriptDelay *time.Duration
	Zoom            *float64
	PrintMediaType  *bool
	WindowStatus    *string
	Grayscale       *bool
	Encoding        *string
	Proxy           *string
	UserStylesheet  *string
	TOC             *bool
	TOCStylesheet   *string
	Title           *string

	Headers    []Header
	Cookies    []Cookie
	RunScripts []string
}

// Apply returns a new Config with o layered on top of base.
func (o Overrides) Apply(base Config) Config {
	c := base

	if o.Orientation != nil {
		c.Orientation = *o.Orientation
	}
	if o.PageSize != nil {
		c.PageSize = *o.PageSize
	}
	if o.PageWidth != nil {
		c.PageWidth = *o.PageWidth
	}
	if o.PageHeight != nil {
		c.PageHeight = *o.PageHeight
	}
	if o.MarginTop != nil {
		c.MarginTop = *o.MarginTop
	}
	if o.MarginBottom != nil {
		c.MarginBottom = *o.MarginBottom
	}
	if o.MarginLeft != nil {
		c.MarginLeft = *o.MarginLeft
	}
	if o.MarginRight != nil {
		c.MarginRight = *o.MarginRight
	}
	if o.Background != nil {
		c.Background = *o.Background
	}
	if o.Viewport != nil {
		c.Viewport = *o.Viewport
	}
	if o.JavaScript != nil {
		c.JavaScript = *o.JavaScript
	}
	if o.JavaScriptDelay != nil {
		c.JavaScriptDelay = *o.JavaScriptDelay
	}
	if o.Zoom != nil {
		c.Zoom = *o.Zoom
	}
	if o.PrintMediaType != nil {
		c.PrintMediaType = *o.PrintMediaType
	}
	if o.WindowStatus != nil {
		c.WindowStatus = *o.WindowStatus
	}
	if o.Grayscale != nil {
		c.Grayscale = *o.Grayscale
	}
	if o.Encoding != nil {
		c.Encoding = *o.Encoding
	}
	if o.Proxy != nil {
		c.Proxy = *o.Proxy
	}
	if o.UserStylesheet != nil {
		c.UserStylesheet = *o.UserStylesheet
	}
	if o.TOC != nil {
		c.TOC = *o.TOC
	}
	if o.TOCStylesheet != nil {
		c.TOCStylesheet = *o.TOCStylesheet
	}
	if o.Title != nil {
		c.Title = *o.Title
	}

	// List fields concatenate rather than replace, so a batch line can add
	// headers without losing the base invocation's.
	if len(o.Headers) > 0 {
		c.Headers = append(append([]Header(nil), base.Headers...), o.Headers...)
	}
	if len(o.Cookies) > 0 {
		c.Cookies = append(append([]Cookie(nil), base.Cookies...), o.Cookies...)
	}
	if len(o.RunScripts) > 0 {
		c.RunScripts = append(append([]string(nil), base.RunScripts...), o.RunScripts...)
	}

	return c
}

// Job is one logical invocation: an ordered list of inputs, one output
// destination, and a shared rendering configuration.
type Job struct {
	Inputs []string // URLs, file paths, or "-" for HTML on stdin
	Output string   // file path, or "-" for stdout
	Config Config
}

// Validate checks the job's structural invariants.
func (j *Job) Validate() error {
	if len(j.Inputs) == 0 {
		return ErrNoInputs
	}
	if j.Output == "" {
		return ErrNoOutput
	}
	return j.Config.Validate()
}
