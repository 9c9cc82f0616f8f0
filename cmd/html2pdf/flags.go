package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI parsing.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrMissingArgs = errors.New("need at least one input and one output")
)

// invocation is one fully parsed command line: positionals, configuration
// overrides, and process-level switches.
type invocation struct {
	positionals []string
	overrides   html2pdf.Overrides
	configPath  string
	cacheDir    string
	quiet       bool
	readStdin   bool
	showHelp    bool
	showVersion bool
	ignored     []string // accepted-but-ignored legacy flags seen
}

// ignoredFlags maps accepted-but-ignored legacy flags to the number of
// following tokens each consumes. These map 1:1 onto switches of the legacy
// converter that have no meaning for a Chrome-backed renderer; they are
// swallowed so existing scripts keep running.
var ignoredFlags = map[string]int{
	"--collate":                  0,
	"--no-collate":               0,
	"-l":                         0,
	"--lowquality":               0,
	"--no-pdf-compression":       0,
	"--enable-smart-shrinking":   0,
	"--disable-smart-shrinking":  0,
	"--enable-internal-links":    0,
	"--disable-internal-links":   0,
	"--enable-external-links":    0,
	"--disable-external-links":   0,
	"--enable-forms":             0,
	"--disable-forms":            0,
	"--images":                   0,
	"--no-images":                0,
	"--enable-plugins":           0,
	"--disable-plugins":          0,
	"--enable-local-file-access": 0,
	"--disable-local-file-access": 0,
	"--stop-slow-scripts":        0,
	"--no-stop-slow-scripts":     0,
	"--debug-javascript":         0,
	"--no-debug-javascript":      0,
	"--outline":                  0,
	"--no-outline":               0,
	"--outline-depth":            1,
	"--dpi":                      1,
	"--image-dpi":                1,
	"--image-quality":            1,
	"--minimum-font-size":        1,
	"--page-offset":              1,
	"--copies":                   1,
	"--load-error-handling":      1,
	"--load-media-error-handling": 1,
	"--header-left":              1,
	"--header-center":            1,
	"--header-right":             1,
	"--header-font-size":         1,
	"--header-font-name":         1,
	"--header-spacing":           1,
	"--header-html":              1,
	"--footer-left":              1,
	"--footer-center":            1,
	"--footer-right":             1,
	"--footer-font-size":         1,
	"--footer-font-name":         1,
	"--footer-spacing":           1,
	"--footer-html":              1,
}

// twoTokenFlags are legacy flags that consume two following tokens
// (a name and a value), a shape pflag cannot express.
var twoTokenFlags = map[string]bool{
	"--custom-header": true,
	"--cookie":        true,
}

// parseArgs parses a full argument list (without the program name) into an
// invocation. Legacy two-token and ignored flags are extracted in a
// pre-pass; everything else goes through pflag.
func parseArgs(args []string) (*invocation, error) {
	inv := &invocation{}

	rest, err := extractLegacyFlags(args, inv)
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("html2pdf", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // usage printing is the caller's decision

	orientation := fs.StringP("orientation", "O", "", "page orientation: Portrait or Landscape")
	pageSize := fs.StringP("page-size", "s", "", "page size: A4, Letter, ...")
	pageWidth := fs.String("page-width", "", "explicit page width (e.g. 210mm)")
	pageHeight := fs.String("page-height", "", "explicit page height")
	marginTop := fs.StringP("margin-top", "T", "", "top margin (default 10mm)")
	marginBottom := fs.StringP("margin-bottom", "B", "", "bottom margin")
	marginLeft := fs.StringP("margin-left", "L", "", "left margin")
	marginRight := fs.StringP("margin-right", "R", "", "right margin")
	background := fs.Bool("background", false, "print backgrounds (default)")
	noBackground := fs.Bool("no-background", false, "do not print backgrounds")
	viewport := fs.String("viewport-size", "", "viewport as WxH, e.g. 1280x720")
	enableJS := fs.Bool("enable-javascript", false, "allow pages to run JavaScript (default)")
	disableJS := fs.BoolP("disable-javascript", "n", false, "do not allow pages to run JavaScript")
	jsDelay := fs.Int("javascript-delay", 0, "extra milliseconds to wait after load")
	zoom := fs.Float64("zoom", 0, "zoom factor")
	proxy := fs.StringP("proxy", "p", "", "proxy to use, e.g. http://host:port")
	userStyle := fs.String("user-style-sheet", "", "CSS file injected into every page")
	runScripts := fs.StringArray("run-script", nil, "JavaScript run after load (repeatable)")
	printMedia := fs.Bool("print-media-type", false, "use print media type instead of screen")
	noPrintMedia := fs.Bool("no-print-media-type", false, "use screen media type (default)")
	windowStatus := fs.String("window-status", "", "wait until window.status equals this value")
	title := fs.String("title", "", "document title metadata")
	encoding := fs.String("encoding", "", "default text encoding")
	grayscale := fs.BoolP("grayscale", "g", false, "generate grayscale output")
	xslStyle := fs.String("xsl-style-sheet", "", "custom XSL stylesheet for the table of contents")

	fs.BoolVar(&inv.readStdin, "read-args-from-stdin", false, "read one invocation per line from stdin")
	fs.StringVarP(&inv.configPath, "config", "c", "", "YAML defaults file")
	fs.StringVar(&inv.cacheDir, "cache-dir", "", "stylesheet cache directory")
	fs.BoolVarP(&inv.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&inv.showHelp, "help", "h", false, "show this help")
	fs.BoolVarP(&inv.showVersion, "version", "V", false, "show version information")

	if err := fs.Parse(rest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// A literal "toc" among the positionals requests the contents section
	// rather than naming an input.
	for _, p := range fs.Args() {
		if p == "toc" {
			inv.overrides.TOC = boolPtr(true)
			continue
		}
		inv.positionals = append(inv.positionals, p)
	}

	o := &inv.overrides
	if fs.Changed("orientation") {
		o.Orientation = lowered(*orientation)
	}
	if fs.Changed("page-size") {
		o.PageSize = lowered(*pageSize)
	}
	if err := setLength(fs, "page-width", *pageWidth, &o.PageWidth); err != nil {
		return nil, err
	}
	if err := setLength(fs, "page-height", *pageHeight, &o.PageHeight); err != nil {
		return nil, err
	}
	if err := setLength(fs, "margin-top", *marginTop, &o.MarginTop); err != nil {
		return nil, err
	}
	if err := setLength(fs, "margin-bottom", *marginBottom, &o.MarginBottom); err != nil {
		return nil, err
	}
	if err := setLength(fs, "margin-left", *marginLeft, &o.MarginLeft); err != nil {
		return nil, err
	}
	if err := setLength(fs, "margin-right", *marginRight, &o.MarginRight); err != nil {
		return nil, err
	}
	if *background {
		o.Background = boolPtr(true)
	}
	if *noBackground {
		o.Background = boolPtr(false)
	}
	if fs.Changed("viewport-size") {
		vp, err := html2pdf.ParseViewportSize(*viewport)
		if err != nil {
			return nil, fmt.Errorf("%w: --viewport-size: %v", ErrUsage, err)
		}
		o.Viewport = &vp
	}
	if *enableJS {
		o.JavaScript = boolPtr(true)
	}
	if *disableJS {
		o.JavaScript = boolPtr(false)
	}
	if fs.Changed("javascript-delay") {
		d := time.Duration(*jsDelay) * time.Millisecond
		o.JavaScriptDelay = &d
	}
	if fs.Changed("zoom") {
		o.Zoom = zoom
	}
	if fs.Changed("proxy") {
		o.Proxy = proxy
	}
	if fs.Changed("user-style-sheet") {
		o.UserStylesheet = userStyle
	}
	if len(*runScripts) > 0 {
		o.RunScripts = *runScripts
	}
	if *printMedia {
		o.PrintMediaType = boolPtr(true)
	}
	if *noPrintMedia {
		o.PrintMediaType = boolPtr(false)
	}
	if fs.Changed("window-status") {
		o.WindowStatus = windowStatus
	}
	if fs.Changed("title") {
		o.Title = title
	}
	if fs.Changed("encoding") {
		o.Encoding = encoding
	}
	if *grayscale {
		o.Grayscale = boolPtr(true)
	}
	if fs.Changed("xsl-style-sheet") {
		o.TOCStylesheet = xslStyle
	}

	return inv, nil
}

// extractLegacyFlags consumes two-token and ignored legacy flags before
// pflag sees the argument list.
func extractLegacyFlags(args []string, inv *invocation) ([]string, error) {
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]

		if twoTokenFlags[a] {
			if i+2 >= len(args) {
				return nil, fmt.Errorf("%w: %s needs a name and a value", ErrUsage, a)
			}
			name, value := args[i+1], args[i+2]
			if a == "--cookie" {
				inv.overrides.Cookies = append(inv.overrides.Cookies, html2pdf.Cookie{Name: name, Value: value})
			} else {
				inv.overrides.Headers = append(inv.overrides.Headers, html2pdf.Header{Name: name, Value: value})
			}
			i += 2
			continue
		}

		if n, ok := ignoredFlags[a]; ok {
			if i+n >= len(args) {
				return nil, fmt.Errorf("%w: %s needs %d argument(s)", ErrUsage, a, n)
			}
			inv.ignored = append(inv.ignored, a)
			i += n
			continue
		}

		rest = append(rest, a)
	}
	return rest, nil
}

// setLength parses a changed unit-string flag into an inch value.
func setLength(fs *flag.FlagSet, name, raw string, dst **float64) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := html2pdf.UnitToInches(raw)
	if err != nil {
		return fmt.Errorf("%w: --%s: %v", ErrUsage, name, err)
	}
	*dst = &v
	return nil
}

// buildJob splits positionals into inputs and output and applies the
// invocation's overrides onto base.
func buildJob(inv *invocation, base html2pdf.Config) (html2pdf.Job, error) {
	if len(inv.positionals) < 2 {
		return html2pdf.Job{}, fmt.Errorf("%w: %v", ErrUsage, ErrMissingArgs)
	}

	n := len(inv.positionals)
	return html2pdf.Job{
		Inputs: inv.positionals[:n-1],
		Output: inv.positionals[n-1],
		Config: inv.overrides.Apply(base),
	}, nil
}

func boolPtr(v bool) *bool { return &v }

func lowered(s string) *string {
	l := strings.ToLower(s)
	return &l
}
