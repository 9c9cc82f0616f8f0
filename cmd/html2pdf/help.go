package main

import (
	"fmt"
	"io"
)

// printUsage prints the full usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf [flags] <input> [more inputs...] <output>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one or more HTML pages or URLs to a single merged PDF using")
	fmt.Fprintln(w, "headless Chrome. An input of '-' reads HTML from stdin; an output of")
	fmt.Fprintln(w, "'-' writes the PDF to stdout. A literal 'toc' among the inputs adds a")
	fmt.Fprintln(w, "generated table of contents at the front of the document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -s, --page-size <s>        Page size: A4, A3, A5, Letter, Legal, Tabloid")
	fmt.Fprintln(w, "  -O, --orientation <s>      Portrait or Landscape")
	fmt.Fprintln(w, "      --page-width <u>       Explicit page width (e.g. 210mm)")
	fmt.Fprintln(w, "      --page-height <u>      Explicit page height")
	fmt.Fprintln(w, "  -T, --margin-top <u>       Top margin (default 10mm)")
	fmt.Fprintln(w, "  -B, --margin-bottom <u>    Bottom margin")
	fmt.Fprintln(w, "  -L, --margin-left <u>      Left margin")
	fmt.Fprintln(w, "  -R, --margin-right <u>     Right margin")
	fmt.Fprintln(w, "                             Lengths accept mm, cm, in, px, pt; bare")
	fmt.Fprintln(w, "                             numbers are millimeters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --background           Print CSS backgrounds (default)")
	fmt.Fprintln(w, "      --no-background        Do not print CSS backgrounds")
	fmt.Fprintln(w, "      --viewport-size <WxH>  Browser viewport, e.g. 1280x720")
	fmt.Fprintln(w, "      --enable-javascript    Allow pages to run JavaScript (default)")
	fmt.Fprintln(w, "  -n, --disable-javascript   Do not allow pages to run JavaScript")
	fmt.Fprintln(w, "      --javascript-delay <n> Extra milliseconds to wait after load")
	fmt.Fprintln(w, "      --zoom <f>             Zoom factor (default 1.0)")
	fmt.Fprintln(w, "      --print-media-type     Use print media type instead of screen")
	fmt.Fprintln(w, "      --no-print-media-type  Use screen media type (default)")
	fmt.Fprintln(w, "      --window-status <s>    Wait until window.status equals this value")
	fmt.Fprintln(w, "      --user-style-sheet <p> Inject a CSS file into every page")
	fmt.Fprintln(w, "      --run-script <js>      Run JavaScript after load (repeatable)")
	fmt.Fprintln(w, "      --encoding <s>         Default text encoding")
	fmt.Fprintln(w, "  -g, --grayscale            Generate grayscale output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Network:")
	fmt.Fprintln(w, "  -p, --proxy <url>          Proxy, e.g. http://host:port")
	fmt.Fprintln(w, "      --custom-header <name> <value>")
	fmt.Fprintln(w, "                             Extra HTTP header (repeatable)")
	fmt.Fprintln(w, "      --cookie <name> <value>")
	fmt.Fprintln(w, "                             Cookie sent with every request (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --xsl-style-sheet <p>  Custom XSL stylesheet for the contents page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>            Document title metadata")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Process:")
	fmt.Fprintln(w, "      --read-args-from-stdin Read one invocation per line from stdin;")
	fmt.Fprintln(w, "                             each line's flags layer onto this one's")
	fmt.Fprintln(w, "  -c, --config <path>        YAML defaults file")
	fmt.Fprintln(w, "      --cache-dir <path>     Stylesheet cache directory")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -h, --help                 Show this help")
	fmt.Fprintln(w, "  -V, --version              Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Legacy wkhtmltopdf switches that have no effect with a Chrome backend")
	fmt.Fprintln(w, "(--dpi, --outline, smart shrinking, header/footer text, ...) are")
	fmt.Fprintln(w, "accepted and ignored with a warning, so existing scripts keep working.")
}
