// Package html2pdf converts HTML documents and URLs to a single merged PDF
// using headless Chrome, with a command-line surface compatible with the
// wkhtmltopdf flag vocabulary.
//
// # Quick Start
//
// Create a service, run a job, and close when done:
//
//	svc := html2pdf.New()
//	defer svc.Close()
//
//	err := svc.Run(ctx, html2pdf.Job{
//	    Inputs: []string{"https://example.com", "page.html"},
//	    Output: "out.pdf",
//	    Config: html2pdf.Default(),
//	})
//
// Each input is rendered separately and the resulting PDFs are merged in
// input order. With Config.TOC set, a table of contents is generated,
// rendered, and prefixed to the merged document; its page numbers are made
// self-consistent by a bounded fixed-point iteration (the length of the TOC
// affects the page numbers it lists).
//
// # Pipeline
//
//  1. Input normalization (URLs pass through, paths become file:// URLs)
//  2. One Chrome render per input via go-rod, strictly in input order
//  3. Optional TOC: outline XML -> XSLT transform -> render -> paginate
//  4. PDF merge and title metadata via pdfcpu
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := html2pdf.New(
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithCacheDir("/var/cache/html2pdf"),
//	)
//
// Rendering directives (page size, margins, headers, cookies, scripts, ...)
// travel in an immutable Config value built once per job. Overrides merges
// layer list fields by concatenation and scalar fields by replacement.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
//
// Table-of-contents generation additionally requires the xsltproc binary on
// PATH; compiled stylesheets are cached on disk by content hash.
package html2pdf
