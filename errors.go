package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Job validation errors.
	ErrNoInputs        = errors.New("job needs at least one input")
	ErrNoOutput        = errors.New("job needs an output destination")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidZoom     = errors.New("invalid zoom factor")

	// Value parsing errors.
	ErrInvalidUnit     = errors.New("invalid length value")
	ErrInvalidViewport = errors.New("invalid viewport size")

	// Renderer errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Stylesheet transform errors.
	ErrStylesheetRead    = errors.New("failed to read stylesheet")
	ErrStylesheetCompile = errors.New("stylesheet compilation failed")
	ErrTransform         = errors.New("stylesheet transform failed")

	// Assembly errors.
	ErrMalformedPDF = errors.New("malformed PDF buffer")
	ErrEmptyMerge   = errors.New("nothing to merge")

	// Filesystem errors.
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)
