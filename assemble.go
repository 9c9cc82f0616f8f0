package html2pdf

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// documentAssembler merges rendered PDF buffers and applies document-level
// metadata. Buffers come straight from the renderer; a malformed one is an
// invariant violation, not a recoverable condition.
type documentAssembler interface {
	Merge(buffers [][]byte) ([]byte, error)
	PageCount(buf []byte) (int, error)
	SetTitle(buf []byte, title string) ([]byte, error)
}

// Compile-time interface check
var _ documentAssembler = (*pdfAssembler)(nil)

// pdfAssembler implements documentAssembler using pdfcpu.
type pdfAssembler struct {
	conf *model.Configuration
}

// newPDFAssembler creates an assembler with relaxed validation, since the
// buffers it handles were just produced by Chrome.
func newPDFAssembler() *pdfAssembler {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfAssembler{conf: conf}
}

// Merge copies all pages of each buffer, in input-list order, into one
// document. A single-element list is returned unchanged: no re-encoding.
func (a *pdfAssembler) Merge(buffers [][]byte) ([]byte, error) {
	switch len(buffers) {
	case 0:
		return nil, ErrEmptyMerge
	case 1:
		return buffers[0], nil
	}

	rsc := make([]io.ReadSeeker, len(buffers))
	for i, b := range buffers {
		rsc[i] = bytes.NewReader(b)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(rsc, &out, false, a.conf); err != nil {
		return nil, fmt.Errorf("%w: merging: %v", ErrMalformedPDF, err)
	}

	return out.Bytes(), nil
}

// PageCount reports the number of pages in a rendered buffer.
func (a *pdfAssembler) PageCount(buf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(buf), a.conf)
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages: %v", ErrMalformedPDF, err)
	}
	return n, nil
}

// SetTitle rewrites the buffer with only the document-information title
// changed; page content is untouched.
func (a *pdfAssembler) SetTitle(buf []byte, title string) ([]byte, error) {
	ctx, err := api.ReadContext(bytes.NewReader(buf), a.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %v", ErrMalformedPDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: validating: %v", ErrMalformedPDF, err)
	}

	if err := setInfoTitle(ctx, title); err != nil {
		return nil, fmt.Errorf("%w: setting title: %v", ErrMalformedPDF, err)
	}

	var out bytes.Buffer
	if err := api.WriteContext(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: writing: %v", ErrMalformedPDF, err)
	}

	return out.Bytes(), nil
}

// setInfoTitle sets /Title in the document information dictionary, creating
// the dictionary if the renderer did not emit one.
func setInfoTitle(ctx *model.Context, title string) error {
	lit := textString(title)

	if ctx.Info == nil {
		d := types.NewDict()
		d["Title"] = lit
		ir, err := ctx.IndRefForNewObject(d)
		if err != nil {
			return err
		}
		ctx.Info = ir
		return nil
	}

	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("info reference resolves to no dictionary")
	}
	d["Title"] = lit
	return nil
}

// textString encodes s as a PDF text string: UTF-16BE with a byte order
// mark, hex-encoded so no escaping rules apply.
func textString(s string) types.HexLiteral {
	b := []byte{0xfe, 0xff}
	for _, u := range utf16.Encode([]rune(s)) {
		b = append(b, byte(u>>8), byte(u))
	}
	return types.NewHexLiteral(b)
}
