package html2pdf

import (
	"context"
	"fmt"
	"os"
)

// The TOC's content depends on the page numbers it lists, and those depend
// on how many pages the TOC itself occupies. The layout engine is opaque,
// so the page count cannot be predicted analytically; instead the paginator
// treats the renderer as an oracle and iterates toward a fixed point. In
// practice two iterations suffice: content length stabilizes once the
// page-number digit counts stop changing.
const maxTOCIterations = 3

// tocPaginator computes a table-of-contents buffer whose printed page
// numbers are consistent with its own length.
type tocPaginator struct {
	renderer    PageRenderer
	transformer StylesheetTransformer
	assembler   documentAssembler
}

// paginate renders the TOC for a job whose inputs produced pageCounts pages
// each, in input order. It returns the final buffer and its actual page
// count. If no fixed point is reached within the iteration budget the last
// rendered buffer is used as is: bounded best effort, not an error.
func (p *tocPaginator) paginate(ctx context.Context, job *Job, links []string, pageCounts []int) ([]byte, int, error) {
	sheet := defaultTOCStylesheet
	if job.Config.TOCStylesheet != "" {
		b, err := os.ReadFile(job.Config.TOCStylesheet)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrStylesheetRead, err)
		}
		sheet = string(b)
	}

	artifact, err := p.transformer.Compile(ctx, sheet)
	if err != nil {
		return nil, 0, err
	}

	tocPages := 1 // first hypothesis: a one-page TOC
	var (
		buf   []byte
		count int
	)
	for i := 0; i < maxTOCIterations; i++ {
		// A fresh item set per iteration; items are never mutated once built.
		items := make([]OutlineItem, len(links))
		start := tocPages + 1
		for j := range links {
			items[j] = OutlineItem{Title: job.Inputs[j], Link: links[j], Page: start}
			start += pageCounts[j]
		}

		outlineXML, err := buildOutline(job.Config.Title, items)
		if err != nil {
			return nil, 0, err
		}

		html, err := p.transformer.Transform(ctx, artifact, outlineXML)
		if err != nil {
			return nil, 0, err
		}

		buf, err = p.renderer.Render(ctx, htmlDataURI(html, ""), &job.Config)
		if err != nil {
			return nil, 0, err
		}

		count, err = p.assembler.PageCount(buf)
		if err != nil {
			return nil, 0, err
		}

		if count == tocPages {
			return buf, count, nil
		}
		tocPages = count
	}

	return buf, count, nil
}
