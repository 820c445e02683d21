// Package source reads the question bank document and produces the page
// text the extractor scans.
package source

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// ReadError reports that the source document could not be opened or
// decoded. It is distinct from a document that simply holds no questions.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read source %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Document is the decoded text of a PDF, one entry per page.
type Document struct {
	Path  string
	Pages []string
}

// Chars returns the total number of bytes of extracted text, counting one
// separator per page.
func (d *Document) Chars() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p) + 1
	}
	return n
}

// ReadPDF decodes every page of the PDF at path into plain text. Pages with
// no content contribute an empty string so page numbering is preserved. A
// file that cannot be opened, or any page whose text cannot be decoded, is a
// *ReadError: a partial document would shift every later question id.
func ReadPDF(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	f, r, err := openPDF(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	doc := &Document{Path: path}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ReadError{Path: path, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}

// openPDF wraps pdf.Open, which panics on some malformed inputs instead of
// returning an error.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("decode pdf: %v", rec)
		}
	}()
	f, r, err = pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	return f, r, nil
}
