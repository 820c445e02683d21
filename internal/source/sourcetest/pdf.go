// Package sourcetest builds small text-only PDFs for tests.
package sourcetest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// BuildPDF returns a minimal PDF with one page per entry of pages. Each line
// is drawn with Helvetica and separated by a T* line break, which text
// extraction turns into a newline.
func BuildPDF(pages [][]string) []byte {
	return build(pages, 0)
}

// BuildBrokenPDF is BuildPDF with the content stream of page broken (1-based)
// declared /FlateDecode while holding plain bytes, so decoding that page fails.
func BuildBrokenPDF(pages [][]string, broken int) []byte {
	return build(pages, broken)
}

func build(pages [][]string, broken int) []byte {
	var objects []string

	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	fontObj := 3 + 2*len(pages)
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	for i, lines := range pages {
		var content strings.Builder
		content.WriteString("BT\n/F1 12 Tf\n14 TL\n72 740 Td\n")
		for j, line := range lines {
			if j > 0 {
				content.WriteString("T*\n")
			}
			fmt.Fprintf(&content, "(%s) Tj\n", escape(line))
		}
		content.WriteString("ET")

		filter := ""
		if i+1 == broken {
			filter = " /Filter /FlateDecode"
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>", 4+2*i, fontObj),
			fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream", content.Len(), filter, content.String()),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// WritePDF writes BuildPDF(pages) to a file in a temp dir and returns its path.
func WritePDF(t testing.TB, pages [][]string) string {
	t.Helper()
	return write(t, BuildPDF(pages))
}

// WriteBrokenPDF writes BuildBrokenPDF(pages, broken) to a temp file.
func WriteBrokenPDF(t testing.TB, pages [][]string, broken int) string {
	t.Helper()
	return write(t, BuildBrokenPDF(pages, broken))
}

func write(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
