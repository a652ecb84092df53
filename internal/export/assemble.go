package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/ledongthuc/pdf"
)

var pagesTemplate = template.Must(template.New("pages").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: 210mm 297mm; margin: 0; }
  * { margin: 0; padding: 0; }
  .page { width: 210mm; height: 297mm; overflow: hidden; break-after: page; }
  .page:last-child { break-after: auto; }
  .page img { display: block; width: 210mm; height: 295mm; }
</style>
</head>
<body>
{{range .}}<div class="page"><img src="{{.}}" alt=""></div>
{{end}}</body>
</html>
`))

// pagesHTML lays out one page image per printed A4 page.
func pagesHTML(images [][]byte) (string, error) {
	srcs := make([]template.URL, 0, len(images))
	for _, img := range images {
		srcs = append(srcs, template.URL("data:image/png;base64,"+base64.StdEncoding.EncodeToString(img)))
	}
	var buf bytes.Buffer
	if err := pagesTemplate.Execute(&buf, srcs); err != nil {
		return "", fmt.Errorf("pages html: %w", err)
	}
	return buf.String(), nil
}

// countPages reads the page count of a PDF document.
func countPages(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return r.NumPage(), nil
}
