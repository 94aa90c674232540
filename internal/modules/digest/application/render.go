package application

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/saransh1220/bucket-events/internal/modules/digest/domain"
)

const reportHTML = `<html>
  <body>
    <table cellpadding="0" cellspacing="0" width="640" align="center" border="1">
      <tr>
        <th>S3 URI</th>
        <th>Object Name</th>
        <th>Content Type</th>
        <th>Size (Bytes)</th>
      </tr>
{{- range .}}
      <tr>
        <td>{{.URI}}</td>
        <td>{{.FileName}}</td>
        <td>{{.ContentType}}</td>
        <td>{{.Size}}</td>
      </tr>
{{- end}}
    </table>
  </body>
</html>
`

var reportTemplate = template.Must(template.New("digest").Parse(reportHTML))

// RenderReport renders entries as an HTML table, one row per entry in order.
// No entries renders the header row only.
func RenderReport(entries []domain.Entry) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, entries); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
