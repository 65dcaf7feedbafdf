// Package export turns a reception record into a paginated printable
// document. It is a pure projection: nothing here writes back to a store.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/autoshop/console/internal/models"
)

// pageTemplate wraps the rendered blocks into a printable HTML document.
// Each .page breaks onto its own sheet when printed.
var pageTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.page { page-break-after: always; }
.page:last-child { page-break-after: auto; }
img { max-width: 100%; }
</style>
</head>
<body>
{{range .Pages}}<div class="page">{{.}}</div>
{{end}}</body>
</html>
`))

type documentData struct {
	Title string
	Pages []template.HTML
}

// Document renders the reception as a printable HTML document: one page for
// the customer, vehicle and service blocks plus the customer requests, then
// one page per attached image.
func Document(r models.Reception) ([]byte, error) {
	pages := []string{infoPage(r)}
	for i, img := range r.Images {
		pages = append(pages, fmt.Sprintf("## Attachment %d\n\n![attachment %d](%s)\n", i+1, i+1, img))
	}

	data := documentData{Title: "Reception " + r.CustomerInfo.Name}
	for _, page := range pages {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(page), &buf); err != nil {
			return nil, fmt.Errorf("render page: %w", err)
		}
		data.Pages = append(data.Pages, template.HTML(buf.String()))
	}

	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return out.Bytes(), nil
}

func infoPage(r models.Reception) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Vehicle Reception\n\nDate: %s\n\n", r.CreatedAt)

	b.WriteString("## Customer\n\n")
	fmt.Fprintf(&b, "- Name: %s\n", r.CustomerInfo.Name)
	fmt.Fprintf(&b, "- Phone: %s\n", r.CustomerInfo.Phone)
	if r.CustomerInfo.NationalID != "" {
		fmt.Fprintf(&b, "- National ID: %s\n", r.CustomerInfo.NationalID)
	}
	if r.CustomerInfo.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", r.CustomerInfo.Address)
	}

	b.WriteString("\n## Vehicle\n\n")
	fmt.Fprintf(&b, "- Make: %s\n", r.VehicleInfo.Make)
	fmt.Fprintf(&b, "- Model: %s\n", r.VehicleInfo.Model)
	fmt.Fprintf(&b, "- Year: %s\n", r.VehicleInfo.Year)
	fmt.Fprintf(&b, "- Color: %s\n", r.VehicleInfo.Color)
	fmt.Fprintf(&b, "- Plate: %s\n", r.VehicleInfo.PlateNumber)
	fmt.Fprintf(&b, "- VIN: %s\n", r.VehicleInfo.VIN)
	fmt.Fprintf(&b, "- Mileage: %s\n", r.VehicleInfo.Mileage)

	b.WriteString("\n## Service\n\n")
	fmt.Fprintf(&b, "%s\n", r.ServiceInfo.Description)
	if r.ServiceInfo.EstimatedCompletion != "" {
		fmt.Fprintf(&b, "\nEstimated completion: %s\n", r.ServiceInfo.EstimatedCompletion)
	}
	if len(r.ServiceInfo.CustomerComplaints) > 0 {
		b.WriteString("\n### Complaints\n\n")
		for _, c := range r.ServiceInfo.CustomerComplaints {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if len(r.ServiceInfo.CustomerRequests) > 0 {
		b.WriteString("\n### Customer requests\n\n")
		for _, req := range r.ServiceInfo.CustomerRequests {
			fmt.Fprintf(&b, "- %s\n", req)
		}
	}
	if r.ServiceInfo.Signature != "" {
		fmt.Fprintf(&b, "\n### Signature\n\n![signature](%s)\n", r.ServiceInfo.Signature)
	}
	return b.String()
}

// Filename names the download from the customer and the current date,
// replacing whitespace so the name travels well in a header.
func Filename(r models.Reception, now time.Time) string {
	name := strings.TrimSpace(r.CustomerInfo.Name)
	if name == "" {
		name = "reception"
	}
	name = strings.Join(strings.Fields(name), "-")
	return fmt.Sprintf("%s-%s.html", name, now.Format("2006-01-02"))
}
