package export

import (
	"context"
	"html/template"
	"io"

	"github.com/galite/vchart"
)

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .Cells}}<th>{{$cell}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr>{{range $cell := .Cells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	// Cells are escaped by the template.
	Cells []string
}

// HTMLWriter writes the data series of a chart as HTML table
// with the chart title as caption.
//
// HTMLWriter is immutable, all With methods return a modified copy.
type HTMLWriter struct {
	tableClass     string
	nilValue       string
	headerRow      bool
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template
}

func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{
		headerRow:      true,
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

func (w *HTMLWriter) clone() *HTMLWriter {
	c := new(HTMLWriter)
	*c = *w
	return c
}

// Write writes the series of the built chart c to dest.
func (w *HTMLWriter) Write(ctx context.Context, dest io.Writer, c *vchart.Chart) error {
	header, rows := seriesTable(c)
	templateContext := TemplateContext{
		TableClass: w.tableClass,
		Caption:    c.Title,
	}
	err := w.headerTemplate.Execute(dest, templateContext)
	if err != nil {
		return err
	}
	if w.headerRow {
		err = w.rowTemplate.Execute(dest, RowTemplateContext{
			TemplateContext: templateContext,
			IsHeaderRow:     true,
			RowIndex:        -1,
			Cells:           header,
		})
		if err != nil {
			return err
		}
	}
	for rowIndex, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				cells[i] = w.nilValue
			} else {
				cells[i] = *cell
			}
		}
		err = w.rowTemplate.Execute(dest, RowTemplateContext{
			TemplateContext: templateContext,
			RowIndex:        rowIndex,
			Cells:           cells,
		})
		if err != nil {
			return err
		}
	}
	return w.footerTemplate.Execute(dest, templateContext)
}

func (w *HTMLWriter) WithTableClass(tableClass string) *HTMLWriter {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

func (w *HTMLWriter) WithHeaderRow(headerRow bool) *HTMLWriter {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithNilValue sets the text written for null measure values.
func (w *HTMLWriter) WithNilValue(nilValue string) *HTMLWriter {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithTemplates replaces the templates, nil arguments keep the current ones.
func (w *HTMLWriter) WithTemplates(header, row, footer *template.Template) *HTMLWriter {
	mod := w.clone()
	if header != nil {
		mod.headerTemplate = header
	}
	if row != nil {
		mod.rowTemplate = row
	}
	if footer != nil {
		mod.footerTemplate = footer
	}
	return mod
}
