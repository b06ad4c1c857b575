package output

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
}

type HeaderPalette struct {
	Proto          aurora.Color
	Status         aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:          aurora.BlueFg,
	Status:         aurora.BrownFg | aurora.BoldFm,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
	}
}

func (p *PrettyPrinter) PrintStatusLine(resp *http.Response) error {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(resp.Proto, p.headerPalette.Proto),
		p.aurora.Colorize(resp.Status, p.headerPalette.Status))
	return nil
}

func (p *PrettyPrinter) PrintHeader(resp *http.Response) error {
	var names []string
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range resp.Header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func (p *PrettyPrinter) PrintBody(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")
	switch {
	case isJSON(contentType):
		return p.printJSONBody(resp.Body)
	case isXML(contentType):
		return p.printXMLBody(resp.Body)
	default:
		return p.plain.PrintBody(resp)
	}
}

func (p *PrettyPrinter) printJSONBody(body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "parsing response body as JSON")
	}

	encoder := json.NewEncoder(p.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}

	fmt.Fprintln(p.writer)
	return nil
}

func (p *PrettyPrinter) printXMLBody(body io.Reader) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return errors.Wrap(err, "parsing response body as XML")
	}

	doc.Indent(4)
	if _, err := doc.WriteTo(p.writer); err != nil {
		return errors.Wrap(err, "writing XML")
	}

	fmt.Fprintln(p.writer)
	return nil
}

func mediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if semicolon := strings.Index(contentType, ";"); semicolon != -1 {
		contentType = contentType[:semicolon]
	}
	return contentType
}

func isJSON(contentType string) bool {
	return mediaType(contentType) == "application/json"
}

func isXML(contentType string) bool {
	switch mediaType(contentType) {
	case "application/xml", "text/xml":
		return true
	default:
		return false
	}
}
