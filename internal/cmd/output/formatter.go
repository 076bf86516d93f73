// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Format is an output format.
type Format string

// Formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements Formatter.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter returns the formatter of format. Unknown formats fall back
// to a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter writes indented JSON. HTML characters are not escaped so
// icon markup and URLs stay readable.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return errors.WrapParse("yaml", "", err)
	}
	_, err = w.Write(out)
	return err
}

// Align is the alignment of a table column.
type Align int

// Alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data is pre-shaped table content.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// TableFormatter writes a table. Data is rendered as is; slices of
// structs and single structs are converted by reflection; anything else
// is written as JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.render(w, v)
	case *Data:
		return f.render(w, *v)
	}
	if d := toData(data); d != nil {
		return f.render(w, *d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignCenter:
				align[i] = tw.AlignCenter
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// DetectFormat returns explicit when set, a table on terminals and JSON
// when stdout is redirected.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates s.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	}
	return "", errors.NewValidationError("format", s, fmt.Sprintf("invalid format %q: must be one of: table, json, yaml", s))
}

// header turns a json tag or field name into a column title.
func header(field reflect.StructField) string {
	name := field.Name
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		if i := strings.Index(tag, ","); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			name = tag
		}
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func toData(data any) *Data {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 || v.Index(0).Kind() != reflect.Struct {
			return nil
		}
		t := v.Index(0).Type()
		d := &Data{}
		fields := exportedFields(t)
		for _, i := range fields {
			d.Headers = append(d.Headers, header(t.Field(i)))
		}
		for r := 0; r < v.Len(); r++ {
			row := make([]string, 0, len(fields))
			for _, i := range fields {
				row = append(row, cell(v.Index(r).Field(i)))
			}
			d.Rows = append(d.Rows, row)
		}
		return d
	case reflect.Struct:
		t := v.Type()
		d := &Data{Headers: []string{"Field", "Value"}}
		for _, i := range exportedFields(t) {
			d.Rows = append(d.Rows, []string{header(t.Field(i)), cell(v.Field(i))})
		}
		return d
	}
	return nil
}

func exportedFields(t reflect.Type) []int {
	var out []int
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			out = append(out, i)
		}
	}
	return out
}

func cell(v reflect.Value) string {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return fmt.Sprintf("%d", v.Len())
	}
	return fmt.Sprintf("%v", v.Interface())
}
