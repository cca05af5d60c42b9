package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const (
	logFieldHeaders = "headers"
	logFieldData    = "data"
)

// set of exported spacing options
const (
	Indent = "  "
	Gutter = "  "
)

var tableFields = []string{logFieldMessage, logFieldHeaders, logFieldData}

// table holds its cells as strings, one slice per row in header order
type table struct {
	message string
	headers []string
	rows    [][]string
	widths  []int
}

func newTable(message string, headers []string, data []map[string]interface{}) table {
	if len(headers) == 0 {
		return table{}
	}

	t := table{
		message: message,
		headers: headers,
		rows:    [][]string{},
		widths:  make([]int, len(headers)),
	}
	for i, header := range headers {
		t.widths[i] = len(header)
	}

	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		cells := make([]string, len(headers))
		for i, header := range headers {
			cells[i] = parseValue(row[header])
			if len(cells[i]) > t.widths[i] {
				t.widths[i] = len(cells[i])
			}
		}
		t.rows = append(t.rows, cells)
	}
	return t
}

func (t table) Message() (string, error) {
	if len(t.headers) == 0 {
		return "", errors.New("cannot create a table without headers")
	}

	bold := color.New(color.Bold).SprintFunc()
	dividers := make([]string, len(t.headers))
	for i, width := range t.widths {
		dividers[i] = strings.Repeat("-", width)
	}

	lines := []string{
		t.message,
		t.line(t.headers, func(s string) string { return bold(s) }),
		t.line(dividers, nil),
	}
	for _, row := range t.rows {
		lines = append(lines, t.line(row, nil))
	}
	return strings.Join(lines, "\n"), nil
}

func (t table) Payload() ([]string, map[string]interface{}, error) {
	if len(t.headers) == 0 {
		return nil, nil, errors.New("cannot create a table without headers")
	}

	data := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		data[i] = make(map[string]string, len(t.headers))
		for j, header := range t.headers {
			data[i][header] = row[j]
		}
	}
	return tableFields, map[string]interface{}{
		logFieldMessage: t.message,
		logFieldHeaders: t.headers,
		logFieldData:    data,
	}, nil
}

// line pads every cell to its column width, styling the text but not the padding
func (t table) line(cells []string, style func(string) string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		text := cell
		if style != nil {
			text = style(cell)
		}
		padded[i] = text + strings.Repeat(" ", t.widths[i]-len(cell))
	}
	return Indent + strings.Join(padded, Gutter)
}

func parseValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}
	return fmt.Sprintf("%+v", value)
}
