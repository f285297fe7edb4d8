package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdsumm/internal/doctree"
)

// csvBatchSize is the number of data rows per Markdown table.
const csvBatchSize = 20

// CSVParser renders CSV files as Markdown tables, one section per batch of rows.
// The first record is the header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Text:  markdownTable(headers, dataRows[i:end]),
		})
	}
	if len(dataRows) == 0 {
		tree.Children = []*doctree.DocNode{{Text: markdownTable(headers, nil)}}
	}

	return tree, nil
}

func markdownTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		// Extra cells beyond the header row are folded into the last column.
		if n := len(headers); n > 0 && len(cells) > n {
			folded := append([]string(nil), cells[:n-1]...)
			cells = append(folded, strings.Join(cells[n-1:], ", "))
		}
		sb.WriteString("|")
		for j := range headers {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			sb.WriteString(" " + escapeCell(cell) + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sb.WriteString("|")
	for range headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}
