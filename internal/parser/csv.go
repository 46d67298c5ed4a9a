package parser

import "strings"

const bom = "\ufeff"

// Parse splits CSV text into a header row and data rows.
//
// The input is scanned one byte at a time so quoted cells may contain commas
// and line breaks. Inside quotes a doubled quote is a literal quote. Outside
// quotes ',' ends a cell and "\n", "\r\n" or a bare "\r" ends a row. The first
// non-empty row becomes Headers. Blank lines are skipped, content after the
// last line break is still flushed, and an unterminated quote runs to the end
// of the input. Parse never fails.
func Parse(text string) Table {
	text = strings.TrimPrefix(text, bom)

	t := Table{Rows: [][]string{}}
	var (
		cell     strings.Builder
		row      []string
		inQuotes bool
		// started is set once the current cell has seen any input, including
		// a pair of quotes that produces an empty value.
		started bool
		header  bool
	)

	pushCell := func() {
		row = append(row, cell.String())
		cell.Reset()
		started = false
	}
	pushRow := func() {
		if len(row) == 0 {
			return
		}
		if !header {
			t.Headers = row
			header = true
		} else {
			t.Rows = append(t.Rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			started = true
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case inQuotes:
			cell.WriteByte(c)
		case c == ',':
			pushCell()
		case c == '\n' || c == '\r':
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			// a line with no content at all is not a row
			if len(row) == 0 && !started {
				continue
			}
			pushCell()
			pushRow()
		default:
			started = true
			cell.WriteByte(c)
		}
	}

	if started || len(row) > 0 {
		pushCell()
		pushRow()
	}
	if t.Headers == nil {
		t.Headers = []string{}
	}
	return t
}
