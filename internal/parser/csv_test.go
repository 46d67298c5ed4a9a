package parser_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/ratelens-cli/internal/parser"
)

const header = "GamesMeter id,titel,jaar,alternatieve titel,platform,stem,geplaatst"

func TestParseHeaderAndRows(t *testing.T) {
	text := header + "\n" +
		"7,Chrono Trigger,1995,,Super Nintendo,4.5,1998-03-02\n" +
		"8,Doom,1993,,PC,\"4,0\",2001-01-01 10:00\n"
	tbl := parser.Parse(text)
	if len(tbl.Headers) != 7 || tbl.Headers[1] != "titel" {
		t.Fatalf("unexpected headers: %q", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[1][5] != "4,0" {
		t.Fatalf("quoted comma cell = %q", tbl.Rows[1][5])
	}
}

func TestParseNewlineTerminationInvariance(t *testing.T) {
	body := header + "\n1,A,2000,,PC,3,\n2,B,2001,,PS2,4,"
	cases := []string{body, body + "\n", body + "\r\n", strings.ReplaceAll(body, "\n", "\r\n")}
	want := parser.Parse(body).Rows
	for _, c := range cases {
		got := parser.Parse(c).Rows
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("rows differ for %q:\n got %q\nwant %q", c, got, want)
		}
	}
}

func TestParseEscapedQuotesAndEmbeddedComma(t *testing.T) {
	text := "titel\n\"Final Fantasy VII, \"\"International\"\" Edition\"\n"
	tbl := parser.Parse(text)
	if len(tbl.Rows) != 1 || len(tbl.Rows[0]) != 1 {
		t.Fatalf("expected one cell, got %q", tbl.Rows)
	}
	want := `Final Fantasy VII, "International" Edition`
	if tbl.Rows[0][0] != want {
		t.Fatalf("got %q, want %q", tbl.Rows[0][0], want)
	}
}

func TestParseEmbeddedNewline(t *testing.T) {
	text := "a,b\n\"line one\nline two\",x\n"
	tbl := parser.Parse(text)
	if len(tbl.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "line one\nline two" || tbl.Rows[0][1] != "x" {
		t.Fatalf("unexpected row: %q", tbl.Rows[0])
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	text := "\n\na,b\n\n1,2\r\n\r\n3,4\n\n"
	tbl := parser.Parse(text)
	if !reflect.DeepEqual(tbl.Headers, []string{"a", "b"}) {
		t.Fatalf("headers = %q", tbl.Headers)
	}
	want := [][]string{{"1", "2"}, {"3", "4"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q", tbl.Rows)
	}
}

func TestParseBareCarriageReturn(t *testing.T) {
	tbl := parser.Parse("a,b\r1,2\r3,4")
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "4" {
		t.Fatalf("unexpected rows: %q", tbl.Rows)
	}
}

func TestParseQuotedEmptyCellKeepsRow(t *testing.T) {
	tbl := parser.Parse("a\n\"\"\n")
	if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "" {
		t.Fatalf("expected one row with an empty cell, got %q", tbl.Rows)
	}
}

func TestParseUnterminatedQuoteConsumesRest(t *testing.T) {
	tbl := parser.Parse("a,b\n1,\"open\n2,3\n")
	if len(tbl.Rows) != 1 {
		t.Fatalf("expected 1 row, got %q", tbl.Rows)
	}
	if tbl.Rows[0][1] != "open\n2,3\n" {
		t.Fatalf("unexpected tail cell %q", tbl.Rows[0][1])
	}
}

func TestParseRaggedRows(t *testing.T) {
	tbl := parser.Parse("a,b,c\n1\n1,2,3,4\n")
	if len(tbl.Rows[0]) != 1 || len(tbl.Rows[1]) != 4 {
		t.Fatalf("cell counts not preserved: %q", tbl.Rows)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n", "\r\n\r\n"} {
		tbl := parser.Parse(in)
		if len(tbl.Headers) != 0 || len(tbl.Rows) != 0 {
			t.Fatalf("expected empty table for %q, got %+v", in, tbl)
		}
	}
}

func TestParseStripsByteOrderMark(t *testing.T) {
	tbl := parser.Parse("\ufeffGamesMeter id,titel\n1,A\n")
	if tbl.Headers[0] != "GamesMeter id" {
		t.Fatalf("BOM not stripped: %q", tbl.Headers[0])
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "votes.csv")
	if err := os.WriteFile(p, []byte(header+"\n1,Halo,2001,,Xbox,5,\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := parser.ParseFile(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][1] != "Halo" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
}

func TestParseFileRejectsOtherFormats(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "votes.xlsx")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := parser.ParseFile(p); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
