package model

import "testing"

func TestTableColumn(t *testing.T) {
	tbl := Table{Header: []string{"REGION", " YEAR ", "VALUE"}}
	if got := tbl.Column("YEAR"); got != 1 {
		t.Fatalf("expected 1 got %d", got)
	}
	if got := tbl.Column("year"); got != -1 {
		t.Fatalf("lookup must be case-sensitive, got %d", got)
	}
}

func TestRowClone(t *testing.T) {
	r := Row{"a", "b"}
	c := r.Clone()
	c[0] = "z"
	if r[0] != "a" {
		t.Fatalf("clone shares storage")
	}
}
