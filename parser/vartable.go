package parser

import "github.com/Lol3rrr/prizm-sub000/ir"

// varTable is the scoped variable table threaded through statement
// parsing. A fresh table is pushed on function entry (seeded with the
// parameters) and dropped on exit; the source language has no nested
// scopes, so declarations inside loop bodies land in the same table.
type varTable struct {
	vars map[string]ir.DataType
}

func newVarTable() *varTable {
	return &varTable{vars: make(map[string]ir.DataType)}
}

func (t *varTable) declare(name string, dt ir.DataType) {
	t.vars[name] = dt
}

func (t *varTable) lookup(name string) (ir.DataType, bool) {
	dt, ok := t.vars[name]
	return dt, ok
}
