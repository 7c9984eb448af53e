package udf

import (
	"context"
	"fmt"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
)

// DatumKind tags the value held by a Datum.
type DatumKind uint8

const (
	KindNull DatumKind = iota
	KindInt64
	KindFloat64
	KindString
)

// Datum is one typed cell of a row.
type Datum struct {
	s    string
	i    int64
	f    float64
	kind DatumKind
}

func NullDatum() Datum             { return Datum{kind: KindNull} }
func Int64Datum(v int64) Datum     { return Datum{kind: KindInt64, i: v} }
func Float64Datum(v float64) Datum { return Datum{kind: KindFloat64, f: v} }
func StringDatum(v string) Datum   { return Datum{kind: KindString, s: v} }

func (d Datum) Kind() DatumKind { return d.kind }
func (d Datum) IsNull() bool    { return d.kind == KindNull }

func (d Datum) Int64() (int64, bool) {
	if d.kind != KindInt64 {
		return 0, false
	}
	return d.i, true
}

func (d Datum) Float64() (float64, bool) {
	if d.kind != KindFloat64 {
		return 0, false
	}
	return d.f, true
}

func (d Datum) StringVal() (string, bool) {
	if d.kind != KindString {
		return "", false
	}
	return d.s, true
}

// Column reads a row cell by offset.
type Column struct {
	Offset int
}

func (c Column) EvalInt64(_ context.Context, _ *EvalContext, row []Datum) (int64, bool, error) {
	if c.Offset < 0 || c.Offset >= len(row) {
		return 0, false, errors.InvalidInput(errors.PhaseInvoke,
			fmt.Sprintf("column offset %d out of range for row of %d", c.Offset, len(row)))
	}
	d := row[c.Offset]
	if d.IsNull() {
		return 0, true, nil
	}
	v, ok := d.Int64()
	if !ok {
		return 0, false, errors.InvalidInput(errors.PhaseInvoke,
			fmt.Sprintf("column %d does not hold an integer", c.Offset))
	}
	return v, false, nil
}

func (c Column) EvalFloat64(_ context.Context, _ *EvalContext, row []Datum) (float64, bool, error) {
	if c.Offset < 0 || c.Offset >= len(row) {
		return 0, false, errors.InvalidInput(errors.PhaseInvoke,
			fmt.Sprintf("column offset %d out of range for row of %d", c.Offset, len(row)))
	}
	d := row[c.Offset]
	if d.IsNull() {
		return 0, true, nil
	}
	v, ok := d.Float64()
	if !ok {
		return 0, false, errors.InvalidInput(errors.PhaseInvoke,
			fmt.Sprintf("column %d does not hold a float", c.Offset))
	}
	return v, false, nil
}
