package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

// Accessor reads one candidate value out of a raw record.
type Accessor func(model.RawRecord) (any, bool)

// Key reads a top-level field. A blank string counts as missing.
func Key(name string) Accessor {
	return func(rec model.RawRecord) (any, bool) {
		v, ok := rec[name]
		if !ok || v == nil {
			return nil, false
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return nil, false
		}
		return v, true
	}
}

// Nested reads a field inside an embedded object, e.g. Nested("Veiculo", "Placa").
func Nested(parent, name string) Accessor {
	inner := Key(name)
	return func(rec model.RawRecord) (any, bool) {
		switch obj := rec[parent].(type) {
		case map[string]any:
			return inner(model.RawRecord(obj))
		case model.RawRecord:
			return inner(obj)
		}
		return nil, false
	}
}

// Chain is the ranked list of places a logical field may live in. The first
// candidate that yields a usable value wins.
type Chain []Accessor

func Keys(names ...string) Chain {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		chain = append(chain, Key(name))
	}
	return chain
}

func (c Chain) Value(rec model.RawRecord) (any, bool) {
	for _, access := range c {
		if v, ok := access(rec); ok {
			return v, true
		}
	}
	return nil, false
}

func (c Chain) String(rec model.RawRecord) string {
	v, ok := c.Value(rec)
	if !ok {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

func (c Chain) Time(rec model.RawRecord, loc *time.Location) *time.Time {
	for _, access := range c {
		v, ok := access(rec)
		if !ok {
			continue
		}
		if t := normalize.DatePtr(v, loc); t != nil {
			return t
		}
	}
	return nil
}

// Times returns every candidate that resolves to a date, in chain order.
func (c Chain) Times(rec model.RawRecord, loc *time.Location) []time.Time {
	var out []time.Time
	for _, access := range c {
		v, ok := access(rec)
		if !ok {
			continue
		}
		if t, ok := normalize.ParseDate(v, loc); ok {
			out = append(out, t)
		}
	}
	return out
}

func (c Chain) Money(rec model.RawRecord) *float64 {
	for _, access := range c {
		v, ok := access(rec)
		if !ok {
			continue
		}
		if m := normalize.Money(v); m != nil {
			return m
		}
	}
	return nil
}

func (c Chain) Int(rec model.RawRecord) *int {
	v, ok := c.Value(rec)
	if !ok {
		return nil
	}
	if f, ok := normalize.Float(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n := int(f)
		return &n
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
