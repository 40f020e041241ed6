package database

import (
	"reflect"
	"sort"
)

// ValuesEqual compares two field values for filtering. JSON decoding hands
// back float64 for every number, while callers pass int literals, so numeric
// values compare by magnitude across types.
func ValuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	if as, aok := a.(string); aok {
		bs, bok := b.(string)
		return bok && as == bs
	}
	if ab, aok := a.(bool); aok {
		bb, bok := b.(bool)
		return bok && ab == bb
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Matches reports whether rec satisfies every equality test in filter.
func Matches(rec Record, filter Filter) bool {
	for field, want := range filter {
		if !ValuesEqual(rec[field], want) {
			return false
		}
	}
	return true
}

// lessValue orders two field values: numbers by magnitude, everything else
// by string form. Mixed types sort numbers first, matching nothing in
// particular but staying deterministic.
func lessValue(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	if aok != bok {
		return aok
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

// SortRecords sorts records in place by order. Stable, so records with equal
// keys keep their relative (insertion) order.
func SortRecords(records []Record, order *Order) {
	if order == nil || order.Field == "" {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if order.Ascending {
			return lessValue(records[i][order.Field], records[j][order.Field])
		}
		return lessValue(records[j][order.Field], records[i][order.Field])
	})
}

// CloneRecord returns a shallow copy so callers cannot mutate stored state.
func CloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// CloneRecords copies a whole result set.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = CloneRecord(rec)
	}
	return out
}

// GetString reads a string field, tolerating absence.
func GetString(rec Record, field string) string {
	s, _ := rec[field].(string)
	return s
}

// GetFloat reads a numeric field, tolerating absence and int/float64 mix.
func GetFloat(rec Record, field string) float64 {
	f, _ := asFloat(rec[field])
	return f
}
