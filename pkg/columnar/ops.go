package columnar

import (
	"cmp"
	"slices"
	"strconv"
)

// ops holds the per-kind behavior of a Vector[T]: ordering, canonical text
// and numeric widening (nil for non-numeric kinds).
type ops[T Element] struct {
	kind    Kind
	size    int64
	compare func(a, b T) int
	format  func(v T) string
	float   func(v T) float64
}

func formatInt[T int8 | int16 | int32 | int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func widen[T int8 | int16 | int32 | int64 | float32 | float64](v T) float64 {
	return float64(v)
}

var (
	int8Ops  = &ops[int8]{kind: KindInt8, size: 1, compare: cmp.Compare[int8], format: formatInt[int8], float: widen[int8]}
	int16Ops = &ops[int16]{kind: KindInt16, size: 2, compare: cmp.Compare[int16], format: formatInt[int16], float: widen[int16]}
	int32Ops = &ops[int32]{kind: KindInt32, size: 4, compare: cmp.Compare[int32], format: formatInt[int32], float: widen[int32]}
	int64Ops = &ops[int64]{kind: KindInt64, size: 8, compare: cmp.Compare[int64], format: formatInt[int64], float: widen[int64]}

	float32Ops = &ops[float32]{
		kind:    KindFloat32,
		size:    4,
		compare: cmp.Compare[float32],
		format:  func(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) },
		float:   widen[float32],
	}
	float64Ops = &ops[float64]{
		kind:    KindFloat64,
		size:    8,
		compare: cmp.Compare[float64],
		format:  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		float:   widen[float64],
	}

	charOps = &ops[Char]{
		kind:    KindChar,
		size:    4,
		compare: cmp.Compare[Char],
		format:  func(v Char) string { return string(rune(v)) },
	}
	boolOps = &ops[bool]{
		kind: KindBool,
		size: 1,
		compare: func(a, b bool) int {
			switch {
			case a == b:
				return 0
			case !a:
				return -1
			default:
				return 1
			}
		},
		format: strconv.FormatBool,
	}
	textOps = &ops[string]{
		kind:    KindText,
		size:    16,
		compare: cmp.Compare[string],
		format:  func(v string) string { return v },
	}
)

// opsFor returns the shared ops table for T.
func opsFor[T Element]() *ops[T] {
	var zero T
	var o interface{}
	switch any(zero).(type) {
	case int8:
		o = int8Ops
	case int16:
		o = int16Ops
	case int32:
		o = int32Ops
	case int64:
		o = int64Ops
	case float32:
		o = float32Ops
	case float64:
		o = float64Ops
	case Char:
		o = charOps
	case bool:
		o = boolOps
	case string:
		o = textOps
	}
	return o.(*ops[T])
}

func stableSort(perm []int, compare func(i, j int) int) {
	slices.SortStableFunc(perm, compare)
}
