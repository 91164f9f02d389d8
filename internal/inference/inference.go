// Package inference picks a column kind for a sequence of text cells, such
// as one column of a CSV file, and parses cells into values of that kind.
package inference

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// Engine infers column kinds from sample cells.
type Engine struct {
	logger *zap.Logger

	// Configuration
	sampleSize     int
	narrowIntegers bool
	detectChars    bool
}

// Inferred is the outcome of inferring one column.
type Inferred struct {
	Kind         columnar.Kind `json:"kind"`
	Confidence   float64       `json:"confidence"`
	Cardinality  int           `json:"cardinality"`
	Samples      int           `json:"samples"`
	NumericStats *NumericStats `json:"numeric_stats,omitempty"`
}

// NumericStats holds the range of a numeric column's samples.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithSampleSize limits inference to the first n cells. n <= 0 samples all.
func WithSampleSize(n int) Option {
	return func(e *Engine) { e.sampleSize = n }
}

// WithNarrowIntegers picks the smallest integer kind that holds every
// sampled value instead of int64.
func WithNarrowIntegers(on bool) Option {
	return func(e *Engine) { e.narrowIntegers = on }
}

// WithChars infers char for columns of single non-digit characters.
func WithChars(on bool) Option {
	return func(e *Engine) { e.detectChars = on }
}

// NewEngine creates a new inference engine
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:      logger,
		detectChars: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type detected uint8

const (
	detectedInt detected = iota
	detectedFloat
	detectedBool
	detectedChar
	detectedText
)

// Infer picks the narrowest kind that can hold every sampled cell. Integers
// and floats mix into float64; any other mix, or any empty cell, is text.
func (e *Engine) Infer(field string, cells []string) *Inferred {
	if e.sampleSize > 0 && len(cells) > e.sampleSize {
		cells = cells[:e.sampleSize]
	}
	out := &Inferred{Kind: columnar.KindText, Samples: len(cells)}
	if len(cells) == 0 {
		return out
	}

	counts := make(map[detected]int)
	unique := make(map[string]struct{})
	for _, c := range cells {
		counts[e.detect(c)]++
		unique[c] = struct{}{}
	}
	out.Cardinality = len(unique)

	dominant, most := detectedText, 0
	for d, n := range counts {
		if n > most || (n == most && d < dominant) {
			dominant, most = d, n
		}
	}
	out.Confidence = float64(most) / float64(len(cells))

	switch {
	case len(counts) == 1:
		out.Kind = e.kindFor(dominant, cells)
	case len(counts) == 2 && counts[detectedInt]+counts[detectedFloat] == len(cells):
		out.Kind = columnar.KindFloat64
	default:
		out.Kind = columnar.KindText
	}
	if out.Kind.IsNumeric() {
		out.NumericStats = numericStats(cells)
	}

	e.logger.Debug("inferred column kind",
		zap.String("field", field),
		zap.String("kind", out.Kind.String()),
		zap.Float64("confidence", out.Confidence),
		zap.Int("samples", len(cells)))
	return out
}

func (e *Engine) detect(s string) detected {
	if s == "" {
		return detectedText
	}
	if isInteger(s) {
		return detectedInt
	}
	if isFloat(s) {
		return detectedFloat
	}
	if isBool(s) {
		return detectedBool
	}
	if e.detectChars && utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return detectedChar
		}
	}
	return detectedText
}

func (e *Engine) kindFor(d detected, cells []string) columnar.Kind {
	switch d {
	case detectedInt:
		if e.narrowIntegers {
			return narrowest(cells)
		}
		return columnar.KindInt64
	case detectedFloat:
		return columnar.KindFloat64
	case detectedBool:
		return columnar.KindBool
	case detectedChar:
		return columnar.KindChar
	default:
		return columnar.KindText
	}
}

func narrowest(cells []string) columnar.Kind {
	var lo, hi int64
	for _, c := range cells {
		v, _ := strconv.ParseInt(c, 10, 64)
		lo, hi = min(lo, v), max(hi, v)
	}
	switch {
	case lo >= math.MinInt8 && hi <= math.MaxInt8:
		return columnar.KindInt8
	case lo >= math.MinInt16 && hi <= math.MaxInt16:
		return columnar.KindInt16
	case lo >= math.MinInt32 && hi <= math.MaxInt32:
		return columnar.KindInt32
	default:
		return columnar.KindInt64
	}
}

func numericStats(cells []string) *NumericStats {
	stats := &NumericStats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			continue
		}
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
		sum += v
	}
	stats.Mean = sum / float64(len(cells))
	return stats
}

// Helper methods for type detection
func isBool(s string) bool {
	lower := strings.ToLower(s)
	return lower == "true" || lower == "false"
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat accepts finite decimals only; "NaN" and "Inf" stay text.
func isFloat(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Parse converts one cell to a value of the given kind.
func Parse(kind columnar.Kind, s string) (interface{}, error) {
	switch kind {
	case columnar.KindInt8, columnar.KindInt16, columnar.KindInt32, columnar.KindInt64:
		v, err := strconv.ParseInt(s, 10, bitSize(kind))
		if err != nil {
			return nil, parseError(kind, s, err)
		}
		switch kind {
		case columnar.KindInt8:
			return int8(v), nil
		case columnar.KindInt16:
			return int16(v), nil
		case columnar.KindInt32:
			return int32(v), nil
		default:
			return v, nil
		}
	case columnar.KindFloat32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, parseError(kind, s, err)
		}
		return float32(v), nil
	case columnar.KindFloat64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, parseError(kind, s, err)
		}
		return v, nil
	case columnar.KindChar:
		if utf8.RuneCountInString(s) != 1 {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "%q is not a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return columnar.Char(r), nil
	case columnar.KindBool:
		switch strings.ToLower(s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "%q is not a bool", s)
	case columnar.KindText:
		return s, nil
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", kind)
	}
}

func bitSize(kind columnar.Kind) int {
	switch kind {
	case columnar.KindInt8:
		return 8
	case columnar.KindInt16:
		return 16
	case columnar.KindInt32:
		return 32
	default:
		return 64
	}
}

func parseError(kind columnar.Kind, s string, err error) error {
	return tableerrors.Wrap(err, tableerrors.ErrorTypeType, "cannot parse "+strconv.Quote(s)+" as "+kind.String())
}
