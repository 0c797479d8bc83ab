package normalize

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var moneyNoise = regexp.MustCompile(`[^0-9.,\-]`)

// Money converts currency strings ("R$ 19.523,00", "195,23") and numbers into a
// value. Integers with magnitude >= 1000 are assumed to be cents. A nil result
// means unknown and must not be read as zero.
func Money(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return moneyFromString(val)
	case []byte:
		return moneyFromString(string(val))
	case *float64:
		if val == nil {
			return nil
		}
		return moneyFromNumber(*val)
	}
	f, ok := Float(v)
	if !ok {
		return nil
	}
	return moneyFromNumber(f)
}

func moneyFromNumber(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f == math.Trunc(f) && math.Abs(f) >= 1000 {
		f = f / 100
	}
	return &f
}

func moneyFromString(s string) *float64 {
	cleaned := moneyNoise.ReplaceAllString(strings.TrimSpace(s), "")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return nil
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	if hasComma && !hasDot {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// SumMoney adds the known values exactly; nil entries count as zero.
func SumMoney(values ...*float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(*v))
	}
	return total.InexactFloat64()
}

// Float reads any numeric representation a fact source may hand back.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case decimal.Decimal:
		return n.InexactFloat64(), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
