package warehouse

import (
	"fmt"
	"math"
	"math/big"

	"cloud.google.com/go/bigquery"
	"github.com/shopspring/decimal"
)

// decimalOf reads a NUMERIC, FLOAT64 or INT64 cell. NULL, NaN and
// infinities read as zero.
func decimalOf(v bigquery.Value) decimal.Decimal {
	switch x := v.(type) {
	case *big.Rat:
		if x == nil {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(x.FloatString(9))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if !finite(x) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func intOf(v bigquery.Value) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case float64:
		if !finite(x) {
			return 0
		}
		return int(x)
	default:
		return 0
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func stringOf(v bigquery.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
