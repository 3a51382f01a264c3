package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is how timestamps are rendered in query results.
const TimeLayout = "2006-01-02 15:04:05"

// Result is an ordered set of rows whose values are rendered as strings.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// FormatValue renders a scanned driver value. NULL becomes "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimRight(x, " ")
	case []byte:
		return strings.TrimRight(string(x), " ")
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(TimeLayout)
	default:
		return strings.TrimRight(fmt.Sprint(x), " ")
	}
}

// FormatDate renders a DATE column value as YYYY-MM-DD.
func FormatDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return FormatValue(v)
}
