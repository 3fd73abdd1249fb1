package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// CellString renders a sheet cell as text. The Sheets API hands cells back
// as interface{} values, usually strings.
func CellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// CoerceFloat converts a cell to a float64. Non-numeric cells coerce to 0.
func CoerceFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CoerceInt converts a cell to an int with the same lossy policy.
func CoerceInt(v interface{}) int {
	return int(CoerceFloat(v))
}
