package source

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CanonicalID returns the string form used for group and entity identifiers.
// Decimal identifiers lose leading zeros so that "01", "1" and the JSON number 1 address the same key.
func CanonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return strconv.FormatUint(n, 10)
	}
	return raw
}

// maxIntegral is the largest magnitude a float64 identifier holds exactly
const maxIntegral = 1 << 53

// ID converts a decoded identifier value to its canonical string form
func ID(value interface{}) (string, error) {
	switch actual := value.(type) {
	case nil:
		return "", nil
	case string:
		return CanonicalID(actual), nil
	case json.Number:
		if n, err := actual.Int64(); err == nil {
			return strconv.FormatInt(n, 10), nil
		}
		f, err := actual.Float64()
		if err != nil {
			return "", fmt.Errorf("invalid identifier: %s", actual)
		}
		return ID(f)
	case int:
		return strconv.Itoa(actual), nil
	case int64:
		return strconv.FormatInt(actual, 10), nil
	case uint64:
		return strconv.FormatUint(actual, 10), nil
	case float64:
		if actual != math.Trunc(actual) || math.Abs(actual) > maxIntegral {
			return "", fmt.Errorf("non integral identifier: %v", actual)
		}
		return strconv.FormatInt(int64(actual), 10), nil
	}
	return "", fmt.Errorf("unsupported identifier type: %T", value)
}
