package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw, err := flexRaw(b)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || !finite(f) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
			return fmt.Errorf("invalid integer %q", raw)
		}
		v = int(f)
	}
	*n = FlexInt(v)
	return nil
}

type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(b []byte) error {
	raw, err := flexRaw(b)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(v) {
		return fmt.Errorf("invalid number %q", raw)
	}
	*n = FlexFloat(v)
	return nil
}

// finite rejects the Inf and NaN spellings strconv.ParseFloat accepts.
func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// flexRaw unwraps a JSON number or string; null yields "".
func flexRaw(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}
