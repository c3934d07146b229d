package interview

import (
	"encoding/json"
	"strconv"
	"strings"
)

// scoreValue decodes a JSON number or numeric string. Anything else is
// treated as absent rather than failing the whole record.
type scoreValue struct {
	value float64
	ok    bool
}

func (v *scoreValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = scoreValue{value: num, ok: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*v = scoreValue{value: parsed, ok: true}
			return nil
		}
	}
	*v = scoreValue{}
	return nil
}

// stringList decodes a JSON array of strings or a bare string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && strings.TrimSpace(s) != "" {
		*l = stringList{s}
		return nil
	}
	*l = nil
	return nil
}

// flexBool decodes a JSON bool or its string form.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes":
			*b = true
			return nil
		}
	}
	*b = false
	return nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
