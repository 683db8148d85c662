package toast

import (
	"fmt"
	"strings"
)

// Variant selects the icon and frame colour of a toast.
type Variant int

const (
	Success Variant = iota
	Error
	Info
)

var variantNames = map[Variant]string{
	Success: "success",
	Error:   "error",
	Info:    "info",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Icon returns the glyph shown at the start of the toast.
func (v Variant) Icon() string {
	switch v {
	case Success:
		return "✔"
	case Error:
		return "✖"
	default:
		return "ℹ"
	}
}

// ParseVariant maps a variant name to its value.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return Success, nil
	case "error":
		return Error, nil
	case "info":
		return Info, nil
	}
	return Info, fmt.Errorf("unknown toast variant %q", s)
}
