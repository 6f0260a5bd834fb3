package coerce

import (
	"fmt"
	"strings"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
)

// cutset is stripped from both ends of every list element.
const cutset = " '\""

// StringOrListToStringList returns the ordered list of strings held by v.
//
// A String of the form "[a, b, c]" is split on commas; any other String is
// a one-element list. Every element has spaces and quote characters trimmed.
// Null, Bool and Number values are rejected with domain.ErrTypeKind.
func StringOrListToStringList(v Value) ([]string, error) {
	switch v.kind {
	case KindString:
		if strings.HasPrefix(v.str, "[") && strings.HasSuffix(v.str, "]") {
			parts := strings.Split(strings.Trim(v.str, "[]"), ",")
			out := make([]string, len(parts))
			for i, p := range parts {
				out[i] = strings.Trim(p, cutset)
			}
			return out, nil
		}
		return []string{strings.Trim(v.str, cutset)}, nil
	case KindList:
		out := make([]string, len(v.list))
		for i, p := range v.list {
			out[i] = strings.Trim(p, cutset)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %s to a string list", domain.ErrTypeKind, v.kind)
	}
}

// ToOptionalBool converts v to a boolean. Null yields nil.
//
// Strings accept "true"/"false" in any case and "1"/"0"; anything else is
// domain.ErrValueKind. Numbers are true when non-zero. Lists are
// domain.ErrTypeKind.
func ToOptionalBool(v Value) (*bool, error) {
	var b bool
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		b = v.b
	case KindString:
		switch {
		case strings.EqualFold(v.str, "true") || v.str == "1":
			b = true
		case strings.EqualFold(v.str, "false") || v.str == "0":
			b = false
		default:
			return nil, fmt.Errorf("%w: cannot convert string %q to boolean", domain.ErrValueKind, v.str)
		}
	case KindNumber:
		b = v.num != 0
	default:
		return nil, fmt.Errorf("%w: cannot convert %s to boolean", domain.ErrTypeKind, v.kind)
	}
	return &b, nil
}

// ToBool is ToOptionalBool with a fallback for Null.
func ToBool(v Value, fallback bool) (bool, error) {
	b, err := ToOptionalBool(v)
	if err != nil {
		return false, err
	}
	if b == nil {
		return fallback, nil
	}
	return *b, nil
}
