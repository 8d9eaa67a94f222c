package plan

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sikort/internal/abi"
	"sikort/internal/dispatch"
)

// initSlot builds a slot of kind k from a decoded TOML or YAML scalar.
// Every string gets a freshly allocated buffer.
func initSlot(k abi.Kind, v any, form string) (dispatch.Slot, error) {
	s := dispatch.Slot{Kind: k}
	switch k {
	case abi.KindInt:
		n, ok := asInt64(v)
		if !ok {
			return s, fmt.Errorf("int slot needs an integer, got %T", v)
		}
		s.Int = abi.Int(n)
	case abi.KindBool:
		switch b := v.(type) {
		case bool:
			s.Bool = abi.BoolOf(b)
		default:
			// Raw patterns, including invalid ones, are allowed so plans can
			// exercise checked mode.
			n, ok := asInt64(v)
			if !ok || n < -1<<31 || n > 1<<31-1 {
				return s, fmt.Errorf("bool slot needs true, false or a 32-bit pattern, got %v", v)
			}
			s.Bool = abi.Bool(n)
		}
	case abi.KindString:
		str, ok := v.(string)
		if !ok {
			return s, fmt.Errorf("string slot needs a string, got %T", v)
		}
		switch strings.ToLower(form) {
		case "":
		case "nfc":
			str = norm.NFC.String(str)
		case "nfd":
			str = norm.NFD.String(str)
		default:
			return s, fmt.Errorf("unknown normalization form %q (expected nfc|nfd)", form)
		}
		s.Str = abi.StringOf([]byte(str))
	case abi.KindUnit:
		return s, fmt.Errorf("unit slot takes no initial value")
	}
	return s, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// matches reports whether slot s holds the expected scalar want.
func matches(s *dispatch.Slot, want any) (bool, error) {
	expected, err := initSlot(s.Kind, want, "")
	if err != nil {
		return false, err
	}
	switch s.Kind {
	case abi.KindInt:
		return s.Int == expected.Int, nil
	case abi.KindBool:
		return s.Bool == expected.Bool, nil
	case abi.KindString:
		return string(s.Str.Bytes()) == string(expected.Str.Bytes()), nil
	default:
		return true, nil
	}
}
