// Package escape implements the percent-encoding used when composing
// URLs and form bodies.
package escape

const upperhex = "0123456789ABCDEF"

// Escape replaces every byte that is not legal in a URL with a %XX
// sequence. The unescaped set is A-Z a-z 0-9 '-' '_' '.' '~'; '$' and
// ',' stay unescaped too unless isParameter is true, since they are
// legal in a URL but not inside a parameter value. A space becomes '+'
// in parameter mode and %20 otherwise. Multi-byte runes are escaped
// byte by byte.
func Escape(s string, isParameter bool) string {
	if !needsEscape(s, isParameter) {
		return s
	}

	buf := make([]byte, 0, len(s)*3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isLegal(c, isParameter):
			buf = append(buf, c)
		case c == ' ' && isParameter:
			buf = append(buf, '+')
		default:
			buf = append(buf, '%', upperhex[c>>4], upperhex[c&0x0f])
		}
	}
	return string(buf)
}

// Unescape reverses Escape. Both '+' and %20 turn back into a space.
// Malformed sequences (a '%' not followed by two hex digits) are left
// untouched rather than reported: decoding is best-effort so that
// arbitrary captured text round-trips.
func Unescape(s string) string {
	if !containsEscape(s) {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			buf = append(buf, ' ')
		case '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
				i += 2
			} else {
				buf = append(buf, c)
			}
		default:
			buf = append(buf, c)
		}
	}
	return string(buf)
}

func needsEscape(s string, isParameter bool) bool {
	for i := 0; i < len(s); i++ {
		if !isLegal(s[i], isParameter) {
			return true
		}
	}
	return false
}

func containsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || s[i] == '+' {
			return true
		}
	}
	return false
}

func isLegal(c byte, isParameter bool) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	case c == '$', c == ',':
		return !isParameter
	default:
		return false
	}
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
