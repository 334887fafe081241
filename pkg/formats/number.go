package formats

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// ParseNumberToken reads a coordinate that may be stored as a JSON number or
// as a numeric string. Strings are read like JavaScript's parseFloat: leading
// whitespace is skipped and the longest decimal prefix wins, so "12px" is 12.
// ok is false when the token holds no number.
func ParseNumberToken(tok gjson.Result) (v float64, ok bool) {
	switch tok.Type {
	case gjson.Number:
		v = tok.Num
	case gjson.String:
		v = parseFloatPrefix(tok.Str)
	default:
		return math.NaN(), false
	}
	return v, !math.IsNaN(v)
}

func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FormatNumber prints f the way a JavaScript JSON encoder does: shortest
// round-trip digits, plain notation for exponents in [-7, 21), and null for
// values JSON cannot hold.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// d.ddddde±xx
	mant, expPart, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)

	k := len(digits)
	n := exp + 1
	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	e := n - 1
	expSign := "+"
	if e < 0 {
		expSign = "-"
		e = -e
	}
	m := digits[:1]
	if k > 1 {
		m += "." + digits[1:]
	}
	return sign + m + "e" + expSign + strconv.Itoa(e)
}

// NumberArray encodes values as a compact JSON array.
func NumberArray(values ...float64) []byte {
	buf := make([]byte, 0, 2+len(values)*8)
	buf = append(buf, '[')
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, FormatNumber(v)...)
	}
	return append(buf, ']')
}
