package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/hollow/internal/obj"
)

// Format implements std.format(str, vals): a small printf-style
// substitution supporting %s, %d, %f, %g, %x, %X, %o and %%. vals may
// be a single value (used for exactly one verb) or an array supplying
// one value per verb in order. This is deliberately narrower than C
// printf: Hollow has no format flags/width beyond a plain numeric
// width (applied to %d, %x, %X and %o; ignored for the other verbs),
// matching the documented subset of std.format in the
// jsonnet-family implementations this evaluator follows.
func (e *Evaluator) Format(pattern string, vals obj.Value) (obj.Value, error) {
	var values []obj.Value
	arr, isArr := vals.(*obj.Arr)
	if isArr {
		for _, t := range arr.Elements {
			v, err := e.force(t)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	} else {
		values = []obj.Value{vals}
	}

	var sb strings.Builder
	vi := 0
	next := func() (obj.Value, error) {
		if vi >= len(values) {
			return nil, newErr(FormatError, "not enough values for format string %q", pattern)
		}
		v := values[vi]
		vi++
		return v, nil
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' {
			sb.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return nil, newErr(FormatError, "trailing %% in format string")
		}
		// optional width digits, e.g. %5d / %05d
		widthStart := i
		for i < len(runes) && (runes[i] == '0' || (runes[i] >= '1' && runes[i] <= '9')) {
			i++
		}
		widthSpec := string(runes[widthStart:i])
		if i >= len(runes) {
			return nil, newErr(FormatError, "incomplete format verb")
		}
		verb := runes[i]
		if verb == '%' {
			sb.WriteByte('%')
			continue
		}
		v, err := next()
		if err != nil {
			return nil, err
		}
		rendered, err := formatOne(verb, widthSpec, v)
		if err != nil {
			return nil, err
		}
		sb.WriteString(rendered)
	}
	if isArr && vi < len(values) {
		return nil, newErr(FormatError, "too many values for format string %q: used %d of %d", pattern, vi, len(values))
	}
	return obj.Str(sb.String()), nil
}

func formatOne(verb rune, widthSpec string, v obj.Value) (string, error) {
	switch verb {
	case 's':
		return formatValueAsString(v), nil
	case 'd':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%d requires a number, got %s", v.Kind())
		}
		return applyWidth(widthSpec, strconv.FormatInt(int64(n), 10)), nil
	case 'f':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%f requires a number, got %s", v.Kind())
		}
		return fmt.Sprintf("%f", float64(n)), nil
	case 'g':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%g requires a number, got %s", v.Kind())
		}
		return fmt.Sprintf("%g", float64(n)), nil
	case 'x':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%x requires a number, got %s", v.Kind())
		}
		return applyWidth(widthSpec, strconv.FormatInt(int64(n), 16)), nil
	case 'X':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%X requires a number, got %s", v.Kind())
		}
		return strings.ToUpper(applyWidth(widthSpec, strconv.FormatInt(int64(n), 16))), nil
	case 'o':
		n, ok := v.(obj.Num)
		if !ok {
			return "", newErr(IncorrectUserFormatTarget, "%%o requires a number, got %s", v.Kind())
		}
		return applyWidth(widthSpec, strconv.FormatInt(int64(n), 8)), nil
	default:
		return "", newErr(FormatError, "unsupported format verb %%%c", verb)
	}
}

func applyWidth(spec, s string) string {
	if spec == "" {
		return s
	}
	zeroPad := strings.HasPrefix(spec, "0")
	width, err := strconv.Atoi(spec)
	if err != nil || width <= len(s) {
		return s
	}
	pad := width - len(s)
	if zeroPad {
		neg := strings.HasPrefix(s, "-")
		if neg {
			return "-" + strings.Repeat("0", pad) + s[1:]
		}
		return strings.Repeat("0", pad) + s
	}
	return strings.Repeat(" ", pad) + s
}

func formatValueAsString(v obj.Value) string {
	switch vv := v.(type) {
	case obj.Str:
		return string(vv)
	case obj.Num:
		return formatNumber(float64(vv))
	case obj.Bool:
		if vv {
			return "true"
		}
		return "false"
	case obj.Null:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
