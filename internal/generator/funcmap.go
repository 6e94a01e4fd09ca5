package generator

import (
	"fmt"
	"strings"
	"text/template"
)

// hexBytes renders data as the body of a C byte array, twelve bytes per line.
func hexBytes(data []byte) string {
	if len(data) == 0 {
		// Zero-length arrays are not valid C++.
		return "    0x00,"
	}
	var sb strings.Builder
	sb.Grow(len(data)*6 + len(data)/12*5)
	for i, b := range data {
		if i%12 == 0 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString("    ")
		} else {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%02x,", b)
	}
	return sb.String()
}

// cString escapes s for use between double quotes in C++ source.
// Non-ASCII text is kept as UTF-8.
func cString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '?':
			// Avoid trigraphs.
			sb.WriteString(`\?`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\%03o`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// rawString renders s as a C++ raw string literal, picking a delimiter that
// does not occur in s.
func rawString(s string) string {
	delim := ""
	for i := 0; strings.Contains(s, ")"+delim+`"`); i++ {
		delim = fmt.Sprintf("x%d", i)
	}
	return `R"` + delim + "(" + s + ")" + delim + `"`
}

// GetCommonFuncMap returns the template functions shared by every renderer.
func GetCommonFuncMap() template.FuncMap {
	return template.FuncMap{
		"hexBytes":  hexBytes,
		"cString":   cString,
		"rawString": rawString,
	}
}
