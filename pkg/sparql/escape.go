package sparql

import (
	"fmt"
	"strings"
)

const regexMeta = `^$.|?*+()[]{}`

// EscapeRegex makes s safe to embed as a regex inside a double-quoted SPARQL
// string literal. Regex metacharacters get a regex escape, which itself has to
// survive the string-literal unescaping, hence the doubled backslashes.
func EscapeRegex(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case strings.ContainsRune(regexMeta, r):
			b.WriteString(`\\`)
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeLiteral escapes s for use inside a double-quoted SPARQL string literal.
func EscapeLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}

// SubstringFilter returns a FILTER matching variable against any keyword,
// case-insensitively. It returns "" when there are no usable keywords.
func SubstringFilter(variable string, keywords []string) string {
	var disjuncts []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		disjuncts = append(disjuncts, fmt.Sprintf(`regex(lcase(str(?%s)), "%s")`, variable, EscapeRegex(strings.ToLower(k))))
	}
	if len(disjuncts) == 0 {
		return ""
	}
	return fmt.Sprintf("FILTER ( %s ) .", strings.Join(disjuncts, " || "))
}

// Limit renders a LIMIT clause; n <= 0 means unbounded.
func Limit(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("LIMIT %d", n)
}

// Offset renders an OFFSET clause; n <= 0 renders nothing.
func Offset(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("OFFSET %d", n)
}
