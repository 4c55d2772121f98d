package obo

import (
	"errors"
	"strings"
)

// splitComment separates "DOID:4 {qualifiers} ! disease" into the value
// without qualifiers and the trimmed comment.
func splitComment(value string) (string, string) {
	body, comment, _ := strings.Cut(value, " !")
	return stripQualifiers(body), strings.TrimSpace(comment)
}

// stripTrailing removes both a trailing comment and a qualifier block.
func stripTrailing(value string) string {
	body, _ := splitComment(value)
	return body
}

// stripQualifiers removes a trailing {...} block.
func stripQualifiers(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "}") {
		if i := strings.LastIndex(value, "{"); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}
	}
	return value
}

func firstField(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// unquote reads the leading quoted string of value, resolving backslash
// escapes. Whatever follows the closing quote (scope, dbxrefs) is ignored.
func unquote(value string) (string, error) {
	if !strings.HasPrefix(value, `"`) {
		return "", errors.New("value must start with a quoted string")
	}

	var sb strings.Builder
	escaped := false
	for _, r := range value[1:] {
		switch {
		case escaped:
			switch r {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return sb.String(), nil
		default:
			sb.WriteRune(r)
		}
	}
	return "", errors.New("unterminated quoted string")
}
