package schema

import (
	"strconv"
	"strings"
)

// Path locates a value inside a payload. Segments are field names (string) or sequence indexes (int).
type Path []any

func (p Path) Field(name string) Path {
	return append(p[:len(p):len(p)], name)
}

func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], i)
}

// LastIndex reports the index of the last segment when it addresses a sequence element.
func (p Path) LastIndex() (int, bool) {
	if len(p) == 0 {
		return 0, false
	}

	i, ok := p[len(p)-1].(int)

	return i, ok
}

func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}

	var sb strings.Builder

	for _, segment := range p {
		switch s := segment.(type) {
		case int:
			sb.WriteString("[" + strconv.Itoa(s) + "]")
		case string:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}

			sb.WriteString(s)
		}
	}

	return sb.String()
}
