package confee

import (
	"fmt"
	"strconv"
	"strings"
)

// Walk navigates from p along a path string like `$.a.'b c'[0]`. The
// leading `$.` may be omitted. Walking never materializes anything: the
// result is a live handle whether or not the path exists.
func Walk(p *Proxy, path string) (*Proxy, error) {
	subs, err := parsePath(path)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	for _, k := range subs {
		if k.kind == fieldSub {
			p = p.Get(k.field)
		} else {
			p = p.At(k.index)
		}
	}
	return p, nil
}

func parsePath(s string) ([]subscript, error) {
	var subs []subscript
	i := 0
	if strings.HasPrefix(s, "$") {
		i = 1
	} else if len(s) > 0 && s[0] != '.' && s[0] != '[' {
		// bare leading field
		field, n, err := parseField(s)
		if err != nil {
			return nil, err
		}
		subs = append(subs, fieldKey(field))
		i = n
	}
	for i < len(s) {
		switch s[i] {
		case '.':
			field, n, err := parseField(s[i+1:])
			if err != nil {
				return nil, err
			}
			subs = append(subs, fieldKey(field))
			i += 1 + n
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j == -1 {
				return nil, fmt.Errorf("expected '[' <index> ']'")
			}
			index, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil {
				return nil, err
			}
			subs = append(subs, indexKey(index))
			i += j + 1
		default:
			return nil, fmt.Errorf("expected '.' or '['")
		}
	}
	return subs, nil
}

// parseField scans a field name, bare or single-quoted. Inside quotes a
// backslash escapes only a quote or another backslash; any other
// backslash is literal.
func parseField(frag string) (field string, consumed int, err error) {
	if len(frag) == 0 {
		return "", 0, fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, len(frag), nil
		}
		return frag[:i], i, nil
	}
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		if c == '\\' && i+1 < len(frag) && (frag[i+1] == '\'' || frag[i+1] == '\\') {
			res = append(res, frag[i+1])
			i++
			continue
		}
		if c == '\'' {
			return string(res), i + 1, nil
		}
		res = append(res, c)
	}
	return "", 0, fmt.Errorf("end of string scanning for \"'\"")
}
