package gallery

import (
	"strings"

	"golang.org/x/net/html"
)

// Attrs is an ordered list of element attributes.
type Attrs []html.Attribute

func (a Attrs) With(key, value string) Attrs {
	return append(a[:len(a):len(a)], html.Attribute{Key: key, Val: value})
}

func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}

	return "", false
}

// Union appends attributes from other whose keys are not present in a.
func (a Attrs) Union(other Attrs) Attrs {
	result := make(Attrs, len(a), len(a)+len(other))
	copy(result, a)
	for _, attr := range other {
		if _, ok := result.Get(attr.Key); !ok {
			result = append(result, attr)
		}
	}

	return result
}

// Merge is like Union, but values from other replace values in a.
func (a Attrs) Merge(other Attrs) Attrs {
	result := make(Attrs, len(a), len(a)+len(other))
	copy(result, a)
	for _, attr := range other {
		replaced := false
		for i := range result {
			if result[i].Key == attr.Key {
				result[i].Val = attr.Val
				replaced = true
				break
			}
		}

		if !replaced {
			result = append(result, attr)
		}
	}

	return result
}

// String renders attributes with a leading space before each one.
func (a Attrs) String() string {
	sb := new(strings.Builder)
	for _, attr := range a {
		sb.WriteRune(' ')
		sb.WriteString(html.EscapeString(attr.Key))
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Val))
		sb.WriteRune('"')
	}

	return sb.String()
}

func startTag(name string, attrs Attrs) string {
	return "<" + name + attrs.String() + ">"
}

func endTag(name string) string {
	return "</" + name + ">"
}
