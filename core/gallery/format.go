package gallery

import (
	"fmt"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/utf8string"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// FormatSize returns a human-readable byte size like "1.2 MB".
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}

	return humanize.Bytes(uint64(size))
}

func capitalize(value string) string {
	str := utf8string.NewString(value)
	if str.RuneCount() == 0 {
		return value
	}

	return string(unicode.ToUpper(str.At(0))) + str.Slice(1, str.RuneCount())
}

// Printer returns a Translator which looks formats up in the catalog for the language
// and applies them with fmt.Sprintf. Missing formats are used as is.
func Printer(tag language.Tag, messages catalog.Catalog) Translator {
	if messages == nil {
		return Sprintf
	}

	return func(format string, args ...interface{}) string {
		lookup := new(formatLookup)
		if err := messages.Context(tag, lookup).Execute(format); err == nil && lookup.found {
			format = lookup.format
		}

		return fmt.Sprintf(format, args...)
	}
}

// formatLookup collects the raw message text instead of printing it.
type formatLookup struct {
	format string
	found  bool
}

func (l *formatLookup) Render(s string) {
	l.format += s
	l.found = true
}

func (l *formatLookup) Arg(i int) interface{} { return nil }
