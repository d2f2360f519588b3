package gallery

import (
	"context"
	"fmt"
)

// PatternLinker links records to URLs built from Pattern with the action
// and the record ID as arguments, like "/files/%s/%d".
type PatternLinker struct {
	Pattern string
}

func (l PatternLinker) RenderLink(ctx context.Context, record *Record, action string, inner string, attrs Attrs) (string, error) {
	href := fmt.Sprintf(l.Pattern, action, record.ID)
	return startTag("a", Attrs{}.With("href", href).Union(attrs)) + inner + endTag("a"), nil
}
