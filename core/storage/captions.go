package storage

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

const (
	DefaultRecordType = "File"

	// DublinCoreTitle is the element ID of the title in a standard install.
	DublinCoreTitle int64 = 50
)

type TextStorage interface {
	ElementTexts(ctx context.Context, recordType string, recordIDs, elementIDs []int64) ([]ElementText, error)
}

// Captions resolves record captions from element texts with a single query.
// Elements lists caption sources by priority. For every record the first
// non-blank text wins, ordered by element priority and then by text ID.
type Captions struct {
	Storage    TextStorage
	RecordType string
	Elements   []int64
}

func (c *Captions) FirstCaptions(ctx context.Context, ids []int64) (map[int64]string, error) {
	captions := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return captions, nil
	}

	recordType := c.RecordType
	if recordType == "" {
		recordType = DefaultRecordType
	}

	elements := c.Elements
	if len(elements) == 0 {
		elements = []int64{DublinCoreTitle}
	}

	texts, err := c.Storage.ElementTexts(ctx, recordType, ids, elements)
	if err != nil {
		return nil, errors.Wrap(err, "get element texts")
	}

	priority := make(map[int64]int, len(elements))
	for i, element := range elements {
		if _, ok := priority[element]; !ok {
			priority[element] = i
		}
	}

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	sort.SliceStable(texts, func(i, j int) bool {
		pi, pj := priority[texts[i].ElementID], priority[texts[j].ElementID]
		if pi != pj {
			return pi < pj
		}

		return texts[i].ID < texts[j].ID
	})

	for _, text := range texts {
		if _, ok := priority[text.ElementID]; !ok || !wanted[text.RecordID] || text.RecordType != recordType {
			continue
		}

		if _, ok := captions[text.RecordID]; ok {
			continue
		}

		value := text.Text
		if text.HTML {
			value = plainText(value)
		}

		if strings.TrimSpace(value) == "" {
			continue
		}

		captions[text.RecordID] = value
	}

	return captions, nil
}

func plainText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	sb := new(strings.Builder)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(tokenizer.Text())
		}
	}
}
