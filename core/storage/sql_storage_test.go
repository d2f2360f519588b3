package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"imagesgallery/core/gallery"
	"imagesgallery/core/storage"
	gormutil "imagesgallery/util/gorm"
)

func TestSQLStorage(t *testing.T) {
	ctx, cancel := getContext()
	defer cancel()

	db := gormutil.NewTestDatabase(t)
	defer db.Close()

	s := (*storage.SQLStorage)(db.DB)
	assert.Nil(t, s.Init(ctx))

	records, err := s.ItemRecords(ctx, 10)
	assert.Nil(t, err)
	assert.Empty(t, records)

	assert.Nil(t, s.SaveFiles(ctx, []storage.File{
		{ID: 1, ItemID: 10, Order: null.IntFrom(2), Filename: "b.jpg", OriginalFilename: "B.jpg", Size: 100, HasDerivativeImage: true},
		{ID: 2, ItemID: 10, Filename: "c.jpg", OriginalFilename: "C.jpg", Size: 200},
		{ID: 3, ItemID: 10, Order: null.IntFrom(1), Filename: "a.png", OriginalFilename: "A.png", Size: 300, MimeType: null.StringFrom("image/png")},
		{ID: 4, ItemID: 11, Filename: "d.jpg", OriginalFilename: "D.jpg", Size: 400},
	}))

	records, err = s.ItemRecords(ctx, 10)
	assert.Nil(t, err)
	assert.Equal(t, []*gallery.Record{
		{ID: 3, Filename: "a.png", OriginalFilename: "A.png", Size: 300, MimeType: "image/png"},
		{ID: 1, Filename: "b.jpg", OriginalFilename: "B.jpg", Size: 100, HasDerivative: true},
		{ID: 2, Filename: "c.jpg", OriginalFilename: "C.jpg", Size: 200},
	}, records)

	assert.Nil(t, s.SaveFiles(ctx, []storage.File{
		{ID: 2, ItemID: 10, Order: null.IntFrom(0), Filename: "c.jpg", OriginalFilename: "C.jpg", Size: 200},
	}))

	records, err = s.ItemRecords(ctx, 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), records[0].ID)

	assert.Nil(t, s.SaveElementTexts(ctx, []storage.ElementText{
		{ID: 1, RecordID: 1, RecordType: "File", ElementID: 50, Text: "Title of b"},
		{ID: 2, RecordID: 1, RecordType: "File", ElementID: 50, Text: "Second title of b"},
		{ID: 3, RecordID: 3, RecordType: "File", ElementID: 41, Text: "Description of a"},
		{ID: 4, RecordID: 3, RecordType: "File", ElementID: 50, Text: "Title of a"},
		{ID: 5, RecordID: 2, RecordType: "Item", ElementID: 50, Text: "Item title"},
	}))

	texts, err := s.ElementTexts(ctx, "File", []int64{1, 2, 3}, []int64{50})
	assert.Nil(t, err)
	ids := make([]int64, len(texts))
	for i, text := range texts {
		ids[i] = text.ID
	}

	assert.Equal(t, []int64{1, 2, 4}, ids)

	captions := &storage.Captions{Storage: s}
	result, err := captions.FirstCaptions(ctx, []int64{3, 2, 1})
	assert.Nil(t, err)
	assert.Equal(t, map[int64]string{1: "Title of b", 3: "Title of a"}, result)
}

func getContext() (context.Context, func()) {
	return context.WithTimeout(context.Background(), time.Minute)
}
