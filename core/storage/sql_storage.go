package storage

import (
	"context"

	"gorm.io/gorm"

	"imagesgallery/core/gallery"
	gormutil "imagesgallery/util/gorm"
)

type SQLStorage gorm.DB

func (s *SQLStorage) Unmask() *gorm.DB {
	return (*gorm.DB)(s)
}

func (s *SQLStorage) Init(ctx context.Context) error {
	return s.Unmask().WithContext(ctx).AutoMigrate(new(File), new(ElementText))
}

func (s *SQLStorage) SaveFiles(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return nil
	}

	return s.Unmask().WithContext(ctx).
		Clauses(gormutil.UpsertClause(files)).
		Create(&files).
		Error
}

func (s *SQLStorage) SaveElementTexts(ctx context.Context, texts []ElementText) error {
	if len(texts) == 0 {
		return nil
	}

	return s.Unmask().WithContext(ctx).
		Clauses(gormutil.UpsertClause(texts)).
		Create(&texts).
		Error
}

// ItemRecords returns files attached to the item in display order.
func (s *SQLStorage) ItemRecords(ctx context.Context, itemID int64) ([]*gallery.Record, error) {
	files := make([]File, 0)
	if err := s.Unmask().WithContext(ctx).
		Where("item_id = ?", itemID).
		Order(`"order" asc nulls last, id asc`).
		Find(&files).
		Error; err != nil {
		return nil, err
	}

	records := make([]*gallery.Record, len(files))
	for i := range files {
		records[i] = files[i].Record()
	}

	return records, nil
}

func (s *SQLStorage) ElementTexts(ctx context.Context, recordType string, recordIDs, elementIDs []int64) ([]ElementText, error) {
	texts := make([]ElementText, 0)
	if len(recordIDs) == 0 || len(elementIDs) == 0 {
		return texts, nil
	}

	return texts, s.Unmask().WithContext(ctx).
		Where("record_type = ? and record_id in ? and element_id in ?", recordType, recordIDs, elementIDs).
		Order("id asc").
		Find(&texts).
		Error
}
