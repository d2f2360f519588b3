package storage

import (
	"gopkg.in/guregu/null.v3"

	"imagesgallery/core/gallery"
)

type File struct {
	ID                 int64    `gorm:"primaryKey"`
	ItemID             int64    `gorm:"not null;index"`
	Order              null.Int `gorm:"column:order"`
	Filename           string   `gorm:"not null"`
	OriginalFilename   string   `gorm:"not null"`
	Size               int64    `gorm:"not null"`
	MimeType           null.String
	HasDerivativeImage bool `gorm:"not null"`
}

func (f *File) TableName() string {
	return "files"
}

func (f *File) Record() *gallery.Record {
	return &gallery.Record{
		ID:               f.ID,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		Size:             f.Size,
		MimeType:         f.MimeType.String,
		HasDerivative:    f.HasDerivativeImage,
	}
}

// ElementText is a metadata value of a record. Element is the metadata field,
// for instance 50 is the Dublin Core title.
type ElementText struct {
	ID         int64  `gorm:"primaryKey"`
	RecordID   int64  `gorm:"not null;index:element_texts_record"`
	RecordType string `gorm:"not null;index:element_texts_record"`
	ElementID  int64  `gorm:"not null"`
	HTML       bool   `gorm:"not null"`
	Text       string `gorm:"not null"`
}

func (t *ElementText) TableName() string {
	return "element_texts"
}
