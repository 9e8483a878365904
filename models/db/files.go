package dbmodels

import (
	"personnel-admin/models"
)

type ExportFormat string

const (
	ExportFormatXlsx ExportFormat = "xlsx"
	ExportFormatPdf  ExportFormat = "pdf"
)

func (f ExportFormat) ContentType() string {
	if f == ExportFormatPdf {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f ExportFormat) IsValid() bool {
	return f == ExportFormatXlsx || f == ExportFormatPdf
}

// HistoryExport выгрузка истории, сохраненная в S3
type HistoryExport struct {
	BaseModel
	Kind        models.HistoryKind `gorm:"type:varchar(20);index"`
	ObjectKey   string             `gorm:"uniqueIndex"`
	Name        string
	Format      ExportFormat `gorm:"type:varchar(10)"`
	ContentType string
	Size        int64
	RowCount    int
	AuthorModel
}
