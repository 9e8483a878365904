package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	historyrender "personnel-admin/lib/history-console/render"
	"personnel-admin/models"
)

type Provider interface {
	ExportHistory(kind models.HistoryKind, rows []historyrender.Row) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var historyColumnWidths = []float64{30, 18, 35, 45, 12, 12, 20}

var sheetNames = map[models.HistoryKind]string{
	models.HistoryKindStatus:  "Статусы",
	models.HistoryKindAsset:   "Активы",
	models.HistoryKindStation: "Места службы",
}

func (i impl) ExportHistory(kind models.HistoryKind, rows []historyrender.Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	headers := append(historyrender.Headers(kind), "Автор")
	row, err := writeHeader(f, sheet, 0, headers, historyColumnWidths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(rows) != 0 {
		if err = applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+len(rows)); err != nil {
			return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
		}
		if _, err = writeHistoryData(f, sheet, rows, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetNames[kind]); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	return f.WriteToBuffer()
}

func writeHistoryData(f *excelize.File, sheet string, rows []historyrender.Row, row int) (int, error) {
	for _, item := range rows {
		row++
		cells := append(item.Cells(), item.Author)
		for idx, value := range cells {
			if value == "" {
				continue
			}
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
