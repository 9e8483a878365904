package pdfexport

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	historyrender "personnel-admin/lib/history-console/render"
	"personnel-admin/models"
)

const (
	fontFamily   = "Arial"
	fontFile     = "Arial.ttf"
	fontBoldFile = "Arial Bold.ttf"
	coreFont     = "Helvetica"
)

// доли ширины страницы по колонкам: сотрудник, статус/действие, изменение, описание, с, по
var columnShares = []float64{0.2, 0.13, 0.22, 0.25, 0.1, 0.1}

// HistoryReport отчет по истории в pdf. Шрифт с кириллицей берется из fontDir,
// если его там нет - используется встроенный шрифт.
func HistoryReport(kind models.HistoryKind, rows []historyrender.Row, fontDir string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("HistoryReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", fontDir)
	family, tr := setupFont(pdf, fontDir)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.SetTitle(tr(kind.Spec().Title), true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 8, tr(time.Now().Format("02.01.2006 15:04")), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	_, lineHt := pdf.GetFontSize()
	pdf.CellFormat(0, lineHt*2, tr(kind.Spec().Title), "", 1, "L", false, 0, "")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	widths := make([]float64, len(columnShares))
	for i, share := range columnShares {
		widths[i] = (pageW - left - right) * share
	}

	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(217, 225, 242)
	for i, header := range historyrender.Headers(kind) {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	if len(rows) == 0 {
		pdf.CellFormat(0, 7, tr("нет записей"), "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		for i, cell := range row.Cells() {
			pdf.CellFormat(widths[i], 7, fit(pdf, tr, cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupFont(pdf *fpdf.Fpdf, fontDir string) (string, func(string) string) {
	if fontDir != "" {
		if fileExists(filepath.Join(fontDir, fontFile)) && fileExists(filepath.Join(fontDir, fontBoldFile)) {
			pdf.AddUTF8Font(fontFamily, "", fontFile)
			pdf.AddUTF8Font(fontFamily, "B", fontBoldFile)
			return fontFamily, func(s string) string { return s }
		}
	}
	// встроенный шрифт не содержит кириллицы, текст будет нечитаемым, но файл сформируется
	return coreFont, pdf.UnicodeTranslatorFromDescriptor("")
}

// fit обрезает текст ячейки по ширине колонки
func fit(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(tr(string(runes)))+2 > width {
		runes = runes[:len(runes)-1]
	}
	return tr(string(runes))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
