package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXReader lê a primeira aba (ou a aba configurada) de uma planilha
type XLSXReader struct {
	path  string
	sheet string
}

func NewXLSXReader(path, sheet string) *XLSXReader {
	return &XLSXReader{path: path, sheet: sheet}
}

func (r *XLSXReader) Name() string {
	if r.sheet == "" {
		return filepath.Base(r.path)
	}
	return fmt.Sprintf("%s[%s]", filepath.Base(r.path), r.sheet)
}

func (r *XLSXReader) ReadTable(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workbook, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, domain.NewSourceUnavailableError(errors.Wrap(err, "abrir planilha"), r.path)
	}
	defer workbook.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}
	if index, err := workbook.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, domain.NewSourceUnavailableError(nil, fmt.Sprintf("aba %q não encontrada em %s", sheet, r.path))
	}

	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewParseError(errors.Wrap(err, "ler linhas"), r.Name())
	}
	if len(rows) == 0 {
		return nil, domain.NewDataError(nil, r.Name()+" está vazio")
	}

	header := rows[0]
	dateColumn := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "date") {
			dateColumn = i
			break
		}
	}

	body := rows[1:]
	if dateColumn >= 0 {
		for _, row := range body {
			if dateColumn < len(row) {
				row[dateColumn] = normalizeExcelDate(row[dateColumn])
			}
		}
	}

	return &domain.Table{
		Origin:    r.Name(),
		Header:    header,
		Rows:      body,
		FirstLine: 2,
	}, nil
}

func (r *XLSXReader) Fingerprint(ctx context.Context) (string, error) {
	return fileFingerprint(ctx, r.path)
}

// normalizeExcelDate converte datas seriais do Excel (ex: 45306) para yyyy-mm-dd.
// Textos que não são número são mantidos.
func normalizeExcelDate(value string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}

	date, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}

	if date.Hour() == 0 && date.Minute() == 0 && date.Second() == 0 {
		return date.Format(time.DateOnly)
	}
	return date.Format(time.DateTime)
}
