// Package source lê as vendas de arquivos CSV, planilhas XLSX ou do Postgres
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

const DefaultCSVPath = "data.csv"

// CSVReader lê um arquivo CSV com cabeçalho na primeira linha
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	if path == "" {
		path = DefaultCSVPath
	}
	return &CSVReader{path: path}
}

func (r *CSVReader) Name() string {
	return filepath.Base(r.path)
}

func (r *CSVReader) ReadTable(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return nil, domain.NewSourceUnavailableError(errors.Wrap(err, "abrir csv"), r.path)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.NewSourceUnavailableError(nil, fmt.Sprintf("%s não é um arquivo", r.path))
	}

	file, err := os.Open(r.path)
	if err != nil {
		return nil, domain.NewSourceUnavailableError(errors.Wrap(err, "abrir csv"), r.path)
	}
	defer file.Close()

	return ParseCSV(file, r.Name())
}

// Fingerprint é o SHA-256 do conteúdo do arquivo
func (r *CSVReader) Fingerprint(ctx context.Context) (string, error) {
	return fileFingerprint(ctx, r.path)
}

// ParseCSV lê o cabeçalho e as linhas de um CSV. Linhas podem ter
// quantidades diferentes de colunas; células faltantes viram vazias.
func ParseCSV(in io.Reader, origin string) (*domain.Table, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.NewDataError(nil, origin+" está vazio")
	}
	if err != nil {
		return nil, domain.NewParseError(errors.Wrap(err, "ler cabeçalho"), origin)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewParseError(errors.Wrap(err, "ler linhas"), origin)
	}

	return &domain.Table{
		Origin:    origin,
		Header:    header,
		Rows:      rows,
		FirstLine: 2,
	}, nil
}
