package sentences

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes a spreadsheet of questions. Columns are, in
// order: word, sentence, option 1 .. option 4. Missing option cells are
// ignored. When the word is not among the options it is added.
type ImportConfig struct {
	// SheetName selects the XLSX sheet; empty means the first sheet.
	SheetName  string
	SkipHeader bool
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{SkipHeader: true}
}

// ImportResult summarises an import.
type ImportResult struct {
	Processed int
	Imported  int
	Skipped   int
	Errors    []string
}

// Import reads questions from an .xlsx or .csv file.
func Import(path string, cfg ImportConfig) (*Bank, *ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCSV(path, cfg)
	case ".xlsx", ".xlsm":
		return ImportXLSX(path, cfg)
	default:
		return nil, nil, fmt.Errorf("unsupported import format %q", filepath.Ext(path))
	}
}

func ImportXLSX(path string, cfg ImportConfig) (*Bank, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return buildBank(rows, cfg)
}

func ImportCSV(path string, cfg ImportConfig) (*Bank, *ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open CSV: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return buildBank(rows, cfg)
}

func buildBank(rows [][]string, cfg ImportConfig) (*Bank, *ImportResult, error) {
	result := &ImportResult{}
	var qs []Question

	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		if blankRow(row) {
			continue
		}
		result.Processed++

		q, err := rowQuestion(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		qs = append(qs, *q)
	}

	bank, err := NewBank(qs)
	if err != nil {
		return nil, result, err
	}
	result.Imported = bank.Len()
	result.Skipped += len(qs) - bank.Len()
	return bank, result, nil
}

func rowQuestion(row []string) (*Question, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	q := &Question{Word: cell(0), Sentence: cell(1)}
	for i := 2; i < 2+MaxOptions; i++ {
		if o := cell(i); o != "" {
			q.Options = append(q.Options, o)
		}
	}
	q.Normalize()

	hasWord := false
	for _, o := range q.Options {
		if o == q.Word {
			hasWord = true
		}
	}
	if !hasWord && q.Word != "" {
		q.Options = append(q.Options, q.Word)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
