package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

// importColumns is the exact recognized header set. A file carrying any
// other column is rejected wholesale before row processing starts.
var importColumns = map[string]bool{
	"title":            true,
	"subtitle":         true,
	"author":           true,
	"isbn":             true,
	"publication_year": true,
	"publisher":        true,
	"pages":            true,
	"language":         true,
	"genre":            true,
	"description":      true,
}

type importService struct {
	repo repository.RepositoryInterface
}

func NewImportService(repo repository.RepositoryInterface) ImportServiceInterface {
	return &importService{repo: repo}
}

// ImportBooks reads a CSV with a header row, validates each data row
// independently and inserts the valid ones. Each insert commits on its own,
// so one bad row never rolls back its neighbors.
func (s *importService) ImportBooks(ctx context.Context, file io.Reader) (*model.ImportResult, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty (no data rows)")
	}

	colMap, err := buildColumnIndexMap(records[0])
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{TotalRows: len(records) - 1}

	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, after the header

		payload, parseErrs := parseImportRow(record, colMap)
		errs := append(parseErrs, payload.Validate()...)

		if len(errs) == 0 {
			if _, err := s.repo.Create(ctx, payload.ToEntity()); err != nil {
				errs = append(errs, err.Error())
			}
		}

		if len(errs) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, model.ImportRowError{
				Row:      rowNum,
				Messages: errs,
			})
			continue
		}

		result.Imported++
	}

	log.Info().
		Int("total", result.TotalRows).
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Msg("CSV import finished")

	return result, nil
}

// buildColumnIndexMap maps recognized header names to their column index.
func buildColumnIndexMap(header []string) (map[string]int, error) {
	colMap := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.TrimSpace(strings.ToLower(name))
		if !importColumns[normalized] {
			return nil, fmt.Errorf("unrecognized column %q in CSV header", name)
		}
		colMap[normalized] = i
	}
	return colMap, nil
}

// parseImportRow converts one CSV record into a BookPayload. Numeric fields
// that fail to parse are reported instead of silently dropped.
func parseImportRow(record []string, colMap map[string]int) (model.BookPayload, []string) {
	var parseErrs []string

	getCol := func(name string) string {
		if idx, ok := colMap[name]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	payload := model.BookPayload{
		Title:       getCol("title"),
		Subtitle:    getCol("subtitle"),
		Author:      getCol("author"),
		ISBN:        getCol("isbn"),
		Publisher:   getCol("publisher"),
		Language:    getCol("language"),
		Genre:       getCol("genre"),
		Description: getCol("description"),
	}

	if val := getCol("publication_year"); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("Publication year %q is not a number", val))
		} else {
			payload.PublicationYear = year
		}
	}

	if val := getCol("pages"); val != "" {
		pages, err := strconv.Atoi(val)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("Pages %q is not a number", val))
		} else {
			payload.Pages = pages
		}
	}

	return payload, parseErrs
}
