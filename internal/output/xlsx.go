package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mcqx/internal/mcq"
)

const sheetName = "Questions"

var sheetHeaders = []string{
	"ID", "Question", "Option A", "Option B", "Option C", "Option D", "Answer",
}

// BuildWorkbook lays questions out one per row on a "Questions" sheet with
// the answer given as its letter.
func BuildWorkbook(questions []mcq.Question) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, q := range questions {
		row := []any{q.ID, q.Question}
		for _, opt := range q.Options {
			row = append(row, opt)
		}
		row = append(row, AnswerLetter(q.AnswerIndex))

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write question %d: %w", q.ID, err)
		}
	}
	return f, nil
}

// WriteXLSX saves the workbook for questions at path.
func WriteXLSX(path string, questions []mcq.Question) error {
	f, err := BuildWorkbook(questions)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// AnswerLetter maps an answer index to its option letter.
func AnswerLetter(idx int) string {
	if idx < 0 || idx > 3 {
		return "?"
	}
	return string(rune('A' + idx))
}
