package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	perCategorySheet = "Per-Category"
	confusionSheet   = "Confusion Matrix"
	errorsSheet      = "Misclassifications"
)

// WriteJSON writes the full summary as an indented JSON report.
func WriteJSON(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode evaluation report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write evaluation report: %w", err)
	}
	return nil
}

// WriteWorkbook writes the summary as a four-sheet xlsx workbook:
// headline numbers, per-category metrics, the confusion matrix, and the
// misclassification patterns.
func WriteWorkbook(path string, s Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("prepare workbook: %w", err)
	}
	for _, name := range []string{perCategorySheet, confusionSheet, errorsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create %s sheet: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, s); err != nil {
		return err
	}
	if err := writePerCategorySheet(f, s); err != nil {
		return err
	}
	if err := writeConfusionSheet(f, s); err != nil {
		return err
	}
	if err := writeErrorsSheet(f, s); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary) error {
	rows := [][]any{
		{"Generated", s.GeneratedAt.Format(time.RFC3339)},
		{"Total samples", s.TotalSamples},
		{"Accuracy", s.Accuracy},
		{"Macro precision", s.Macro.Precision},
		{"Macro recall", s.Macro.Recall},
		{"Macro F1", s.Macro.F1},
		{"Weighted precision", s.Weighted.Precision},
		{"Weighted recall", s.Weighted.Recall},
		{"Weighted F1", s.Weighted.F1},
	}
	if s.Timing != nil {
		rows = append(rows,
			[]any{"Mean call seconds", s.Timing.MeanSeconds},
			[]any{"Median call seconds", s.Timing.MedianSeconds},
			[]any{"Min call seconds", s.Timing.MinSeconds},
			[]any{"Max call seconds", s.Timing.MaxSeconds},
			[]any{"P95 call seconds", s.Timing.P95Seconds},
		)
	}
	return writeRows(f, summarySheet, rows)
}

func writePerCategorySheet(f *excelize.File, s Summary) error {
	rows := [][]any{{"Category", "Precision", "Recall", "F1", "Support"}}
	for _, label := range s.Labels {
		m := s.PerCategory[label]
		rows = append(rows, []any{label, m.Precision, m.Recall, m.F1, m.Support})
	}
	return writeRows(f, perCategorySheet, rows)
}

func writeConfusionSheet(f *excelize.File, s Summary) error {
	header := make([]any, 0, len(s.Labels)+1)
	header = append(header, "Expected \\ Predicted")
	for _, label := range s.Labels {
		header = append(header, label)
	}

	rows := [][]any{header}
	for i, label := range s.Labels {
		row := make([]any, 0, len(s.Labels)+1)
		row = append(row, label)
		for _, count := range s.Confusion[i] {
			row = append(row, count)
		}
		rows = append(rows, row)
	}
	return writeRows(f, confusionSheet, rows)
}

func writeErrorsSheet(f *excelize.File, s Summary) error {
	rows := [][]any{{"Expected", "Predicted", "Count"}}
	for _, m := range s.Misclassified {
		rows = append(rows, []any{m.Expected, m.Predicted, m.Count})
	}
	return writeRows(f, errorsSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write %s sheet: %w", sheet, err)
			}
		}
	}
	return nil
}
