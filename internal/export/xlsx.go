package export

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

var resultHeaders = []string{
	"Attempt ID", "Student ID", "Student Name", "Completed At",
	"Score", "Total Questions", "Percentage",
}

// ResultsWorkbook writes one row per attempt, newest first as given.
func ResultsWorkbook(quiz *models.Quiz, attempts []models.Attempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, header := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIndex, attempt := range attempts {
		row := []interface{}{
			attempt.ID,
			attempt.StudentID,
			attempt.StudentName,
			attempt.CompletedAt.Format("2006-01-02 15:04:05"),
			attempt.Score,
			attempt.TotalQuestions,
			attempt.Percentage,
		}
		for colIndex, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err := f.SetCellValue(resultsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowIndex+2, err)
			}
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   quiz.Title,
		Creator: quiz.CreatorName,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// ResultsFilename derives a download name from the quiz title.
func ResultsFilename(quiz *models.Quiz) string {
	return slug(quiz.Title, quiz.ID) + "-results.xlsx"
}
