package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Columns is the header of the question import format.
var Columns = []string{"question_type", "content", "difficulty", "points", "answers", "correct_answers", "explanation"}

const (
	SampleCSVName  = "sample_questions.csv"
	SampleXLSXName = "sample_questions.xlsx"
	sampleSheet    = "Questions"
)

var sampleRows = [][]string{
	{"mcq", "What is the capital of France?", "easy", "1", "Paris,London,Berlin,Madrid", "0", "Paris is the capital of France"},
	{"mcq", "Which of the following is a JavaScript framework?", "medium", "2", "Angular,Bootstrap,jQuery,All of the above", "0", "Angular is a JavaScript framework"},
	{"essay", "Explain the concept of Object-Oriented Programming.", "medium", "5", "", "", "This is a theory question that requires a written answer"},
	{"coding", "Write a function that returns the sum of two numbers.", "hard", "10", "", "", "This is a coding question"},
}

// SampleCSV writes the import template with example rows.
func SampleCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(sampleRows); err != nil {
		return fmt.Errorf("failed to write sample CSV: %w", err)
	}
	return nil
}

// SampleXLSX writes the same template as a spreadsheet.
func SampleXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sampleSheet)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, header := range Columns {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sampleSheet, cell, header)
	}
	for rowIndex, row := range sampleRows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sampleSheet, cell, value)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
