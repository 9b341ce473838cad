package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"solarscope/internal/models"
)

// CreateAsteroidsExcel создает Excel файл со сближениями астероидов
func CreateAsteroidsExcel(filepath string, records []models.Asteroid) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Asteroids"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}

	headers := []string{"Name", "Approach Date", "Min Diameter (m)", "Potentially Hazardous"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, record := range records {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), record.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), record.ApproachDate)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), record.DiameterMin)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), record.IsPotentiallyHazardous)

		f.SetCellStyle(sheet, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum),
			getNumberStyle(f, "0.00"))
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheet, colName, colName, 22)
	}

	// Подсветка потенциально опасных
	hazardousRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: "==",
			Value:    "TRUE",
			Format:   getConditionalFormatStyle(f, "#FFCCCC"),
		},
	}
	if err := f.SetConditionalFormat(sheet, fmt.Sprintf("D2:D%d", len(records)+1), hazardousRule); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filepath)
}

func getNumberStyle(f *excelize.File, format string) int {
	style, _ := f.NewStyle(&excelize.Style{
		CustomNumFmt: &format,
	})
	return style
}

func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, _ := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	return &style
}
