package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/pkg/timeconv"
	"github.com/trackyourtime/tracky/pkg/week"
)

type CsvRenderer struct {
}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

func (c *CsvRenderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (c *CsvRenderer) Extension() string {
	return "csv"
}

func (c *CsvRenderer) Render(report Report) ([]byte, error) {
	data := make([][]string, 0, len(report.Rows)+len(report.Days)+5)
	data = append(data, []string{"Date", "Position", "Description", "Hours", "Billable"})
	for _, row := range report.Rows {
		data = append(data, []string{
			row.Date.Format(week.DateLayout),
			row.Position,
			row.Description,
			row.Hours.StringFixed(2),
			strconv.FormatBool(row.Billable),
		})
	}
	data = append(data, []string{"Total", "", "", report.Total.StringFixed(2), ""})

	data = append(data, []string{}, []string{"Date", "Booked", "Worked", "Holiday"})
	for _, day := range report.Days {
		data = append(data, []string{
			day.Date.Format(week.DateLayout),
			timeconv.ConvertFloatTimeToHHMM(day.Hours.InexactFloat64()),
			timeconv.ConvertFloatTimeToHHMM(float64(day.WorkedMinutes) / 60),
			strconv.FormatBool(day.Holiday),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return nil, err
	}

	return b.Bytes(), nil
}
