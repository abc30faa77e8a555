// Package export serializes accepted rides to CSV, JSON, and XLSX.
// Column order and Spanish headers are a contract consumed downstream;
// do not reorder.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ridetally/rides-tracker/internal/entity"
)

// Format names an export target.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// headers is the fixed 16-column layout shared by CSV and XLSX.
var headers = []string{
	"ID",
	"Fecha",
	"Hora",
	"Pasajero",
	"Destino",
	"Duración (min)",
	"Distancia (km)",
	"Estado",
	"Método de Pago",
	"Tarifa (COP)",
	"Total Recibido (COP)",
	"Comisión (COP)",
	"IVA (COP)",
	"Total Pagado (COP)",
	"Mis Ingresos (COP)",
	"Calificación",
}

// Bytes serializes rides in the requested format.
func Bytes(rides []*entity.ExtractedRide, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return CSV(rides)
	case FormatJSON:
		return JSON(rides)
	case FormatXLSX:
		return XLSX(rides)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// CSV returns one row per ride with monetary fields as plain numbers.
func CSV(rides []*entity.ExtractedRide) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, r := range rides {
		if err := w.Write(row(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON returns the rides as an indented array with ISO-8601 dates.
func JSON(rides []*entity.ExtractedRide) ([]byte, error) {
	return json.MarshalIndent(rides, "", "  ")
}

// XLSX returns a single-sheet workbook with the same columns as CSV.
func XLSX(rides []*entity.ExtractedRide) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Rides"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range rides {
		for colIdx, v := range row(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the identity and route columns.
	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 28)
	_ = f.SetColWidth(sheet, "J", "O", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func row(r *entity.ExtractedRide) []string {
	date := ""
	if r.Date != nil {
		date = r.Date.Format(time.DateOnly)
	}
	duration := 0
	if r.Duration != nil {
		duration = r.Duration.Value
	}
	distance := 0.0
	if r.Distance != nil {
		distance = r.Distance.Value
	}
	rating := ""
	if r.RatingGiven != nil {
		rating = strconv.Itoa(*r.RatingGiven)
	}
	return []string{
		r.ID.String(),
		date,
		r.Time,
		r.PassengerName,
		r.DestinationAddress,
		strconv.Itoa(duration),
		amount(distance),
		string(r.Status),
		r.PaymentMethodLabel,
		amount(r.Fare),
		amount(r.TotalReceived),
		amount(r.Commission),
		amount(r.Tax),
		amount(r.TotalPaid),
		amount(r.NetIncome),
		rating,
	}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
