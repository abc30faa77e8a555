package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridetally/rides-tracker/constants"
)

// Duration is a ride duration as extracted from the receipt.
type Duration struct {
	Value int                    `json:"value"`
	Unit  constants.DurationUnit `json:"unit"`
}

// Distance is a ride distance as extracted from the receipt.
type Distance struct {
	Value float64                `json:"value"`
	Unit  constants.DistanceUnit `json:"unit"`
}

// FieldConfidences carries one score per extractable field, written by the
// parser together with its ride and never mutated afterwards. Zero means the
// extractor found no match for that field.
type FieldConfidences struct {
	Date               float64 `json:"date"`
	Time               float64 `json:"time"`
	DestinationAddress float64 `json:"destination_address"`
	Duration           float64 `json:"duration"`
	Distance           float64 `json:"distance"`
	PassengerName      float64 `json:"passenger_name"`
	PaymentMethod      float64 `json:"payment_method"`
	Fare               float64 `json:"tarifa"`
	TotalReceived      float64 `json:"total_recibido"`
	Commission         float64 `json:"comision_servicio"`
	Tax                float64 `json:"iva_pago_servicio"`
	TotalPaid          float64 `json:"total_pagado"`
	NetIncome          float64 `json:"mis_ingresos"`
}

// DefaultCommissionPct is assumed when no percentage token is found.
const DefaultCommissionPct = 9.5

// ExtractedRide is the structured record produced from one receipt image or
// one PDF page. Financial field names keep the receipt's own Spanish labels
// in their JSON form so exports line up with what the driver sees on screen.
type ExtractedRide struct {
	ID                   uuid.UUID `json:"id"`
	SourceRef            string    `json:"source_ref"`
	ExtractionConfidence float64   `json:"extraction_confidence"`

	Date               *time.Time `json:"date,omitempty"`
	Time               string     `json:"time"`
	DestinationAddress string     `json:"destination_address"`
	Duration           *Duration  `json:"duration,omitempty"`
	Distance           *Distance  `json:"distance,omitempty"`

	PassengerName string `json:"passenger_name"`
	RatingGiven   *int   `json:"rating_given,omitempty"` // 1..5 when present

	Status             constants.RideStatus `json:"status"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`

	PaymentMethod      constants.PaymentMethod `json:"payment_method"`
	PaymentMethodLabel string                  `json:"payment_method_label"`

	// Income section ("Recibí").
	Fare          float64 `json:"tarifa"`
	TotalReceived float64 `json:"total_recibido"`

	// Deduction section ("Pagué").
	Commission    float64 `json:"comision_servicio"`
	CommissionPct float64 `json:"comision_porcentaje"`
	Tax           float64 `json:"iva_pago_servicio"`
	TotalPaid     float64 `json:"total_pagado"`

	// Net.
	NetIncome float64 `json:"mis_ingresos"`

	ExtractedAt      time.Time        `json:"extracted_at"`
	RawOCRText       string           `json:"raw_ocr_text,omitempty"`
	FieldConfidences FieldConfidences `json:"field_confidences"`
}

// NewRide returns a ride with the defaults every extraction starts from.
func NewRide(rawText string) *ExtractedRide {
	return &ExtractedRide{
		ID:            uuid.New(),
		Status:        constants.StatusCompleted,
		PaymentMethod: constants.PaymentCash,
		CommissionPct: DefaultCommissionPct,
		ExtractedAt:   time.Now().UTC(),
		RawOCRText:    rawText,
	}
}

// OverallConfidence is the arithmetic mean of the non-zero scores in the
// core field subset. Fields that yielded no match are excluded, not counted
// as zero, so a sparse record reports confidence on what it has; coverage
// must be derived separately if wanted.
func (c FieldConfidences) OverallConfidence() float64 {
	core := []float64{
		c.Date,
		c.Time,
		c.Duration,
		c.Distance,
		c.PassengerName,
		c.PaymentMethod,
		c.NetIncome,
		c.Fare,
		c.TotalReceived,
	}
	var sum float64
	var n int
	for _, v := range core {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
