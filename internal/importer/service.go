// Package importer takes previously exported ride JSON, re-checks it, and
// persists the consistent records. Inconsistent or duplicate rides are
// skipped individually with a reason; the batch itself never fails on them.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ridetally/rides-tracker/internal/common"
	"github.com/ridetally/rides-tracker/internal/entity"
	"github.com/ridetally/rides-tracker/internal/repository"
	"github.com/ridetally/rides-tracker/internal/validate"
)

// ridesSchema constrains the incoming payload shape before any field is
// trusted. Amounts must be non-negative numbers; identifiers must be strings.
const ridesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "status", "payment_method"],
		"properties": {
			"id":                   {"type": "string", "minLength": 1},
			"source_ref":           {"type": "string"},
			"extraction_confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"date":                 {"type": "string"},
			"time":                 {"type": "string"},
			"destination_address":  {"type": "string"},
			"passenger_name":       {"type": "string"},
			"rating_given":         {"type": "integer", "minimum": 1, "maximum": 5},
			"status":               {"type": "string", "enum": ["completed", "cancelled_by_passenger", "cancelled_by_driver"]},
			"payment_method":       {"type": "string", "enum": ["cash", "nequi", "other"]},
			"tarifa":               {"type": "number", "minimum": 0},
			"total_recibido":       {"type": "number", "minimum": 0},
			"comision_servicio":    {"type": "number", "minimum": 0},
			"comision_porcentaje":  {"type": "number", "minimum": 0},
			"iva_pago_servicio":    {"type": "number", "minimum": 0},
			"total_pagado":         {"type": "number", "minimum": 0},
			"mis_ingresos":         {"type": "number", "minimum": 0}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("rides.json", ridesSchema)

// DecodeRides validates raw JSON against the rides schema and unmarshals it.
func DecodeRides(data []byte) ([]*entity.ExtractedRide, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, common.NewAppError("DECODE_FAILED", "unmarshal rides", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return nil, common.NewAppError("SCHEMA_MISMATCH", "rides payload does not match schema", err)
	}
	var rides []*entity.ExtractedRide
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, common.NewAppError("DECODE_FAILED", "decode rides", err)
	}
	return rides, nil
}

// Service imports validated rides into the store for one driver at a time.
type Service struct {
	store  *repository.RideStore
	logger *slog.Logger
}

func NewService(store *repository.RideStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Import cross-checks every ride's financial identities and persists the
// consistent ones. Rides that fail validation or cannot be stored are
// reported in Skipped with their position in the input.
func (s *Service) Import(ctx context.Context, rides []*entity.ExtractedRide, driverID string) (entity.ImportResult, error) {
	res := entity.ImportResult{
		Imported: []entity.ImportedRide{},
		Skipped:  []entity.SkippedRide{},
	}

	for i, ride := range rides {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if ok, problems := validate.Financial(ride); !ok {
			res.Skipped = append(res.Skipped, entity.SkippedRide{
				Index:  i,
				Reason: "validation errors: " + strings.Join(problems, "; "),
			})
			continue
		}

		externalID := ExternalID(ride)
		if err := s.store.Insert(ctx, driverID, ride, externalID); err != nil {
			res.Skipped = append(res.Skipped, entity.SkippedRide{
				Index:  i,
				Reason: fmt.Sprintf("store error: %v", err),
			})
			continue
		}
		res.Imported = append(res.Imported, entity.ImportedRide{
			RideID:     ride.ID.String(),
			ExternalID: externalID,
		})
	}

	res.Success = len(res.Imported) > 0
	s.logger.Info("import.done",
		"driver_id", driverID,
		"imported", len(res.Imported),
		"skipped", len(res.Skipped),
	)
	return res, nil
}

// ExternalID derives a short human-facing reference from the ride ID.
func ExternalID(ride *entity.ExtractedRide) string {
	return "RIDE-" + strings.ToUpper(ride.ID.String()[:8])
}
