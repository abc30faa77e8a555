package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/entity"
)

// RideStore reads and writes ride rows for a driver.
type RideStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRideStore(db *sql.DB, logger *slog.Logger) *RideStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RideStore{db: db, logger: logger}
}

// StoredRide is the persisted projection of an extracted ride.
type StoredRide struct {
	ID            string
	DriverID      string
	ExternalID    string
	SourceRef     string
	Date          string
	Time          string
	Passenger     string
	Destination   string
	Status        string
	PaymentMethod string
	Fare          float64
	TotalReceived float64
	Commission    float64
	CommissionPct float64
	Tax           float64
	TotalPaid     float64
	NetIncome     float64
	Confidence    float64
	ImportedAt    time.Time
}

// Insert persists one extracted ride for the driver. The ride ID is the
// primary key, so re-importing the same batch fails per row instead of
// duplicating it.
func (s *RideStore) Insert(ctx context.Context, driverID string, ride *entity.ExtractedRide, externalID string) error {
	date := ""
	if ride.Date != nil {
		date = ride.Date.Format(time.DateOnly)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rides (
			id, driver_id, external_id, source_ref, ride_date, ride_time,
			passenger, destination, status, payment_method,
			fare, total_received, commission, commission_pct, tax,
			total_paid, net_income, confidence, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ride.ID.String(), driverID, externalID, ride.SourceRef, date, ride.Time,
		ride.PassengerName, ride.DestinationAddress, string(ride.Status), string(ride.PaymentMethod),
		ride.Fare, ride.TotalReceived, ride.Commission, ride.CommissionPct, ride.Tax,
		ride.TotalPaid, ride.NetIncome, ride.ExtractionConfidence,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert ride %s: %w", ride.ID, err)
	}

	s.logger.Debug("ride stored", "ride_id", ride.ID.String(), "driver_id", driverID, "external_id", externalID)
	return nil
}

// ListByDriver returns all stored rides for the driver, newest ride date first.
func (s *RideStore) ListByDriver(ctx context.Context, driverID string) ([]StoredRide, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, driver_id, external_id, source_ref, ride_date, ride_time,
		       passenger, destination, status, payment_method,
		       fare, total_received, commission, commission_pct, tax,
		       total_paid, net_income, confidence, imported_at
		FROM rides WHERE driver_id = ?
		ORDER BY ride_date DESC, ride_time DESC`, driverID)
	if err != nil {
		return nil, fmt.Errorf("query rides: %w", err)
	}
	defer rows.Close()

	var out []StoredRide
	for rows.Next() {
		var r StoredRide
		var importedAt string
		if err := rows.Scan(
			&r.ID, &r.DriverID, &r.ExternalID, &r.SourceRef, &r.Date, &r.Time,
			&r.Passenger, &r.Destination, &r.Status, &r.PaymentMethod,
			&r.Fare, &r.TotalReceived, &r.Commission, &r.CommissionPct, &r.Tax,
			&r.TotalPaid, &r.NetIncome, &r.Confidence, &importedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
			r.ImportedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored rides for the driver.
func (s *RideStore) Count(ctx context.Context, driverID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rides WHERE driver_id = ?`, driverID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rides: %w", err)
	}
	return n, nil
}

// Totals aggregates net income and counts per status for the driver.
func (s *RideStore) Totals(ctx context.Context, driverID string) (netIncome float64, completed, cancelled int, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(net_income), 0)
		FROM rides WHERE driver_id = ? GROUP BY status`, driverID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("aggregate rides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		var sum float64
		if err := rows.Scan(&status, &n, &sum); err != nil {
			return 0, 0, 0, fmt.Errorf("scan aggregate: %w", err)
		}
		netIncome += sum
		if status == string(constants.StatusCompleted) {
			completed += n
		} else {
			cancelled += n
		}
	}
	return netIncome, completed, cancelled, rows.Err()
}
