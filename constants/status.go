package constants

// RideStatus is the canonical completion status of an extracted ride.
type RideStatus string

// Stable values (these exact strings appear in exports and the store).
const (
	StatusCompleted            RideStatus = "completed"
	StatusCancelledByPassenger RideStatus = "cancelled_by_passenger"
	StatusCancelledByDriver    RideStatus = "cancelled_by_driver"
)

// PaymentMethod is the canonical payment channel of an extracted ride.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentNequi PaymentMethod = "nequi"
	PaymentOther PaymentMethod = "other"
)

// DurationUnit is the unit of a ride duration as printed on the receipt.
type DurationUnit string

const (
	DurationMinutes DurationUnit = "min"
	DurationHours   DurationUnit = "hr"
)

// DistanceUnit is the unit of a ride distance as printed on the receipt.
type DistanceUnit string

const (
	DistanceKilometers DistanceUnit = "km"
	DistanceMeters     DistanceUnit = "metro"
)
