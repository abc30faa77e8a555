package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/entity"
)

func testStore(t *testing.T) *RideStore {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRideStore(db, nil)
}

func testRide(passenger string, net float64, day int) *entity.ExtractedRide {
	r := entity.NewRide("")
	date := time.Date(2025, time.December, day, 0, 0, 0, 0, time.UTC)
	r.Date = &date
	r.Time = "07:52"
	r.PassengerName = passenger
	r.NetIncome = net
	return r
}

func TestRideStore_InsertAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "driver-1", testRide("Daniela", 15965.10, 10), "RIDE-AAAA1111"))
	require.NoError(t, store.Insert(ctx, "driver-1", testRide("Carlos", 9000, 12), "RIDE-BBBB2222"))
	require.NoError(t, store.Insert(ctx, "driver-2", testRide("Luisa", 4000, 11), "RIDE-CCCC3333"))

	rides, err := store.ListByDriver(ctx, "driver-1")
	require.NoError(t, err)
	require.Len(t, rides, 2)

	// Newest ride date first.
	assert.Equal(t, "Carlos", rides[0].Passenger)
	assert.Equal(t, "2025-12-12", rides[0].Date)
	assert.Equal(t, "Daniela", rides[1].Passenger)
	assert.InDelta(t, 15965.10, rides[1].NetIncome, 1e-9)
	assert.False(t, rides[0].ImportedAt.IsZero())

	n, err := store.Count(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Count(ctx, "driver-3")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRideStore_DuplicateIDRejected(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	ride := testRide("Daniela", 15965.10, 10)
	require.NoError(t, store.Insert(ctx, "driver-1", ride, "RIDE-AAAA1111"))

	err := store.Insert(ctx, "driver-1", ride, "RIDE-AAAA1111")
	assert.Error(t, err)
}

func TestRideStore_Totals(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "driver-1", testRide("Daniela", 15000, 10), "RIDE-A"))
	require.NoError(t, store.Insert(ctx, "driver-1", testRide("Carlos", 5000, 11), "RIDE-B"))

	cancelled := testRide("Luisa", 0, 12)
	cancelled.Status = constants.StatusCancelledByPassenger
	require.NoError(t, store.Insert(ctx, "driver-1", cancelled, "RIDE-C"))

	net, completed, cancelledCount, err := store.Totals(ctx, "driver-1")
	require.NoError(t, err)
	assert.InDelta(t, 20000, net, 1e-9)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, cancelledCount)
}
