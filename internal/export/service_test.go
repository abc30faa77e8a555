package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ridetally/rides-tracker/constants"
	"github.com/ridetally/rides-tracker/internal/entity"
)

func sampleRides() []*entity.ExtractedRide {
	date := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)
	rating := 5

	r1 := entity.NewRide("")
	r1.Date = &date
	r1.Time = "07:52"
	r1.PassengerName = "Daniela"
	r1.DestinationAddress = "Cra 49 #93-40, Medellín"
	r1.Duration = &entity.Duration{Value: 20, Unit: constants.DurationMinutes}
	r1.Distance = &entity.Distance{Value: 6.4, Unit: constants.DistanceKilometers}
	r1.PaymentMethodLabel = "Pago en efectivo"
	r1.RatingGiven = &rating
	r1.Fare = 18000
	r1.TotalReceived = 18000
	r1.Commission = 1710
	r1.Tax = 324.90
	r1.TotalPaid = 2034.90
	r1.NetIncome = 15965.10

	r2 := entity.NewRide("")
	r2.Status = constants.StatusCancelledByPassenger
	r2.PaymentMethodLabel = "Otro"

	return []*entity.ExtractedRide{r1, r2}
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleRides())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, headers, records[0])

	row := records[1]
	assert.Equal(t, "2025-12-10", row[1])
	assert.Equal(t, "07:52", row[2])
	assert.Equal(t, "Daniela", row[3])
	assert.Equal(t, "20", row[5])
	assert.Equal(t, "6.4", row[6])
	assert.Equal(t, "18000", row[9])
	assert.Equal(t, "324.9", row[12])
	assert.Equal(t, "15965.1", row[14])
	assert.Equal(t, "5", row[15])

	// The cancelled ride exports empty identity fields and zero amounts.
	cancelled := records[2]
	assert.Equal(t, "", cancelled[1])
	assert.Equal(t, string(constants.StatusCancelledByPassenger), cancelled[7])
	assert.Equal(t, "0", cancelled[9])
	assert.Equal(t, "", cancelled[15])
}

func TestJSON(t *testing.T) {
	data, err := JSON(sampleRides())
	require.NoError(t, err)

	var decoded []*entity.ExtractedRide
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "Daniela", decoded[0].PassengerName)
	require.NotNil(t, decoded[0].Date)
	assert.Equal(t, 2025, decoded[0].Date.Year())
	assert.Equal(t, constants.StatusCancelledByPassenger, decoded[1].Status)
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleRides())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Rides")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "Daniela", rows[1][3])
}

func TestBytes_UnsupportedFormat(t *testing.T) {
	_, err := Bytes(sampleRides(), Format("yaml"))
	assert.Error(t, err)
}

func TestCSV_NoRides(t *testing.T) {
	data, err := CSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, headers, records[0])
}
