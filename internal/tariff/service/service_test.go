package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	meterdomain "github.com/parima/rentledger/internal/meterreading/domain"
	meterrepository "github.com/parima/rentledger/internal/meterreading/repository"
	"github.com/parima/rentledger/internal/tariff"
	"github.com/parima/rentledger/internal/tariff/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	genID   *snowflake.Node
	service domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&meterdomain.MeterReading{}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	holder := tariff.NewStaticHolder(tariff.DefaultTariffConfig(), zap.NewNop())

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		Holder:   holder,
		Readings: meterrepository.Provide(),
	})

	return &fixture{db: db, genID: node, service: svc}
}

func (f *fixture) seedReading(t *testing.T, apartmentID snowflake.ID, on time.Time, ebs, swm int64) {
	t.Helper()
	reading := meterdomain.MeterReading{
		ID:          f.genID.Generate(),
		ApartmentID: apartmentID,
		ReadingDate: on,
		EBSReading:  ebs,
		SWMReading:  swm,
		CreatedAt:   on,
	}
	require.NoError(t, f.db.Create(&reading).Error)
}

func TestApartmentUtilityCosts(t *testing.T) {
	f := newFixture(t)
	apartmentID := snowflake.ID(42)

	f.seedReading(t, apartmentID, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 1000, 300)
	f.seedReading(t, apartmentID, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), 1150, 340)

	resp, err := f.service.ApartmentUtilityCosts(context.Background(), domain.ApartmentUtilityCostsRequest{
		ApartmentID: apartmentID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Costs, 2)

	// First reading has no predecessor.
	require.Equal(t, int64(0), resp.Costs[0].EBS.Usage)
	require.Equal(t, int64(0), resp.Costs[0].EBS.CostCents)
	require.Equal(t, int64(0), resp.Costs[0].SWM.Usage)

	// EBS delta 150: 100@100c + 50@150c. SWM delta 40: 40@75c.
	require.Equal(t, int64(150), resp.Costs[1].EBS.Usage)
	require.Equal(t, int64(17500), resp.Costs[1].EBS.CostCents)
	require.Equal(t, int64(40), resp.Costs[1].SWM.Usage)
	require.Equal(t, int64(3000), resp.Costs[1].SWM.CostCents)
}

func TestApartmentUtilityCostsClampsDecreasingCounter(t *testing.T) {
	f := newFixture(t)
	apartmentID := snowflake.ID(43)

	f.seedReading(t, apartmentID, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 1000, 300)
	f.seedReading(t, apartmentID, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), 900, 310)

	resp, err := f.service.ApartmentUtilityCosts(context.Background(), domain.ApartmentUtilityCostsRequest{
		ApartmentID: apartmentID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Costs, 2)

	require.Equal(t, int64(0), resp.Costs[1].EBS.Usage)
	require.Equal(t, int64(0), resp.Costs[1].EBS.CostCents)
	require.Equal(t, int64(10), resp.Costs[1].SWM.Usage)
}

func TestApartmentUtilityCostsNoReadings(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.ApartmentUtilityCosts(context.Background(), domain.ApartmentUtilityCostsRequest{
		ApartmentID: snowflake.ID(44).String(),
	})
	require.NoError(t, err)
	require.Empty(t, resp.Costs)
}

func TestApartmentUtilityCostsInvalidID(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ApartmentUtilityCosts(context.Background(), domain.ApartmentUtilityCostsRequest{
		ApartmentID: "not-an-id",
	})
	require.ErrorIs(t, err, domain.ErrInvalidApartmentID)
}

func TestTablesServesCurrentConfig(t *testing.T) {
	f := newFixture(t)

	tables := f.service.Tables(context.Background())
	require.NoError(t, tables.Validate())
	require.NotEmpty(t, tables.EBS)
	require.NotEmpty(t, tables.SWM)
}
