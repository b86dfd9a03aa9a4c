package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/meterreading/domain"
	meterrepo "github.com/parima/rentledger/internal/meterreading/repository"
	meterservice "github.com/parima/rentledger/internal/meterreading/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T, now time.Time) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MeterReading{}))

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)

	return meterservice.New(meterservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(now),
		Repo:  meterrepo.Provide(),
	})
}

func TestCreateReadingDefaultsDate(t *testing.T) {
	now := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(t, now)

	reading, err := svc.Create(context.Background(), domain.CreateReadingRequest{
		ApartmentID: snowflake.ID(21).String(),
		EBSReading:  1200,
		SWMReading:  400,
	})
	require.NoError(t, err)
	require.True(t, reading.ReadingDate.Equal(now))
}

func TestCreateReadingRejectsNegativeCounter(t *testing.T) {
	svc := newService(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Create(context.Background(), domain.CreateReadingRequest{
		ApartmentID: snowflake.ID(21).String(),
		EBSReading:  -1,
		SWMReading:  400,
	})
	require.ErrorIs(t, err, domain.ErrInvalidReading)

	_, err = svc.Create(context.Background(), domain.CreateReadingRequest{
		ApartmentID: "bogus",
		EBSReading:  10,
	})
	require.ErrorIs(t, err, domain.ErrInvalidApartmentID)
}

func TestCreateReadingRejectsDuplicateDate(t *testing.T) {
	on := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(t, on)

	req := domain.CreateReadingRequest{
		ApartmentID: snowflake.ID(21).String(),
		ReadingDate: &on,
		EBSReading:  1200,
		SWMReading:  400,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrDuplicateReading)
}

func TestListReadingsFiltersByApartment(t *testing.T) {
	svc := newService(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	for _, apartmentID := range []snowflake.ID{21, 21, 22} {
		_, err := svc.Create(context.Background(), domain.CreateReadingRequest{
			ApartmentID: apartmentID.String(),
			EBSReading:  1000,
			SWMReading:  300,
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListReadingRequest{
		ApartmentID: snowflake.ID(21).String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Readings, 2)
}
