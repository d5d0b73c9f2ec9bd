package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kam-api/apperrors"
	"kam-api/events"
	eventmocks "kam-api/events/mocks"
	geomocks "kam-api/geocode/mocks"
	"kam-api/models"
	"kam-api/performance"
	"kam-api/store"
	"kam-api/testutil"
)

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestGetLeadsDueForCall(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	svc := NewKAMService(s, testutil.Logger()).WithClock(fixedNow(time.Date(2024, 12, 8, 20, 0, 0, 0, time.UTC)))

	called := testutil.Day(t, "2024-12-01")
	recent := testutil.Day(t, "2024-12-05")
	a := testutil.SeedRestaurant(t, db, "A", 7, &called)
	testutil.SeedRestaurant(t, db, "B", 7, &recent)
	c := testutil.SeedRestaurant(t, db, "C", 3, nil)

	due, err := svc.GetLeadsDueForCall(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, a.ID, due[0].ID)
	assert.Equal(t, c.ID, due[1].ID)

	_, err = svc.GetLeadsDueForCall(context.Background(), "Mars/Olympus")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestGetLeadsDueForCall_TimezoneShiftsReferenceDay(t *testing.T) {
	db := testutil.NewDB(t)
	// 2024-12-07 20:00 UTC is already 2024-12-08 in Kolkata.
	svc := NewKAMService(store.New(db), testutil.Logger()).WithClock(fixedNow(time.Date(2024, 12, 7, 20, 0, 0, 0, time.UTC)))
	called := time.Date(2024, 11, 30, 18, 30, 0, 0, time.UTC)
	testutil.SeedRestaurant(t, db, "A", 7, &called)

	utc, err := svc.GetLeadsDueForCall(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, utc)
	assert.NotNil(t, utc)

	kolkata, err := svc.GetLeadsDueForCall(context.Background(), "Asia/Kolkata")
	require.NoError(t, err)
	assert.Len(t, kolkata, 1)
}

func TestPerformance_EndToEnd(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	svc := NewKAMService(s, testutil.Logger())

	r := testutil.SeedRestaurant(t, db, "Spice Route", 7, nil)
	idle := testutil.SeedRestaurant(t, db, "Idle", 7, nil)
	for _, d := range []string{"2024-12-10", "2024-12-01", "2024-12-05"} {
		testutil.SeedInteraction(t, db, r.ID, models.InteractionOrder, testutil.Day(t, d))
	}
	testutil.SeedInteraction(t, db, r.ID, models.InteractionCall, testutil.Day(t, "2024-12-02"))

	metrics, err := svc.GetPerformanceMetrics(context.Background())
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, 3, metrics[0].TotalOrders)
	require.NotNil(t, metrics[0].AverageOrderFrequency)
	assert.Equal(t, 5, *metrics[0].AverageOrderFrequency)
	assert.Equal(t, performance.StatusAverage, metrics[0].PerformanceStatus)
	assert.Equal(t, idle.ID, metrics[1].ID)
	assert.Equal(t, performance.StatusUnderperforming, metrics[1].PerformanceStatus)

	data, err := svc.GetPerformanceData(context.Background())
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, 3, data[0].OrderFrequency)
	assert.Equal(t, performance.StatusUnderperforming, data[0].Status)

	freq, err := svc.GetOrderFrequency(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, freq.Frequency)
	require.NotNil(t, freq.AverageGap)
	assert.Equal(t, 5, *freq.AverageGap)

	_, err = svc.GetOrderFrequency(context.Background(), 999)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestPerformance_EmptyStore(t *testing.T) {
	svc := NewKAMService(store.New(testutil.NewDB(t)), testutil.Logger())

	metrics, err := svc.GetPerformanceMetrics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)

	data, err := svc.GetPerformanceData(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestInteractionService_PublishesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := testutil.NewDB(t)
	r := testutil.SeedRestaurant(t, db, "R", 7, nil)

	pub := eventmocks.NewMockPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		assert.Equal(t, events.InteractionCreated, e.Type)
		payload, ok := e.Payload.(events.InteractionEvent)
		require.True(t, ok)
		assert.Equal(t, r.ID, payload.RestaurantID)
		assert.NotZero(t, payload.InteractionID)
		return nil
	})

	svc := NewInteractionService(store.New(db), pub, testutil.Logger())
	require.NoError(t, svc.Create(context.Background(), &models.Interaction{RestaurantID: r.ID, Type: models.InteractionCall}))
}

func TestInteractionService_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := testutil.NewDB(t)
	r := testutil.SeedRestaurant(t, db, "R", 7, nil)

	pub := eventmocks.NewMockPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	svc := NewInteractionService(store.New(db), pub, testutil.Logger())
	in := &models.Interaction{RestaurantID: r.ID, Type: models.InteractionOrder}
	require.NoError(t, svc.Create(context.Background(), in))
	assert.NotZero(t, in.ID)
}

func TestInteractionService_StoreErrorSkipsPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := eventmocks.NewMockPublisher(ctrl)

	svc := NewInteractionService(store.New(testutil.NewDB(t)), pub, testutil.Logger())
	err := svc.Create(context.Background(), &models.Interaction{RestaurantID: 77, Type: models.InteractionCall})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAddressService_CreateResolvesTimezone(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := geomocks.NewMockTimezoneLookup(ctrl)
	lookup.EXPECT().GetTimezone(gomock.Any(), "Pune", "India").Return("Asia/Kolkata", nil)

	svc := NewAddressService(store.New(testutil.NewDB(t)), lookup, testutil.Logger())
	a := &models.Address{City: "Pune", Country: "India", PinCode: "411001"}
	require.NoError(t, svc.Create(context.Background(), a))
	require.NotNil(t, a.Timezone)
	assert.Equal(t, "Asia/Kolkata", *a.Timezone)
}

func TestAddressService_CreateFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := geomocks.NewMockTimezoneLookup(ctrl)
	svc := NewAddressService(store.New(testutil.NewDB(t)), lookup, testutil.Logger())

	err := svc.Create(context.Background(), &models.Address{City: "Pune"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	lookup.EXPECT().GetTimezone(gomock.Any(), "Pune", "India").Return("", errors.New("timeout"))
	err = svc.Create(context.Background(), &models.Address{City: "Pune", Country: "India", PinCode: "411001"})
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))

	lookup.EXPECT().GetTimezone(gomock.Any(), "Pune", "India").Return("Not/AZone", nil)
	err = svc.Create(context.Background(), &models.Address{City: "Pune", Country: "India", PinCode: "411001"})
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestAddressService_WithoutLookup(t *testing.T) {
	svc := NewAddressService(store.New(testutil.NewDB(t)), nil, testutil.Logger())
	a := &models.Address{City: "Pune", Country: "India", PinCode: "411001"}
	require.NoError(t, svc.Create(context.Background(), a))
	assert.Nil(t, a.Timezone)
}

func TestAddressService_UpdateReResolvesOnLocationChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := geomocks.NewMockTimezoneLookup(ctrl)
	svc := NewAddressService(store.New(testutil.NewDB(t)), lookup, testutil.Logger())
	ctx := context.Background()

	lookup.EXPECT().GetTimezone(gomock.Any(), "Pune", "India").Return("Asia/Kolkata", nil)
	a := &models.Address{City: "Pune", Country: "India", PinCode: "411001"}
	require.NoError(t, svc.Create(ctx, a))

	pin := "411002"
	same := "Pune"
	got, err := svc.Update(ctx, a.ID, store.AddressPatch{City: &same, PinCode: &pin})
	require.NoError(t, err)
	assert.Equal(t, "411002", got.PinCode)

	lookup.EXPECT().GetTimezone(gomock.Any(), "New York", "USA").Return("America/New_York", nil)
	city, country := "New York", "USA"
	got, err = svc.Update(ctx, a.ID, store.AddressPatch{City: &city, Country: &country})
	require.NoError(t, err)
	require.NotNil(t, got.Timezone)
	assert.Equal(t, "America/New_York", *got.Timezone)

	_, err = svc.Update(ctx, 999, store.AddressPatch{City: &city})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
