package services

import (
	"context"
	"testing"
	"time"

	"depot-router/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	d := fixtureDepot(t, 10)
	_, err := Dispatch(context.Background(), d, DefaultDispatchPlan(), nil)
	require.NoError(t, err)

	clock := testutil.Clock()
	s, _ := d.Shipment(6)
	v, ok := d.VehicleOf(6)
	require.True(t, ok)

	r, ok := d.StatusAt(6, clock.At(9, 0))
	require.True(t, ok)
	assert.Equal(t, StatusAtHub, r.Status)
	assert.Equal(t, v.VehicleID, r.VehicleID)
	assert.Nil(t, r.DeliveredAt)

	// Departure is exclusive.
	r, _ = d.StatusAt(6, v.DepartAt)
	assert.Equal(t, StatusAtHub, r.Status)

	r, _ = d.StatusAt(6, s.DeliveredAt.Add(-time.Second))
	assert.Equal(t, StatusEnRoute, r.Status)

	r, _ = d.StatusAt(6, *s.DeliveredAt)
	assert.Equal(t, StatusDelivered, r.Status)
	require.NotNil(t, r.DeliveredAt)
	assert.Equal(t, *s.DeliveredAt, *r.DeliveredAt)

	_, ok = d.StatusAt(99, clock.At(9, 0))
	assert.False(t, ok)
}

func TestStatusAllAtEndOfDay(t *testing.T) {
	d := fixtureDepot(t, 10)
	_, err := Dispatch(context.Background(), d, DefaultDispatchPlan(), nil)
	require.NoError(t, err)

	all := d.StatusAll(testutil.Clock().EndOfDay())
	require.Len(t, all, testutil.ShipmentCount)
	for _, r := range all {
		assert.Equal(t, StatusDelivered, r.Status, "shipment %d", r.Shipment.ShipmentID)
	}
}

func TestStatusBeforeDispatch(t *testing.T) {
	d := fixtureDepot(t, 16)

	r, ok := d.StatusAt(1, testutil.Clock().At(12, 0))
	require.True(t, ok)
	assert.Equal(t, StatusAtHub, r.Status)
	assert.Zero(t, r.VehicleID)
}

func TestShipmentStatusString(t *testing.T) {
	assert.Equal(t, "At the Hub", StatusAtHub.String())
	assert.Equal(t, "En Route", StatusEnRoute.String())
	assert.Equal(t, "Delivered", StatusDelivered.String())
}
