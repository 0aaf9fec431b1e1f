package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadRulesAndConsolidation(t *testing.T) {
	d := fixtureDepot(t, 10)
	require.NoError(t, d.CorrectShipment(9, "410 S State St", "Salt Lake City", 84111))

	require.NoError(t, d.Preload())

	// Together group plus end-of-day shipments sharing its addresses, until full.
	assert.Equal(t, []int{2, 7, 11, 13, 14, 15, 16, 19, 20, 22}, manifestIDs(d, 0))
	// Restricted notes plus same-address end-of-day shipments.
	assert.Equal(t, []int{3, 4, 9, 10, 12, 18, 23}, manifestIDs(d, 1))
	// Delayed shipments.
	assert.Equal(t, []int{6, 17, 21}, manifestIDs(d, 2))

	v2, _ := d.Vehicle(2)
	assert.Equal(t, testutil.Clock().At(9, 5), v2.DepartAt)
	v0, _ := d.Vehicle(0)
	assert.Equal(t, testutil.Clock().At(8, 0), v0.DepartAt)

	// Shipment 8 shares an address with the first vehicle, which filled up.
	assert.Equal(t, []int{1, 5, 8, 24}, d.Unassigned())
}

func TestPreloadTogetherGroupIgnoresInputOrder(t *testing.T) {
	shipments := testutil.Shipments(t)
	rand.New(rand.NewSource(7)).Shuffle(len(shipments), func(i, j int) {
		shipments[i], shipments[j] = shipments[j], shipments[i]
	})

	clock := testutil.Clock()
	d, err := NewDepot(testutil.Table(t), shipments, testutil.Fleet(3, 16, clock.At(8, 0)), DefaultPreloadRules(clock), nil)
	require.NoError(t, err)
	require.NoError(t, d.Preload())

	v0, _ := d.Vehicle(0)
	for _, id := range []int{13, 14, 15, 16, 19, 20} {
		assert.True(t, v0.Holds(id), "shipment %d", id)
	}
}

func TestPreloadOverflowIsAnError(t *testing.T) {
	d := fixtureDepot(t, 5)

	err := d.Preload()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVehicleFull))
}

func TestPreloadAssignsEachShipmentOnce(t *testing.T) {
	d := fixtureDepot(t, 16)
	require.NoError(t, d.Preload())

	for _, s := range d.Shipments() {
		holders := 0
		for _, v := range d.Vehicles() {
			if v.Holds(s.ShipmentID) {
				holders++
			}
		}
		assert.LessOrEqual(t, holders, 1, "shipment %d", s.ShipmentID)
		if holders == 1 {
			assert.NotContains(t, d.Unassigned(), s.ShipmentID)
		}
	}
}

func TestPreloadWithoutDelayedShipmentsKeepsDeparture(t *testing.T) {
	clock := testutil.Clock()
	table := smallTable(t)
	fleet := testutil.Fleet(3, 16, clock.At(8, 0))
	d, err := NewDepot(table, []*domain.Shipment{ship(1, "A")}, fleet, DefaultPreloadRules(clock), nil)
	require.NoError(t, err)

	require.NoError(t, d.Preload())
	assert.Equal(t, clock.At(8, 0), fleet[2].DepartAt)
	assert.Equal(t, []int{1}, d.Unassigned())
	assert.Equal(t, time.Duration(0), fleet[2].Clock.Sub(fleet[2].DepartAt))
}
