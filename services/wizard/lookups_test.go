package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, l *Lookups) LookupResult {
	t.Helper()
	select {
	case res := <-l.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for lookup result")
	}
	return LookupResult{}
}

func assertNoResult(t *testing.T, l *Lookups, wait time.Duration) {
	t.Helper()
	select {
	case res := <-l.Results():
		t.Fatalf("unexpected lookup result: %+v", res)
	case <-time.After(wait):
	}
}

func TestLookupsDebounceCoalescesInput(t *testing.T) {
	vehicles := &fakeVehicles{}
	l := NewLookups(vehicles, nil, WithDebounce(30*time.Millisecond))
	defer l.Close()

	l.Schedule(FieldVehicle, "A")
	l.Schedule(FieldVehicle, "AB12")
	l.Schedule(FieldVehicle, "AB12 CDE")

	res := receive(t, l)
	assert.Equal(t, FieldVehicle, res.Field)
	assert.Equal(t, uint64(1), res.Seq)
	assert.Equal(t, "AB12 CDE", res.Query)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Vehicle)
	assert.Equal(t, "AB12CDE", res.Vehicle.Reg)

	assertNoResult(t, l, 80*time.Millisecond)
	assert.Equal(t, 1, vehicles.callCount())
}

func TestLookupsSkipShortRegAndBadPostcode(t *testing.T) {
	vehicles := &fakeVehicles{}
	l := NewLookups(vehicles, fakeAreas{label: "unused"}, WithDebounce(time.Millisecond))
	defer l.Close()

	l.Schedule(FieldVehicle, "AB 1")
	res := receive(t, l)
	assert.True(t, res.Skipped)
	assert.Zero(t, vehicles.callCount())

	l.Schedule(FieldArea, "12345")
	res = receive(t, l)
	assert.Equal(t, FieldArea, res.Field)
	assert.True(t, res.Skipped)
}

func TestLookupsNewerLookupSupersedesInFlight(t *testing.T) {
	vehicles := &fakeVehicles{
		blockOn: "AB12CDE",
		release: make(chan struct{}),
		started: make(chan string, 2),
	}
	l := NewLookups(vehicles, nil, WithDebounce(time.Millisecond))
	defer l.Close()

	l.Schedule(FieldVehicle, "AB12CDE")
	assert.Equal(t, "AB12CDE", <-vehicles.started)

	l.Schedule(FieldVehicle, "CD34EFG")
	assert.Equal(t, "CD34EFG", <-vehicles.started)

	res := receive(t, l)
	assert.Equal(t, "CD34EFG", res.Query)
	assert.Equal(t, uint64(2), res.Seq)
	assert.Equal(t, uint64(2), l.Latest(FieldVehicle))

	// the cancelled first lookup never reports
	assertNoResult(t, l, 50*time.Millisecond)
}

func TestLookupsFieldsAreIndependent(t *testing.T) {
	l := NewLookups(&fakeVehicles{}, fakeAreas{label: "Westminster, London"}, WithDebounce(time.Millisecond))
	defer l.Close()

	l.Schedule(FieldArea, "SW1A 1AA")
	res := receive(t, l)
	assert.Equal(t, "Westminster, London", res.AreaLabel)
	assert.Equal(t, uint64(1), l.Latest(FieldArea))
	assert.Zero(t, l.Latest(FieldVehicle))
}

func TestLookupsMissingBackend(t *testing.T) {
	l := NewLookups(nil, nil, WithDebounce(time.Millisecond))
	defer l.Close()

	l.Schedule(FieldVehicle, "AB12CDE")
	res := receive(t, l)
	assert.ErrorIs(t, res.Err, ErrLookupUnavailable)
}

func TestLookupsCloseCancelsInFlight(t *testing.T) {
	vehicles := &fakeVehicles{
		blockOn: "AB12CDE",
		release: make(chan struct{}),
		started: make(chan string, 1),
	}
	l := NewLookups(vehicles, nil, WithDebounce(time.Millisecond))
	l.Schedule(FieldVehicle, "AB12CDE")
	<-vehicles.started

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}

	// scheduling after close is a no-op
	l.Schedule(FieldVehicle, "CD34EFG")
	assertNoResult(t, l, 20*time.Millisecond)
}

func TestLookupsCloseStopsPendingTimers(t *testing.T) {
	vehicles := &fakeVehicles{}
	l := NewLookups(vehicles, nil, WithDebounce(50*time.Millisecond))
	l.Schedule(FieldVehicle, "AB12CDE")
	l.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, vehicles.callCount())
}

func TestWizardAppliesCoordinatorResults(t *testing.T) {
	l := NewLookups(&fakeVehicles{}, fakeAreas{label: "Westminster, London"}, WithDebounce(time.Millisecond))
	defer l.Close()
	w := newTestWizard(WithScheduler(l), WithSequencer(l))

	w.SetReg("ab12cde")
	w.ApplyLookupResult(receive(t, l))
	w.SetPostcode("sw1a 1aa")
	w.ApplyLookupResult(receive(t, l))

	car := w.Session().Car
	require.NotNil(t, car.Vehicle)
	assert.Equal(t, "Ford", car.Vehicle.Make)
	assert.Equal(t, "AB12CDE", car.Reg)
	assert.Equal(t, "SW1A 1AA", car.Postcode)
	assert.Equal(t, "Westminster, London", car.AreaLabel)
	assert.Equal(t, "SW1A 1AA", w.Session().Contact.AddressPostcode)
	assert.Equal(t, []string{"AB12CDE", "Ford Fiesta (2018)", "SW1A 1AA • Westminster, London"}, w.CarSummaryLines())
}
