package booking

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/google/uuid"
)

var (
	kuyaBen   = models.Driver{ID: "BT-012", Name: "Kuya Ben", Status: types.DriverAvailable, ETA: 5, Rating: 4.8}
	kuyaMario = models.Driver{ID: "BT-020", Name: "Kuya Mario", Status: types.DriverAvailable, ETA: 12, Rating: 4.9}
)

type recorder struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (r *recorder) notify(e models.BookingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []types.BookingEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.BookingEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) count(kind types.BookingEvent) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T) (*Controller, *manualScheduler, *recorder) {
	t.Helper()

	sched := &manualScheduler{}
	rec := &recorder{}
	c := NewController(uuid.New(), Options{
		Timing: Timing{
			ConfirmDelay: 1200 * time.Millisecond,
			TickInterval: 3 * time.Second,
			DefaultETA:   5,
		},
		Fare:      50,
		Currency:  "PHP",
		Scheduler: sched,
		Locations: []string{"Basco Terminal", "Marlboro Hills", "Mahatao Port", "Ivana Arch"},
		Pickup:    "Basco Terminal",
		Dest:      "Marlboro Hills",
		Notify:    rec.notify,
	})
	t.Cleanup(c.Dispose)
	return c, sched, rec
}

func mustOK(t *testing.T) func(models.BookingSnapshot, error) models.BookingSnapshot {
	t.Helper()
	return func(snap models.BookingSnapshot, err error) models.BookingSnapshot {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return snap
	}
}

// bookedWith drives a fresh controller to booked with the given driver.
func bookedWith(t *testing.T, d models.Driver) (*Controller, *manualScheduler, *recorder) {
	t.Helper()
	c, sched, rec := newTestController(t)
	mustOK(t)(c.SelectDriver(d))
	mustOK(t)(c.Book())
	if n := sched.fireDelayed(); n != 1 {
		t.Fatalf("expected one confirmation timer, got %d", n)
	}
	if got := c.Snapshot().Trip.Status; got != types.StatusBooked {
		t.Fatalf("expected booked, got %s", got)
	}
	return c, sched, rec
}

func TestController_InitialState(t *testing.T) {
	c, _, _ := newTestController(t)
	snap := c.Snapshot()

	if snap.Trip.Status != types.StatusHome {
		t.Fatalf("expected home, got %s", snap.Trip.Status)
	}
	if snap.Trip.Pickup != "Basco Terminal" || snap.Trip.Destination != "Marlboro Hills" {
		t.Fatalf("unexpected default route: %s -> %s", snap.Trip.Pickup, snap.Trip.Destination)
	}
	if snap.Trip.Driver != nil {
		t.Fatalf("no driver must be selected initially")
	}
	if snap.ETARemaining != 5 {
		t.Fatalf("expected placeholder eta 5, got %d", snap.ETARemaining)
	}
	if snap.Fare != 0 {
		t.Fatalf("fare must be hidden before completion, got %v", snap.Fare)
	}
}

func TestController_HappyPath(t *testing.T) {
	c, sched, rec := newTestController(t)

	mustOK(t)(c.SelectDriver(kuyaBen))
	snap := mustOK(t)(c.Book())
	if snap.Trip.Status != types.StatusHome || !snap.Submitting {
		t.Fatalf("expected submitting home state, got %s submitting=%v", snap.Trip.Status, snap.Submitting)
	}

	sched.fireDelayed()
	snap = c.Snapshot()
	if snap.Trip.Status != types.StatusBooked || snap.Submitting {
		t.Fatalf("expected booked, got %s submitting=%v", snap.Trip.Status, snap.Submitting)
	}
	if snap.Trip.Driver == nil || snap.Trip.Driver.ID != "BT-012" {
		t.Fatalf("driver must survive booking")
	}

	snap = mustOK(t)(c.ConfirmArrival())
	if snap.Trip.Status != types.StatusInProgress || snap.ETARemaining != 5 {
		t.Fatalf("expected in_progress with eta 5, got %s eta=%d", snap.Trip.Status, snap.ETARemaining)
	}

	for want := 4; want >= 1; want-- {
		sched.tick()
		snap = c.Snapshot()
		if snap.Trip.Status != types.StatusInProgress || snap.ETARemaining != want {
			t.Fatalf("expected in_progress eta=%d, got %s eta=%d", want, snap.Trip.Status, snap.ETARemaining)
		}
	}

	sched.tick()
	snap = c.Snapshot()
	if snap.Trip.Status != types.StatusCompleted || snap.ETARemaining != 0 {
		t.Fatalf("expected completed eta=0, got %s eta=%d", snap.Trip.Status, snap.ETARemaining)
	}
	if snap.Fare != 50 || snap.Currency != "PHP" {
		t.Fatalf("unexpected fare %v %s", snap.Fare, snap.Currency)
	}
	if snap.Progress() != 100 {
		t.Fatalf("expected progress 100, got %v", snap.Progress())
	}
	if n := sched.tick(); n != 0 {
		t.Fatalf("countdown must be stopped after completion, %d still active", n)
	}

	snap = mustOK(t)(c.Rate(5))
	if snap.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", snap.Rating)
	}

	snap = mustOK(t)(c.Reset())
	if snap.Trip.Status != types.StatusHome || snap.Trip.Driver != nil || snap.Rating != 0 || snap.ETARemaining != 5 {
		t.Fatalf("reset did not restore home state: %+v", snap)
	}
	if snap.Trip.Pickup != "Basco Terminal" || snap.Trip.Destination != "Marlboro Hills" {
		t.Fatalf("reset must keep the route")
	}

	want := []types.BookingEvent{
		types.EventDriverSelected,
		types.EventBookingSubmitted,
		types.EventTripBooked,
		types.EventRideStarted,
		types.EventETAUpdated,
		types.EventETAUpdated,
		types.EventETAUpdated,
		types.EventETAUpdated,
		types.EventTripCompleted,
		types.EventTripRated,
		types.EventBookingFlowReset,
	}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("unexpected events:\n got %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestController_ProgressDuringRide(t *testing.T) {
	c, sched, _ := bookedWith(t, kuyaMario)
	mustOK(t)(c.ConfirmArrival())

	for range 3 {
		sched.tick()
	}
	snap := c.Snapshot()
	if snap.ETARemaining != 9 {
		t.Fatalf("expected eta 9, got %d", snap.ETARemaining)
	}
	if got := snap.Progress(); got != 25 {
		t.Fatalf("expected progress 25, got %v", got)
	}
}

func TestController_BookWithoutDriver(t *testing.T) {
	c, sched, rec := newTestController(t)

	_, err := c.Book()
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var verr *types.ValidationError
	if !errors.As(err, &verr) || verr.Field != "driver" {
		t.Fatalf("expected driver field error, got %v", err)
	}
	if sched.pending() != 0 || len(rec.kinds()) != 0 {
		t.Fatalf("rejected booking must not schedule or emit anything")
	}
}

func TestController_DoubleBookRejected(t *testing.T) {
	c, sched, rec := newTestController(t)
	mustOK(t)(c.SelectDriver(kuyaBen))
	mustOK(t)(c.Book())

	if _, err := c.Book(); !errors.Is(err, types.ErrBookingInProgress) {
		t.Fatalf("expected ErrBookingInProgress, got %v", err)
	}
	if _, err := c.SelectDriver(kuyaMario); !errors.Is(err, types.ErrBookingInProgress) {
		t.Fatalf("driver change while submitting must be refused, got %v", err)
	}
	if sched.pending() != 1 {
		t.Fatalf("expected a single confirmation timer, got %d", sched.pending())
	}

	sched.fireDelayed()
	if n := rec.count(types.EventTripBooked); n != 1 {
		t.Fatalf("expected one TRIP_BOOKED, got %d", n)
	}
}

func TestController_SelectDriver(t *testing.T) {
	c, _, _ := newTestController(t)

	mustOK(t)(c.SelectDriver(kuyaBen))
	snap := mustOK(t)(c.SelectDriver(kuyaMario))
	if snap.Trip.Driver.ID != "BT-020" {
		t.Fatalf("latest selection must win, got %s", snap.Trip.Driver.ID)
	}

	busy := kuyaBen
	busy.Status = types.DriverBusy
	if _, err := c.SelectDriver(busy); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("busy driver must be rejected, got %v", err)
	}
	if got := c.Snapshot().Trip.Driver.ID; got != "BT-020" {
		t.Fatalf("rejected selection changed the driver to %s", got)
	}
}

func TestController_Route(t *testing.T) {
	c, _, _ := newTestController(t)

	if _, err := c.SetPickup("Marlboro Hills"); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("pickup equal to destination must be rejected, got %v", err)
	}
	if _, err := c.SetDestination("Nowhere"); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("unknown location must be rejected, got %v", err)
	}

	snap := mustOK(t)(c.SetRoute("Marlboro Hills", "Basco Terminal"))
	if snap.Trip.Pickup != "Marlboro Hills" || snap.Trip.Destination != "Basco Terminal" {
		t.Fatalf("swap failed: %s -> %s", snap.Trip.Pickup, snap.Trip.Destination)
	}

	snap = mustOK(t)(c.SetDestination("Ivana Arch"))
	if snap.Trip.Destination != "Ivana Arch" {
		t.Fatalf("destination not updated")
	}
}

func TestController_RouteLockedAfterBooking(t *testing.T) {
	c, _, _ := bookedWith(t, kuyaBen)

	if _, err := c.SetPickup("Mahatao Port"); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := c.SelectDriver(kuyaMario); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestController_CancelTwoStep(t *testing.T) {
	c, _, rec := bookedWith(t, kuyaBen)

	if _, err := c.ConfirmCancel(); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("cancel without a prompt must be refused, got %v", err)
	}

	snap := mustOK(t)(c.RequestCancel())
	if !snap.CancelPending || snap.Trip.Status != types.StatusBooked {
		t.Fatalf("expected pending cancel in booked state")
	}

	snap = mustOK(t)(c.DismissCancel())
	if snap.CancelPending || snap.Trip.Status != types.StatusBooked || snap.Trip.Driver == nil {
		t.Fatalf("dismiss must leave the booking untouched: %+v", snap)
	}

	mustOK(t)(c.RequestCancel())
	snap = mustOK(t)(c.ConfirmCancel())
	if snap.Trip.Status != types.StatusHome || snap.Trip.Driver != nil || snap.CancelPending {
		t.Fatalf("expected clean home state after cancel: %+v", snap)
	}
	if rec.count(types.EventTripCancelled) != 1 {
		t.Fatalf("expected one TRIP_CANCELLED event")
	}
}

func TestController_CancelNotAllowedOutsideBooked(t *testing.T) {
	c, sched, _ := newTestController(t)
	mustOK(t)(c.SelectDriver(kuyaBen))

	if _, err := c.RequestCancel(); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("cancel from home must be refused, got %v", err)
	}

	mustOK(t)(c.Book())
	if _, err := c.RequestCancel(); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("cancel while submitting must be refused, got %v", err)
	}

	sched.fireDelayed()
	mustOK(t)(c.ConfirmArrival())
	if _, err := c.RequestCancel(); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("cancel during the ride must be refused, got %v", err)
	}
}

func TestController_ArrivalClearsCancelPrompt(t *testing.T) {
	c, _, _ := bookedWith(t, kuyaBen)
	mustOK(t)(c.RequestCancel())

	snap := mustOK(t)(c.ConfirmArrival())
	if snap.CancelPending {
		t.Fatalf("cancel prompt must be closed once the ride starts")
	}
}

func TestController_ZeroETACompletesImmediately(t *testing.T) {
	instant := kuyaBen
	instant.ETA = 0
	c, sched, rec := bookedWith(t, instant)

	snap := mustOK(t)(c.ConfirmArrival())
	if snap.Trip.Status != types.StatusCompleted || snap.Fare != 50 {
		t.Fatalf("expected immediate completion, got %s", snap.Trip.Status)
	}
	if sched.tick() != 0 {
		t.Fatalf("no countdown must run for a zero ETA")
	}
	if rec.count(types.EventTripCompleted) != 1 {
		t.Fatalf("expected one completion")
	}
}

func TestController_RateValidation(t *testing.T) {
	c, sched, _ := bookedWith(t, kuyaBen)

	if _, err := c.Rate(5); !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("rating before completion must be refused, got %v", err)
	}

	mustOK(t)(c.ConfirmArrival())
	for range 5 {
		sched.tick()
	}

	for _, stars := range []int{0, 6, -1} {
		if _, err := c.Rate(stars); !errors.Is(err, types.ErrValidation) {
			t.Fatalf("rating %d must be rejected, got %v", stars, err)
		}
	}

	mustOK(t)(c.Rate(3))
	snap := mustOK(t)(c.Rate(4))
	if snap.Rating != 4 {
		t.Fatalf("second rating must overwrite, got %d", snap.Rating)
	}
}

func TestController_ConcurrentTicksCompleteOnce(t *testing.T) {
	c, sched, rec := bookedWith(t, kuyaBen)
	mustOK(t)(c.ConfirmArrival())

	countdown := sched.last()
	if countdown == nil || !countdown.every {
		t.Fatalf("expected a periodic countdown task")
	}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			countdown.fn()
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.Trip.Status != types.StatusCompleted || snap.ETARemaining != 0 {
		t.Fatalf("expected completed with eta 0, got %s eta=%d", snap.Trip.Status, snap.ETARemaining)
	}
	if n := rec.count(types.EventTripCompleted); n != 1 {
		t.Fatalf("completion must happen exactly once, got %d", n)
	}
	if n := rec.count(types.EventETAUpdated); n != 4 {
		t.Fatalf("expected 4 countdown updates, got %d", n)
	}
}

func TestController_StaleCountdownIgnoredAfterReset(t *testing.T) {
	c, sched, rec := bookedWith(t, kuyaBen)
	mustOK(t)(c.ConfirmArrival())
	stale := sched.last()

	for range 5 {
		sched.tick()
	}
	mustOK(t)(c.Reset())
	mustOK(t)(c.SelectDriver(kuyaMario))
	mustOK(t)(c.Book())
	sched.fireDelayed()
	mustOK(t)(c.ConfirmArrival())

	before := len(rec.kinds())
	stale.fn()

	snap := c.Snapshot()
	if snap.ETARemaining != 12 {
		t.Fatalf("stale tick changed the new ride's eta to %d", snap.ETARemaining)
	}
	if len(rec.kinds()) != before {
		t.Fatalf("stale tick emitted an event")
	}
}

func TestController_StaleConfirmationIgnoredAfterCancel(t *testing.T) {
	c, sched, rec := bookedWith(t, kuyaBen)
	confirm := sched.tasks[0]

	mustOK(t)(c.RequestCancel())
	mustOK(t)(c.ConfirmCancel())

	confirm.fn()
	if got := c.Snapshot().Trip.Status; got != types.StatusHome {
		t.Fatalf("stale confirmation moved the flow to %s", got)
	}
	if n := rec.count(types.EventTripBooked); n != 1 {
		t.Fatalf("expected a single TRIP_BOOKED, got %d", n)
	}
}

func TestController_DisposeSuppressesCallbacks(t *testing.T) {
	c, sched, rec := newTestController(t)
	mustOK(t)(c.SelectDriver(kuyaBen))
	mustOK(t)(c.Book())
	confirm := sched.last()

	c.Dispose()
	c.Dispose()

	if sched.pending() != 0 {
		t.Fatalf("dispose must stop pending timers")
	}

	before := len(rec.kinds())
	confirm.fn()
	if got := c.Snapshot().Trip.Status; got != types.StatusHome {
		t.Fatalf("disposed flow moved to %s", got)
	}
	if len(rec.kinds()) != before {
		t.Fatalf("disposed flow emitted an event")
	}

	if _, err := c.Book(); !errors.Is(err, types.ErrFlowDisposed) {
		t.Fatalf("expected ErrFlowDisposed, got %v", err)
	}
}

func TestController_DisposeDuringRide(t *testing.T) {
	c, sched, _ := bookedWith(t, kuyaBen)
	mustOK(t)(c.ConfirmArrival())
	sched.tick()

	c.Dispose()

	if n := sched.tick(); n != 0 {
		t.Fatalf("countdown still active after dispose")
	}
	if got := c.Snapshot().ETARemaining; got != 4 {
		t.Fatalf("eta changed after dispose: %d", got)
	}
}

func TestController_DisposeReportsStatus(t *testing.T) {
	c, sched, _ := bookedWith(t, kuyaBen)

	if _, ok := c.dispose(true); ok {
		t.Fatalf("a booked flow is not idle")
	}
	if got := c.Snapshot().Trip.Status; got != types.StatusBooked {
		t.Fatalf("idle dispose must leave a booked flow alone, got %s", got)
	}

	mustOK(t)(c.ConfirmArrival())
	status, ok := c.dispose(false)
	if !ok || status != types.StatusInProgress {
		t.Fatalf("dispose() = %s, %v, want in_progress, true", status, ok)
	}
	if _, ok := c.dispose(false); ok {
		t.Fatalf("second dispose must report nothing closed")
	}
	if n := sched.tick(); n != 0 {
		t.Fatalf("countdown still active after dispose")
	}
}

func TestController_DisposeIdleAfterCompletion(t *testing.T) {
	c, sched, _ := bookedWith(t, kuyaBen)
	mustOK(t)(c.ConfirmArrival())
	for i := 0; i < 5; i++ {
		sched.tick()
	}

	status, ok := c.dispose(true)
	if !ok || status != types.StatusCompleted {
		t.Fatalf("dispose(idle) = %s, %v, want completed, true", status, ok)
	}
}

func TestController_SetRouteKeepsEmptyEnd(t *testing.T) {
	c, _, _ := newTestController(t)

	snap := mustOK(t)(c.SetRoute("", "Ivana Arch"))
	if snap.Trip.Pickup != "Basco Terminal" || snap.Trip.Destination != "Ivana Arch" {
		t.Fatalf("unexpected route %s -> %s", snap.Trip.Pickup, snap.Trip.Destination)
	}

	snap = mustOK(t)(c.SetRoute("Mahatao Port", ""))
	if snap.Trip.Pickup != "Mahatao Port" || snap.Trip.Destination != "Ivana Arch" {
		t.Fatalf("unexpected route %s -> %s", snap.Trip.Pickup, snap.Trip.Destination)
	}

	if _, err := c.SetRoute("Ivana Arch", ""); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("same pickup and destination must be rejected, got %v", err)
	}
}

func TestController_NotifyOutsideLock(t *testing.T) {
	sched := &manualScheduler{}
	var c *Controller
	var seen types.TripStatus
	c = NewController(uuid.New(), Options{
		Timing:    Timing{DefaultETA: 5},
		Scheduler: sched,
		Pickup:    "Basco Terminal",
		Dest:      "Marlboro Hills",
		Notify: func(models.BookingEvent) {
			// would deadlock if called with the lock held
			seen = c.Snapshot().Trip.Status
		},
	})
	defer c.Dispose()

	mustOK(t)(c.SelectDriver(kuyaBen))
	if seen != types.StatusHome {
		t.Fatalf("listener saw %s", seen)
	}
}
