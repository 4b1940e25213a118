package booking

import (
	"slices"
	"sync"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/google/uuid"
)

// Timing holds the simulated latencies of the booking flow.
type Timing struct {
	ConfirmDelay time.Duration // booking confirmation latency
	TickInterval time.Duration // one countdown step
	DefaultETA   int           // placeholder ETA shown outside of a ride
}

type Options struct {
	Timing    Timing
	Fare      float64
	Currency  string
	Scheduler Scheduler

	// Locations is the enumerated set of pickup and destination names.
	Locations []string
	Pickup    string
	Dest      string

	// Notify receives every transition after the controller lock is released.
	Notify func(models.BookingEvent)
}

// Controller is the booking flow of one passenger:
//
//	home --Book--> booked --ConfirmArrival--> in_progress --countdown 0--> completed --Reset--> home
//	booked --RequestCancel, ConfirmCancel--> home
//
// All mutation goes through c.mu. Scheduled callbacks capture the epoch they
// were created in and are dropped if the epoch moved on or the flow was disposed.
type Controller struct {
	mu          sync.Mutex
	passengerID uuid.UUID
	opts        Options

	status        types.TripStatus
	submitting    bool
	cancelPending bool
	pickup        string
	destination   string
	driver        *models.Driver
	eta           int
	rating        int

	confirmTask Task
	countdown   Task
	epoch       uint64
	disposed    bool
}

func NewController(passengerID uuid.UUID, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}

	return &Controller{
		passengerID: passengerID,
		opts:        opts,
		status:      types.StatusHome,
		pickup:      opts.Pickup,
		destination: opts.Dest,
		eta:         opts.Timing.DefaultETA,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() models.BookingSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectDriver picks the driver for the next booking. Only the latest selection is kept.
func (c *Controller) SelectDriver(d models.Driver) (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if err := c.requireHome(); err != nil {
			return "", err
		}
		if !d.Available() {
			return "", types.NewValidationError("driver", "driver is not available")
		}

		selected := d
		c.driver = &selected
		return types.EventDriverSelected, nil
	})
}

// SetPickup changes the pickup location, which must differ from the destination.
func (c *Controller) SetPickup(name string) (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if err := c.requireHome(); err != nil {
			return "", err
		}
		if err := c.checkRoute(name, c.destination); err != nil {
			return "", err
		}
		c.pickup = name
		return types.EventRouteChanged, nil
	})
}

// SetDestination changes the destination, which must differ from the pickup.
func (c *Controller) SetDestination(name string) (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if err := c.requireHome(); err != nil {
			return "", err
		}
		if err := c.checkRoute(c.pickup, name); err != nil {
			return "", err
		}
		c.destination = name
		return types.EventRouteChanged, nil
	})
}

// SetRoute changes both ends at once, so that swapping them is possible.
// An empty value keeps the current end.
func (c *Controller) SetRoute(pickup, destination string) (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if err := c.requireHome(); err != nil {
			return "", err
		}
		if pickup == "" {
			pickup = c.pickup
		}
		if destination == "" {
			destination = c.destination
		}
		if err := c.checkRoute(pickup, destination); err != nil {
			return "", err
		}
		c.pickup, c.destination = pickup, destination
		return types.EventRouteChanged, nil
	})
}

// Book submits the booking. The flow reaches booked after the confirmation
// delay; until then it is submitting and refuses another Book.
func (c *Controller) Book() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if err := c.requireHome(); err != nil {
			return "", err
		}
		if c.driver == nil {
			return "", types.NewValidationError("driver", "no driver selected")
		}

		c.submitting = true
		epoch := c.restart()
		c.confirmTask = c.opts.Scheduler.AfterFunc(c.opts.Timing.ConfirmDelay, func() {
			c.confirmBooking(epoch)
		})
		return types.EventBookingSubmitted, nil
	})
}

func (c *Controller) confirmBooking(epoch uint64) {
	c.fire(epoch, func() types.BookingEvent {
		if c.status != types.StatusHome || !c.submitting {
			return ""
		}
		c.submitting = false
		c.confirmTask = nil
		c.status = types.StatusBooked
		return types.EventTripBooked
	})
}

// ConfirmArrival starts the ride and the ETA countdown.
func (c *Controller) ConfirmArrival() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusBooked {
			return "", types.ErrInvalidTransition
		}

		epoch := c.restart()
		c.cancelPending = false
		c.eta = c.driver.ETA
		if c.eta <= 0 {
			c.eta = 0
			c.status = types.StatusCompleted
			return types.EventTripCompleted, nil
		}

		c.status = types.StatusInProgress
		c.countdown = c.opts.Scheduler.Every(c.opts.Timing.TickInterval, func() {
			c.tick(epoch)
		})
		return types.EventRideStarted, nil
	})
}

// tick is one countdown step. The step that reaches zero stops the countdown
// and completes the trip under the same lock, so completion happens once.
func (c *Controller) tick(epoch uint64) {
	c.fire(epoch, func() types.BookingEvent {
		if c.status != types.StatusInProgress {
			return ""
		}

		c.eta--
		if c.eta > 0 {
			return types.EventETAUpdated
		}

		c.eta = 0
		c.restart()
		c.status = types.StatusCompleted
		return types.EventTripCompleted
	})
}

// RequestCancel is the first step of cancelling a booked trip.
func (c *Controller) RequestCancel() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusBooked {
			return "", types.ErrInvalidTransition
		}
		if c.cancelPending {
			return "", nil
		}
		c.cancelPending = true
		return types.EventCancelRequested, nil
	})
}

// DismissCancel answers "no" to the cancel prompt.
func (c *Controller) DismissCancel() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusBooked {
			return "", types.ErrInvalidTransition
		}
		if !c.cancelPending {
			return "", nil
		}
		c.cancelPending = false
		return types.EventCancelDismissed, nil
	})
}

// ConfirmCancel answers "yes" to the cancel prompt and returns to home.
func (c *Controller) ConfirmCancel() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusBooked || !c.cancelPending {
			return "", types.ErrInvalidTransition
		}

		c.restart()
		c.cancelPending = false
		c.driver = nil
		c.eta = c.opts.Timing.DefaultETA
		c.status = types.StatusHome
		return types.EventTripCancelled, nil
	})
}

// Rate records the passenger's rating of a completed trip. Rating again overwrites.
func (c *Controller) Rate(stars int) (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusCompleted {
			return "", types.ErrInvalidTransition
		}
		if stars < 1 || stars > 5 {
			return "", types.NewValidationError("stars", "must be between 1 and 5")
		}
		c.rating = stars
		return types.EventTripRated, nil
	})
}

// Reset starts over after a completed trip. The route is kept.
func (c *Controller) Reset() (models.BookingSnapshot, error) {
	return c.apply(func() (types.BookingEvent, error) {
		if c.status != types.StatusCompleted {
			return "", types.ErrInvalidTransition
		}

		c.restart()
		c.driver = nil
		c.rating = 0
		c.eta = c.opts.Timing.DefaultETA
		c.status = types.StatusHome
		return types.EventBookingFlowReset, nil
	})
}

// Dispose stops pending timers. Nothing mutates the flow afterwards.
func (c *Controller) Dispose() {
	c.dispose(false)
}

// dispose reports the status the flow was closed in and whether this call
// closed it. With onlyIdle a flow that is submitting, booked or riding is left alone.
func (c *Controller) dispose(onlyIdle bool) (types.TripStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || (onlyIdle && !c.idleLocked()) {
		return c.status, false
	}
	c.disposed = true
	c.restart()
	return c.status, true
}

func (c *Controller) idleLocked() bool {
	switch c.status {
	case types.StatusHome:
		return !c.submitting
	case types.StatusCompleted:
		return true
	default:
		return false
	}
}

// apply runs a user-initiated transition. fn returns "" for an accepted no-op.
func (c *Controller) apply(fn func() (types.BookingEvent, error)) (models.BookingSnapshot, error) {
	c.mu.Lock()
	if c.disposed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, types.ErrFlowDisposed
	}

	prev := c.status
	kind, err := fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return snap, err
	}
	c.emit(kind, prev, snap)
	return snap, nil
}

// fire runs a scheduled transition if its epoch is still current.
func (c *Controller) fire(epoch uint64, fn func() types.BookingEvent) {
	c.mu.Lock()
	if c.disposed || epoch != c.epoch {
		c.mu.Unlock()
		return
	}

	prev := c.status
	kind := fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(kind, prev, snap)
}

func (c *Controller) emit(kind types.BookingEvent, prev types.TripStatus, snap models.BookingSnapshot) {
	if kind == "" || c.opts.Notify == nil {
		return
	}
	c.opts.Notify(models.BookingEvent{Type: kind, Previous: prev, Snapshot: snap})
}

// restart cancels every pending task and starts a new epoch. Caller holds c.mu.
func (c *Controller) restart() uint64 {
	if c.confirmTask != nil {
		c.confirmTask.Stop()
		c.confirmTask = nil
	}
	if c.countdown != nil {
		c.countdown.Stop()
		c.countdown = nil
	}
	c.epoch++
	return c.epoch
}

func (c *Controller) requireHome() error {
	if c.status != types.StatusHome {
		return types.ErrInvalidTransition
	}
	if c.submitting {
		return types.ErrBookingInProgress
	}
	return nil
}

func (c *Controller) checkRoute(pickup, destination string) error {
	if pickup == "" {
		return types.NewValidationError("pickup", "must be provided")
	}
	if destination == "" {
		return types.NewValidationError("destination", "must be provided")
	}
	if len(c.opts.Locations) > 0 {
		if !slices.Contains(c.opts.Locations, pickup) {
			return types.NewValidationError("pickup", "unknown location")
		}
		if !slices.Contains(c.opts.Locations, destination) {
			return types.NewValidationError("destination", "unknown location")
		}
	}
	if pickup == destination {
		return types.NewValidationError("destination", "must differ from pickup")
	}
	return nil
}

func (c *Controller) snapshotLocked() models.BookingSnapshot {
	var driver *models.Driver
	if c.driver != nil {
		d := *c.driver
		driver = &d
	}

	snap := models.BookingSnapshot{
		PassengerID: c.passengerID,
		Trip: models.TripRequest{
			Pickup:      c.pickup,
			Destination: c.destination,
			Driver:      driver,
			Status:      c.status,
		},
		Submitting:    c.submitting,
		CancelPending: c.cancelPending,
		ETARemaining:  c.eta,
		Rating:        c.rating,
		Currency:      c.opts.Currency,
	}
	if c.status == types.StatusCompleted {
		snap.Fare = c.opts.Fare
	}
	return snap
}
