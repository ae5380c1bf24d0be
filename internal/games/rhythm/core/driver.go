package core

// Subscriber receives every state the driver produces together with the one
// it replaced.
type Subscriber func(prev, next State)

// Driver owns the running State of one session. It delivers each new state to
// its subscriber and detaches itself the first time the game ends.
//
// A Driver is not safe for concurrent use; events must be fed from a single
// goroutine in their delivery order.
type Driver struct {
	cfg      Config
	state    State
	sub      Subscriber
	onEnd    func()
	detached bool
}

// NewDriver starts a driver at initial. sub and onEnd may be nil.
func NewDriver(cfg Config, initial State, sub Subscriber, onEnd func()) *Driver {
	return &Driver{cfg: cfg, state: initial, sub: sub, onEnd: onEnd}
}

// Apply folds ev and delivers the result. It reports false once the driver is
// detached, in which case ev is dropped.
func (d *Driver) Apply(ev Event) bool {
	if d.detached {
		return false
	}
	prev := d.state
	d.state = Apply(d.cfg, prev, ev)
	if d.sub != nil {
		d.sub(prev, d.state)
	}
	if d.state.GameEnded {
		d.detach(true)
	}
	return true
}

// Feed applies events in order until the driver detaches.
func (d *Driver) Feed(events ...Event) {
	for _, ev := range events {
		if !d.Apply(ev) {
			return
		}
	}
}

// State returns the latest state.
func (d *Driver) State() State {
	return d.state
}

// Detached reports whether the driver stopped delivering states.
func (d *Driver) Detached() bool {
	return d.detached
}

// Detach stops delivery. It is safe to call any number of times; onEnd is
// not invoked for an external detach.
func (d *Driver) Detach() {
	d.detach(false)
}

func (d *Driver) detach(ended bool) {
	if d.detached {
		return
	}
	d.detached = true
	if ended && d.onEnd != nil {
		d.onEnd()
	}
}
