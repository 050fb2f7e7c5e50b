package activation

// State is the debounce state of a single trigger point.
type State int

const (
	// Idle means the moving point is away from the trigger; the next detection fires a beat.
	Idle State = iota
	// Active means a beat already fired for the current pass and no further beat fires until the point leaves.
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Tracker debounces raw detections into exactly one beat per continuous dwell. Triggers it has never seen are Idle.
// A Tracker is not safe for concurrent use; it belongs to a single driver.
type Tracker struct {
	active map[string]struct{}
}

// NewTracker creates a Tracker with every trigger Idle.
func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[string]struct{}),
	}
}

// Observe feeds the detector's answer for one trigger on one tick and reports whether the trigger went from Idle
// to Active, in which case the caller emits a beat.
func (t *Tracker) Observe(id string, implicated bool) bool {
	_, wasActive := t.active[id]
	switch {
	case implicated && !wasActive:
		t.active[id] = struct{}{}
		return true
	case !implicated && wasActive:
		delete(t.active, id)
	}
	return false
}

// State returns the current state of a trigger.
func (t *Tracker) State(id string) State {
	if _, ok := t.active[id]; ok {
		return Active
	}
	return Idle
}

// Retain forgets every trigger not present in ids, so points removed between ticks do not linger and a point
// re-added later starts Idle.
func (t *Tracker) Retain(ids map[string]struct{}) {
	for id := range t.active {
		if _, ok := ids[id]; !ok {
			delete(t.active, id)
		}
	}
}

// Reset returns every trigger to Idle.
func (t *Tracker) Reset() {
	for id := range t.active {
		delete(t.active, id)
	}
}

// ActiveCount returns how many triggers are Active.
func (t *Tracker) ActiveCount() int {
	return len(t.active)
}
