package trigger

import (
	"sync"

	"github.com/google/uuid"
	"github.com/robmorgan/orbit/rhythm"
	"golang.org/x/exp/slices"
)

// Registry stores trigger points in insertion order. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	points []Point
	newID  func() string
}

// NewRegistry creates an empty Registry that identifies points with random UUIDs.
func NewRegistry() *Registry {
	return &Registry{
		points: make([]Point, 0),
		newID:  uuid.NewString,
	}
}

// Add stores a new point at the normalized angle and returns its id.
func (r *Registry) Add(angle float64, kind NoteKind) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := Point{
		ID:    r.newID(),
		Angle: rhythm.Normalize(angle),
		Kind:  kind,
	}
	r.points = append(r.points, p)
	return p.ID
}

// Remove deletes the point with the given id. Unknown ids are ignored.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.points = slices.Delete(r.points, i, i+1)
	return true
}

// UpdateAngle moves the point with the given id to the normalized angle. Unknown ids are ignored.
func (r *Registry) UpdateAngle(id string, angle float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.points[i].Angle = rhythm.Normalize(angle)
	return true
}

// Get returns the point with the given id.
func (r *Registry) Get(id string) (Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return Point{}, false
	}
	return r.points[i], true
}

// List returns a copy of all points in insertion order.
func (r *Registry) List() []Point {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.points)
}

// Clear removes every point.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.points = r.points[:0]
}

// Count returns the number of points.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.points)
}

func (r *Registry) indexOf(id string) int {
	return slices.IndexFunc(r.points, func(p Point) bool { return p.ID == id })
}
