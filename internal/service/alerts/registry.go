package alerts

import (
	"slices"
	"sync"

	"github.com/Temutjin2k/batoda/internal/domain/models"
)

// Registry is one passenger's view of the alert feed. The order is the one
// the feed was provided in and is never changed.
type Registry struct {
	mu     sync.Mutex
	alerts []models.Alert
}

func NewRegistry(feed []models.Alert) *Registry {
	return &Registry{alerts: slices.Clone(feed)}
}

func (r *Registry) List() []models.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.alerts)
}

// MarkRead flags one alert as read. Unknown or already read ids are a no-op;
// the result reports whether anything changed.
func (r *Registry) MarkRead(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		if r.alerts[i].ID == id {
			if r.alerts[i].Read {
				return false
			}
			r.alerts[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flags every alert as read and returns the ids that changed.
func (r *Registry) MarkAllRead() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed []string
	for i := range r.alerts {
		if !r.alerts[i].Read {
			r.alerts[i].Read = true
			changed = append(changed, r.alerts[i].ID)
		}
	}
	return changed
}

func (r *Registry) UnreadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, a := range r.alerts {
		if !a.Read {
			n++
		}
	}
	return n
}
