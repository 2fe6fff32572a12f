package listview

import (
	"context"
	"sync"
	"time"

	"github.com/Bajrangipanjiyar/studio/internal/models"
)

// DefaultDebounce is the quiescence window applied to Search input.
const DefaultDebounce = 500 * time.Millisecond

// fetchFailedMsg is what the user sees when the store query fails.
const fetchFailedMsg = "Failed to fetch orders"

// Fetcher queries the order store for the given phone-prefix query.
type Fetcher func(ctx context.Context, query string) ([]models.Order, error)

// Snapshot is an immutable view of the controller state, suitable for
// rendering or streaming as JSON.
type Snapshot struct {
	Query   string         `json:"query"`
	Orders  []models.Order `json:"orders"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

// Controller drives the debounced order search. Search calls coalesce over
// the debounce window; each dispatched fetch carries a generation token and
// a completion for a superseded generation is discarded, so a slow fetch can
// never overwrite the result of a newer one. A failed fetch keeps the
// previous orders visible. Close cancels the pending timer and the context
// of any in-flight fetch.
type Controller struct {
	fetch    Fetcher
	debounce *Debouncer
	onChange func(Snapshot) // called outside the lock, may be nil
	ctx      context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	gen     uint64
	query   string
	orders  []models.Order
	loading bool
	errMsg  string
	closed  bool
}

func NewController(fetch Fetcher, onChange func(Snapshot)) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		fetch:    fetch,
		debounce: NewDebouncer(DefaultDebounce),
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Search records the new query and schedules a fetch once input has been
// quiet for the debounce window.
func (c *Controller) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	// Scheduling under the lock keeps the pending timer paired with the
	// query it was scheduled for when searches race.
	c.query = query
	c.debounce.Schedule(func() { c.dispatch(query) })
}

// Refresh fetches immediately with the current query. Used for the initial
// load when a view attaches.
func (c *Controller) Refresh() {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()
	c.dispatch(query)
}

func (c *Controller) dispatch(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.loading = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.emit(snap)

	go func() {
		orders, err := c.fetch(c.ctx, query)

		c.mu.Lock()
		if c.closed || gen != c.gen {
			// A newer fetch was dispatched (or the view tore down) while
			// this one was in flight; its result is stale.
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			c.errMsg = fetchFailedMsg
		} else {
			c.orders = orders
			c.errMsg = ""
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.emit(snap)
	}()
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	orders := make([]models.Order, len(c.orders))
	copy(orders, c.orders)
	return Snapshot{
		Query:   c.query,
		Orders:  orders,
		Loading: c.loading,
		Error:   c.errMsg,
	}
}

// Close tears the controller down: the pending debounce timer is cancelled,
// the in-flight fetch context is cancelled, and any late completion is
// discarded. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debounce.Cancel()
	c.cancel()
}

func (c *Controller) emit(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
