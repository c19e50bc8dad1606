package mint

import (
	"sync"
	"time"

	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/ethereum/go-ethereum/common"
)

// State is what the page renders.
type State struct {
	Session      *gateway.Session
	Snapshot     Snapshot
	IsOwner      bool
	PresaleEnded bool // latched: never goes back to false
	Loading      bool
	UI           UIState
	Notice       string
	Alert        string
}

// Store serialises updates from the poller, the dispatcher and the page,
// and publishes every change to subscribers.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
	subs  map[int]chan State
	next  int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used to decide whether the presale has ended.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithSupply seeds the supply cap shown before maxTokenIds is read.
func WithSupply(supply uint64) StoreOption {
	return func(s *Store) { s.state.Snapshot.MaxTokenIDs = supply }
}

// NewStore creates a disconnected store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now, subs: make(map[int]chan State)}
	for _, opt := range opts {
		opt(s)
	}
	s.state.UI = Disconnected
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives the state after every change.
// Slow readers only see the latest state. Call cancel to unsubscribe.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan State, 1)
	s.subs[id] = ch
	ch <- s.state

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

// SetSession records a connected session, or nil for disconnected.
func (s *Store) SetSession(session *gateway.Session) {
	s.update(func(st *State) {
		st.Session = session
		if session != nil {
			st.Alert = ""
		}
	})
}

// ObserveNotStarted records a poll that found the presale not started.
func (s *Store) ObserveNotStarted(owner common.Address) {
	s.update(func(st *State) {
		st.Snapshot.PresaleStarted = false
		st.Snapshot.Owner = owner
	})
}

// ObserveStarted records a poll that found the presale started with the
// given end time. It returns the presale-ended latch.
func (s *Store) ObserveStarted(end int64) bool {
	var ended bool
	s.update(func(st *State) {
		st.Snapshot.PresaleStarted = true
		st.Snapshot.PresaleEnd = end
		ended = st.PresaleEnded
	})
	return ended
}

// ObserveMinted records the minted count.
func (s *Store) ObserveMinted(n uint64) {
	s.update(func(st *State) { st.Snapshot.TokenIDsMinted = n })
}

// ObserveSupply records the supply cap.
func (s *Store) ObserveSupply(supply uint64) {
	s.update(func(st *State) { st.Snapshot.MaxTokenIDs = supply })
}

// SetLoading marks a transaction in flight.
func (s *Store) SetLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading })
}

// SetNotice stores a message for the user. Empty clears it.
func (s *Store) SetNotice(msg string) {
	s.update(func(st *State) { st.Notice = msg })
}

// SetAlert stores a blocking alert, such as a wrong network.
func (s *Store) SetAlert(msg string) {
	s.update(func(st *State) { st.Alert = msg })
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	s.derive()
	s.publish()
}

// derive recomputes the owner flag, the latch and the page state. Caller
// holds s.mu.
func (s *Store) derive() {
	st := &s.state
	snap := st.Snapshot

	st.IsOwner = st.Session != nil &&
		snap.Owner != (common.Address{}) &&
		snap.Owner == st.Session.Address

	if snap.PresaleStarted && snap.PresaleEnd != 0 && snap.PresaleEnd < s.now().Unix() {
		st.PresaleEnded = true
	}

	st.UI = Derive(Flags{
		Connected:      st.Session != nil,
		Loading:        st.Loading,
		IsOwner:        st.IsOwner,
		PresaleStarted: snap.PresaleStarted,
		PresaleEnded:   st.PresaleEnded,
	})
}

func (s *Store) publish() {
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			// Replace the unread state with the newer one.
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}
