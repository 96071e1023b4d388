package state

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Resource identifies an independently refreshed view.
type Resource int

const (
	ResourceState Resource = iota
	ResourceQueue
	ResourcePlaylists
	ResourceSources
	ResourceBrowse
	resourceCount
)

func (r Resource) String() string {
	switch r {
	case ResourceState:
		return "state"
	case ResourceQueue:
		return "queue"
	case ResourcePlaylists:
		return "playlists"
	case ResourceSources:
		return "sources"
	case ResourceBrowse:
		return "browse"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// Snapshot represents the latest data available to renderers.
type Snapshot struct {
	Playlists  OptionList
	Sources    OptionList
	Browse     BrowseView
	NowPlaying NowPlaying
	Queue      []string
	HasState   bool

	// Volume is the displayed volume. It follows the player unless a local
	// change is still waiting to be sent.
	Volume        int
	VolumePending bool

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the player has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
//
// Every refresh takes a ticket from Begin before it issues its request and
// hands it back with the result. Results carrying a ticket older than the
// newest one already applied for that resource are dropped, so a slow
// response never overwrites fresher data.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	issued   [resourceCount]uint64
	applied  [resourceCount]uint64
	changes  chan struct{}
	initOnce sync.Once

	// volumeGen identifies the newest local volume change.
	volumeGen uint64
}

// Begin issues the next sequence number for r.
func (s *Store) Begin(r Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[r]++
	return s.issued[r]
}

// accept reports whether seq is still current for r and records it. Callers
// hold s.mu.
func (s *Store) accept(r Resource, seq uint64) bool {
	if seq < s.applied[r] {
		return false
	}
	s.applied[r] = seq
	return true
}

// SetPlaylists stores the playlists view if seq is current.
func (s *Store) SetPlaylists(seq uint64, list OptionList) bool {
	return s.apply(ResourcePlaylists, seq, func(snap *Snapshot) {
		snap.Playlists = cloneOptions(list)
	})
}

// SetSources stores the sources view if seq is current.
func (s *Store) SetSources(seq uint64, list OptionList) bool {
	return s.apply(ResourceSources, seq, func(snap *Snapshot) {
		snap.Sources = cloneOptions(list)
	})
}

// SetBrowse stores the browse view if seq is current.
func (s *Store) SetBrowse(seq uint64, view BrowseView) bool {
	return s.apply(ResourceBrowse, seq, func(snap *Snapshot) {
		snap.Browse = cloneBrowse(view)
	})
}

// SetQueue stores the rendered queue if seq is current.
func (s *Store) SetQueue(seq uint64, lines []string) bool {
	return s.apply(ResourceQueue, seq, func(snap *Snapshot) {
		snap.Queue = append([]string(nil), lines...)
	})
}

// SetNowPlaying stores the player state view if seq is current. The displayed
// volume follows the player only while no local change is pending.
func (s *Store) SetNowPlaying(seq uint64, np NowPlaying) bool {
	return s.apply(ResourceState, seq, func(snap *Snapshot) {
		snap.NowPlaying = np
		snap.HasState = true
		if !snap.VolumePending {
			snap.Volume = np.Volume
		}
	})
}

// SetLocalVolume shows v immediately and pins it until ReleaseVolume is
// called with the returned generation.
func (s *Store) SetLocalVolume(v int) uint64 {
	s.mu.Lock()
	s.volumeGen++
	gen := s.volumeGen
	s.snapshot.Volume = v
	s.snapshot.VolumePending = true
	s.mu.Unlock()
	s.notify()
	return gen
}

// ReleaseVolume lets the displayed volume follow the player again. It is a
// no-op when a newer local change has been made since gen was issued.
func (s *Store) ReleaseVolume(gen uint64) {
	s.mu.Lock()
	if gen != s.volumeGen || !s.snapshot.VolumePending {
		s.mu.Unlock()
		return
	}
	s.snapshot.VolumePending = false
	s.mu.Unlock()
	s.notify()
}

// RecordPoll tracks poll health. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) RecordPoll(err error) {
	s.mu.Lock()
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.LastError = nil
		s.snapshot.ConsecutiveFailures = 0
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) apply(r Resource, seq uint64, fn func(*Snapshot)) bool {
	s.mu.Lock()
	if !s.accept(r, seq) {
		s.mu.Unlock()
		log.Printf("dropping stale %s result (seq %d)", r, seq)
		return false
	}
	fn(&s.snapshot)
	s.mu.Unlock()
	s.notify()
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Playlists = cloneOptions(s.snapshot.Playlists)
	snap.Sources = cloneOptions(s.snapshot.Sources)
	snap.Browse = cloneBrowse(s.snapshot.Browse)
	if s.snapshot.Queue != nil {
		snap.Queue = append([]string(nil), s.snapshot.Queue...)
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Changes returns a channel that receives a value after the snapshot changes.
// Notifications coalesce: several changes between reads yield one receive.
func (s *Store) Changes() <-chan struct{} {
	s.initOnce.Do(s.initChanges)
	return s.changes
}

func (s *Store) initChanges() {
	s.changes = make(chan struct{}, 1)
}

func (s *Store) notify() {
	s.initOnce.Do(s.initChanges)
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
