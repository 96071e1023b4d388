package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_SetAndSnapshotClone(t *testing.T) {
	var s Store

	seq := s.Begin(ResourcePlaylists)
	if !s.SetPlaylists(seq, OptionList{Options: []Option{{Value: "a", Label: "a"}, {Value: "b", Label: "b"}}}) {
		t.Fatalf("SetPlaylists rejected current seq")
	}
	seq = s.Begin(ResourceQueue)
	s.SetQueue(seq, []string{"x - y"})
	seq = s.Begin(ResourceBrowse)
	s.SetBrowse(seq, BrowseView{URI: "u", Sections: []BrowseSection{{Title: "T", Entries: []BrowseEntry{{Kind: EntryPlayable, Name: "n", URI: "u/1"}}}}})

	snap := s.Snapshot()
	if got := snap.Playlists.Values(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("playlists = %v, want [a b]", got)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Playlists.Options[0].Value = "mutated"
	snap.Queue[0] = "mutated"
	snap.Browse.Sections[0].Entries[0].Name = "mutated"

	snap2 := s.Snapshot()
	if snap2.Playlists.Options[0].Value != "a" {
		t.Fatalf("Snapshot should clone playlists")
	}
	if snap2.Queue[0] != "x - y" {
		t.Fatalf("Snapshot should clone queue")
	}
	if snap2.Browse.Sections[0].Entries[0].Name != "n" {
		t.Fatalf("Snapshot should clone browse entries")
	}
}

func TestStore_DiscardsSupersededResults(t *testing.T) {
	var s Store

	older := s.Begin(ResourceState)
	newer := s.Begin(ResourceState)

	if !s.SetNowPlaying(newer, NowPlaying{Title: "new"}) {
		t.Fatalf("newer result rejected")
	}
	if s.SetNowPlaying(older, NowPlaying{Title: "old"}) {
		t.Fatalf("older result accepted after newer")
	}
	if got := s.Snapshot().NowPlaying.Title; got != "new" {
		t.Fatalf("title = %q, want new", got)
	}

	// Sequences are per resource.
	q := s.Begin(ResourceQueue)
	if !s.SetQueue(q, []string{"a"}) {
		t.Fatalf("queue result rejected by unrelated state sequence")
	}
}

func TestStore_InOrderResultsAllApply(t *testing.T) {
	var s Store
	for i := 0; i < 3; i++ {
		seq := s.Begin(ResourceQueue)
		if !s.SetQueue(seq, []string{"x"}) {
			t.Fatalf("in-order result %d rejected", i)
		}
	}
}

func TestStore_LocalVolumePinsUntilReleased(t *testing.T) {
	var s Store

	s.SetNowPlaying(s.Begin(ResourceState), NowPlaying{Volume: 30})
	if got := s.Snapshot().Volume; got != 30 {
		t.Fatalf("Volume = %d, want 30", got)
	}

	gen := s.SetLocalVolume(80)
	s.SetNowPlaying(s.Begin(ResourceState), NowPlaying{Volume: 30})
	snap := s.Snapshot()
	if snap.Volume != 80 || !snap.VolumePending {
		t.Fatalf("Volume = %d pending=%v, want 80 pending", snap.Volume, snap.VolumePending)
	}
	if snap.NowPlaying.Volume != 30 {
		t.Fatalf("NowPlaying.Volume = %d, want player value 30", snap.NowPlaying.Volume)
	}

	s.ReleaseVolume(gen)
	s.SetNowPlaying(s.Begin(ResourceState), NowPlaying{Volume: 80})
	if got := s.Snapshot().Volume; got != 80 {
		t.Fatalf("Volume = %d, want 80 after release", got)
	}
}

func TestStore_OlderVolumeReleaseKeepsNewerPin(t *testing.T) {
	var s Store

	first := s.SetLocalVolume(50)
	second := s.SetLocalVolume(60)

	s.ReleaseVolume(first)
	s.SetNowPlaying(s.Begin(ResourceState), NowPlaying{Volume: 10})
	snap := s.Snapshot()
	if snap.Volume != 60 || !snap.VolumePending {
		t.Fatalf("Volume = %d pending=%v, want 60 pending", snap.Volume, snap.VolumePending)
	}

	s.ReleaseVolume(second)
	if s.Snapshot().VolumePending {
		t.Fatalf("VolumePending = true after releasing latest change")
	}
}

func TestStore_ReleaseVolumeNotifies(t *testing.T) {
	var s Store

	gen := s.SetLocalVolume(40)
	<-s.Changes()

	s.ReleaseVolume(gen)
	select {
	case <-s.Changes():
	case <-time.After(time.Second):
		t.Fatalf("no change signalled after ReleaseVolume")
	}
	if s.Snapshot().VolumePending {
		t.Fatalf("VolumePending = true after release")
	}
}

func TestStore_RecordPollKeepsPreviousData(t *testing.T) {
	var s Store

	s.SetNowPlaying(s.Begin(ResourceState), NowPlaying{Title: "kept"})

	before := time.Now()
	origErr := errors.New("boom")
	s.RecordPoll(origErr)

	snap := s.Snapshot()
	if snap.NowPlaying.Title != "kept" {
		t.Fatalf("title changed on error: %q", snap.NowPlaying.Title)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.RecordPoll(errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordPoll(errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordPoll(nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("after success: %#v", snap)
	}
}

func TestStore_ChangesCoalesce(t *testing.T) {
	var s Store
	ch := s.Changes()

	s.SetQueue(s.Begin(ResourceQueue), []string{"a"})
	s.SetQueue(s.Begin(ResourceQueue), []string{"b"})

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("no change notification")
	}
	select {
	case <-ch:
		t.Fatalf("notifications did not coalesce")
	default:
	}
}

func TestPlaylistCache(t *testing.T) {
	var c PlaylistCache
	if _, ok := c.Get(); ok {
		t.Fatalf("empty cache reported filled")
	}

	c.Put([]string{"a"})
	names, ok := c.Get()
	if !ok || len(names) != 1 || names[0] != "a" {
		t.Fatalf("Get = %v %v, want [a] true", names, ok)
	}
	names[0] = "mutated"
	if again, _ := c.Get(); again[0] != "a" {
		t.Fatalf("Get should return a copy")
	}

	// An empty list is still a successful fetch.
	c.Put(nil)
	if _, ok := c.Get(); !ok {
		t.Fatalf("empty fetch should still fill the cache")
	}
}
