package session

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	st := NewStore(time.Hour)

	s := st.Create()
	if s.ID == "" {
		t.Fatal("Create() returned session with empty ID")
	}

	got, ok := st.Get(s.ID)
	if !ok {
		t.Fatal("Get() did not find created session")
	}
	if got.ID != s.ID {
		t.Errorf("Get().ID = %v, want %v", got.ID, s.ID)
	}
}

func TestGetUnknown(t *testing.T) {
	st := NewStore(time.Hour)

	if _, ok := st.Get("nope"); ok {
		t.Error("Get() found a session that was never created")
	}
}

func TestUpdateApplies(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	got, err := st.Update(s.ID, func(s Session) (Session, error) {
		s.Transcript = "hello world"
		s.TranscriptLang = "en"
		return s, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Transcript != "hello world" {
		t.Errorf("Transcript = %q, want %q", got.Transcript, "hello world")
	}

	stored, _ := st.Get(s.ID)
	if stored.Transcript != "hello world" {
		t.Errorf("stored Transcript = %q, want update to persist", stored.Transcript)
	}
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	if _, err := st.Update(s.ID, func(s Session) (Session, error) {
		s.Summary = "S1"
		s.SummaryLang = "en"
		s.SummaryFresh = true
		return s, nil
	}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("executor failed")
	got, err := st.Update(s.ID, func(s Session) (Session, error) {
		s.Summary = "S2"
		return s, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want %v", err, boom)
	}
	if got.Summary != "S1" {
		t.Errorf("Summary = %q, failed update must not apply", got.Summary)
	}

	stored, _ := st.Get(s.ID)
	if stored.Summary != "S1" {
		t.Errorf("stored Summary = %q, want S1", stored.Summary)
	}
}

func TestUpdateUnknownSession(t *testing.T) {
	st := NewStore(time.Hour)

	_, err := st.Update("nope", func(s Session) (Session, error) { return s, nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	got, err := st.Update(s.ID, func(cur Session) (Session, error) {
		// A careless reducer returning a zero session must not lose the ID
		return Session{Transcript: "T"}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != s.ID {
		t.Errorf("ID = %v, want %v", got.ID, s.ID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was lost across Update")
	}
}

func TestUpdateSerializesPerSession(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			st.Update(s.ID, func(cur Session) (Session, error) {
				cur.Transcript += "x"
				return cur, nil
			})
		}()
	}
	wg.Wait()

	got, _ := st.Get(s.ID)
	if len(got.Transcript) != n {
		t.Errorf("len(Transcript) = %d, want %d (lost updates)", len(got.Transcript), n)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	st := NewStore(time.Hour)
	a := st.Create()
	b := st.Create()

	st.Update(a.ID, func(s Session) (Session, error) {
		s.Transcript = "A"
		return s, nil
	})

	gotB, _ := st.Get(b.ID)
	if gotB.Transcript != "" {
		t.Errorf("session B transcript = %q, sessions must not share state", gotB.Transcript)
	}
}

func TestReset(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	st.Update(s.ID, func(cur Session) (Session, error) {
		cur.Transcript = "T"
		cur.Summary = "S"
		cur.APIKey = "sk-test"
		return cur, nil
	})

	got, err := st.Reset(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Transcript != "" || got.Summary != "" || got.APIKey != "" {
		t.Errorf("Reset() left data behind: %+v", got)
	}
	if got.ID != s.ID {
		t.Errorf("Reset() changed session ID")
	}
}

func TestSweep(t *testing.T) {
	st := NewStore(time.Minute)

	base := time.Now()
	st.now = func() time.Time { return base }
	stale := st.Create()

	st.now = func() time.Time { return base.Add(2 * time.Minute) }
	fresh := st.Create()

	removed := st.Sweep()
	if removed != 1 {
		t.Fatalf("Sweep() = %d, want 1", removed)
	}
	if _, ok := st.Get(stale.ID); ok {
		t.Error("stale session survived sweep")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Error("fresh session was swept")
	}
}

func TestSweepConcurrentWithUpdates(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			st.Update(s.ID, func(cur Session) (Session, error) {
				cur.Summary = "S"
				return cur, nil
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			st.Sweep()
		}
	}()
	wg.Wait()

	if _, ok := st.Get(s.ID); !ok {
		t.Error("active session disappeared during concurrent sweeps")
	}
}

func TestSweepSkipsInFlightTransition(t *testing.T) {
	st := NewStore(time.Minute)

	base := time.Now()
	st.now = func() time.Time { return base }
	s := st.Create()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan Session, 1)
	go func() {
		got, _ := st.Update(s.ID, func(cur Session) (Session, error) {
			close(entered)
			<-release
			cur.Transcript = "kept"
			return cur, nil
		})
		done <- got
	}()

	<-entered
	// The session is past its TTL, but its transition is still running.
	st.now = func() time.Time { return base.Add(2 * time.Minute) }
	if removed := st.Sweep(); removed != 0 {
		t.Errorf("Sweep() = %d, want 0 while a transition holds the session", removed)
	}

	close(release)
	if got := <-done; got.Transcript != "kept" {
		t.Fatalf("Update() result = %q, want kept", got.Transcript)
	}

	stored, ok := st.Get(s.ID)
	if !ok || stored.Transcript != "kept" {
		t.Error("committed transition was lost to the sweeper")
	}
}

func TestUpdateAfterDelete(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()

	st.Delete(s.ID)
	_, err := st.Update(s.ID, func(cur Session) (Session, error) { return cur, nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestGetKeepsActiveSessionAlive(t *testing.T) {
	st := NewStore(time.Minute)

	base := time.Now()
	st.now = func() time.Time { return base }
	s := st.Create()

	st.now = func() time.Time { return base.Add(45 * time.Second) }
	if _, ok := st.Get(s.ID); !ok {
		t.Fatal("Get() did not find the session")
	}

	// The read at 45s refreshed LastSeen, so 90s is within the TTL again.
	st.now = func() time.Time { return base.Add(90 * time.Second) }
	if removed := st.Sweep(); removed != 0 {
		t.Errorf("Sweep() = %d, want 0 after a recent read", removed)
	}
}

func TestClearDerived(t *testing.T) {
	s := Session{
		Transcript:   "T",
		Summary:      "S",
		SummaryLang:  "en",
		SummaryFresh: true,
		Steps:        "steps",
		StepsFresh:   true,
		Audio:        []byte{1, 2, 3},
		AudioFresh:   true,
		Translation:  "tr",
	}

	s.ClearDerived()

	if s.Summary != "" || s.SummaryLang != "" || s.Steps != "" || s.Audio != nil || s.Translation != "" {
		t.Errorf("ClearDerived() left derived fields: %+v", s)
	}
	if s.Transcript != "T" {
		t.Error("ClearDerived() must not touch the transcript")
	}
}
