package store

import (
	"sync"
	"testing"

	"github.com/appetiteclub/floorsync/pkg/logging"
)

func TestSequenceNext(t *testing.T) {
	s := newTestStore(t, "Extras")
	seq := NewSequence(s, "Extras", "currentOrderNumber", 1000, logging.NewNoopLogger())

	for want := 1000; want < 1005; want++ {
		if got := seq.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}

	data, _ := s.Load("Extras", "currentOrderNumber")
	if string(data) != "1005" {
		t.Errorf("persisted counter = %q, want 1005", data)
	}
}

func TestSequenceSurvivesRestart(t *testing.T) {
	s := newTestStore(t, "Extras")
	NewSequence(s, "Extras", "currentItemNumber", 1000, nil).Next()

	again := NewSequence(s, "Extras", "currentItemNumber", 1000, nil)
	if got := again.Next(); got != 1001 {
		t.Errorf("Next() after restart = %d, want 1001", got)
	}
}

func TestSequenceRecoversFromGarbage(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   int
	}{
		{name: "garbage", stored: "abc", want: 1000},
		{name: "empty", stored: "", want: 1000},
		{name: "whitespace", stored: " 1200\n", want: 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, "Extras")
			s.Save("Extras", "counter", []byte(tt.stored))
			seq := NewSequence(s, "Extras", "counter", 1000, nil)
			if got := seq.Next(); got != tt.want {
				t.Errorf("Next() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSequenceStrictlyIncreasingWithinProcess(t *testing.T) {
	s := newTestStore(t, "Extras")
	seq := NewSequence(s, "Extras", "counter", 1000, nil)

	const workers, perWorker = 8, 25
	var (
		mu   sync.Mutex
		seen = make(map[int]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n := seq.Next()
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("got %d distinct values, want %d", len(seen), workers*perWorker)
	}
	if got := seq.Current(); got != 1000+workers*perWorker {
		t.Errorf("Current() = %d, want %d", got, 1000+workers*perWorker)
	}
}

func TestSequenceReset(t *testing.T) {
	s := newTestStore(t, "Extras")
	seq := NewSequence(s, "Extras", "counter", 1000, nil)
	seq.Next()
	seq.Next()

	seq.Reset()

	if got := seq.Next(); got != 1000 {
		t.Errorf("Next() after Reset() = %d, want 1000", got)
	}
}
