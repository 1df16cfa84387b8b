package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordStats(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("test")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)

	s := m.Stats()
	if s.Count != 2 || s.TotalMs != 6 || s.AvgMs != 3 || s.MaxMs != 4 || s.MinMs != 2 {
		t.Errorf("unexpected stats %+v", s)
	}

	m.Reset()
	if s := m.Stats(); s.Count != 0 || s.MaxMs != 0 || s.MinMs != 0 {
		t.Errorf("reset should clear stats, got %+v", s)
	}
}

func TestDisabledRecordsNothing(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("off")
	m.Record(time.Millisecond)
	Timer(m)()
	if m.Count() != 0 {
		t.Errorf("disabled metric recorded %d samples", m.Count())
	}
}

func TestTimerAndAllStats(t *testing.T) {
	SetEnabled(true)
	ResetAll()
	defer ResetAll()

	stop := Timer(LayoutCompute)
	stop()
	if Timer(nil) == nil {
		t.Fatal("Timer(nil) should return a no-op")
	}

	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "layout_compute" || stats[0].Count != 1 {
		t.Errorf("expected only layout_compute, got %+v", stats)
	}
}

func TestConcurrentRecord(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.Record(d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	s := m.Stats()
	if s.Count != 50 || s.MaxMs != 0.05 || s.MinMs != 0.001 {
		t.Errorf("unexpected stats %+v", s)
	}
}
