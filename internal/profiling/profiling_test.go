package profiling

import (
	"testing"
	"time"
)

func TestTopNAndPrefix(t *testing.T) {
	ResetFrame()
	Add("terrain.Update", 2*time.Millisecond)
	Add("terrain.Draw", 4*time.Millisecond)
	Add("app.Swap", time.Millisecond)
	Add("terrain.Draw", 200*time.Microsecond)

	if got := TopN(2); got != "terrain.Draw:4.2ms, terrain.Update:2.0ms" {
		t.Errorf("unexpected TopN: %q", got)
	}
	if got := SumWithPrefix("terrain."); got != 6200*time.Microsecond {
		t.Errorf("Expected 6.2ms, got %v", got)
	}
	if got := Count("terrain.Draw"); got != 2 {
		t.Errorf("Expected 2 samples, got %d", got)
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Error("ResetFrame left buckets behind")
	}
}

func TestTrackRecords(t *testing.T) {
	ResetFrame()
	stop := Track("x.Y")
	time.Sleep(time.Millisecond)
	stop()
	if Snapshot()["x.Y"] <= 0 {
		t.Error("Track recorded nothing")
	}
}

func TestProcessSamplerReadsSelf(t *testing.T) {
	s, err := NewProcessSampler()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	st, err := s.Sample()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if st.RSSBytes == 0 {
		t.Error("expected a non-zero resident set")
	}
	if st.CPUPercent < 0 {
		t.Errorf("negative cpu percent %v", st.CPUPercent)
	}
}
