package cursorstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	s := NewState()

	s.SetPosition(12.5, -3)
	x, y := s.Position()
	assert.Equal(t, 12.5, x)
	assert.Equal(t, -3.0, y)

	assert.False(t, s.ButtonDown(ButtonLeft))
	s.SetButton(ButtonLeft, true)
	assert.True(t, s.ButtonDown(ButtonLeft))
	assert.False(t, s.ButtonDown(ButtonRight))
	s.SetButton(ButtonLeft, false)
	assert.False(t, s.ButtonDown(ButtonLeft))

	s.SetShapeName("ibeam")
	assert.Equal(t, "ibeam", s.ShapeName())
}

func TestSnapshot(t *testing.T) {
	s := NewState()
	s.SetPosition(100, 200)
	s.SetButton(ButtonRight, true)
	s.SetShapeName("hand")

	now := time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)
	snap := s.Snapshot(now)

	assert.Equal(t, 100.0, snap.X)
	assert.Equal(t, 200.0, snap.Y)
	assert.Equal(t, "hand", snap.ShapeName)
	assert.False(t, snap.LeftClick)
	assert.True(t, snap.RightClick)
	assert.Equal(t, "2025-06-01 12:30:45.123", snap.Timestamp)
}

func TestSnapshotJSON(t *testing.T) {
	snap := Snapshot{X: 1, Y: 2, ShapeName: "arrow", LeftClick: true, Timestamp: "2025-06-01 12:30:45.123"}

	parsed, err := SnapshotFromJSON(snap.ToJSON())
	require.NoError(t, err)
	assert.Equal(t, snap, parsed)
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, "left", ButtonLeft.String())
	assert.Equal(t, "right", ButtonRight.String())
	assert.Equal(t, "middle", ButtonMiddle.String())
}

// Readers must never block the writer; run them together under the race
// detector.
func TestConcurrentReadWrite(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10_000; i++ {
			s.SetPosition(float64(i), float64(i))
			s.SetButton(ButtonLeft, i%2 == 0)
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10_000; i++ {
				x, _ := s.Position()
				assert.GreaterOrEqual(t, x, 0.0)
				s.ButtonDown(ButtonLeft)
			}
		}()
	}
	wg.Wait()
}
