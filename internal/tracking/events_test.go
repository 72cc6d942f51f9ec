package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/Cursor-Capture/internal/cursorstate"
)

func TestEventJSONKeepsZeroCoordinates(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ev := newMoveEvent(0, 0, "arrow", now)
	data := ev.ToJSON()
	assert.Contains(t, data, `"x":0`)
	assert.Contains(t, data, `"y":0`)

	parsed, err := EventFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, ev, parsed)
}

func TestEventJSONOmitsPositionOnButtonUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	up := newButtonUpEvent(cursorstate.ButtonLeft, now)
	data := up.ToJSON()
	assert.NotContains(t, data, `"x"`)
	assert.NotContains(t, data, `"y"`)
	assert.Contains(t, data, `"button":"left"`)

	parsed, err := EventFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, up, parsed)
}

func TestButtonDownJSONCarriesOrigin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	down := newButtonDownEvent(cursorstate.ButtonRight, 0, 640, now)
	parsed, err := EventFromJSON(down.ToJSON())
	require.NoError(t, err)
	assert.Equal(t, 0.0, parsed.X)
	assert.Equal(t, 640.0, parsed.Y)
	assert.Equal(t, "right", parsed.Button)
}
