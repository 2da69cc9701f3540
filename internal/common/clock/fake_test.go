package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeTickerFiresOnAdvance(t *testing.T) {
	start := time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	c := NewFake(start)

	ticker := c.NewTicker(time.Minute)
	c.Advance(30 * time.Second)

	select {
	case <-ticker.C:
		t.Fatal("ticker fired before its interval elapsed")
	default:
	}

	c.Advance(30 * time.Second)
	select {
	case tick := <-ticker.C:
		assert.Equal(t, start.Add(time.Minute), tick)
	default:
		t.Fatal("ticker did not fire")
	}
	assert.Equal(t, start.Add(time.Minute), c.Now())
}

func TestFakeTickerStop(t *testing.T) {
	c := NewFake(time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC))

	ticker := c.NewTicker(time.Second)
	require.Equal(t, 1, c.ActiveTickers())

	ticker.Stop()
	assert.Equal(t, 0, c.ActiveTickers())

	c.Advance(time.Minute)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}
