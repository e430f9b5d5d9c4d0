package study

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_SingleInFlight(t *testing.T) {
	var s Slot

	t1, err := s.Begin()
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	assert.True(t, s.Finish(t1))
	assert.False(t, s.Busy())

	_, err = s.Begin()
	assert.NoError(t, err)
}

func TestSlot_SupersedeMakesOldTicketStale(t *testing.T) {
	var s Slot

	old, err := s.Begin()
	require.NoError(t, err)
	newer := s.Supersede()

	assert.False(t, s.Finish(old), "superseded result must be dropped")
	assert.True(t, s.Busy(), "stale finish must not release the slot")
	assert.True(t, s.Finish(newer))
	assert.False(t, s.Busy())
}

func TestSlot_FinishTwice(t *testing.T) {
	var s Slot
	tk, _ := s.Begin()
	assert.True(t, s.Finish(tk))
	assert.False(t, s.Finish(tk))
	assert.False(t, s.Finish(Ticket{}))
}

func TestSlot_Cancel(t *testing.T) {
	var s Slot
	tk, _ := s.Begin()
	s.Cancel()

	assert.False(t, s.Busy())
	assert.False(t, s.Finish(tk))
}

func TestSlot_ConcurrentBegin(t *testing.T) {
	var (
		s       Slot
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Begin(); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}
