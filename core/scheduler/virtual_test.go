package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/scheduler"
)

func TestVirtual_RunsInDueOrder(t *testing.T) {
	t.Parallel()

	vs := scheduler.NewVirtual()
	var order []string

	vs.ScheduleAfter(3*time.Second, func() { order = append(order, "c") })
	vs.ScheduleAfter(time.Second, func() { order = append(order, "a") })
	vs.ScheduleAfter(2*time.Second, func() { order = append(order, "b") })
	vs.Schedule(func() { order = append(order, "now") })

	vs.AdvanceBy(2 * time.Second)
	assert.Equal(t, []string{"now", "a", "b"}, order)
	assert.Equal(t, 1, vs.Pending())

	vs.AdvanceBy(time.Second)
	assert.Equal(t, []string{"now", "a", "b", "c"}, order)
}

func TestVirtual_SameDueKeepsSubmissionOrder(t *testing.T) {
	t.Parallel()

	vs := scheduler.NewVirtual()
	var order []int
	for i := range 5 {
		vs.ScheduleAfter(time.Second, func() { order = append(order, i) })
	}

	vs.AdvanceBy(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestVirtual_ClockMovesWithWork(t *testing.T) {
	t.Parallel()

	vs := scheduler.NewVirtual()
	start := vs.Now()

	var seen time.Time
	vs.ScheduleAfter(5*time.Second, func() { seen = vs.Now() })

	vs.AdvanceBy(time.Minute)
	assert.Equal(t, start.Add(5*time.Second), seen)
	assert.Equal(t, start.Add(time.Minute), vs.Now())
}

func TestVirtual_RecursiveScheduling(t *testing.T) {
	t.Parallel()

	vs := scheduler.NewVirtual()
	ticks := 0

	var tick func()
	tick = func() {
		ticks++
		vs.ScheduleAfter(time.Second, tick)
	}
	vs.ScheduleAfter(time.Second, tick)

	vs.AdvanceBy(5 * time.Second)
	require.Equal(t, 5, ticks)
}

func TestVirtual_Cancelled(t *testing.T) {
	t.Parallel()

	vs := scheduler.NewVirtual()
	var ran bool
	handle := vs.ScheduleAfter(time.Second, func() { ran = true })
	handle.Unsubscribe()

	vs.AdvanceBy(time.Second)
	assert.False(t, ran)
	assert.Equal(t, 0, vs.Pending())
}
