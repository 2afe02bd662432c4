package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RunsEveryTask(t *testing.T) {
	var n atomic.Int64
	tasks := make([]Task, 50)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			n.Add(1)
			return nil
		}
	}

	require.NoError(t, Do(context.Background(), 4, tasks))
	assert.Equal(t, int64(50), n.Load())
}

func TestDo_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		func(context.Context) error { return nil },
		func(context.Context) error { return boom },
	}

	err := Do(context.Background(), 1, tasks)
	assert.ErrorIs(t, err, boom)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, 2, []Task{func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_NilSafe(t *testing.T) {
	var p *Pool
	assert.NoError(t, p.Submit(context.Background(), func(context.Context) error { return nil }))
	p.Close()
	_, ok := <-p.Run(context.Background())
	assert.False(t, ok)
	assert.Zero(t, p.Workers())
}
