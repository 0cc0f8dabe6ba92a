package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnbounded_FIFOOrder(t *testing.T) {
	q := NewUnbounded[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	for i := 0; i < 5; i++ {
		select {
		case v := <-q.Out():
			require.Equal(t, i, v)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for value")
		}
	}
}

func TestUnbounded_ClosesAfterDrain(t *testing.T) {
	q := NewUnbounded[int]()
	q.Push(1)
	q.Close()

	select {
	case v, ok := <-q.Out():
		require.True(t, ok)
		require.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for buffered value")
	}

	select {
	case _, ok := <-q.Out():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestUnbounded_PushAfterCloseIsNoop(t *testing.T) {
	q := NewUnbounded[int]()
	q.Close()
	q.Push(1)

	select {
	case _, ok := <-q.Out():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
