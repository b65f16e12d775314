package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type job struct {
	dir     string
	version int
}

func jobKey(j job) string {
	return j.dir + "#" + string(rune('0'+j.version))
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Warn(message, detail string) {
	m.Called(message, detail)
}

// recorder reconciles jobs, optionally blocking on gate and failing selected dirs.
type recorder struct {
	mu      sync.Mutex
	seen    []job
	active  atomic.Int32
	maxSeen atomic.Int32
	gate    chan struct{}
	fail    map[string]error
}

func (r *recorder) Reconcile(ctx context.Context, j job) error {
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		cur := r.maxSeen.Load()
		if n <= cur || r.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.seen = append(r.seen, j)
	r.mu.Unlock()
	if err, ok := r.fail[j.dir]; ok {
		return err
	}
	return nil
}

func (r *recorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.seen))
	for _, j := range r.seen {
		out = append(out, j.dir)
	}
	return out
}

func waitReady(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("queue did not drain")
	}
}

func startQueue(t *testing.T, q *Queue[job]) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go q.Run(ctx)
}

func TestQueue_ReadyWhenIdle(t *testing.T) {
	q := NewQueue[job](&recorder{}, jobKey, nil, zap.NewNop())

	select {
	case <-q.Ready():
	default:
		t.Fatal("idle queue should be ready")
	}
	assert.False(t, q.IsSaving())
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_DrainsInOrderOneAtATime(t *testing.T) {
	rec := &recorder{}
	q := NewQueue[job](rec, jobKey, nil, zap.NewNop())

	for _, d := range []string{"a", "b", "c", "d"} {
		_, queued := q.Enqueue(job{dir: d})
		assert.True(t, queued)
	}
	assert.Equal(t, 4, q.Pending())

	ready := q.Ready()
	startQueue(t, q)
	waitReady(t, ready)

	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.order())
	assert.Equal(t, int32(1), rec.maxSeen.Load())
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_CoalescesIdenticalItems(t *testing.T) {
	rec := &recorder{}
	q := NewQueue[job](rec, jobKey, nil, zap.NewNop())

	first, queued := q.Enqueue(job{dir: "vacation", version: 1})
	require.True(t, queued)
	second, queued := q.Enqueue(job{dir: "vacation", version: 1})
	assert.False(t, queued)
	assert.Same(t, first, second)

	_, queued = q.Enqueue(job{dir: "vacation", version: 2})
	assert.True(t, queued)

	ready := q.Ready()
	startQueue(t, q)
	waitReady(t, ready)

	assert.Equal(t, []string{"vacation", "vacation"}, rec.order())
	require.NoError(t, first.Wait(context.Background()))
}

func TestQueue_CoalescesWithItemInFlight(t *testing.T) {
	rec := &recorder{gate: make(chan struct{})}
	q := NewQueue[job](rec, jobKey, nil, zap.NewNop())
	startQueue(t, q)

	h, _ := q.Enqueue(job{dir: "a"})
	require.Eventually(t, func() bool { return rec.active.Load() == 1 }, 5*time.Second, 5*time.Millisecond)

	again, queued := q.Enqueue(job{dir: "a"})
	assert.False(t, queued)
	assert.Same(t, h, again)
	assert.True(t, q.IsSaving())

	close(rec.gate)
	waitReady(t, q.Ready())
	assert.Equal(t, []string{"a"}, rec.order())
}

func TestQueue_FailFastDiscardsRemaining(t *testing.T) {
	boom := errors.New("store unavailable")
	rec := &recorder{fail: map[string]error{"b": boom}}
	sink := new(mockSink)
	sink.On("Warn", "Failed to save b#0 to the index", mock.AnythingOfType("string")).Once()

	q := NewQueue[job](rec, jobKey, sink, zap.NewNop())

	ha, _ := q.Enqueue(job{dir: "a"})
	hb, _ := q.Enqueue(job{dir: "b"})
	hc, _ := q.Enqueue(job{dir: "c"})
	hd, _ := q.Enqueue(job{dir: "d"})

	ready := q.Ready()
	startQueue(t, q)
	waitReady(t, ready)

	assert.Equal(t, []string{"a", "b"}, rec.order())
	assert.NoError(t, ha.Err())

	var rerr *ReconciliationError
	require.ErrorAs(t, hb.Err(), &rerr)
	assert.Equal(t, "b#0", rerr.Item)
	assert.ErrorIs(t, hb.Err(), boom)

	assert.ErrorIs(t, hc.Err(), ErrDiscarded)
	assert.ErrorIs(t, hd.Err(), ErrDiscarded)
	assert.Equal(t, 0, q.Pending())
	sink.AssertExpectations(t)

	// The queue keeps serving unrelated work after a failure
	he, queued := q.Enqueue(job{dir: "e"})
	require.True(t, queued)
	require.NoError(t, he.Wait(context.Background()))
	assert.Equal(t, []string{"a", "b", "e"}, rec.order())
}

func TestQueue_ReconcileSurvivesCancellation(t *testing.T) {
	var sawErr atomic.Value
	gate := make(chan struct{})
	started := make(chan struct{})
	r := ReconcilerFunc[job](func(ctx context.Context, j job) error {
		close(started)
		<-gate
		sawErr.Store(ctx.Err() == nil)
		return nil
	})
	q := NewQueue[job](r, jobKey, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	h, _ := q.Enqueue(job{dir: "a"})
	<-started
	cancel()
	close(gate)

	require.NoError(t, h.Wait(context.Background()))
	assert.Equal(t, true, sawErr.Load())
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestHandle_WaitHonoursContext(t *testing.T) {
	h := newHandle()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, h.Wait(ctx), context.DeadlineExceeded)
	assert.NoError(t, h.Err())
}

func TestQueue_SavesItemsAcceptedAfterStop(t *testing.T) {
	rec := &recorder{}
	q := NewQueue[job](rec, jobKey, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	early, queued := q.Enqueue(job{dir: "early"})
	require.True(t, queued)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, early.Wait(context.Background()), "queued before stop")

	late, queued := q.Enqueue(job{dir: "late"})
	require.True(t, queued)
	waitReady(t, q.Ready())
	require.NoError(t, late.Wait(context.Background()))
	assert.Equal(t, []string{"early", "late"}, rec.order())
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_DrainsPendingOnStop(t *testing.T) {
	rec := &recorder{}
	q := NewQueue[job](rec, jobKey, nil, zap.NewNop())

	// Whether Run picks the wake-up or the cancellation first, the item is saved
	h, _ := q.Enqueue(job{dir: "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, q.Run(ctx), context.Canceled)

	require.NoError(t, h.Wait(context.Background()))
	assert.Equal(t, []string{"a"}, rec.order())
}
