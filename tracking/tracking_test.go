package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"food-storefront/apiclient"
	"food-storefront/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource reports a fixed list of updates and then blocks until
// cancelled.
type scriptedSource struct {
	updates []Update
	block   bool
}

func (s scriptedSource) Follow(ctx context.Context, _ Subject, report func(Update)) error {
	for _, u := range s.updates {
		report(u)
	}
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func TestViewerStartsAtFirstStage(t *testing.T) {
	v := Start(context.Background(), scriptedSource{block: true}, Subject{OrderID: "1"}, zerolog.Nop())
	defer v.Stop()

	p := v.Progress()
	assert.Equal(t, "1", p.OrderID)
	assert.Equal(t, 0, p.CurrentStep)
	require.Len(t, p.Steps, 5)
	assert.True(t, p.Steps[0].Completed)
	for _, s := range p.Steps[1:] {
		assert.False(t, s.Completed)
	}
	assert.Equal(t, "Ready for Pickup", p.Steps[2].Title)
	assert.Equal(t, "Your order is on its way to you", p.Steps[3].Description)
}

func TestViewerProgressNeverMovesBack(t *testing.T) {
	src := scriptedSource{updates: []Update{{Stage: 2}, {Stage: 1}, {Stage: 9}}}
	v := Start(context.Background(), src, Subject{OrderID: "1"}, zerolog.Nop())
	<-v.Done()

	p := v.Progress()
	assert.Equal(t, LastStage, p.CurrentStep)
	assert.True(t, p.Finished)
	for _, s := range p.Steps {
		assert.True(t, s.Completed)
	}
}

func TestTickerSourceAdvancesToDelivered(t *testing.T) {
	v := Start(context.Background(), TickerSource{Interval: 5 * time.Millisecond}, Subject{OrderID: "1"}, zerolog.Nop())

	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker never reached the last stage")
	}
	p := v.Progress()
	assert.Equal(t, LastStage, p.CurrentStep)
	assert.True(t, p.Finished)
}

func TestStopCancelsTimer(t *testing.T) {
	v := Start(context.Background(), TickerSource{Interval: time.Hour}, Subject{OrderID: "1"}, zerolog.Nop())
	v.Stop()

	p := v.Progress()
	assert.Equal(t, 0, p.CurrentStep)
	assert.False(t, p.Finished)
}

func TestRegistryForgetsFinishedViewers(t *testing.T) {
	r := NewRegistry(scriptedSource{updates: []Update{{Stage: LastStage}}}, zerolog.Nop())
	defer r.Close()

	for _, id := range []string{"1", "2", "3"} {
		<-r.Watch(Subject{OrderID: id}).Done()
	}
	assert.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
	_, ok := r.Get("1")
	assert.False(t, ok)
}

func TestStageForStatus(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		want   int
	}{
		{models.StatusPending, 0},
		{models.StatusConfirmed, 0},
		{models.StatusPreparing, 1},
		{models.StatusReady, 2},
		{models.StatusDelivered, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StageForStatus(tt.status))
		})
	}
}

func newPollSource(t *testing.T, statuses ...models.OrderStatus) (PollSource, *atomic.Int32, *string) {
	t.Helper()
	var calls atomic.Int32
	var mu sync.Mutex
	auth := new(string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/srv-1", r.URL.Path)
		mu.Lock()
		*auth = r.Header.Get("Authorization")
		mu.Unlock()
		i := int(calls.Add(1)) - 1
		status := statuses[min(i, len(statuses)-1)]
		_ = json.NewEncoder(w).Encode(models.Order{ID: "srv-1", Status: status})
	}))
	t.Cleanup(srv.Close)
	c, err := apiclient.New(srv.URL+"/api", srv.Client())
	require.NoError(t, err)
	return PollSource{Client: c, Interval: 5 * time.Millisecond, Log: zerolog.Nop()}, &calls, auth
}

func TestPollSourceFollowsServerStatus(t *testing.T) {
	src, calls, auth := newPollSource(t,
		models.StatusPending, models.StatusPreparing, models.StatusPreparing, models.StatusReady, models.StatusDelivered)

	var got []Update
	err := src.Follow(context.Background(), Subject{OrderID: "1", ServerOrderID: "srv-1", Token: "tok"}, func(u Update) {
		got = append(got, u)
	})
	require.NoError(t, err)

	assert.Equal(t, []Update{{Stage: 0}, {Stage: 1}, {Stage: 2}, {Stage: 4}}, got)
	assert.Equal(t, int32(5), calls.Load())
	assert.Equal(t, "Bearer tok", *auth)
}

func TestPollSourceStopsOnCancelled(t *testing.T) {
	src, _, _ := newPollSource(t, models.StatusConfirmed, models.StatusCancelled)

	v := Start(context.Background(), src, Subject{OrderID: "1", ServerOrderID: "srv-1"}, zerolog.Nop())
	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poll did not stop on cancellation")
	}
	p := v.Progress()
	assert.True(t, p.Cancelled)
	assert.Equal(t, 0, p.CurrentStep)
}

func TestPollSourceNeedsServerID(t *testing.T) {
	src, calls, _ := newPollSource(t, models.StatusPending)
	err := src.Follow(context.Background(), Subject{OrderID: "1"}, func(Update) {})
	assert.ErrorIs(t, err, ErrNoServerOrder)
	assert.Zero(t, calls.Load())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(TickerSource{Interval: time.Hour}, zerolog.Nop())

	a := r.Watch(Subject{OrderID: "a"})
	assert.Same(t, a, r.Watch(Subject{OrderID: "a"}))
	b := r.Watch(Subject{OrderID: "b"})
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, r.Stop("a"))
	assert.False(t, r.Stop("a"))
	_, ok = r.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	r.Close()
	select {
	case <-b.Done():
	default:
		t.Fatal("Close left a viewer running")
	}
}
