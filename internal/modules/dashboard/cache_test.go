package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetOrComputeSurvivesFirstCallerCancel(t *testing.T) {
	store := newMemStore()
	c := NewAggregateCache(nil, nil, Tier{Name: "db", Store: store})

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	compute := func(ctx context.Context) ([]byte, error) {
		calls++
		close(started)
		select {
		case <-release:
			return []byte(`{"Kit-1":{"20":1}}`), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrCompute(firstCtx, "library_kit_pcr_1", compute)
		firstErr <- err
	}()
	<-started

	type out struct {
		data []byte
		err  error
	}
	second := make(chan out, 1)
	go func() {
		data, _, err := c.GetOrCompute(context.Background(), "library_kit_pcr_1", compute)
		second <- out{data, err}
	}()

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: want context.Canceled, got %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-second
	if got.err != nil {
		t.Fatalf("live caller: %v", got.err)
	}
	if string(got.data) != `{"Kit-1":{"20":1}}` {
		t.Fatalf("live caller data %s", got.data)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
	if _, ok, _ := store.Get(context.Background(), "library_kit_pcr_1"); !ok {
		t.Fatalf("aggregate not stored after cancelled first caller")
	}
}
