package sequence

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCounter(t *testing.T) *Counter {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCounter(client)
}

func TestNextIsSequential(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := counter.Next(ctx, "appointmentId")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != strconv.Itoa(want) {
			t.Fatalf("expected %d, got %s", want, got)
		}
	}
}

func TestNextIndependentSequences(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	if _, err := counter.Next(ctx, "appointmentId"); err != nil {
		t.Fatal(err)
	}
	got, err := counter.Next(ctx, "ticketId")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Fatalf("sequences must not share state, got %s", got)
	}
}

func TestNextConcurrentNoDuplicates(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(slot int) {
			defer wg.Done()
			id, err := counter.Next(ctx, "appointmentId")
			if err != nil {
				t.Errorf("next: %v", err)
				return
			}
			ids[slot] = id
		}(i)
	}
	wg.Wait()

	sort.Strings(ids)
	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id issued: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestCurrent(t *testing.T) {
	counter := newTestCounter(t)
	ctx := context.Background()

	current, err := counter.Current(ctx, "ticketId")
	if err != nil {
		t.Fatal(err)
	}
	if current != 0 {
		t.Fatalf("expected 0 before first use, got %d", current)
	}

	if _, err := counter.Next(ctx, "ticketId"); err != nil {
		t.Fatal(err)
	}
	current, err = counter.Current(ctx, "ticketId")
	if err != nil {
		t.Fatal(err)
	}
	if current != 1 {
		t.Fatalf("expected 1, got %d", current)
	}
}
