package aws

import (
	"context"
	"errors"
	"testing"
)

type fakePages struct {
	pages [][]string
	index int
	err   error
	errAt int
}

func (f *fakePages) hasMore() bool {
	return f.index < len(f.pages)
}

func (f *fakePages) next(ctx context.Context) ([]string, error) {
	if f.err != nil && f.index == f.errAt {
		return nil, f.err
	}
	if f.index >= len(f.pages) {
		return nil, errors.New("no more pages")
	}
	page := f.pages[f.index]
	f.index++
	return page, nil
}

func identity(page []string) []string {
	return page
}

func TestCollectPages_MultiplePages(t *testing.T) {
	f := &fakePages{pages: [][]string{{"vpce-1", "vpce-2"}, {"vpce-3"}, {}}}

	result, err := CollectPages(context.Background(), f.hasMore, f.next, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"vpce-1", "vpce-2", "vpce-3"}
	if len(result) != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), len(result))
	}
	for i, v := range expected {
		if result[i] != v {
			t.Errorf("expected result[%d] = %s, got %s", i, v, result[i])
		}
	}
}

func TestCollectPages_NoPages(t *testing.T) {
	f := &fakePages{}

	result, err := CollectPages(context.Background(), f.hasMore, f.next, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected 0 items, got %d", len(result))
	}
}

func TestCollectPages_Error(t *testing.T) {
	expectedErr := errors.New("throttled")
	f := &fakePages{pages: [][]string{{"a"}, {"b"}}, err: expectedErr, errAt: 1}

	_, err := CollectPages(context.Background(), f.hasMore, f.next, identity)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestCollectPages_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakePages{pages: [][]string{{"a"}}}

	_, err := CollectPages(ctx, f.hasMore, f.next, identity)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if f.index != 0 {
		t.Errorf("expected no page to be fetched, got %d", f.index)
	}
}
