package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/nrkcat/nrkcat/internal/cache"
)

const testOrigin = "https://tv.example"

var errMissing = errors.New("404")

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	json  map[string]string
	errs  map[string]error
	calls map[string]int
	total int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]string),
		json:  make(map[string]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) record(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[url]++
	f.total++
	return f.errs[url]
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if err := f.record(url); err != nil {
		return nil, err
	}

	body, ok := f.pages[url]
	if !ok {
		return nil, errMissing
	}
	return []byte(body), nil
}

func (f *fakeFetcher) FetchJSON(_ context.Context, url string, v any) (bool, error) {
	if err := f.record(url); err != nil {
		return false, err
	}

	body, ok := f.json[url]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(body), v)
}

func (f *fakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func newTestCatalogue(f Fetcher, store cache.Store, opts ...Option) *Catalogue {
	opts = append([]Option{WithOrigin(testOrigin), WithAPIOrigin(testOrigin)}, opts...)
	return New(f, cache.New(store), opts...)
}
