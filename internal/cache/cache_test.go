package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nrkcat/nrkcat/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGetSet(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		store := &MemoryStore{}
		clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
		c := New(store, WithClock(clk.now))

		Convey("Nothing is loaded before first use", func() {
			So(store.Loads, ShouldEqual, 0)
		})

		Convey("A missing key reports a miss", func() {
			v, ok := Get[string](c, "nope")
			So(ok, ShouldBeFalse)
			So(v, ShouldBeEmpty)
			So(store.Loads, ShouldEqual, 1)
		})

		Convey("A stored value is returned with a hit flag", func() {
			So(Set(c, "greeting", "hei", 0), ShouldBeNil)
			v, ok := Get[string](c, "greeting")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "hei")
		})

		Convey("An empty list is distinguishable from a miss", func() {
			So(Set(c, "shows-empty", []string{}, Day), ShouldBeNil)
			v, ok := Get[[]string](c, "shows-empty")
			So(ok, ShouldBeTrue)
			So(v, ShouldBeEmpty)
		})

		Convey("The store is loaded only once", func() {
			_, _ = Get[string](c, "a")
			_ = Set(c, "b", 1, 0)
			_, _ = Get[int](c, "b")
			So(store.Loads, ShouldEqual, 1)
		})

		Convey("A value that does not decode is a miss", func() {
			So(Set(c, "n", "not a number", 0), ShouldBeNil)
			_, ok := Get[int](c, "n")
			So(ok, ShouldBeFalse)
		})

		Convey("With a ttl", func() {
			So(Set(c, "k", 42, 10*time.Second), ShouldBeNil)

			Convey("The value is live before expiry", func() {
				clk.advance(9 * time.Second)
				v, ok := Get[int](c, "k")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 42)
			})

			Convey("The value is absent at expiry", func() {
				clk.advance(10 * time.Second)
				_, ok := Get[int](c, "k")
				So(ok, ShouldBeFalse)
			})

			Convey("The value is absent after expiry but not evicted", func() {
				clk.advance(10*time.Second + time.Millisecond)
				_, ok := Get[int](c, "k")
				So(ok, ShouldBeFalse)
				So(c.Stats().Expired, ShouldEqual, 1)
			})
		})

		Convey("Delete removes a key", func() {
			_ = Set(c, "k", 1, 0)
			c.Delete("k")
			_, ok := Get[int](c, "k")
			So(ok, ShouldBeFalse)
		})

		Convey("Keys lists live keys in order", func() {
			_ = Set(c, "b", 1, 0)
			_ = Set(c, "a", 1, 0)
			_ = Set(c, "old", 1, time.Second)
			clk.advance(time.Minute)
			So(c.Keys(), ShouldResemble, []string{"a", "b"})
		})

		Convey("Stats counts hits and misses", func() {
			_ = Set(c, "a", 1, 0)
			_, _ = Get[int](c, "a")
			_, _ = Get[int](c, "b")
			stats := c.Stats()
			So(stats.Hits, ShouldEqual, 1)
			So(stats.Misses, ShouldEqual, 1)
			So(stats.Entries, ShouldEqual, 1)
		})

		Convey("An undecodable value counts as a miss", func() {
			_ = Set(c, "a", "not a number", 0)
			_, ok := Get[int](c, "a")
			So(ok, ShouldBeFalse)
			stats := c.Stats()
			So(stats.Hits, ShouldEqual, 0)
			So(stats.Misses, ShouldEqual, 1)
		})
	})
}

func TestDisable(t *testing.T) {
	Convey("Given a cache holding a value", t, func() {
		store := &MemoryStore{}
		c := New(store)
		So(Set(c, "k", "v", 0), ShouldBeNil)

		Convey("When disabled", func() {
			c.Disable()

			Convey("Existing values are gone", func() {
				_, ok := Get[string](c, "k")
				So(ok, ShouldBeFalse)
			})

			Convey("Set is a no-op", func() {
				So(Set(c, "x", "y", 0), ShouldBeNil)
				v, ok := Get[string](c, "x")
				So(ok, ShouldBeFalse)
				So(v, ShouldBeEmpty)
			})

			Convey("Flush writes nothing", func() {
				So(c.Flush(), ShouldBeNil)
				So(store.Saves, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a cache built disabled", t, func() {
		store := &MemoryStore{}
		c := New(store, Disabled())

		Convey("The store is never read", func() {
			_ = Set(c, "k", "v", 0)
			_, ok := Get[string](c, "k")
			So(ok, ShouldBeFalse)
			So(store.Loads, ShouldEqual, 0)
		})
	})
}

func TestPersistence(t *testing.T) {
	Convey("Given a cache that was never used", t, func() {
		store := &MemoryStore{}
		c := New(store)

		Convey("Flush does not touch the store", func() {
			So(c.Flush(), ShouldBeNil)
			So(store.Saves, ShouldEqual, 0)
		})
	})

	Convey("Given a populated cache", t, func() {
		store := &MemoryStore{}
		clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
		c := New(store, WithClock(clk.now))
		So(Set(c, "categories", []string{"drama", "humor"}, 4*Week), ShouldBeNil)
		So(Set(c, "permanent", map[string]int{"a": 1}, 0), ShouldBeNil)
		So(Set(c, "short", "gone soon", time.Minute), ShouldBeNil)
		clk.advance(time.Hour)

		Convey("Close persists once", func() {
			So(c.Close(), ShouldBeNil)
			So(c.Close(), ShouldBeNil)
			So(store.Saves, ShouldEqual, 1)
		})

		Convey("A reloaded cache reproduces every unexpired entry", func() {
			So(c.Close(), ShouldBeNil)

			reloaded := New(store, WithClock(clk.now))
			cats, ok := Get[[]string](reloaded, "categories")
			So(ok, ShouldBeTrue)
			So(cats, ShouldResemble, []string{"drama", "humor"})

			perm, ok := Get[map[string]int](reloaded, "permanent")
			So(ok, ShouldBeTrue)
			So(perm, ShouldResemble, map[string]int{"a": 1})

			So(reloaded.Keys(), ShouldResemble, []string{"categories", "permanent"})
		})
	})

	Convey("Given a gache-backed store on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		path := "/cache/nrkcat/catalogue.json"

		c := New(NewGacheStore(path))
		So(Set(c, "shows-drama", []string{"/serie/skam"}, Day), ShouldBeNil)
		So(c.Close(), ShouldBeNil)

		Convey("The blob is written to disk", func() {
			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("A new process sees the same entries", func() {
			restarted := New(NewGacheStore(path))
			shows, ok := Get[[]string](restarted, "shows-drama")
			So(ok, ShouldBeTrue)
			So(shows, ShouldResemble, []string{"/serie/skam"})
		})

		Convey("A missing blob starts empty", func() {
			fresh := New(NewGacheStore("/cache/nrkcat/other.json"))
			So(fresh.Keys(), ShouldBeEmpty)
		})
	})
}

func TestRemember(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		c := New(&MemoryStore{})
		ctx := context.Background()
		var calls atomic.Int32

		load := func(context.Context) ([]string, error) {
			calls.Add(1)
			return []string{"a"}, nil
		}

		Convey("Load runs once within the ttl window", func() {
			first, err := Remember(ctx, c, "k", Day, load)
			So(err, ShouldBeNil)
			second, err := Remember(ctx, c, "k", Day, load)
			So(err, ShouldBeNil)
			So(first, ShouldResemble, second)
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("A failed load is not cached", func() {
			boom := errors.New("boom")
			_, err := Remember(ctx, c, "k", Day, func(context.Context) ([]string, error) {
				return nil, boom
			})
			So(errors.Is(err, boom), ShouldBeTrue)

			v, err := Remember(ctx, c, "k", Day, load)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"a"})
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("Concurrent misses share one load", func() {
			release := make(chan struct{})
			slow := func(context.Context) ([]string, error) {
				calls.Add(1)
				<-release
				return []string{"a"}, nil
			}

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = Remember(ctx, c, "k", Day, slow)
				}()
			}
			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("A cancelled caller does not fail the others waiting on the key", func() {
			started := make(chan struct{})
			release := make(chan struct{})
			slow := func(loadCtx context.Context) ([]string, error) {
				calls.Add(1)
				close(started)
				<-release
				return []string{"a"}, loadCtx.Err()
			}

			cancelled, cancel := context.WithCancel(ctx)
			firstErr := make(chan error, 1)
			go func() {
				_, err := Remember(cancelled, c, "k", Day, slow)
				firstErr <- err
			}()
			<-started

			second := make(chan []string, 1)
			go func() {
				v, _ := Remember(ctx, c, "k", Day, slow)
				second <- v
			}()
			time.Sleep(20 * time.Millisecond)

			cancel()
			So(<-firstErr, ShouldEqual, context.Canceled)

			close(release)
			So(<-second, ShouldResemble, []string{"a"})
			So(calls.Load(), ShouldEqual, 1)

			v, ok := Get[[]string](c, "k")
			So(ok, ShouldBeTrue)
			So(v, ShouldResemble, []string{"a"})
		})
	})
}
