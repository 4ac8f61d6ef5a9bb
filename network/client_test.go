package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newServer(handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	return srv, &hits
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a healthy server", t, func() {
		srv, hits := newServer(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte("<html>ok</html>"))
		})
		defer srv.Close()

		client := NewClient(WithRetryDelay(time.Millisecond))

		Convey("Fetch returns the body", func() {
			body, err := client.Fetch(ctx, srv.URL+"/programmer")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "<html>ok</html>")
			So(hits.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a server answering 404", t, func() {
		srv, hits := newServer(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		defer srv.Close()

		client := NewClient(WithRetries(3), WithRetryDelay(time.Millisecond))

		Convey("The failure is permanent and not retried", func() {
			_, err := client.Fetch(ctx, srv.URL)
			So(err, ShouldNotBeNil)

			var fe *FetchError
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Status, ShouldEqual, http.StatusNotFound)
			So(fe.Retryable, ShouldBeFalse)
			So(hits.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a server that fails once with 503", t, func() {
		var failed atomic.Bool
		srv, hits := newServer(func(w http.ResponseWriter, r *http.Request) {
			if !failed.Swap(true) {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("recovered"))
		})
		defer srv.Close()

		client := NewClient(WithRetries(2), WithRetryDelay(time.Millisecond))

		Convey("The retry succeeds", func() {
			body, err := client.Fetch(ctx, srv.URL)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "recovered")
			So(hits.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given a server that always fails with 500", t, func() {
		srv, hits := newServer(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer srv.Close()

		client := NewClient(WithRetries(2), WithRetryDelay(time.Millisecond))

		Convey("Attempts stop after the retry budget", func() {
			_, err := client.Fetch(ctx, srv.URL)
			So(IsRetryable(err), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 3)
		})
	})

	Convey("Given a slow server", t, func() {
		srv, _ := newServer(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		})
		defer srv.Close()

		client := NewClient(WithTimeout(20*time.Millisecond), WithRetries(0))

		Convey("The attempt times out as a retryable failure", func() {
			_, err := client.Fetch(ctx, srv.URL)
			var fe *FetchError
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Cause, ShouldEqual, ErrCauseTimeout)
			So(fe.Retryable, ShouldBeTrue)
		})
	})
}

func TestFetchJSON(t *testing.T) {
	ctx := context.Background()

	Convey("Given a listing endpoint", t, func() {
		srv, _ := newServer(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/page/0":
				_, _ = w.Write([]byte(`{"data":{"title":"drama"}}`))
			case "/page/1":
				_, _ = w.Write([]byte("  \n"))
			case "/page/2":
				_, _ = w.Write([]byte("null"))
			case "/page/3":
				_, _ = w.Write([]byte("[]"))
			default:
				_, _ = w.Write([]byte("{not json"))
			}
		})
		defer srv.Close()

		client := NewClient(WithRetryDelay(time.Millisecond))

		Convey("A JSON body decodes", func() {
			var v struct {
				Data struct {
					Title string `json:"title"`
				} `json:"data"`
			}
			found, err := client.FetchJSON(ctx, srv.URL+"/page/0", &v)
			So(err, ShouldBeNil)
			So(found, ShouldBeTrue)
			So(v.Data.Title, ShouldEqual, "drama")
		})

		Convey("Empty documents are absent, not errors", func() {
			for _, path := range []string{"/page/1", "/page/2", "/page/3"} {
				var v map[string]any
				found, err := client.FetchJSON(ctx, srv.URL+path, &v)
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
			}
		})

		Convey("Malformed JSON is an error", func() {
			var v map[string]any
			_, err := client.FetchJSON(ctx, srv.URL+"/page/9", &v)
			var fe *FetchError
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Cause, ShouldEqual, ErrCauseDecode)
		})
	})
}

func TestFingerprintTransport(t *testing.T) {
	Convey("Given a plain http server", t, func() {
		srv, _ := newServer(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain"))
		})
		defer srv.Close()

		client := NewClient(WithTransport(NewFingerprintTransport()))

		Convey("Requests fall through to HTTP/1.1", func() {
			body, err := client.Fetch(context.Background(), srv.URL)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "plain")
		})
	})
}
