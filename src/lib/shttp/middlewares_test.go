package shttp_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stormkit-io/fnmanagement/src/lib/shttp"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/limiter"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/shttptest"
	"github.com/stretchr/testify/suite"
)

type MiddlewaresSuite struct {
	suite.Suite
}

func (s *MiddlewaresSuite) Test_WithRateLimit() {
	handler := func(req *shttp.RequestContext) *shttp.Response {
		return shttp.OK()
	}

	opt := &limiter.Options{Limit: 1, Duration: time.Second, Burst: 5}
	mdw := shttp.WithRateLimit(handler, opt)
	req := &shttp.RequestContext{
		Request: &http.Request{
			RemoteAddr: "8.8.8.8",
			URL:        &url.URL{Path: "my-path"},
		},
	}

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req.SetWriter(rec)
		res := mdw(req)

		if i < opt.Burst {
			s.Equal(http.StatusOK, res.Status)
			s.Equal("1/1s", rec.Header().Get("X-RateLimit-Limit"))
			s.NotEmpty(rec.Header().Get("X-RateLimit-Remaining"))

			if i == 0 {
				s.Equal("4", rec.Header().Get("X-RateLimit-Remaining"))
			}
		} else {
			s.Equal(http.StatusTooManyRequests, res.Status)
			s.Equal("1/1s", res.Headers.Get("X-RateLimit-Limit"))
			s.Equal("0", res.Headers.Get("X-RateLimit-Remaining"))
			s.Equal("1", res.Headers.Get("Retry-After"))
		}
	}
}

func (s *MiddlewaresSuite) Test_WithRateLimit_SeparatesVisitors() {
	handler := func(req *shttp.RequestContext) *shttp.Response {
		return shttp.OK()
	}

	mdw := shttp.WithRateLimit(handler, &limiter.Options{Limit: 1, Duration: time.Minute, Burst: 1, Hash: []string{"ip"}})

	newReq := func(ip string) *shttp.RequestContext {
		return shttp.NewRequestContext(&http.Request{RemoteAddr: ip, URL: &url.URL{Path: "/"}})
	}

	s.Equal(http.StatusOK, mdw(newReq("1.1.1.1")).Status)
	s.Equal(http.StatusTooManyRequests, mdw(newReq("1.1.1.1")).Status)
	s.Equal(http.StatusOK, mdw(newReq("2.2.2.2")).Status)
}

func (s *MiddlewaresSuite) Test_WithRateLimit_Concurrent() {
	handler := func(req *shttp.RequestContext) *shttp.Response {
		return shttp.OK()
	}

	opt := &limiter.Options{Limit: 10, Duration: time.Minute, Burst: 10}
	mdw := shttp.WithRateLimit(handler, opt)

	var wg sync.WaitGroup
	var allowed atomic.Int64

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req := shttp.NewRequestContext(httptest.NewRequest(shttp.MethodPost, "/function/environment-variables", nil))
			req.SetWriter(httptest.NewRecorder())

			if res := mdw(req); res.Status == http.StatusOK {
				allowed.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int64(opt.Burst), allowed.Load())
}

func (s *MiddlewaresSuite) Test_RequestID() {
	r := shttp.NewRouter()
	r.NewService().NewEndpoint("/id").Handler(shttp.MethodGet, "", func(req *shttp.RequestContext) *shttp.Response {
		return &shttp.Response{Data: req.RequestID()}
	})

	r.WithRequestID()

	res := shttptest.Request(r.Handler(), shttp.MethodGet, "/id", nil)
	s.Equal(http.StatusOK, res.Code)
	s.NotEmpty(res.Header().Get(shttp.HeaderRequestID))
	s.Equal(res.Header().Get(shttp.HeaderRequestID), res.String())

	res = shttptest.RequestWithHeaders(r.Handler(), shttp.MethodGet, "/id", nil, map[string]string{
		shttp.HeaderRequestID: "abc-123",
	})

	s.Equal("abc-123", res.String())
	s.Equal("abc-123", res.Header().Get(shttp.HeaderRequestID))
}

func TestMiddlewares(t *testing.T) {
	suite.Run(t, &MiddlewaresSuite{})
}
