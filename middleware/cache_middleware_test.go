package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/service/cache/provider"
	"github.com/x-xyz/nftmeta/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	cache provider.Provider
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.cache = primitive.NewPrimitive("httpCacheMiddlewareTest", 1)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(e *echo.Echo, mw echo.MiddlewareFunc, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	s.NoError(mw(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	e := echo.New()
	mw := CacheHttp(s.cache, 30*time.Second)

	rec := s.serve(e, mw, "/metadata?uri=ipfs://a&b=1", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	// param order does not change the key
	rec = s.serve(e, mw, "/metadata?b=1&uri=ipfs://a", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, again")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
	s.Contains(rec.Header().Get(echo.HeaderContentType), "text/plain")
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	e := echo.New()
	mw := CacheHttp(s.cache, 30*time.Second)

	rec := s.serve(e, mw, "/fail", func(c echo.Context) error {
		return c.String(http.StatusBadGateway, "upstream down")
	})
	s.Equal(http.StatusBadGateway, rec.Code)

	rec = s.serve(e, mw, "/fail", func(c echo.Context) error {
		return c.String(http.StatusOK, "recovered")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("recovered", rec.Body.String())
}
