package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/nftmeta/base/ctx"
)

func TestAddContext(t *testing.T) {
	e := echo.New()
	m := InitMiddleware()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

	var got ctx.Ctx
	err := m.AddContext()(func(c echo.Context) error {
		got = c.Get("ctx").(ctx.Ctx)
		return nil
	})(c)
	require.NoError(t, err)
	require.Equal(t, "req-1", got.Value("requestID"))
}

func TestIsTokenUri(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	tests := []struct {
		target string
		want   int
	}{
		{"/?uri=ipfs://QmHash/1", http.StatusNoContent},
		{"/?uri=https://example.com/1.json", http.StatusNoContent},
		{"/?uri=ftp://example.com/1.json", http.StatusBadRequest},
		{"/", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), rec)
		require.NoError(t, IsTokenUri("uri")(ok)(c))
		require.Equal(t, tt.want, rec.Code, tt.target)
	}
}

func TestIsValidAddress(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	for addr, want := range map[string]int{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed": http.StatusNoContent,
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed": http.StatusNoContent,
		"abc": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("contract")
		c.SetParamValues(addr)
		require.NoError(t, IsValidAddress("contract")(ok)(c))
		require.Equal(t, want, rec.Code, addr)
	}
}
