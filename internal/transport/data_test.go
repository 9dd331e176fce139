package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doSearch(t *testing.T, s *HTTPServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.Search(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSearchRedirectsToRequestedEngine(t *testing.T) {
	s := &HTTPServer{}

	rec := doSearch(t, s, "/search?q=golang&engine=baidu")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.baidu.com/s?wd=golang", rec.Header().Get(echo.HeaderLocation))
}

func TestSearchDefaultsToGoogleForGuests(t *testing.T) {
	s := &HTTPServer{}

	rec := doSearch(t, s, "/search?q=hello+world")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.google.com/search?q=hello+world", rec.Header().Get(echo.HeaderLocation))
}

func TestSearchUnknownEngineFallsBack(t *testing.T) {
	s := &HTTPServer{}

	rec := doSearch(t, s, "/search?q=x&engine=duckduckgo")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.google.com/search?q=x", rec.Header().Get(echo.HeaderLocation))
}

func TestSearchRequiresQuery(t *testing.T) {
	s := &HTTPServer{}

	rec := doSearch(t, s, "/search?engine=bing")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
