package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/bookmarks"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/logo"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/models"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/service"
)

// searchEngineURLs mirrors the engines the start page offers.
var searchEngineURLs = map[string]string{
	"google": "https://www.google.com/search?q=",
	"baidu":  "https://www.baidu.com/s?wd=",
	"bing":   "https://www.bing.com/search?q=",
	"github": "https://github.com/search?q=",
}

func (s *HTTPServer) Export(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	doc, err := s.importer.Export(user)
	if err != nil {
		return err
	}
	b, err := doc.Marshal()
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, bookmarks.ExportFilename(doc.ExportDate)))
	return c.Blob(http.StatusOK, bookmarks.ExportMIME, b)
}

// ImportFull wipes the user's data and replays the uploaded export
// document. Destructive, so the client has to ask for it explicitly
// with confirm=true, mirroring the confirm dialog of the web UI.
func (s *HTTPServer) ImportFull(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}
	if c.QueryParam("confirm") != "true" {
		return echo.NewHTTPError(http.StatusBadRequest,
			"导入数据将覆盖当前所有数据，请使用 confirm=true 确认")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	doc, err := bookmarks.DecodeExportDocument(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := s.importer.ImportFull(user, doc)
	if err != nil {
		s.logger.Errorf("full import failed for user %d: %v", user.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError,
			"导入数据失败，更改已回滚，原有数据未受影响")
	}
	return c.JSON(http.StatusOK, models.ImportResp{
		Categories: result.Categories,
		Sites:      result.Sites,
	})
}

// ImportBookmarks merges a browser bookmark file into the existing
// categories. The caller names the format; content is never sniffed.
func (s *HTTPServer) ImportBookmarks(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	var doc *bookmarks.ParsedDocument
	switch c.QueryParam("format") {
	case "html":
		doc, err = bookmarks.ParseHTML(bytes.NewReader(body))
	case "json":
		doc, err = bookmarks.ParseJSON(body)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "query param 'format' must be html or json")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := s.importer.ImportBookmarks(user, doc)
	if err != nil {
		if result == nil {
			result = &service.ImportResult{}
		}
		s.logger.Errorf("bookmark import aborted for user %d: %v", user.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf(
			"导入中断：已写入 %d 个分类、%d 个网站，其余未导入，建议导出核对数据",
			result.Categories, result.Sites))
	}
	return c.JSON(http.StatusOK, models.ImportResp{
		Categories: result.Categories,
		Sites:      result.Sites,
	})
}

// Search redirects to the chosen engine's result page. Logged-in users
// fall back to their configured default engine, everyone else to
// google.
func (s *HTTPServer) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query param 'q'")
	}

	engine := strings.ToLower(c.QueryParam("engine"))
	if engine == "" {
		engine = s.defaultEngineFor(c)
	}
	base, ok := searchEngineURLs[engine]
	if !ok {
		base = searchEngineURLs["google"]
	}
	return c.Redirect(http.StatusFound, base+url.QueryEscape(q))
}

// defaultEngineFor resolves the user's configured engine when the
// request carries a valid token. Search stays open to guests, so a
// missing or stale token just means the google default.
func (s *HTTPServer) defaultEngineFor(c echo.Context) string {
	token := tokenFromHeader(c)
	if token == "" {
		return "google"
	}
	user := db.User{}
	if res := s.db.Where("token = ?", token).First(&user); res.Error != nil {
		return "google"
	}
	settings, err := s.catalog.SettingsGet(&user)
	if err != nil || settings.DefaultSearchEngine == "" {
		return "google"
	}
	return strings.ToLower(settings.DefaultSearchEngine)
}

func (s *HTTPServer) Weather(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No city provided")
	}

	data, err := s.weather.Get(c.Request().Context(), city)
	if err != nil {
		s.logger.Warnf("weather lookup failed for %q: %v", city, err)
		return echo.NewHTTPError(http.StatusBadGateway, "weather lookup failed")
	}
	return c.JSON(http.StatusOK, data)
}

func (s *HTTPServer) LogoUpload(c echo.Context) error {
	if _, err := GetUserFromContext(c); err != nil {
		return err
	}

	req := models.LogoUploadReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	publicURL, err := s.logos.Save(req.ImageData, req.FileName)
	if err != nil {
		switch {
		case errors.Is(err, logo.ErrNotDataURL),
			errors.Is(err, logo.ErrUnsupportedType),
			errors.Is(err, logo.ErrTooLarge):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, models.LogoUploadResp{PublicURL: publicURL})
}
