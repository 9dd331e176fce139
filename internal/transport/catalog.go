package transport

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/models"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/service"
)

func (s *HTTPServer) CategoryList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	categories, err := s.catalog.CategoryList(user)
	if err != nil {
		return err
	}

	resp := make([]models.CategoryResp, len(categories))
	for i := range categories {
		resp[i] = categoryResp(&categories[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CategoryCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.CategoryReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model, err := s.catalog.CategoryCreate(user, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryResp(model))
}

func (s *HTTPServer) CategoryUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.CategoryReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model, err := s.catalog.CategoryUpdate(user, id, req.Name)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, categoryResp(model))
}

func (s *HTTPServer) CategoryDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.catalog.CategoryDelete(user, id); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) CategoryReorder(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.ReorderReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.catalog.CategoryReorder(user, req.IDs); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) SiteList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	var categoryID *uint64
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'category_id'")
		}
		categoryID = &id
	}

	sites, err := s.catalog.SiteList(user, categoryID)
	if err != nil {
		return err
	}

	resp := make([]models.SiteResp, len(sites))
	for i := range sites {
		resp[i] = siteResp(&sites[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) SiteTop(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	limit := uint64(10)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid query param 'limit'")
		}
		limit = parsed
	}

	sites, err := s.catalog.TopSites(user, limit)
	if err != nil {
		return err
	}

	resp := make([]models.SiteResp, len(sites))
	for i := range sites {
		resp[i] = siteResp(&sites[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) SiteCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.SiteReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model, err := s.catalog.SiteCreate(user, req.CategoryID, req.Name, req.URL, req.Logo)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, siteResp(model))
}

func (s *HTTPServer) SiteUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.SiteUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model, err := s.catalog.SiteUpdate(user, id, req.Name, req.URL, req.Logo)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, siteResp(model))
}

func (s *HTTPServer) SiteDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.catalog.SiteDelete(user, id); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) SiteReorder(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.SiteReorderReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.catalog.SiteReorder(user, req.CategoryID, req.IDs); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SiteVisit counts one open of a site. The start page is public, so
// guests hit this endpoint too; without a user there is nothing to
// count and the call is a silent no-op.
func (s *HTTPServer) SiteVisit(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	if err := s.catalog.SiteVisit(user, id); err != nil {
		return mapServiceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) SettingsGet(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	settings, err := s.catalog.SettingsGet(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResp(settings))
}

func (s *HTTPServer) SettingsSave(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.SettingsReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := s.catalog.SettingsSave(user, db.Settings{
		SiteTitle:           req.SiteTitle,
		LogoType:            req.LogoType,
		LogoContent:         req.LogoContent,
		DefaultSearchEngine: req.DefaultSearchEngine,
		City:                req.City,
		Temperature:         req.Temperature,
		WeatherCondition:    req.WeatherCondition,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResp(settings))
}

////////

func categoryResp(m *db.Category) models.CategoryResp {
	return models.CategoryResp{
		ID:         m.ID,
		Name:       m.Name,
		OrderIndex: m.OrderIndex,
	}
}

func siteResp(m *db.Site) models.SiteResp {
	return models.SiteResp{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		URL:        m.URL,
		Logo:       m.Logo,
		Visits:     m.Visits,
		OrderIndex: m.OrderIndex,
	}
}

func settingsResp(m *db.Settings) models.SettingsResp {
	return models.SettingsResp{
		SiteTitle:           m.SiteTitle,
		LogoType:            m.LogoType,
		LogoContent:         m.LogoContent,
		DefaultSearchEngine: m.DefaultSearchEngine,
		City:                m.City,
		Temperature:         m.Temperature,
		WeatherCondition:    m.WeatherCondition,
	}
}

func mapServiceError(err error) error {
	switch err {
	case service.ErrNotOwned, service.ErrCategoryNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case service.ErrReorderMismatch:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
