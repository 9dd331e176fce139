package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/config"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/logo"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/models"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/service"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/weather"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		db       *gorm.DB
		auth     *service.Auth
		catalog  *service.Catalog
		importer *service.Importer
		weather  *weather.Service
		logos    *logo.Store
		logger   *zap.SugaredLogger
	}
)

// openPaths are reachable without an x-token header: login flows,
// health checks, the search redirect, the weather proxy, the visit
// counter (a guest start page fires it too) and the uploaded logo
// files the public start page embeds.
var openPaths = map[string]bool{
	"/auth/register":  true,
	"/auth/login":     true,
	"/ping":           true,
	"/search":         true,
	"/weather":        true,
	"/site/:id/visit": true,
}

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	gdb *gorm.DB,
	auth *service.Auth,
	catalog *service.Catalog,
	importer *service.Importer,
	weatherSvc *weather.Service,
	logos *logo.Store,
	logger *zap.SugaredLogger,
) *HTTPServer {
	e := echo.New()

	instance := HTTPServer{
		db:       gdb,
		auth:     auth,
		catalog:  catalog,
		importer: importer,
		weather:  weatherSvc,
		logos:    logos,
		logger:   logger,
	}

	e.POST("/auth/register", instance.Register)
	e.POST("/auth/login", instance.Login)

	categoryG := e.Group("/category")
	categoryG.GET("", instance.CategoryList)
	categoryG.POST("", instance.CategoryCreate)
	categoryG.PATCH("/:id", instance.CategoryUpdate)
	categoryG.DELETE("/:id", instance.CategoryDelete)
	categoryG.PUT("/reorder", instance.CategoryReorder)

	siteG := e.Group("/site")
	siteG.GET("", instance.SiteList)
	siteG.GET("/top", instance.SiteTop)
	siteG.POST("", instance.SiteCreate)
	siteG.PATCH("/:id", instance.SiteUpdate)
	siteG.DELETE("/:id", instance.SiteDelete)
	siteG.PUT("/reorder", instance.SiteReorder)
	siteG.POST("/:id/visit", instance.SiteVisit)

	e.GET("/settings", instance.SettingsGet)
	e.PUT("/settings", instance.SettingsSave)

	e.GET("/export", instance.Export)
	e.POST("/import", instance.ImportFull)
	e.POST("/import/bookmarks", instance.ImportBookmarks)

	e.GET("/search", instance.Search)
	e.GET("/weather", instance.Weather)
	e.POST("/logo", instance.LogoUpload)
	e.Static("/uploads", logos.Dir())

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Path(), "/auth/")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			logger.Debugf("auth request %s body: %s", c.Path(), censorBody(reqBody))
		},
	}))

	e.Use(instance.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

func (s *HTTPServer) Register(c echo.Context) error {
	u := models.UserReq{}
	if err := BindAndValidate(c, &u); err != nil {
		return err
	}

	token, err := s.auth.Register(u.Email, u.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &models.TokenResp{Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	u := models.UserReq{}
	if err := BindAndValidate(c, &u); err != nil {
		return err
	}

	token, err := s.auth.Login(u.Email, u.Password)
	if err != nil {
		if err == service.ErrLoginUserNotFound || err == service.ErrLoginPasswordDoesNotMatch {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, &models.TokenResp{Token: token})
}

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if openPaths[c.Path()] || strings.HasPrefix(c.Path(), "/uploads") {
			// Open paths still attach the user when a valid token is
			// sent, so handlers can tell guests from logged-in users.
			if token := tokenFromHeader(c); token != "" {
				user := db.User{}
				if res := s.db.Where("token = ?", token).First(&user); res.Error == nil {
					c.Set("user", &user)
				}
			}
			return next(c)
		}
		token := tokenFromHeader(c)
		if token == "" {
			return c.NoContent(http.StatusUnauthorized)
		}
		user := db.User{}
		res := s.db.Where("token = ?", token).First(&user)
		if res.Error != nil {
			c.Logger().Error(errors.Wrap(res.Error, "find user in db"))
			return c.NoContent(http.StatusUnauthorized)
		}

		c.Set("user", &user)
		return next(c)
	}
}

func tokenFromHeader(c echo.Context) string {
	for key, values := range c.Request().Header {
		if strings.ToLower(key) == "x-token" {
			return values[0]
		}
	}
	return ""
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, _ := c.Get("user").(*db.User)
	if user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}
