package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/config"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/db"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/logo"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/service"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/transport"
	"github.com/Rogue-Bear-Innovations/navigator-back/internal/weather"
)

func newLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func main() {
	app := fx.New(
		fx.Provide(
			newLogger,
			config.NewConfig,
			db.NewGormClient,
			logo.NewStore,
			weather.NewService,
			service.NewAuth,
			service.NewCatalog,
			service.NewImporter,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(server *transport.HTTPServer) {}),
	)

	app.Run()
}
