package weather

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/config"
)

var ErrNoProvider = errors.New("no weather provider configured")

// Data is what the start page renders for current conditions.
type Data struct {
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	UpdateTime  string `json:"updateTime"`
}

// Provider is one upstream weather API.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (*Data, error)
}

// Service tries each configured provider in order and caches the first
// answer for a while, since the start page refetches on every load.
type Service struct {
	providers []Provider
	cache     *Cache
	logger    *zap.SugaredLogger
}

const cacheTTL = 30 * time.Minute

func NewService(cfg *config.Config, logger *zap.SugaredLogger) *Service {
	client := resty.New().SetTimeout(10 * time.Second)

	providers := make([]Provider, 0, 3)
	if cfg.QWeatherKey != "" {
		providers = append(providers, &QWeather{key: cfg.QWeatherKey, client: client})
	}
	if cfg.OpenWeatherKey != "" {
		providers = append(providers, &OpenWeather{key: cfg.OpenWeatherKey, client: client})
	}
	if cfg.SeniverseKey != "" {
		providers = append(providers, &Seniverse{key: cfg.SeniverseKey, client: client})
	}

	return &Service{
		providers: providers,
		cache:     NewCache(cacheTTL, time.Now),
		logger:    logger,
	}
}

// Get resolves current weather for a city, serving from cache when the
// last answer is still fresh.
func (s *Service) Get(ctx context.Context, city string) (*Data, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProvider
	}

	for _, p := range s.providers {
		key := p.Name() + "-" + city
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}

		data, err := p.Fetch(ctx, city)
		if err != nil {
			s.logger.Warnf("weather provider %s failed for %q: %v", p.Name(), city, err)
			continue
		}
		s.cache.Set(key, data)
		return data, nil
	}

	return nil, errors.Errorf("all weather providers failed for %q", city)
}

////////

type QWeather struct {
	key    string
	client *resty.Client
}

func (p *QWeather) Name() string { return "qweather" }

func (p *QWeather) Fetch(ctx context.Context, city string) (*Data, error) {
	body := struct {
		Code string `json:"code"`
		Now  struct {
			Temp    string `json:"temp"`
			Text    string `json:"text"`
			Icon    string `json:"icon"`
			ObsTime string `json:"obsTime"`
		} `json:"now"`
	}{}

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("https://devapi.qweather.com/v7/weather/now?location=%s&key=%s&lang=zh",
			url.QueryEscape(city), p.key))
	if err != nil {
		return nil, errors.Wrap(err, "qweather request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("qweather status %d", resp.StatusCode())
	}
	if body.Code != "200" {
		return nil, errors.Errorf("qweather returned code %s", body.Code)
	}

	return &Data{
		Temperature: body.Now.Temp + "°C",
		Condition:   body.Now.Text,
		Icon:        body.Now.Icon,
		UpdateTime:  body.Now.ObsTime,
	}, nil
}

type OpenWeather struct {
	key    string
	client *resty.Client
}

func (p *OpenWeather) Name() string { return "openweather" }

func (p *OpenWeather) Fetch(ctx context.Context, city string) (*Data, error) {
	body := struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Dt int64 `json:"dt"`
	}{}

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("https://api.openweathermap.org/data/2.5/weather?q=%s,CN&appid=%s&units=metric&lang=zh_cn",
			url.QueryEscape(city), p.key))
	if err != nil {
		return nil, errors.Wrap(err, "openweather request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("openweather status %d", resp.StatusCode())
	}
	if len(body.Weather) == 0 {
		return nil, errors.New("openweather returned no conditions")
	}

	return &Data{
		Temperature: fmt.Sprintf("%d°C", int(math.Round(body.Main.Temp))),
		Condition:   body.Weather[0].Description,
		Icon:        body.Weather[0].Icon,
		UpdateTime:  time.Unix(body.Dt, 0).UTC().Format(time.RFC3339),
	}, nil
}

type Seniverse struct {
	key    string
	client *resty.Client
}

func (p *Seniverse) Name() string { return "seniverse" }

func (p *Seniverse) Fetch(ctx context.Context, city string) (*Data, error) {
	body := struct {
		Results []struct {
			Now struct {
				Temperature string `json:"temperature"`
				Text        string `json:"text"`
				Code        string `json:"code"`
			} `json:"now"`
			LastUpdate string `json:"last_update"`
		} `json:"results"`
	}{}

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("https://api.seniverse.com/v3/weather/now.json?key=%s&location=%s&language=zh-Hans&unit=c",
			p.key, url.QueryEscape(city)))
	if err != nil {
		return nil, errors.Wrap(err, "seniverse request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("seniverse status %d", resp.StatusCode())
	}
	if len(body.Results) == 0 {
		return nil, errors.New("seniverse returned no results")
	}

	r := body.Results[0]
	return &Data{
		Temperature: r.Now.Temperature + "°C",
		Condition:   r.Now.Text,
		Icon:        r.Now.Code,
		UpdateTime:  r.LastUpdate,
	}, nil
}
