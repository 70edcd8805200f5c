package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"route-weather/models"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Moscow&count=1&language=ru&format=json
type OpenMeteoGeocoder struct {
	client   *retryablehttp.Client
	baseURL  string
	language string
	logger   *zap.SugaredLogger
}

func NewOpenMeteoGeocoder(cfg ClientConfig, logger *zap.SugaredLogger) *OpenMeteoGeocoder {
	language := cfg.Language
	if language == "" {
		language = "ru"
	}
	return &OpenMeteoGeocoder{
		client:   newHTTPClient(cfg, logger),
		baseURL:  cfg.BaseURL,
		language: language,
		logger:   logger,
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return "Open-Meteo Geocoding"
}

func (g *OpenMeteoGeocoder) GetCoordinates(ctx context.Context, place string) (models.Coordinate, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return models.Coordinate{}, &ConnectionError{Place: place, Err: fmt.Errorf("некорректный адрес сервиса: %w", err)}
	}

	// Запрашиваем единственный лучший вариант
	q := u.Query()
	q.Set("name", place)
	q.Set("count", "1")
	q.Set("language", g.language)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Coordinate{}, &ConnectionError{Place: place, Err: fmt.Errorf("ошибка создания запроса: %w", err)}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return models.Coordinate{}, &ConnectionError{Place: place, Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Coordinate{}, &ConnectionError{
			Place: place,
			Err:   fmt.Errorf("статус %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result struct {
		Results []struct {
			Name      string   `json:"name"`
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Country   string   `json:"country"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Coordinate{}, &ConnectionError{Place: place, Err: fmt.Errorf("ошибка парсинга JSON: %w", err)}
	}

	if len(result.Results) == 0 {
		return models.Coordinate{}, &NotFoundError{Place: place}
	}

	best := result.Results[0]
	// Кандидат без координат нам бесполезен
	if best.Latitude == nil || best.Longitude == nil {
		return models.Coordinate{}, &NotFoundError{Place: place}
	}

	g.logger.Debugw("координаты найдены",
		"place", place,
		"match", best.Name,
		"country", best.Country,
		"latitude", *best.Latitude,
		"longitude", *best.Longitude,
	)

	return models.Coordinate{
		Latitude:  *best.Latitude,
		Longitude: *best.Longitude,
	}, nil
}
