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

type OpenWeatherProvider struct {
	apiKey  string
	client  *retryablehttp.Client
	baseURL string
	logger  *zap.SugaredLogger
}

func NewOpenWeatherProvider(cfg ClientConfig, logger *zap.SugaredLogger) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  cfg.APIKey,
		client:  newHTTPClient(cfg, logger),
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return "OpenWeatherMap"
}

func (p *OpenWeatherProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// GetForecast возвращает трехчасовой прогноз на все доступные дни.
// Ошибки логируются, вызывающий получает пустой прогноз.
func (p *OpenWeatherProvider) GetForecast(ctx context.Context, city string) []models.ForecastSample {
	samples, err := p.fetchForecast(ctx, city)
	if err != nil {
		p.logger.Warnw("ошибка получения данных",
			"provider", p.Name(),
			"city", city,
			"error", err,
		)
		return []models.ForecastSample{}
	}
	return samples
}

func (p *OpenWeatherProvider) fetchForecast(ctx context.Context, city string) ([]models.ForecastSample, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("провайдер %s не настроен", p.Name())
	}

	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("некорректный адрес сервиса: %w", err)
	}

	// Формируем запрос, сохраняя параметры из базового адреса
	query := u.Query()
	query.Set("q", city)
	query.Set("appid", p.apiKey)
	query.Set("units", "metric") // метрическая система
	u.RawQuery = query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка HTTP запроса: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("город не найден")
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("неверный API ключ")
		}
		return nil, fmt.Errorf("ошибка API: статус %d", resp.StatusCode)
	}

	// Парсим ответ
	var result struct {
		List *[]struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Rain *struct {
				ThreeHours float64 `json:"3h"`
			} `json:"rain,omitempty"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON: %w", err)
	}

	if result.List == nil {
		return nil, fmt.Errorf("в ответе нет списка прогнозов")
	}

	samples := make([]models.ForecastSample, 0, len(*result.List))
	for _, item := range *result.List {
		sample := models.ForecastSample{
			Timestamp:   item.DtTxt,
			Temperature: item.Main.Temp,
			WindSpeed:   item.Wind.Speed,
		}
		// Осадков нет, если поле rain отсутствует
		if item.Rain != nil {
			sample.Precipitation = item.Rain.ThreeHours
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
