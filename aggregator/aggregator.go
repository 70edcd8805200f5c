package aggregator

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"route-weather/models"
	"route-weather/providers"
)

type Aggregator struct {
	geocoder providers.Geocoder
	forecast providers.ForecastProvider
	logger   *zap.SugaredLogger
}

func NewAggregator(geocoder providers.Geocoder, forecast providers.ForecastProvider, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		geocoder: geocoder,
		forecast: forecast,
		logger:   logger,
	}
}

// BuildRoute получает координаты и прогноз для каждой точки маршрута по порядку.
// Точки без координат или без прогноза пропускаются, порядок остальных сохраняется.
func (a *Aggregator) BuildRoute(ctx context.Context, route []models.RoutePoint, horizon models.Horizon) []models.ResolvedStop {
	stops := make([]models.ResolvedStop, 0, len(route))
	limit := horizon.Samples()

	for _, point := range route {
		city := strings.TrimSpace(string(point))
		if city == "" {
			continue
		}

		coord, err := a.geocoder.GetCoordinates(ctx, city)
		if err != nil {
			var notFound *providers.NotFoundError
			if errors.As(err, &notFound) {
				a.logger.Infow("точка маршрута не найдена, пропускаем", "city", city)
			} else {
				a.logger.Warnw("не удалось получить координаты, пропускаем", "city", city, "error", err)
			}
			continue
		}

		forecasts := a.forecast.GetForecast(ctx, city)
		if len(forecasts) > limit {
			forecasts = forecasts[:limit]
		}
		if len(forecasts) == 0 {
			a.logger.Infow("нет прогноза для точки, пропускаем", "city", city)
			continue
		}

		stops = append(stops, models.ResolvedStop{
			Name:       city,
			Coordinate: coord,
			Forecast:   forecasts,
		})
	}

	a.logger.Debugw("маршрут собран", "requested", len(route), "resolved", len(stops), "horizon", int(horizon))

	return stops
}

// GetProvidersInfo возвращает информацию о провайдерах
func (a *Aggregator) GetProvidersInfo() []string {
	info := []string{a.geocoder.Name()}
	if a.forecast.IsAvailable() {
		info = append(info, a.forecast.Name())
	}
	return info
}
