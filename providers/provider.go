package providers

import (
	"context"

	"route-weather/models"
)

// Geocoder определяет координаты точки маршрута по названию
type Geocoder interface {
	Name() string
	// GetCoordinates возвращает *NotFoundError, если место не найдено,
	// и *ConnectionError при сбое обращения к сервису.
	GetCoordinates(ctx context.Context, place string) (models.Coordinate, error)
}

// ForecastProvider интерфейс для погодных провайдеров
type ForecastProvider interface {
	Name() string
	// GetForecast никогда не возвращает ошибку: при любом сбое прогноз пустой.
	GetForecast(ctx context.Context, place string) []models.ForecastSample
	IsAvailable() bool
}
