package models

import (
	"fmt"
	"strings"
)

// SamplesPerDay число трехчасовых интервалов прогноза в сутках
const SamplesPerDay = 8

// RoutePoint точка маршрута в том виде, как ее ввел пользователь
type RoutePoint string

// Coordinate географические координаты точки
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastSample один трехчасовой интервал прогноза
type ForecastSample struct {
	Timestamp     string  `json:"timestamp"`
	Temperature   float64 `json:"temperature"`   // в градусах Цельсия
	WindSpeed     float64 `json:"wind_speed"`    // м/с
	Precipitation float64 `json:"precipitation"` // мм за 3 часа
}

// ResolvedStop точка маршрута, для которой получены и координаты, и прогноз
type ResolvedStop struct {
	Name       string           `json:"name"`
	Coordinate Coordinate       `json:"coordinate"`
	Forecast   []ForecastSample `json:"forecast"`
}

// DisplayParameter отображаемый параметр прогноза
type DisplayParameter string

const (
	ParamTemperature   DisplayParameter = "temp"
	ParamWindSpeed     DisplayParameter = "wind"
	ParamPrecipitation DisplayParameter = "rain"
)

// DisplayParameters все параметры в порядке отображения в форме
var DisplayParameters = []DisplayParameter{ParamTemperature, ParamWindSpeed, ParamPrecipitation}

// Valid сообщает, входит ли параметр в известный набор
func (p DisplayParameter) Valid() bool {
	switch p {
	case ParamTemperature, ParamWindSpeed, ParamPrecipitation:
		return true
	}
	return false
}

// Name имя серии на графике
func (p DisplayParameter) Name() string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Label подпись параметра в форме
func (p DisplayParameter) Label() string {
	switch p {
	case ParamTemperature:
		return "Температура"
	case ParamWindSpeed:
		return "Скорость ветра"
	case ParamPrecipitation:
		return "Осадки"
	}
	return string(p)
}

// Unit единица измерения параметра
func (p DisplayParameter) Unit() string {
	switch p {
	case ParamTemperature:
		return "°C"
	case ParamWindSpeed:
		return "м/с"
	case ParamPrecipitation:
		return "мм"
	}
	return ""
}

// Value извлекает значение параметра из интервала прогноза
func (p DisplayParameter) Value(s ForecastSample) (float64, bool) {
	switch p {
	case ParamTemperature:
		return s.Temperature, true
	case ParamWindSpeed:
		return s.WindSpeed, true
	case ParamPrecipitation:
		return s.Precipitation, true
	}
	return 0, false
}

// Horizon горизонт прогноза в днях
type Horizon int

const (
	HorizonOneDay    Horizon = 1
	HorizonThreeDays Horizon = 3
	HorizonFiveDays  Horizon = 5
)

// Horizons допустимые горизонты
var Horizons = []Horizon{HorizonOneDay, HorizonThreeDays, HorizonFiveDays}

// ParseHorizon разбирает горизонт из строки формы
func ParseHorizon(s string) (Horizon, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return HorizonOneDay, nil
	case "3":
		return HorizonThreeDays, nil
	case "5":
		return HorizonFiveDays, nil
	}
	return 0, fmt.Errorf("недопустимый горизонт прогноза: %q (ожидается 1, 3 или 5)", s)
}

// Samples число интервалов прогноза, покрывающее горизонт
func (h Horizon) Samples() int {
	return SamplesPerDay * int(h)
}

// Label подпись горизонта в форме
func (h Horizon) Label() string {
	switch h {
	case HorizonOneDay:
		return "1 день"
	case HorizonFiveDays:
		return "5 дней"
	default:
		return fmt.Sprintf("%d дня", int(h))
	}
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
