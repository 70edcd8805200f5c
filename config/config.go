package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"route-weather/providers"
)

const (
	defaultForecastURL  = "https://api.openweathermap.org/data/2.5/forecast"
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type Config struct {
	OpenWeatherAPIKey string
	ForecastURL       string
	GeocodingURL      string
	GeocodingLanguage string
	HTTPTimeout       int // секунды
	HTTPRetries       int
	ServerPort        string
	MapZoom           int
	LogLevel          string
}

func Load() (*Config, error) {
	// Загружаем .env файл если существует
	godotenv.Load()

	config := &Config{
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		ForecastURL:       getEnv("FORECAST_URL", defaultForecastURL),
		GeocodingURL:      getEnv("GEOCODING_URL", defaultGeocodingURL),
		GeocodingLanguage: getEnv("GEOCODING_LANGUAGE", "ru"),
		HTTPTimeout:       getEnvAsInt("HTTP_TIMEOUT", 5),
		HTTPRetries:       getEnvAsInt("HTTP_RETRIES", 5),
		ServerPort:        getEnv("SERVER_PORT", "8050"),
		MapZoom:           getEnvAsInt("MAP_ZOOM", 5),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if config.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("не задан API ключ OpenWeather (OPENWEATHER_API_KEY)")
	}
	if config.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT должен быть положительным, получено %d", config.HTTPTimeout)
	}
	if config.HTTPRetries < 0 {
		return nil, fmt.Errorf("HTTP_RETRIES не может быть отрицательным, получено %d", config.HTTPRetries)
	}

	return config, nil
}

// GeocodingClient возвращает настройки клиента геокодера
func (c *Config) GeocodingClient() providers.ClientConfig {
	return providers.ClientConfig{
		BaseURL:  c.GeocodingURL,
		Language: c.GeocodingLanguage,
		Timeout:  time.Duration(c.HTTPTimeout) * time.Second,
		Retries:  c.HTTPRetries,
	}
}

// ForecastClient возвращает настройки клиента прогноза
func (c *Config) ForecastClient() providers.ClientConfig {
	return providers.ClientConfig{
		BaseURL: c.ForecastURL,
		APIKey:  c.OpenWeatherAPIKey,
		Timeout: time.Duration(c.HTTPTimeout) * time.Second,
		Retries: c.HTTPRetries,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
