package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"OPENWEATHER_API_KEY": "secret"},
			validate: func(t *testing.T, c *Config) {
				if c.ForecastURL != defaultForecastURL {
					t.Errorf("ForecastURL = %q, want %q", c.ForecastURL, defaultForecastURL)
				}
				if c.GeocodingURL != defaultGeocodingURL {
					t.Errorf("GeocodingURL = %q, want %q", c.GeocodingURL, defaultGeocodingURL)
				}
				if c.GeocodingLanguage != "ru" {
					t.Errorf("GeocodingLanguage = %q, want ru", c.GeocodingLanguage)
				}
				if c.HTTPTimeout != 5 || c.HTTPRetries != 5 {
					t.Errorf("timeout/retries = %d/%d, want 5/5", c.HTTPTimeout, c.HTTPRetries)
				}
				if c.ServerPort != "8050" {
					t.Errorf("ServerPort = %q, want 8050", c.ServerPort)
				}
				if c.MapZoom != 5 {
					t.Errorf("MapZoom = %d, want 5", c.MapZoom)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"OPENWEATHER_API_KEY": "secret",
				"HTTP_TIMEOUT":        "12",
				"HTTP_RETRIES":        "0",
				"SERVER_PORT":         "9000",
			},
			validate: func(t *testing.T, c *Config) {
				if c.HTTPTimeout != 12 {
					t.Errorf("HTTPTimeout = %d, want 12", c.HTTPTimeout)
				}
				if c.HTTPRetries != 0 {
					t.Errorf("HTTPRetries = %d, want 0", c.HTTPRetries)
				}
				if c.ServerPort != "9000" {
					t.Errorf("ServerPort = %q, want 9000", c.ServerPort)
				}
			},
		},
		{
			name: "bad integer falls back to default",
			env:  map[string]string{"OPENWEATHER_API_KEY": "secret", "MAP_ZOOM": "close"},
			validate: func(t *testing.T, c *Config) {
				if c.MapZoom != 5 {
					t.Errorf("MapZoom = %d, want 5", c.MapZoom)
				}
			},
		},
		{
			name:        "missing api key",
			env:         map[string]string{},
			wantErr:     true,
			errContains: "OPENWEATHER_API_KEY",
		},
		{
			name:        "non-positive timeout",
			env:         map[string]string{"OPENWEATHER_API_KEY": "secret", "HTTP_TIMEOUT": "-1"},
			wantErr:     true,
			errContains: "HTTP_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"OPENWEATHER_API_KEY", "FORECAST_URL", "GEOCODING_URL", "GEOCODING_LANGUAGE",
				"HTTP_TIMEOUT", "HTTP_RETRIES", "SERVER_PORT", "MAP_ZOOM", "LOG_LEVEL",
			} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Load() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			tt.validate(t, got)
		})
	}
}

func TestConfig_ClientConfigs(t *testing.T) {
	c := &Config{
		OpenWeatherAPIKey: "secret",
		ForecastURL:       "http://forecast",
		GeocodingURL:      "http://geo",
		GeocodingLanguage: "en",
		HTTPTimeout:       3,
		HTTPRetries:       2,
	}

	geo := c.GeocodingClient()
	if geo.BaseURL != "http://geo" || geo.Language != "en" || geo.APIKey != "" {
		t.Errorf("GeocodingClient() = %+v", geo)
	}
	if geo.Timeout != 3*time.Second || geo.Retries != 2 {
		t.Errorf("GeocodingClient() timeout/retries = %v/%d", geo.Timeout, geo.Retries)
	}

	fc := c.ForecastClient()
	if fc.BaseURL != "http://forecast" || fc.APIKey != "secret" {
		t.Errorf("ForecastClient() = %+v", fc)
	}
	if fc.Timeout != 3*time.Second || fc.Retries != 2 {
		t.Errorf("ForecastClient() timeout/retries = %v/%d", fc.Timeout, fc.Retries)
	}
}
