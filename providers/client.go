package providers

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"route-weather/logging"
)

// ClientConfig настройки обращения к внешнему сервису
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration // на одну попытку
	Retries  int
}

// NotFoundError место не найдено геокодером
type NotFoundError struct {
	Place string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("не удалось найти координаты для города: %s", e.Place)
}

// ConnectionError сбой обращения к сервису геокодирования
type ConnectionError struct {
	Place string
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("ошибка подключения к серверу (%s): %v", e.Place, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// newHTTPClient создает HTTP клиент с повторами и экспоненциальной задержкой
func newHTTPClient(cfg ClientConfig, logger *zap.SugaredLogger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 3 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = logging.LeveledLogger{L: logger.Named("http")}
	return client
}
