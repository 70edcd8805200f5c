package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"route-weather/aggregator"
	"route-weather/config"
	"route-weather/logging"
	"route-weather/models"
	"route-weather/providers"
	"route-weather/render"
	"route-weather/shell"
)

var (
	cfg    *config.Config
	agg    *aggregator.Aggregator
	logger *zap.SugaredLogger
)

func main() {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Ошибка настройки логирования: %v", err)
	}
	defer logger.Sync()

	// Создаем агрегатор маршрута
	agg = aggregator.NewAggregator(
		providers.NewOpenMeteoGeocoder(cfg.GeocodingClient(), logger.Named("geocoder")),
		providers.NewOpenWeatherProvider(cfg.ForecastClient(), logger.Named("forecast")),
		logger.Named("aggregator"),
	)

	// Создаем CLI команды
	var rootCmd = &cobra.Command{
		Use:   "route-weather",
		Short: "Маршрутный прогноз погоды",
		Long:  "Строит маршрут на карте и показывает прогноз погоды для каждой его точки",
	}

	// Команда для запуска сервера
	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Запуск веб-интерфейса",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}

	// Команда для прогноза по маршруту через CLI
	var routeCmd = &cobra.Command{
		Use:   "route [начало] [промежуточные точки...] [конец]",
		Short: "Получить прогноз для маршрута",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, _ := cmd.Flags().GetInt("horizon")
			params, _ := cmd.Flags().GetStringSlice("param")
			output, _ := cmd.Flags().GetString("output")

			return routeCLI(args, horizon, params, output)
		},
	}

	routeCmd.Flags().IntP("horizon", "d", 1, "Горизонт прогноза в днях (1, 3 или 5)")
	routeCmd.Flags().StringSliceP("param", "p", []string{"temp"}, "Параметры прогноза (temp, wind, rain)")
	routeCmd.Flags().StringP("output", "o", "text", "Формат вывода (text, json, geojson)")

	// Команда для проверки провайдеров
	var providersCmd = &cobra.Command{
		Use:   "providers",
		Short: "Показать используемые сервисы",
		Run: func(cmd *cobra.Command, args []string) {
			showProviders()
		},
	}

	rootCmd.AddCommand(serverCmd, routeCmd, providersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startServer запускает HTTP сервер
func startServer() error {
	srv, err := shell.NewServer(agg, cfg.MapZoom, logger.Named("shell"))
	if err != nil {
		return fmt.Errorf("ошибка инициализации интерфейса: %w", err)
	}

	// Настройка сервера
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: shell.RouteTimeout + 30*time.Second, // запас на отрисовку после построения маршрута
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infow("сервер запущен", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("ошибка сервера", "error", err)
		}
	}()

	<-quit
	logger.Info("завершение работы сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при завершении работы сервера: %w", err)
	}

	logger.Info("сервер остановлен")
	return nil
}

// routeCLI получает прогноз для маршрута через CLI
func routeCLI(points []string, days int, rawParams []string, output string) error {
	horizon, err := models.ParseHorizon(fmt.Sprint(days))
	if err != nil {
		return err
	}
	params := shell.ParseParameters(rawParams)

	route := make([]models.RoutePoint, 0, len(points))
	for _, p := range points {
		route = append(route, models.RoutePoint(p))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shell.RouteTimeout)
	defer cancel()

	stops := agg.BuildRoute(ctx, route, horizon)
	charts := render.RenderCharts(stops, params)

	switch output {
	case "json":
		return printJSON(os.Stdout, shell.RouteResponse{
			Stops:    stops,
			Map:      render.RenderMap(stops, cfg.MapZoom),
			Charts:   charts,
			Polyline: render.EncodePolyline(stops),
		})
	case "geojson":
		return printJSON(os.Stdout, render.RouteGeoJSON(stops))
	}

	// Текстовый вывод
	if charts.Placeholder != "" {
		fmt.Println(charts.Placeholder)
		return nil
	}

	fmt.Printf("🗺️  Маршрут: %s\n", strings.Join(stopNames(stops), " → "))
	// Графики идут в том же порядке, что и точки маршрута
	for i, chart := range charts.Charts {
		stop := stops[i]
		fmt.Println(strings.Repeat("=", 40))
		fmt.Printf("%s (%.4f, %.4f)\n", chart.Stop, stop.Coordinate.Latitude, stop.Coordinate.Longitude)
		fmt.Printf("Интервалов прогноза: %d, с %s по %s\n",
			len(stop.Forecast), stop.Forecast[0].Timestamp, stop.Forecast[len(stop.Forecast)-1].Timestamp)
		for _, s := range chart.Summaries {
			fmt.Printf("%s: мин %.1f %s, макс %.1f %s, среднее %.1f %s\n",
				s.Label, s.Min, s.Unit, s.Max, s.Unit, s.Mean, s.Unit)
		}
	}
	return nil
}

// printJSON печатает v с отступами; при ошибке сериализации ничего не выводит
func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func stopNames(stops []models.ResolvedStop) []string {
	names := make([]string, len(stops))
	for i, s := range stops {
		names[i] = s.Name
	}
	return names
}

// showProviders показывает список используемых сервисов
func showProviders() {
	fmt.Println("📡 Используемые сервисы:")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Printf("✓ Геокодирование: %s\n", cfg.GeocodingURL)
	fmt.Printf("✓ Прогноз (OpenWeatherMap): %s\n", cfg.ForecastURL)
	fmt.Printf("Таймаут: %d с, повторов: %d\n", cfg.HTTPTimeout, cfg.HTTPRetries)
}
