package shell

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"route-weather/models"
	"route-weather/render"
)

//go:embed templates/index.html
var templatesFS embed.FS

// RouteTimeout ограничивает построение маршрута в одном запросе.
// Должен быть меньше WriteTimeout HTTP сервера, чтобы страница
// с заглушкой успела отправиться.
const RouteTimeout = 60 * time.Second

// Planner собирает маршруты и сообщает, какие сервисы использует
type Planner interface {
	RouteBuilder
	GetProvidersInfo() []string
}

// Server HTTP интерфейс: форма маршрута и JSON API
type Server struct {
	planner      Planner
	sessions     *Sessions
	zoom         int
	routeTimeout time.Duration
	logger       *zap.SugaredLogger
	tmpl         *template.Template
}

func NewServer(planner Planner, zoom int, logger *zap.SugaredLogger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		planner:      planner,
		sessions:     NewSessions(DefaultSessionTTL, DefaultMaxSessions),
		zoom:         zoom,
		routeTimeout: RouteTimeout,
		logger:       logger,
		tmpl:         tmpl,
	}, nil
}

// Router настраивает маршруты HTTP сервера
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// API
	router.HandleFunc("/api/health", s.healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/route", s.routeHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/route.geojson", s.geojsonHandler).Methods(http.MethodGet)

	// Форма
	router.HandleFunc("/", s.homeHandler).Methods(http.MethodGet)
	router.HandleFunc("/stops", s.addStopHandler).Methods(http.MethodPost)
	router.HandleFunc("/forecast", s.forecastHandler).Methods(http.MethodPost)

	return router
}

// homeHandler главная страница с формой и последним результатом
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	s.sessions.With(w, r, func(state *State) {
		s.renderPage(w, state, state.LastResult())
	})
}

// addStopHandler добавляет поле промежуточной точки, сохраняя введенные значения
func (s *Server) addStopHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	s.sessions.With(w, r, func(state *State) {
		state.ApplyForm(r.PostForm)
		state.AddStop()
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// forecastHandler обрабатывает кнопку "Получить прогноз"
func (s *Server) forecastHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.routeTimeout)
	defer cancel()

	s.sessions.With(w, r, func(state *State) {
		state.ApplyForm(r.PostForm)
		res := state.Submit(ctx, s.planner, s.zoom)

		s.logger.Infow("прогноз для маршрута",
			"route", state.Route(),
			"resolved", len(res.Stops),
			"horizon", int(state.Horizon),
		)

		s.renderPage(w, state, res)
	})
}

type option struct {
	Value   string
	Label   string
	Checked bool
}

type pageData struct {
	State      *State
	Parameters []option
	Horizons   []option
	Result     Result
}

func (s *Server) renderPage(w http.ResponseWriter, state *State, res Result) {
	data := pageData{
		State:  state,
		Result: res,
	}
	for _, p := range models.DisplayParameters {
		data.Parameters = append(data.Parameters, option{
			Value:   string(p),
			Label:   p.Label(),
			Checked: state.Selected(p),
		})
	}
	for _, h := range models.Horizons {
		data.Horizons = append(data.Horizons, option{
			Value:   strconv.Itoa(int(h)),
			Label:   h.Label(),
			Checked: h == state.Horizon,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Errorw("ошибка отрисовки страницы", "error", err)
	}
}

// RouteResponse ответ JSON API для маршрута
type RouteResponse struct {
	Stops    []models.ResolvedStop `json:"stops"`
	Map      render.Figure         `json:"map"`
	Charts   render.Charts         `json:"charts"`
	Polyline string                `json:"polyline"`
}

// routeHandler GET /api/route?stop=Москва&stop=Казань&horizon=1&param=temp
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	route, horizon, params, ok := s.parseRouteQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.routeTimeout)
	defer cancel()

	stops := s.planner.BuildRoute(ctx, route, horizon)

	err := json.NewEncoder(w).Encode(RouteResponse{
		Stops:    stops,
		Map:      render.RenderMap(stops, s.zoom),
		Charts:   render.RenderCharts(stops, params),
		Polyline: render.EncodePolyline(stops),
	})
	if err != nil {
		s.logger.Debugw("ошибка отправки ответа", "path", r.URL.Path, "error", err)
	}
}

// geojsonHandler отдает собранный маршрут в формате GeoJSON
func (s *Server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	route, horizon, _, ok := s.parseRouteQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.routeTimeout)
	defer cancel()

	stops := s.planner.BuildRoute(ctx, route, horizon)

	if err := json.NewEncoder(w).Encode(render.RouteGeoJSON(stops)); err != nil {
		s.logger.Debugw("ошибка отправки ответа", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) parseRouteQuery(w http.ResponseWriter, r *http.Request) ([]models.RoutePoint, models.Horizon, []models.DisplayParameter, bool) {
	q := r.URL.Query()

	var route []models.RoutePoint
	for _, stop := range q["stop"] {
		if stop != "" {
			route = append(route, models.RoutePoint(stop))
		}
	}
	if len(route) == 0 {
		writeError(w, http.StatusBadRequest, "Не указаны точки маршрута", "")
		return nil, 0, nil, false
	}

	horizon := models.HorizonOneDay
	if raw := q.Get("horizon"); raw != "" {
		h, err := models.ParseHorizon(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Некорректный горизонт прогноза", err.Error())
			return nil, 0, nil, false
		}
		horizon = h
	}

	params := []models.DisplayParameter{models.ParamTemperature}
	if raw, ok := q["param"]; ok {
		params = ParseParameters(raw)
	}

	return route, horizon, params, true
}

// healthHandler проверка здоровья сервиса
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "ok",
		"timestamp":      time.Now().Format(time.RFC3339),
		"provider_names": s.planner.GetProvidersInfo(),
		"sessions":       s.sessions.Len(),
	})
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   msg,
		Details: details,
	})
}
