// Package shell реализует интерактивную форму маршрута: состояние формы,
// переходы "добавить точку" и "получить прогноз" и HTTP сервер вокруг них.
package shell

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"route-weather/models"
	"route-weather/render"
)

// PromptMessage выводится, пока маршрут не задан или прогноз не запрошен
const PromptMessage = "Введите точки маршрута и нажмите 'Получить прогноз'."

// RouteBuilder собирает маршрут из названий точек
type RouteBuilder interface {
	BuildRoute(ctx context.Context, route []models.RoutePoint, horizon models.Horizon) []models.ResolvedStop
}

// State состояние формы одного пользователя
type State struct {
	Start      string
	End        string
	Stops      []string // промежуточные точки, позиция в списке и есть идентификатор поля
	Parameters []models.DisplayParameter
	Horizon    models.Horizon
	Submits    int

	result *Result
}

// Result то, что показывается под формой
type Result struct {
	Message  string
	Stops    []models.ResolvedStop
	Map      render.Figure
	Charts   []render.Chart
	Polyline string
}

func NewState() *State {
	return &State{
		Stops:      []string{},
		Parameters: []models.DisplayParameter{models.ParamTemperature},
		Horizon:    models.HorizonOneDay,
	}
}

// AddStop добавляет пустое поле промежуточной точки в конец списка
func (s *State) AddStop() {
	s.Stops = append(s.Stops, "")
}

// StopLabel подпись поля промежуточной точки по его позиции
func (s *State) StopLabel(i int) string {
	return fmt.Sprintf("Промежуточная точка %d", i+1)
}

// Selected сообщает, выбран ли параметр
func (s *State) Selected(p models.DisplayParameter) bool {
	for _, sp := range s.Parameters {
		if sp == p {
			return true
		}
	}
	return false
}

// ApplyForm переносит значения полей отправленной формы в состояние
func (s *State) ApplyForm(form url.Values) {
	s.Start = strings.TrimSpace(form.Get("start"))
	s.End = strings.TrimSpace(form.Get("end"))

	stops := make([]string, 0, len(form["stop"]))
	for _, v := range form["stop"] {
		stops = append(stops, strings.TrimSpace(v))
	}
	s.Stops = stops

	s.Parameters = ParseParameters(form["param"])

	if h, err := models.ParseHorizon(form.Get("horizon")); err == nil {
		s.Horizon = h
	}
}

// Route маршрут целиком: начало, непустые промежуточные точки по порядку, конец
func (s *State) Route() []models.RoutePoint {
	route := make([]models.RoutePoint, 0, len(s.Stops)+2)
	route = append(route, models.RoutePoint(s.Start))
	for _, stop := range s.Stops {
		if stop != "" {
			route = append(route, models.RoutePoint(stop))
		}
	}
	return append(route, models.RoutePoint(s.End))
}

// Submit обрабатывает нажатие "Получить прогноз"
func (s *State) Submit(ctx context.Context, builder RouteBuilder, zoom int) Result {
	s.Submits++
	res := s.Render(ctx, builder, zoom)
	s.result = &res
	return res
}

// Render строит карту и графики для текущего состояния формы. Пока прогноз
// не запрашивался или не заданы начало и конец, вместо них выводится подсказка.
func (s *State) Render(ctx context.Context, builder RouteBuilder, zoom int) Result {
	if s.Submits == 0 || s.Start == "" || s.End == "" {
		return promptResult()
	}

	stops := builder.BuildRoute(ctx, s.Route(), s.Horizon)

	charts := render.RenderCharts(stops, s.Parameters)
	return Result{
		Message:  charts.Placeholder,
		Stops:    stops,
		Map:      render.RenderMap(stops, zoom),
		Charts:   charts.Charts,
		Polyline: render.EncodePolyline(stops),
	}
}

// LastResult результат последнего запроса прогноза или подсказка
func (s *State) LastResult() Result {
	if s.result == nil {
		return promptResult()
	}
	return *s.result
}

func promptResult() Result {
	return Result{
		Message: PromptMessage,
		Map:     render.RenderMap(nil, 0),
		Charts:  []render.Chart{},
	}
}

// ParseParameters оставляет известные параметры без повторов, в порядке выбора
func ParseParameters(values []string) []models.DisplayParameter {
	params := make([]models.DisplayParameter, 0, len(values))
	seen := make(map[models.DisplayParameter]bool, len(values))
	for _, v := range values {
		p := models.DisplayParameter(strings.TrimSpace(v))
		if !p.Valid() || seen[p] {
			continue
		}
		seen[p] = true
		params = append(params, p)
	}
	return params
}
