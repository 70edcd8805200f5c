package render

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"route-weather/models"
)

// NoDataMessage выводится вместо графиков, если ни одна точка не собрана
const NoDataMessage = "Нет доступных данных для отображения."

// Chart график прогноза для одной точки маршрута
type Chart struct {
	Stop      string          `json:"stop"`
	Figure    Figure          `json:"figure"`
	Summaries []SeriesSummary `json:"summaries"`
}

// SeriesSummary сводка по одной серии графика
type SeriesSummary struct {
	Parameter models.DisplayParameter `json:"parameter"`
	Label     string                  `json:"label"`
	Unit      string                  `json:"unit"`
	Min       float64                 `json:"min"`
	Max       float64                 `json:"max"`
	Mean      float64                 `json:"mean"`
}

// Charts результат отрисовки: либо графики, либо сообщение-заглушка
type Charts struct {
	Charts      []Chart `json:"charts"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// RenderCharts строит по одному графику на точку маршрута, в котором каждая
// выбранная величина идет отдельной серией. Неизвестные параметры пропускаются.
func RenderCharts(stops []models.ResolvedStop, params []models.DisplayParameter) Charts {
	if len(stops) == 0 {
		return Charts{Charts: []Chart{}, Placeholder: NoDataMessage}
	}

	charts := make([]Chart, 0, len(stops))
	for _, stop := range stops {
		charts = append(charts, renderStop(stop, params))
	}
	return Charts{Charts: charts}
}

func renderStop(stop models.ResolvedStop, params []models.DisplayParameter) Chart {
	times := make([]string, len(stop.Forecast))
	for i, s := range stop.Forecast {
		times[i] = s.Timestamp
	}

	traces := make([]Trace, 0, len(params))
	summaries := make([]SeriesSummary, 0, len(params))
	for _, param := range params {
		if !param.Valid() {
			continue
		}

		values := make([]float64, len(stop.Forecast))
		for i, s := range stop.Forecast {
			values[i], _ = param.Value(s)
		}

		traces = append(traces, Trace{
			Type:      "scatter",
			Mode:      "lines+markers",
			Name:      param.Name(),
			X:         times,
			Y:         values,
			HoverInfo: "x+y",
		})
		summaries = append(summaries, summarize(param, values))
	}

	return Chart{
		Stop: stop.Name,
		Figure: Figure{
			Data: traces,
			Layout: Layout{
				Title:     &Text{Text: "Прогноз для " + stop.Name},
				XAxis:     &Axis{Title: Text{Text: "Время"}},
				YAxis:     &Axis{Title: Text{Text: "Значения"}},
				HoverMode: "closest",
				Legend:    &Legend{Title: Text{Text: "Параметры"}},
			},
		},
		Summaries: summaries,
	}
}

func summarize(param models.DisplayParameter, values []float64) SeriesSummary {
	summary := SeriesSummary{
		Parameter: param,
		Label:     param.Label(),
		Unit:      param.Unit(),
	}
	if len(values) == 0 {
		return summary
	}

	summary.Min = floats.Min(values)
	summary.Max = floats.Max(values)
	summary.Mean = stat.Mean(values, nil)
	return summary
}
