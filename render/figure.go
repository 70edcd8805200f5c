// Package render превращает собранный маршрут в описания карт и графиков
// в формате plotly.js.
package render

// Figure описание фигуры plotly: набор трасс и макет
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type      string    `json:"type"`
	Mode      string    `json:"mode,omitempty"`
	Name      string    `json:"name,omitempty"`
	X         []string  `json:"x,omitempty"`
	Y         []float64 `json:"y,omitempty"`
	Lat       []float64 `json:"lat,omitempty"`
	Lon       []float64 `json:"lon,omitempty"`
	Text      []string  `json:"text,omitempty"`
	HoverInfo string    `json:"hoverinfo,omitempty"`
	Marker    *Marker   `json:"marker,omitempty"`
}

type Marker struct {
	Size int `json:"size"`
}

type Layout struct {
	Title     *Text   `json:"title,omitempty"`
	XAxis     *Axis   `json:"xaxis,omitempty"`
	YAxis     *Axis   `json:"yaxis,omitempty"`
	HoverMode string  `json:"hovermode,omitempty"`
	Legend    *Legend `json:"legend,omitempty"`
	Mapbox    *Mapbox `json:"mapbox,omitempty"`
	Margin    *Margin `json:"margin,omitempty"`
}

type Text struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Text `json:"title"`
}

type Legend struct {
	Title Text `json:"title"`
}

type Mapbox struct {
	Style  string `json:"style"`
	Zoom   int    `json:"zoom"`
	Center LatLon `json:"center"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}
