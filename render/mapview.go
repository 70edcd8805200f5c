package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"route-weather/models"
)

const (
	DefaultZoom = 5
	mapStyle    = "open-street-map"
	markerSize  = 14
	routeName   = "Маршрут"
)

// RenderMap строит одну трассу "маркеры + линия" через все точки маршрута
// по порядку, с центром карты в первой точке. Пустой маршрут дает пустую карту.
func RenderMap(stops []models.ResolvedStop, zoom int) Figure {
	if len(stops) == 0 {
		return Figure{Data: []Trace{}}
	}

	trace := Trace{
		Type:      "scattermapbox",
		Mode:      "markers+lines",
		Name:      routeName,
		Lat:       make([]float64, 0, len(stops)),
		Lon:       make([]float64, 0, len(stops)),
		Text:      make([]string, 0, len(stops)),
		HoverInfo: "text",
		Marker:    &Marker{Size: markerSize},
	}
	for _, s := range stops {
		trace.Lat = append(trace.Lat, s.Coordinate.Latitude)
		trace.Lon = append(trace.Lon, s.Coordinate.Longitude)
		trace.Text = append(trace.Text, s.Name)
	}

	return Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Mapbox: &Mapbox{
				Style: mapStyle,
				Zoom:  zoom,
				Center: LatLon{
					Lat: stops[0].Coordinate.Latitude,
					Lon: stops[0].Coordinate.Longitude,
				},
			},
			Margin: &Margin{},
		},
	}
}

// RouteGeoJSON возвращает маршрут как FeatureCollection: линия через все
// точки (если их хотя бы две) и по одной точке на остановку.
func RouteGeoJSON(stops []models.ResolvedStop) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, len(stops))
	for _, s := range stops {
		line = append(line, orb.Point{s.Coordinate.Longitude, s.Coordinate.Latitude})
	}

	if len(line) >= 2 {
		f := geojson.NewFeature(line)
		f.Properties["name"] = routeName
		fc.Append(f)
	}

	for i, s := range stops {
		f := geojson.NewFeature(line[i])
		f.Properties["name"] = s.Name
		f.Properties["order"] = i
		f.Properties["samples"] = len(s.Forecast)
		fc.Append(f)
	}

	return fc
}

// EncodePolyline кодирует маршрут в формат Google encoded polyline
func EncodePolyline(stops []models.ResolvedStop) string {
	if len(stops) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, []float64{s.Coordinate.Latitude, s.Coordinate.Longitude})
	}
	return string(polyline.EncodeCoords(coords))
}
