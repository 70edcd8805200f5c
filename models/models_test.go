package models

import "testing"

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		in      string
		want    Horizon
		samples int
		wantErr bool
	}{
		{in: "1", want: HorizonOneDay, samples: 8},
		{in: " 3 ", want: HorizonThreeDays, samples: 24},
		{in: "5", want: HorizonFiveDays, samples: 40},
		{in: "2", wantErr: true},
		{in: "", wantErr: true},
		{in: "five", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHorizon(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHorizon(%q) expected error but got none", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHorizon(%q) unexpected error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHorizon(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Samples() != tt.samples {
				t.Errorf("Samples() = %d, want %d", got.Samples(), tt.samples)
			}
		})
	}
}

func TestDisplayParameter(t *testing.T) {
	sample := ForecastSample{Timestamp: "2024-01-01 00:00:00", Temperature: -3, WindSpeed: 4.5, Precipitation: 0.2}

	tests := []struct {
		param DisplayParameter
		name  string
		value float64
		valid bool
	}{
		{ParamTemperature, "Temp", -3, true},
		{ParamWindSpeed, "Wind", 4.5, true},
		{ParamPrecipitation, "Rain", 0.2, true},
		{"humidity", "Humidity", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.param), func(t *testing.T) {
			if tt.param.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v", tt.param.Valid(), tt.valid)
			}
			if tt.param.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.param.Name(), tt.name)
			}
			v, ok := tt.param.Value(sample)
			if ok != tt.valid || v != tt.value {
				t.Errorf("Value() = (%v, %v), want (%v, %v)", v, ok, tt.value, tt.valid)
			}
		})
	}
}

func TestHorizon_Label(t *testing.T) {
	want := map[Horizon]string{
		HorizonOneDay:    "1 день",
		HorizonThreeDays: "3 дня",
		HorizonFiveDays:  "5 дней",
	}
	for h, label := range want {
		if got := h.Label(); got != label {
			t.Errorf("Horizon(%d).Label() = %q, want %q", h, got, label)
		}
	}
}
