package types

import "time"

// ProviderTimeLayout is the layout of the provider's dt_txt field.
const ProviderTimeLayout = "2006-01-02 15:04:05"

// ProviderCondition is a condition record in the weather provider's shape.
type ProviderCondition struct {
	Dt      int64             `json:"dt"`
	DtTxt   string            `json:"dt_txt,omitempty"`
	Name    string            `json:"name,omitempty"`
	Weather []ProviderWeather `json:"weather"`
	Main    ProviderMain      `json:"main"`
	Wind    ProviderWind      `json:"wind"`
}

// ProviderWeather is one entry of a provider record's weather list.
type ProviderWeather struct {
	Main        string `json:"main,omitempty"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ProviderMain carries the provider's temperature (Celsius) and humidity (percent).
type ProviderMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// ProviderWind carries wind speed in m/s.
type ProviderWind struct {
	Speed float64 `json:"speed"`
}

// Record converts the provider shape to a ConditionRecord. The unix dt field
// wins over dt_txt; both are read as UTC.
func (p ProviderCondition) Record() ConditionRecord {
	rec := ConditionRecord{
		Name:      p.Name,
		Temp:      p.Main.Temp,
		Humidity:  p.Main.Humidity,
		WindSpeed: p.Wind.Speed,
	}
	if len(p.Weather) > 0 {
		rec.Description = p.Weather[0].Description
		rec.Icon = p.Weather[0].Icon
	}
	switch {
	case p.Dt != 0:
		rec.Time = time.Unix(p.Dt, 0).UTC()
	case p.DtTxt != "":
		if t, err := time.ParseInLocation(ProviderTimeLayout, p.DtTxt, time.UTC); err == nil {
			rec.Time = t
		}
	}
	return rec
}

// WeatherPayload is the body of GET /api/weather_full.
type WeatherPayload struct {
	Location string              `json:"location,omitempty"`
	Current  *ProviderCondition  `json:"current"`
	Hourly   []ProviderCondition `json:"hourly"`
	Daily    []ProviderCondition `json:"daily"`
	Error    string              `json:"error,omitempty"`
}

// Snapshot converts the payload, keeping the hourly and daily order as received.
func (w WeatherPayload) Snapshot() WeatherSnapshot {
	snap := WeatherSnapshot{
		Location: w.Location,
		Hourly:   make([]ConditionRecord, 0, len(w.Hourly)),
		Daily:    make([]ConditionRecord, 0, len(w.Daily)),
	}
	if w.Current != nil {
		snap.Current = w.Current.Record()
	}
	for _, h := range w.Hourly {
		snap.Hourly = append(snap.Hourly, h.Record())
	}
	for _, d := range w.Daily {
		snap.Daily = append(snap.Daily, d.Record())
	}
	return snap
}
