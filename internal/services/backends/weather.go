package backends

import (
	"context"
	"math/rand"
	"sync"
)

var (
	weatherTemps      = []string{"15°C", "18°C", "22°C", "25°C", "28°C"}
	weatherConditions = []string{"Sunny", "Cloudy", "Rainy", "Clear"}
)

// Weather simulates a paid weather lookup.
type Weather struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewWeather creates the weather backend.
func NewWeather(seed int64) *Weather {
	return &Weather{rand: rand.New(rand.NewSource(seed))}
}

func (w *Weather) Call(_ context.Context, params map[string]string) (map[string]any, error) {
	city := params["city"]
	if city == "" {
		city = "Unknown"
	}

	w.mu.Lock()
	temp := weatherTemps[w.rand.Intn(len(weatherTemps))]
	condition := weatherConditions[w.rand.Intn(len(weatherConditions))]
	humidity := 30 + w.rand.Intn(50)
	wind := 5 + w.rand.Intn(25)
	w.mu.Unlock()

	return map[string]any{
		"city":        city,
		"temperature": temp,
		"condition":   condition,
		"humidity":    humidity,
		"wind_kmh":    wind,
	}, nil
}
