package intensity

// CircleConfig describes one wind-strength ring drawn around a storm's
// current position.
type CircleConfig struct {
	RadiusKm           float64 `json:"radius_km" yaml:"radius_km"`
	WindSpeedThreshold float64 `json:"windSpeedThreshold" yaml:"wind_speed_threshold"`
}

// DefaultRings returns the standard ring table, one ring per operational
// wind threshold: gale (34 kt), storm (50 kt), hurricane (64 kt), and major
// hurricane (100 kt). Radii shrink as thresholds rise, nesting the rings.
func DefaultRings() []CircleConfig {
	return []CircleConfig{
		{RadiusKm: 220, WindSpeedThreshold: 34},
		{RadiusKm: 150, WindSpeedThreshold: 50},
		{RadiusKm: 100, WindSpeedThreshold: 64},
		{RadiusKm: 50, WindSpeedThreshold: 100},
	}
}

// CircleCount returns how many of the standard rings apply at a wind speed:
// 0 below 34 kt, then one more at each of 34, 50, 64, and 100 kt.
func CircleCount(windKt float64) int {
	return len(RingsFor(windKt, DefaultRings()))
}

// RingsFor filters the ring table down to the rings whose threshold the wind
// speed meets or exceeds.
func RingsFor(windKt float64, rings []CircleConfig) []CircleConfig {
	var applicable []CircleConfig
	for _, ring := range rings {
		if windKt >= ring.WindSpeedThreshold {
			applicable = append(applicable, ring)
		}
	}
	return applicable
}
