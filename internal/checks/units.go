package checks

// pg_settings reports memory values as an integer plus a unit tag.
// These helpers normalize to a target unit. An unrecognized tag yields
// zero so a malformed row degrades to a deterministic result instead of
// a crash.

// ToMB converts a memory setting to megabytes.
func ToMB(value int64, unit string) float64 {
	switch unit {
	case "kB":
		return float64(value) / 1024
	case "8kB":
		return float64(value) * 8 / 1024
	case "MB":
		return float64(value)
	case "GB":
		return float64(value) * 1024
	}
	return 0
}

// ToGB converts a memory setting to gigabytes.
func ToGB(value int64, unit string) float64 {
	switch unit {
	case "kB":
		return float64(value) / (1024 * 1024)
	case "8kB":
		return float64(value) * 8 / (1024 * 1024)
	case "MB":
		return float64(value) / 1024
	case "GB":
		return float64(value)
	}
	return 0
}
