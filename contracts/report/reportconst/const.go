package reportconst

const (
	// NotFoundError is returned on lookup of a report that was never
	// recorded.
	NotFoundError = "report does not exist"

	// ReentryError is returned when report recording is re-entered before
	// the first invocation completes.
	ReentryError = "report recording is already in progress"

	// MaxMoisture is the upper bound of the moisture measurement, percent
	// scaled to a byte by the lab equipment.
	MaxMoisture = 255
	// MaxImpurity is the upper bound of the impurity measurement, parts
	// per ten thousand.
	MaxImpurity = 65535
	// MaxGrainSize is the upper bound of the grain size measurement,
	// hundredths of a millimeter.
	MaxGrainSize = 65535
)
