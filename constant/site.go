package constant

// Remote site layout.
const (
	// Origin is the public site every relative show, season and episode path hangs off.
	Origin = "https://tv.nrk.no"

	// APIOrigin serves the paginated category listings.
	APIOrigin = "https://tv.nrk.no"

	// CategoryPath prefixes category pages. The category index lives at the bare path.
	CategoryPath = "/programmer"

	// SeriesPrefix marks listing elements that are multi-season series.
	SeriesPrefix = "/serie"

	// ProgramPrefix marks standalone programs.
	ProgramPrefix = "/program"

	// MaxListingPages bounds category pagination when the upstream never signals exhaustion.
	MaxListingPages = 200
)
