package catalogue

// Cache keys are prefixed by entity kind so ids and paths of different kinds never collide.
const categoriesKey = "categories"

func showsKey(categoryID string) string {
	return "shows-" + categoryID
}

func seasonsKey(seriesPath string) string {
	return "seasons-" + seriesPath
}

func recentEpisodesKey(seriesPath string) string {
	return "recent-episodes-" + seriesPath
}

func seasonEpisodesKey(seasonPath string) string {
	return "episodes-for-season-" + seasonPath
}
