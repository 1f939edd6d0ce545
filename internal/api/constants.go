package api

// Cache-Control header values.
const (
	CacheOneDay  = "public, max-age=86400"
	CacheNoStore = "no-cache"
)

// Route tags.
const (
	tagAuth        = "Auth"
	tagUsers       = "Users"
	tagDiary       = "Diary"
	tagLists       = "Lists"
	tagRestaurants = "Restaurants"
	tagCache       = "Cache"
	tagPlaces      = "Places"
)
