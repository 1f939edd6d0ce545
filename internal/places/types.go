package places

import "github.com/tablelog/tablelog-server/internal/domain"

// Gateway status values that carry results.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type searchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Types   []string `json:"types"`
}

type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       detailsResult `json:"result"`
}

type detailsResult struct {
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	Photos           []struct {
		PhotoReference string `json:"photo_reference"`
		Width          int    `json:"width"`
		Height         int    `json:"height"`
	} `json:"photos"`
	OpeningHours *struct {
		OpenNow     *bool    `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	PriceLevel *int     `json:"price_level"`
	Types      []string `json:"types"`
	Geometry   struct {
		Location domain.LatLng `json:"location"`
	} `json:"geometry"`
	Website              string `json:"website"`
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	Reviews              []struct {
		AuthorName string `json:"author_name"`
		Rating     int    `json:"rating"`
		Text       string `json:"text"`
		Time       int64  `json:"time"`
	} `json:"reviews"`
}

// Restaurant is a search result: the cacheable snapshot plus display-only fields.
type Restaurant struct {
	domain.StoredRestaurant
	PriceLevel *int          `json:"priceLevel,omitempty"`
	Website    string        `json:"website,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Location   domain.LatLng `json:"location"`
}

// Photo references one gateway image.
type Photo struct {
	URL       string `json:"url"`
	Reference string `json:"reference"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Review is a gateway review reduced to what the client renders.
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// Details is the full view of one place.
type Details struct {
	PlaceID          string        `json:"placeId"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formattedAddress"`
	Rating           float64       `json:"rating"`
	UserRatingsTotal int           `json:"userRatingsTotal"`
	OpenNow          *bool         `json:"openNow,omitempty"`
	WeekdayText      []string      `json:"weekdayText,omitempty"`
	PriceLevel       *int          `json:"priceLevel,omitempty"`
	Types            []string      `json:"types,omitempty"`
	Location         domain.LatLng `json:"location"`
	Website          string        `json:"website,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	Photos           []Photo       `json:"photos"`
	Reviews          []Review      `json:"reviews"`
}

// PhotoData is a fetched image.
type PhotoData struct {
	ContentType string
	Body        []byte
}
