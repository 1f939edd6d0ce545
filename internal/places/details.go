package places

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

const fullDetailFields = summaryDetailFields + ",reviews"

// Details loads the full view of a place, including reviews.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, domainerrors.Validation("place id is required")
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", fullDetailFields)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/details/json", q, &resp); err != nil {
		return nil, err
	}
	switch resp.Status {
	case statusOK:
	case "NOT_FOUND", "INVALID_REQUEST":
		return nil, domainerrors.NotFoundf("place %s not found", placeID)
	default:
		return nil, statusError(resp.Status, resp.ErrorMessage)
	}

	return toDetails(placeID, resp.Result), nil
}

func toDetails(placeID string, d detailsResult) *Details {
	out := &Details{
		PlaceID:          placeID,
		Name:             d.Name,
		FormattedAddress: d.FormattedAddress,
		Rating:           d.Rating,
		UserRatingsTotal: d.UserRatingsTotal,
		PriceLevel:       d.PriceLevel,
		Types:            d.Types,
		Location:         d.Geometry.Location,
		Website:          d.Website,
		Phone:            d.FormattedPhoneNumber,
		Photos:           make([]Photo, 0, len(d.Photos)),
		Reviews:          make([]Review, 0, len(d.Reviews)),
	}
	if d.OpeningHours != nil {
		out.OpenNow = d.OpeningHours.OpenNow
		out.WeekdayText = d.OpeningHours.WeekdayText
	}
	for _, p := range d.Photos {
		out.Photos = append(out.Photos, Photo{
			URL:       PhotoURL(p.PhotoReference, DefaultPhotoWidth),
			Reference: p.PhotoReference,
			Width:     p.Width,
			Height:    p.Height,
		})
	}
	for _, r := range d.Reviews {
		out.Reviews = append(out.Reviews, Review{
			ID:       strconv.FormatInt(r.Time, 10),
			UserName: r.AuthorName,
			Rating:   r.Rating,
			Comment:  r.Text,
			Date:     time.Unix(r.Time, 0).UTC().Format(time.DateOnly),
		})
	}
	return out
}

// Photo fetches the image behind a photo reference.
func (c *Client) Photo(ctx context.Context, reference string, maxWidth int) (*PhotoData, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainerrors.Validation("photo_reference is required")
	}

	q := url.Values{}
	q.Set("photoreference", reference)
	q.Set("maxwidth", strconv.Itoa(radiusOr(maxWidth, DefaultPhotoWidth)))

	resp, err := c.do(ctx, "/photo", q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.Upstreamf("Failed to fetch photo: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "read photo")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return &PhotoData{ContentType: contentType, Body: body}, nil
}
