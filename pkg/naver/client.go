package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/util"
)

var ErrPlaceNotFound = errors.New("place not found")

const (
	defaultSearchBaseURL  = "https://openapi.naver.com"
	defaultGeocodeBaseURL = "https://maps.apigw.ntruss.com"
	defaultTimeout        = 10 * time.Second
)

// Client resolves free text place names into coordinates.
// The local search credentials are optional, without them the query goes straight to the geocoder.
type Client struct {
	SearchClientID     string
	SearchClientSecret string
	SearchBaseURL      string

	GeocodeClientID     string
	GeocodeClientSecret string
	GeocodeBaseURL      string

	HTTPClient *http.Client
}

func NewClientFromEnvironment() *Client {
	env := util.GetEnvironmentVariables()

	return &Client{
		SearchClientID:      env["TRAVIGO_NAVER_SEARCH_ID"],
		SearchClientSecret:  env["TRAVIGO_NAVER_SEARCH_SECRET"],
		SearchBaseURL:       defaultSearchBaseURL,
		GeocodeClientID:     env["TRAVIGO_NAVER_CLIENT_ID"],
		GeocodeClientSecret: env["TRAVIGO_NAVER_CLIENT_SECRET"],
		GeocodeBaseURL:      defaultGeocodeBaseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type localSearchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Address     string `json:"address"`
		RoadAddress string `json:"roadAddress"`
	} `json:"items"`
}

type geocodeResponse struct {
	Status    string `json:"status"`
	Addresses []struct {
		X            string `json:"x"`
		Y            string `json:"y"`
		RoadAddress  string `json:"roadAddress"`
		JibunAddress string `json:"jibunAddress"`
	} `json:"addresses"`
}

func (c *Client) getJSON(ctx context.Context, requestURL string, headers map[string]string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return errors.Wrap(json.Unmarshal(body, target), "decoding response")
}

// searchAddress turns a place name such as a station or landmark into a postal address
func (c *Client) searchAddress(ctx context.Context, query string) (string, bool) {
	if c.SearchClientID == "" || c.SearchClientSecret == "" {
		return "", false
	}

	requestURL := fmt.Sprintf("%s/v1/search/local.json?query=%s&display=1", c.SearchBaseURL, url.QueryEscape(query))

	var response localSearchResponse
	err := c.getJSON(ctx, requestURL, map[string]string{
		"X-Naver-Client-Id":     c.SearchClientID,
		"X-Naver-Client-Secret": c.SearchClientSecret,
	}, &response)
	if err != nil {
		log.Debug().Err(err).Str("query", query).Msg("Local search failed")
		return "", false
	}

	if len(response.Items) == 0 {
		return "", false
	}

	item := response.Items[0]
	address := util.FirstNonEmpty(item.RoadAddress, item.Address)
	if address == "" {
		return "", false
	}

	log.Debug().
		Str("query", query).
		Str("title", util.StripTags(item.Title)).
		Str("address", address).
		Msg("Resolved place name")

	return address, true
}

func (c *Client) geocode(ctx context.Context, address string) (*ctdf.Location, error) {
	requestURL := fmt.Sprintf("%s/map-geocode/v2/geocode?query=%s", c.GeocodeBaseURL, url.QueryEscape(address))

	var response geocodeResponse
	err := c.getJSON(ctx, requestURL, map[string]string{
		"x-ncp-apigw-api-key-id": c.GeocodeClientID,
		"x-ncp-apigw-api-key":    c.GeocodeClientSecret,
	}, &response)
	if err != nil {
		return nil, err
	}

	if response.Status != "OK" || len(response.Addresses) == 0 {
		return nil, ErrPlaceNotFound
	}

	match := response.Addresses[0]

	longitude, err := strconv.ParseFloat(match.X, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing longitude")
	}
	latitude, err := strconv.ParseFloat(match.Y, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing latitude")
	}

	return &ctdf.Location{
		Latitude:       latitude,
		Longitude:      longitude,
		DisplayAddress: util.FirstNonEmpty(match.RoadAddress, match.JibunAddress),
	}, nil
}

// GetPlacePoint resolves a place name or address into a Location.
// Every failure is reported as ErrPlaceNotFound.
func (c *Client) GetPlacePoint(ctx context.Context, query string) (*ctdf.Location, error) {
	address := query
	if searched, ok := c.searchAddress(ctx, query); ok {
		address = searched
	}

	location, err := c.geocode(ctx, address)
	if err != nil {
		if err != ErrPlaceNotFound {
			log.Error().Err(err).Str("query", query).Msg("Geocoding failed")
		}
		return nil, ErrPlaceNotFound
	}

	return location, nil
}
