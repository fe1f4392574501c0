package utils

import (
	"devcamper/config"
	"devcamper/models"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// MapQuest-style geocoding payload. Only the fields we consume.
type geocodeResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			PostalCode string `json:"postalCode"`
			Country    string `json:"adminArea1"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves a postal address or zipcode to a location.
func Geocode(address string) (*models.Location, error) {
	client := resty.New()

	var payload geocodeResponse
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"key":      config.AppConfig.GeocoderAPIKey,
			"location": address,
		}).
		SetResult(&payload).
		Get(config.AppConfig.GeocoderURL)
	if err != nil {
		log.Printf("Geocoding request failed: %v", err)
		return nil, fiber.NewError(fiber.StatusBadGateway, "Geocoding service unavailable")
	}
	if resp.IsError() {
		log.Printf("Geocoding failed with status %d: %s", resp.StatusCode(), resp.String())
		return nil, fiber.NewError(fiber.StatusBadGateway, "Geocoding service unavailable")
	}

	if len(payload.Results) == 0 || len(payload.Results[0].Locations) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Could not geocode address")
	}

	loc := payload.Results[0].Locations[0]
	formatted := loc.Street
	if loc.City != "" {
		formatted += ", " + loc.City
	}
	if loc.State != "" {
		formatted += ", " + loc.State
	}

	return &models.Location{
		Longitude:        loc.LatLng.Lng,
		Latitude:         loc.LatLng.Lat,
		FormattedAddress: formatted,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.PostalCode,
		Country:          loc.Country,
	}, nil
}
