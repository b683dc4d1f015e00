package maersk

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const vesselsPath = "/reference-data/vessels"

type Vessel struct {
	VesselIMONumber   string `json:"vesselIMONumber"`
	CarrierVesselCode string `json:"carrierVesselCode,omitempty"`
	VesselName        string `json:"vesselName,omitempty"`
	VesselFlagCode    string `json:"vesselFlagCode,omitempty"`
	VesselCallSign    string `json:"vesselCallSign,omitempty"`
}

// Vessels looks vessels up by name in the reference data service.
func (c *Client) Vessels(ctx context.Context, vesselName string) ([]Vessel, error) {
	if strings.TrimSpace(vesselName) == "" {
		return nil, fmt.Errorf("%w: vessel name is required", ErrValidation)
	}

	query := url.Values{}
	query.Set("vesselNames", vesselName)

	var vessels []Vessel
	if err := c.get(ctx, vesselsPath, query, &vessels); err != nil {
		return nil, err
	}
	return vessels, nil
}

// VesselIMO returns the IMO number of the first vessel matching vesselName.
func (c *Client) VesselIMO(ctx context.Context, vesselName string) (string, error) {
	vessels, err := c.Vessels(ctx, vesselName)
	if err != nil {
		return "", err
	}
	if len(vessels) == 0 {
		return "", fmt.Errorf("%w: name=%q", ErrVesselNotFound, vesselName)
	}
	return vessels[0].VesselIMONumber, nil
}
