package maersk

import (
	"context"
	"net/url"
)

const shipmentDeadlinesPath = "/shipment-deadlines"

// DeadlineQuery values are sent as-is; nothing is normalized or validated.
type DeadlineQuery struct {
	ISOCountryCode  string `json:"iso_country_code"`
	PortOfLoad      string `json:"port_of_load"`
	VesselIMONumber string `json:"vessel_imonumber"`
	Voyage          string `json:"voyage"`
}

func (q DeadlineQuery) values() url.Values {
	values := url.Values{}
	values.Set("ISOCountryCode", q.ISOCountryCode)
	values.Set("portOfLoad", q.PortOfLoad)
	values.Set("vesselIMONumber", q.VesselIMONumber)
	values.Set("voyage", q.Voyage)
	return values
}

type ShipmentDeadlineSet struct {
	ShipmentDeadlines ShipmentDeadlines `json:"shipmentDeadlines"`
}

type ShipmentDeadlines struct {
	TerminalName string     `json:"terminalName"`
	Deadlines    []Deadline `json:"deadlines"`
}

type Deadline struct {
	DeadlineName  string `json:"deadlineName"`
	DeadlineLocal string `json:"deadlineLocal"`
}

func (c *Client) ShipmentDeadlines(ctx context.Context, q DeadlineQuery) ([]ShipmentDeadlineSet, error) {
	var sets []ShipmentDeadlineSet
	if err := c.get(ctx, shipmentDeadlinesPath, q.values(), &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
