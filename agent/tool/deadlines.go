package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
	maerskx "github.com/tanpawarit/vessel-deadline-agent/pkg/maersk"
)

const (
	argISOCountryCode  = "iso_country_code"
	argPortOfLoad      = "port_of_load"
	argVesselIMONumber = "vessel_imonumber"
	argVoyage          = "voyage"

	NoDeadlinesMessage = "No data found for the given parameters."
)

// ReportDeadlines fetches deadlines for q and renders them. Only the first
// record of the response is used.
func ReportDeadlines(ctx context.Context, lookup contractx.DeadlineLookup, q maerskx.DeadlineQuery) (contractx.DeadlineReport, error) {
	sets, err := lookup.ShipmentDeadlines(ctx, q)
	if err != nil {
		return contractx.DeadlineReport{}, err
	}
	if len(sets) == 0 {
		return contractx.DeadlineReport{
			Status:       contractx.ReportError,
			ErrorMessage: NoDeadlinesMessage,
		}, nil
	}

	return contractx.DeadlineReport{
		Status: contractx.ReportSuccess,
		Report: FormatReport(q.VesselIMONumber, sets[0].ShipmentDeadlines),
	}, nil
}

// FormatReport keeps deadlines in the order the API returned them.
func FormatReport(vesselIMONumber string, sd maerskx.ShipmentDeadlines) string {
	parts := make([]string, 0, len(sd.Deadlines))
	for _, d := range sd.Deadlines {
		parts = append(parts, fmt.Sprintf("%s on %s", d.DeadlineName, d.DeadlineLocal))
	}
	return fmt.Sprintf("The vessel %s is scheduled to arrive at %s with deadlines: %s.",
		vesselIMONumber, sd.TerminalName, strings.Join(parts, ", "))
}

func executeVesselDeadlines(
	ctx context.Context,
	lookup contractx.DeadlineLookup,
	tool string,
	args map[string]any,
) (contractx.ToolResult, error) {
	var q maerskx.DeadlineQuery
	fields := []struct {
		key string
		dst *string
	}{
		{argISOCountryCode, &q.ISOCountryCode},
		{argPortOfLoad, &q.PortOfLoad},
		{argVesselIMONumber, &q.VesselIMONumber},
		{argVoyage, &q.Voyage},
	}
	for _, f := range fields {
		value, err := stringArg(args, f.key)
		if err != nil {
			return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
		}
		*f.dst = value
	}

	report, err := ReportDeadlines(ctx, lookup, q)
	if err != nil {
		return contractx.ToolResult{}, err
	}
	return contractx.ToolResult{
		Tool:   tool,
		Result: report,
	}, nil
}
