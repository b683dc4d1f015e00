package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
)

const (
	ToolGetVesselInfo      = "get_vessel_info"
	ToolGetVesselDeadlines = "get_vessel_deadlines"
)

// Executor runs a named tool. Argument problems come back as ToolResult.Error
// so the model can recover; a returned error aborts the run.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

func BuildForAgent(vessels contractx.VesselDirectory, deadlines contractx.DeadlineLookup) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(vessels, deadlines)
}

func NewExecutor(vessels contractx.VesselDirectory, deadlines contractx.DeadlineLookup) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolGetVesselInfo:
			if vessels == nil {
				return fallback(ctx, tool, args)
			}
			return executeVesselInfo(ctx, vessels, tool, args)
		case ToolGetVesselDeadlines:
			if deadlines == nil {
				return fallback(ctx, tool, args)
			}
			return executeVesselDeadlines(ctx, deadlines, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable", tool),
		}, nil
	}
}

// Infos describes the vessel tools. Deadlines need an IMO number, so the
// resolver is meant to run first whenever only a vessel name is known.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetVesselInfo,
			Desc: "Retrieves the IMO number of a Maersk vessel. Use it when the user gives a vessel name instead of an IMO number.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				argVesselName: {Type: schema.String, Desc: "Name of the vessel", Required: true},
			}),
		},
		{
			Name: ToolGetVesselDeadlines,
			Desc: "Retrieves shipment deadlines for a specific Maersk vessel voyage. Call it after the IMO number of the vessel is known.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				argISOCountryCode:  {Type: schema.String, Desc: "ISO 3166-1 alpha-2 country code of the port of load", Required: true},
				argPortOfLoad:      {Type: schema.String, Desc: "Name or code of the loading port", Required: true},
				argVesselIMONumber: {Type: schema.String, Desc: "IMO number of the vessel", Required: true},
				argVoyage:          {Type: schema.String, Desc: "Voyage identifier for the sailing", Required: true},
			}),
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return value, nil
}
