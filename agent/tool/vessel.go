package tool

import (
	"context"
	"errors"
	"strings"

	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
	maerskx "github.com/tanpawarit/vessel-deadline-agent/pkg/maersk"
)

const argVesselName = "vessel_name"

func executeVesselInfo(
	ctx context.Context,
	vessels contractx.VesselDirectory,
	tool string,
	args map[string]any,
) (contractx.ToolResult, error) {
	name, err := stringArg(args, argVesselName)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	if strings.TrimSpace(name) == "" {
		return contractx.ToolResult{Tool: tool, Error: argVesselName + " is empty"}, nil
	}

	imo, err := vessels.VesselIMO(ctx, name)
	switch {
	case errors.Is(err, maerskx.ErrVesselNotFound):
		return contractx.ToolResult{
			Tool:  tool,
			Error: "No vessel found with the name " + name + ".",
		}, nil
	case err != nil:
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{
		Tool:   tool,
		Result: imo,
	}, nil
}
