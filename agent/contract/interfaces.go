package contract

import (
	"context"

	maerskx "github.com/tanpawarit/vessel-deadline-agent/pkg/maersk"
)

// Agent answers a single user question. No state survives between calls.
type Agent interface {
	Ask(ctx context.Context, question string) (Reply, error)
}

// VesselDirectory resolves a vessel name to its IMO number.
type VesselDirectory interface {
	VesselIMO(ctx context.Context, vesselName string) (string, error)
}

// DeadlineLookup fetches raw shipment deadline records for a voyage.
type DeadlineLookup interface {
	ShipmentDeadlines(ctx context.Context, q maerskx.DeadlineQuery) ([]maerskx.ShipmentDeadlineSet, error)
}
