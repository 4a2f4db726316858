package contracts

import "Fluxo/internal/domain/dashboard"

type DashboardSingleResponse struct {
	Dashboard *dashboard.DashboardResponse `json:"dashboard"`
}

type ProjectionResponse struct {
	Projection *dashboard.Projection `json:"projection"`
}
