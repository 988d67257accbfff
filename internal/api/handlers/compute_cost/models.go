package compute_cost

import "github.com/m04kA/SMC-SalonService/internal/api/handlers"

// ComputeCostResponse HTTP response model. Cost is null when the stylist has no usable employment terms.
type ComputeCostResponse struct {
	Cost *handlers.CostResponse `json:"cost"`
}
