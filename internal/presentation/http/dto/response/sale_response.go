package response

import (
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
)

// RollupResponse is the body of POST /sales/daily/sendToMonthly. When nothing
// was closed today only the message is present.
type RollupResponse struct {
	Message     string              `json:"message"`
	TotalAmount *float64            `json:"totalAmount,omitempty"`
	Monthly     *entity.MonthlySale `json:"monthly,omitempty"`
}

// NewRollupResponse converts a rollup result to its wire form
func NewRollupResponse(res *service.RollupResult) RollupResponse {
	if !res.Sent {
		return RollupResponse{Message: service.MsgNothingToRoll}
	}
	total := res.TotalAmount.InexactFloat64()
	return RollupResponse{
		Message:     service.MsgRolledUp,
		TotalAmount: &total,
		Monthly:     res.Monthly,
	}
}
