package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"splitmate/pkg/response"
)

// Handler handles HTTP requests for balance and settlement-plan reads
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GetGroupBalances)
	r.Get("/group/{groupId}/plan", h.GetSettlementPlan)

	return r
}

// TransferResponse is one recommended payment in a settlement plan
type TransferResponse struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount string    `json:"amount"`
}

// GetGroupBalances handles GET /balances/group/{groupId}
// @Summary      Get group balances
// @Description  Compute each member's net balance from the group's full expense and settlement history
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	sheet, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		response.FromAppError(w, err)
		return
	}

	balances := make(map[string]string, len(sheet.Balances))
	for _, b := range sheet.Balances {
		balances[b.UserID.String()] = b.Amount.String()
	}

	var meta *response.Meta
	if sheet.Drift != 0 {
		meta = &response.Meta{Warning: "balances do not sum to zero; drift " + sheet.Drift.String()}
	}
	response.JSONWithMeta(w, http.StatusOK, balances, meta)
}

// GetSettlementPlan handles GET /balances/group/{groupId}/plan
// @Summary      Get settlement plan
// @Description  Reduce the group's balances to a short list of transfers that settles all debts
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {array} TransferResponse
// @Failure      400 {object} response.APIResponse
// @Router       /balances/group/{groupId}/plan [get]
func (h *Handler) GetSettlementPlan(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		response.BadRequest(w, "invalid group ID")
		return
	}

	plan, err := h.service.SettlementPlan(r.Context(), groupID)
	if err != nil {
		response.FromAppError(w, err)
		return
	}

	transfers := make([]TransferResponse, 0, len(plan.Transfers))
	for _, t := range plan.Transfers {
		transfers = append(transfers, TransferResponse{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.String(),
		})
	}

	var meta *response.Meta
	if plan.Residual != 0 {
		meta = &response.Meta{Warning: "plan left a residual balance of " + plan.Residual.String()}
	}
	response.JSONWithMeta(w, http.StatusOK, transfers, meta)
}
