package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/transport"
	"github.com/technova/leave-management/pkg/logger"
)

type ServiceAPI interface {
	ViewForCaller(caller *internal.Caller) (*View, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := internal.CallerFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("GetDashboard: caller not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.Service.ViewForCaller(caller)
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}
