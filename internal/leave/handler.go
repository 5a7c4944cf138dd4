package leave

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/transport"
	"github.com/technova/leave-management/pkg/logger"
)

type ServiceAPI interface {
	ListForCaller(caller *internal.Caller) (*ListResult, error)
	CreateLeave(caller *internal.Caller, dto CreateLeaveDTO) (*LeaveRequest, error)
	GetLeave(id int64, caller *internal.Caller) (*LeaveRequest, error)
	UpdateLeave(id int64, caller *internal.Caller, dto UpdateLeaveDTO) (*LeaveRequest, error)
	CancelLeave(id int64, caller *internal.Caller) error
	ApproveLeave(id int64, caller *internal.Caller) error
	RejectLeave(id int64, caller *internal.Caller) error
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

func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	result, err := h.Service.ListForCaller(caller)
	if err != nil {
		h.Logger.Error("ListLeaves: service error", "error", err, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var dto CreateLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLeave(caller, dto)
	if err != nil {
		h.Logger.Error("CreateLeave: service error", "error", err, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateLeave: leave request submitted",
		"leave_id", l.LeaveID,
		"employee_id", l.EmployeeID)

	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.GetLeave(id, caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	var dto UpdateLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.UpdateLeave(id, caller, dto)
	if err != nil {
		h.Logger.Error("UpdateLeave: service error", "error", err, "leave_id", id, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	if err := h.Service.CancelLeave(id, caller); err != nil {
		h.Logger.Error("CancelLeave: service error", "error", err, "leave_id", id, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "approved", func(id int64, caller *internal.Caller) error {
		return h.Service.ApproveLeave(id, caller)
	})
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "rejected", func(id int64, caller *internal.Caller) error {
		return h.Service.RejectLeave(id, caller)
	})
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, result string, op func(int64, *internal.Caller) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	if err := op(id, caller); err != nil {
		h.Logger.Error("leave status change failed", "error", err, "leave_id", id, "account_id", caller.AccountID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": result})
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*internal.Caller, bool) {
	caller, ok := internal.CallerFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("caller not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return caller, true
}

func (h *Handler) leaveID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid leave ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid leave ID")
		return 0, false
	}
	return id, true
}
