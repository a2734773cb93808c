package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/repository"
	"github.com/payam/backend/internal/service"
	"github.com/payam/backend/pkg/auth"
)

const maxMessageLength = 5000

// SubmissionHandler handles the public contact form and the admin review
// endpoints.
type SubmissionHandler struct {
	submissions service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler with the given service.
func NewSubmissionHandler(submissions service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// name, email, subject and message are required; phone is optional;
// message max 5000 chars.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	switch {
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "name_required")
		return
	case req.Email == "":
		writeError(w, http.StatusBadRequest, "email_required")
		return
	case req.Subject == "":
		writeError(w, http.StatusBadRequest, "subject_required")
		return
	case req.Message == "":
		writeError(w, http.StatusBadRequest, "message_required")
		return
	case len([]rune(req.Message)) > maxMessageLength:
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	sub := &model.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.submissions.Submit(r.Context(), sub); err != nil {
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	submissionsCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
}

// adminListResponse is the JSON response for GET /api/admin/submissions.
type adminListResponse struct {
	Submissions []*model.Submission `json:"submissions"`
}

// AdminList handles GET /api/admin/submissions (admin-only, enforced by
// middleware). Query params: status (all/pending/reviewed), sort
// (created_at/name/subject), order (asc/desc).
func (h *SubmissionHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.SubmissionListOptions{
		SortBy:       model.SortBy(q.Get("sort")),
		SortOrder:    model.SortOrder(q.Get("order")),
		StatusFilter: model.StatusFilter(q.Get("status")),
	}
	if v := q.Get("sort"); v != "" && !opts.SortBy.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_sort")
		return
	}
	if v := q.Get("order"); v != "" && !opts.SortOrder.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_order")
		return
	}
	if v := q.Get("status"); v != "" && !opts.StatusFilter.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	subs, err := h.submissions.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.Submission{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Submissions: subs})
}

// updateStatusRequest is the expected JSON body for the status PATCH.
type updateStatusRequest struct {
	Status model.Status `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/submissions/{id}/status. The acting
// admin comes from the session context and becomes reviewed_by when the new
// status is reviewed.
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.ProfileIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.submissions.UpdateStatus(r.Context(), id, req.Status, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		if _, ok := service.AsValidation(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}

	statusUpdates.WithLabelValues(string(req.Status)).Inc()
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}
