package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phbpx/leadgate"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const internalErrMsg = "internal server error"

type LeadHandler struct {
	service leadgate.LeadService
	log     *otelzap.SugaredLogger
}

func NewLeadHandler(service leadgate.LeadService, log *otelzap.SugaredLogger) *LeadHandler {
	return &LeadHandler{
		service: service,
		log:     log,
	}
}

type createLeadRequest struct {
	Email string `json:"email"`
}

type createLeadResponse struct {
	Message  string `json:"message"`
	LeadID   string `json:"leadId"`
	Approved bool   `json:"approved"`
}

type setApprovedRequest struct {
	Approved *bool `json:"approved"`
}

type leadResponse struct {
	Lead leadgate.Lead `json:"lead"`
}

type listLeadsResponse struct {
	Leads []leadgate.Lead `json:"leads"`
}

// Create registers an email.
//
//	@Summary		Register an email
//	@Description	Registers an email. Submitting a known email returns the existing lead unchanged.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createLeadRequest	true	"Email to register"
//	@Success		201		{object}	createLeadResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		429		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/leads [post]
func (lh LeadHandler) Create(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createLeadRequest
	if err := decode(r, &req); err != nil {
		lh.log.Ctx(ctx).Infow("Create", "error", err.Error())
		respondMsg(ctx, rw, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	lead, err := lh.service.Create(ctx, req.Email)
	if err != nil {
		lh.fail(rw, r, "Create", err)
		return
	}

	respond(ctx, rw, http.StatusCreated, createLeadResponse{
		Message:  "email registered",
		LeadID:   lead.ID,
		Approved: lead.Approved,
	})
}

// List returns every lead, newest first.
//
//	@Summary		List leads
//	@Tags			Leads
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	listLeadsResponse
//	@Failure		401	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Router			/leads [get]
func (lh LeadHandler) List(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	leads, err := lh.service.List(ctx)
	if err != nil {
		lh.fail(rw, r, "List", err)
		return
	}

	respond(ctx, rw, http.StatusOK, listLeadsResponse{Leads: leads})
}

// GetByID returns one lead.
//
//	@Summary		Get a lead
//	@Tags			Leads
//	@Produce		json
//	@Param			id	path		string	true	"Lead id"
//	@Success		200	{object}	leadResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Router			/leads/{id} [get]
func (lh LeadHandler) GetByID(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lead, err := lh.service.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		lh.fail(rw, r, "GetByID", err)
		return
	}

	respond(ctx, rw, http.StatusOK, leadResponse{Lead: lead})
}

// SetApproved approves a lead or moves it back to pending. It also serves
// PATCH /leads/ so a missing id is reported as a validation error rather
// than a routing one.
//
//	@Summary		Set approval
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Lead id"
//	@Param			request	body		setApprovedRequest	true	"New approval state"
//	@Success		200		{object}	leadResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		401		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/leads/{id} [patch]
func (lh LeadHandler) SetApproved(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondErr(ctx, rw, http.StatusBadRequest, leadgate.ValidationError{Field: "id", Message: "is required"})
		return
	}

	var req setApprovedRequest
	if err := decode(r, &req); err != nil || req.Approved == nil {
		respondMsg(ctx, rw, http.StatusBadRequest, "approved: is required and must be a boolean")
		return
	}

	lead, err := lh.service.SetApproved(ctx, id, *req.Approved)
	if err != nil {
		lh.fail(rw, r, "SetApproved", err)
		return
	}

	respond(ctx, rw, http.StatusOK, leadResponse{Lead: lead})
}

// fail maps service errors onto status codes. Store failures are logged and
// hidden behind a generic message.
func (lh LeadHandler) fail(rw http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()

	var verr leadgate.ValidationError
	switch {
	case errors.As(err, &verr):
		respondErr(ctx, rw, http.StatusBadRequest, verr)
	case errors.Is(err, leadgate.ErrLeadNotFound):
		respondErr(ctx, rw, http.StatusNotFound, leadgate.ErrLeadNotFound)
	default:
		lh.log.Ctx(ctx).Errorw(op, "error", err.Error(), "path", r.URL.Path)
		respondMsg(ctx, rw, http.StatusInternalServerError, internalErrMsg)
	}
}
