package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agentstation/boxoffice/internal/server/response"
	"github.com/agentstation/boxoffice/internal/utils/ptr"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// TransactionRequest is the body of POST /sales and POST /cancellations.
type TransactionRequest struct {
	Client   string `json:"client"`
	Event    string `json:"event"`
	Quantity int    `json:"quantity"`
}

// TransactionResult is returned for an applied transaction.
type TransactionResult struct {
	Client   string `json:"client"`
	Event    string `json:"event"`
	Quantity int    `json:"quantity"`
	Held     *int   `json:"held,omitempty"`
}

// HandleSell handles POST /api/v1/sales.
func (h *Handlers) HandleSell(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	held, err := h.bo.SellByName(req.Client, req.Event, req.Quantity)
	if err != nil {
		h.rejected(r, "sell", req, err)
		response.ErrorFromType(w, err)
		return
	}

	response.Created(w, TransactionResult{
		Client:   req.Client,
		Event:    req.Event,
		Quantity: req.Quantity,
		Held:     ptr.To(held),
	})
}

// HandleCancel handles POST /api/v1/cancellations.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.bo.CancelByName(req.Client, req.Event, req.Quantity); err != nil {
		h.rejected(r, "cancel", req, err)
		response.ErrorFromType(w, err)
		return
	}

	response.Created(w, TransactionResult{
		Client:   req.Client,
		Event:    req.Event,
		Quantity: req.Quantity,
	})
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request) (TransactionRequest, bool) {
	var req TransactionRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return req, false
	}

	req.Client = strings.Join(strings.Fields(req.Client), " ")
	req.Event = strings.TrimSpace(req.Event)

	switch {
	case req.Client == "":
		response.ErrorFromType(w, errors.NewValidationError("client", req.Client, "cannot be empty"))
		return req, false
	case req.Event == "":
		response.ErrorFromType(w, errors.NewValidationError("event", req.Event, "cannot be empty"))
		return req, false
	}
	return req, true
}

func (h *Handlers) rejected(r *http.Request, op string, req TransactionRequest, err error) {
	ctx := logging.WithOperation(r.Context(), op)
	ctx = logging.WithClient(ctx, req.Client)
	ctx = logging.WithEvent(ctx, req.Event)
	logging.FromContext(ctx).Debug().Err(err).Int("quantity", req.Quantity).Msg("Transaction rejected")
}
