package controllers

import (
	"net/http"

	"github.com/rahulnair-dev/vastra-backend/api/responses"
	"github.com/rahulnair-dev/vastra-backend/api/validators"
	"github.com/rahulnair-dev/vastra-backend/internal/checkout"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
	"github.com/rahulnair-dev/vastra-backend/pkg/logger"
)

// Checkout converts the caller's cart into an order in one transaction.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkout.PlaceOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.PlaceOrder(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}
