package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaamsetu/gigwork-backend/api/responses"
	"github.com/kaamsetu/gigwork-backend/api/validators"
	"github.com/kaamsetu/gigwork-backend/internal/jobs"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
)

// BidPlace lets a worker bid on an open job.
func BidPlace(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body jobs.PlaceBidRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PlaceBid(r.Context(), workerID, chi.URLParam(r, "id"), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// BidAccept lets the job owner hire one of the bidding workers. The job
// moves to ongoing and every other active bid is rejected.
func BidAccept(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ownerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AcceptBid(r.Context(), ownerID, chi.URLParam(r, "id"), chi.URLParam(r, "bidId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// JobComplete marks an ongoing job as completed. Owner only.
func JobComplete(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ownerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Complete(r.Context(), ownerID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
