package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kaamsetu/gigwork-backend/api/middleware"
	"github.com/kaamsetu/gigwork-backend/api/responses"
	"github.com/kaamsetu/gigwork-backend/api/validators"
	"github.com/kaamsetu/gigwork-backend/internal/jobs"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
)

// JobCreate posts a new job owned by the authenticated account.
func JobCreate(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body jobs.CreateJobRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), ownerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// JobSearch filters open jobs by category, location, budget and urgency.
func JobSearch(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budgetMin, err := validators.ParseQueryDecimal(r, "budget_min")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		budgetMax, err := validators.ParseQueryDecimal(r, "budget_max")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		criteria := jobs.SearchCriteria{
			Categories: validators.ParseQueryCSV(r, "category"),
			Location:   strings.TrimSpace(r.URL.Query().Get("location")),
			BudgetMin:  budgetMin,
			BudgetMax:  budgetMax,
			Urgency:    strings.TrimSpace(r.URL.Query().Get("urgency")),
			Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		}

		result, err := svc.Search(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// JobsByCategory lists every open job in one category.
func JobsByCategory(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ByCategory(r.Context(), chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// JobDetail returns the full job with its owner projection and bids.
func JobDetail(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Detail(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.AccountIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid account id")
	}
	return id, nil
}
