package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaamsetu/gigwork-backend/api/responses"
	"github.com/kaamsetu/gigwork-backend/api/validators"
	"github.com/kaamsetu/gigwork-backend/internal/profiles"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
)

// WorkerProfileUpdate patches the authenticated worker's account and profile
// in one call. The request is either plain JSON or a multipart form with a
// "formData" JSON part and an optional "profileImage" file.
func WorkerProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profiles.UpdateWorkerProfileRequest
		file, err := validators.DecodeMultipartBody(r, "formData", "profileImage", &body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var image *profiles.ImageUpload
		if file != nil {
			defer file.Body.Close()
			image = &profiles.ImageUpload{Filename: file.Filename, Body: file.Body}
		}

		result, err := svc.UpdateWorkerProfile(r.Context(), accountID, body, image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProfileComplete reports whether an account has finished onboarding.
func ProfileComplete(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.IsProfileComplete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
