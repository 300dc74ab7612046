package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
	accountService *services.AccountService
	github         *services.GithubClient
}

func NewProfileHandler(
	profileService services.ProfileService,
	accountService *services.AccountService,
	github *services.GithubClient,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		accountService: accountService,
		github:         github,
	}
}

// Me returns the authenticated user's own profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.GetByUserID(ctx, userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("There is no profile for this user"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// Upsert creates or updates the authenticated user's profile.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.Upsert(ctx, userID, &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// List returns every profile. Public.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profiles, err := h.profileService.List(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list profiles"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profiles))
}

// GetByUserID returns the profile owned by the given user. Public.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.GetByUserID(ctx, userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// DeleteAccount removes the authenticated user's profile and account. Posts
// survive the deletion.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	if err := h.accountService.Delete(ctx, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewMessageResponse("User deleted"))
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.AddExperience(ctx, userID, &req)
	if err != nil {
		h.writeSubItemError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	expID := chi.URLParam(r, "expID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.RemoveExperience(ctx, userID, expID)
	if err != nil {
		h.writeSubItemError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.AddEducation(ctx, userID, &req)
	if err != nil {
		h.writeSubItemError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	eduID := chi.URLParam(r, "eduID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profileService.RemoveEducation(ctx, userID, eduID)
	if err != nil {
		h.writeSubItemError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// Github proxies the user's five most recently created repositories. Public.
func (h *ProfileHandler) Github(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	repos, err := h.github.Repos(ctx, username)
	if err != nil {
		if err == services.ErrGithubUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("No GitHub user found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to fetch repositories"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(repos))
}

func (h *ProfileHandler) writeSubItemError(w http.ResponseWriter, err error) {
	switch err {
	case services.ErrProfileNotFound:
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("There is no profile for this user"))
	case services.ErrExperienceNotFound:
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Experience entry not found"))
	case services.ErrEducationNotFound:
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Education entry not found"))
	default:
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
	}
}
