package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devconnect/devconnect-api/internal/api/middleware"
	"github.com/devconnect/devconnect-api/internal/domain"
	"github.com/devconnect/devconnect-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	githubService  *service.GithubService
}

func NewProfileHandler(profileService *service.ProfileService, githubService *service.GithubService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		githubService:  githubService,
	}
}

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		serverError(w, "ProfileHandler.Me", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Upsert handles POST /api/profile: create the caller's profile or update it
// in place.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid request body"})
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, service.UpsertProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		serverError(w, "ProfileHandler.Upsert", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListAll(r.Context())
	if err != nil {
		serverError(w, "ProfileHandler.List", err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// GetByUserID handles GET /api/profile/user/{userID}.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "Profile not found")
			return
		}
		serverError(w, "ProfileHandler.GetByUserID", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profile: removes the caller's profile and user.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.profileService.Delete(r.Context(), userID); err != nil {
		serverError(w, "ProfileHandler.Delete", err)
		return
	}

	writeMsg(w, http.StatusOK, "User deleted")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid request body"})
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userID, domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.respondMutationError(w, "ProfileHandler.AddExperience", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{entryID}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	profile, err := h.profileService.RemoveExperience(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		h.respondMutationError(w, "ProfileHandler.RemoveExperience", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid request body"})
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), userID, domain.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.respondMutationError(w, "ProfileHandler.AddEducation", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{entryID}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	profile, err := h.profileService.RemoveEducation(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		h.respondMutationError(w, "ProfileHandler.RemoveEducation", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GithubRepos handles GET /api/profile/github/{username}.
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.githubService.ReposFor(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, service.ErrNoGithubProfile) {
			writeMsg(w, http.StatusNotFound, "No Github profile found")
			return
		}
		serverError(w, "ProfileHandler.GithubRepos", err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

func (h *ProfileHandler) respondMutationError(w http.ResponseWriter, tag string, err error) {
	if writeValidationError(w, err) {
		return
	}
	if errors.Is(err, service.ErrProfileNotFound) {
		writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
		return
	}
	serverError(w, tag, err)
}
