package handlers

import (
	"net/http"

	"github.com/Kian-Chen/DSADesign/application/services"
	"github.com/Kian-Chen/DSADesign/interfaces/visual"
	"github.com/Kian-Chen/DSADesign/pkg/common"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SocialHandler handles social graph HTTP requests
type SocialHandler struct {
	social *services.SocialService
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(social *services.SocialService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{social: social, errors: errors, logger: logger}
}

// AddFriendRequest represents the request body for adding a friend
type AddFriendRequest struct {
	FriendID string `json:"friend_id" validate:"required,max=64"`
}

// ListUsers handles GET /users
func (h *SocialHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)
	page, info := common.Paginate(h.social.Users(r.Context()), params)

	common.RespondWithMeta(w, http.StatusOK, page, &common.MetaInfo{
		RequestID:  common.ExtractRequestID(r),
		Pagination: info,
	})
}

// GetUser handles GET /users/{userID}
func (h *SocialHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.social.Profile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// GetFriends handles GET /users/{userID}/friends
func (h *SocialHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.social.Friends(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, friends)
}

// AddFriend handles POST /users/{userID}/friends
func (h *SocialHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req AddFriendRequest
	if err := decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	userID := chi.URLParam(r, "userID")
	if err := h.social.AddFriend(r.Context(), userID, req.FriendID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respondFriends(w, r, userID)
}

// RemoveFriend handles DELETE /users/{userID}/friends/{friendID}
func (h *SocialHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := h.social.RemoveFriend(r.Context(), userID, chi.URLParam(r, "friendID")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respondFriends(w, r, userID)
}

func (h *SocialHandler) respondFriends(w http.ResponseWriter, r *http.Request, userID string) {
	friends, err := h.social.Friends(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, friends)
}

// Recommendations handles GET /users/{userID}/recommendations?max=
func (h *SocialHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	maxCount, err := queryInt(r, "max", 0)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	recs, err := h.social.Recommendations(r.Context(), chi.URLParam(r, "userID"), maxCount)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, recs)
}

// EgoGraph handles GET /users/{userID}/graph
func (h *SocialHandler) EgoGraph(w http.ResponseWriter, r *http.Request) {
	profile, err := h.social.Profile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, visual.NewEgoGraph(profile.User, profile.Friends))
}

// FullGraph handles GET /graph
func (h *SocialHandler) FullGraph(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, visual.NewFullGraph(h.social.Snapshot(r.Context())))
}

// ListGroups handles GET /groups
func (h *SocialHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.social.Groups(r.Context()))
}

// GroupMembers handles GET /groups/{groupID}/members
func (h *SocialHandler) GroupMembers(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.social.GroupMembers(r.Context(), chi.URLParam(r, "groupID")))
}
