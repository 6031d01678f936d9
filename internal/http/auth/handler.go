package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yufj-331/ordershare/internal/auth"
	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/user"
)

type Handler struct {
	users  *user.Service
	tokens *auth.Issuer
}

func NewHandler(users *user.Service, tokens *auth.Issuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// PublicRoutes are reachable without a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

// AdminRoutes expect the caller to hold auth.ManageUser.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/create_user", h.createUser)
	r.Delete("/delete_user/{username}", h.deleteUser)
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	UserType  user.Role `json:"user_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		UserType:  u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	Message     string       `json:"message"`
	User        userResponse `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	if username == "" || password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, user.ErrInactive):
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.Internal(w, r, err)
		}

		return
	}

	token, err := h.tokens.Issue(u.Username)
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "user logged in", "username", u.Username, "role", u.Role)

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Message:     "login successful",
		User:        toUserResponse(u),
	})
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.Create(r.Context(), user.CreateParams{
		Username: req.Username,
		Password: req.Password,
		Role:     req.UserType,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole),
			errors.Is(err, user.ErrUsernameTaken),
			errors.Is(err, user.ErrEmptyUsername),
			errors.Is(err, user.ErrEmptyPassword):
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.Internal(w, r, err)
		}

		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.users.Delete(r.Context(), username); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, err.Error())
			return
		}

		httputil.Internal(w, r, err)

		return
	}

	httputil.WriteMessage(w, http.StatusOK, "user "+username+" deleted")
}
