package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/yufj-331/ordershare/internal/auth"
	authHandler "github.com/yufj-331/ordershare/internal/http/auth"
	"github.com/yufj-331/ordershare/internal/user"
)

func newRouter(t *testing.T) (http.Handler, *user.MockRepository, *auth.Issuer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	tokens := auth.NewIssuer("test-secret", time.Hour)

	h := authHandler.NewHandler(user.NewService(repo), tokens)

	r := chi.NewRouter()
	h.PublicRoutes(r)
	h.AdminRoutes(r)

	return r, repo, tokens
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func storedUser(t *testing.T, active bool) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	return &user.User{ID: 1, Username: "alice", HashedPassword: string(hash), Role: user.RoleIncomer, IsActive: active}
}

func TestHandler_Login(t *testing.T) {
	type testCase struct {
		name       string
		req        func() *http.Request
		setupMock  func(t *testing.T, m *user.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "MissingFields",
			req: func() *http.Request {
				return loginRequest("alice", "")
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownUser",
			req: func() *http.Request {
				return loginRequest("ghost", "secret")
			},
			setupMock: func(_ *testing.T, m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "ghost").Return(nil, user.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   user.ErrInvalidCredentials.Error(),
		},
		{
			name: "WrongPassword",
			req: func() *http.Request {
				return loginRequest("alice", "nope")
			},
			setupMock: func(t *testing.T, m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(storedUser(t, true), nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Inactive",
			req: func() *http.Request {
				return loginRequest("alice", "secret")
			},
			setupMock: func(t *testing.T, m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(storedUser(t, false), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   user.ErrInactive.Error(),
		},
		{
			name: "LookupFailure",
			req: func() *http.Request {
				return loginRequest("alice", "secret")
			},
			setupMock: func(_ *testing.T, m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo, _ := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(t, repo)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.req())

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Login_IssuesToken(t *testing.T) {
	router, repo, tokens := newRouter(t)
	repo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(storedUser(t, true), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, loginRequest("alice", "secret"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Username string `json:"username"`
			UserType string `json:"user_type"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "incomer", resp.User.UserType)

	subject, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestHandler_CreateUser(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *user.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"username":"carol","password":"pw","user_type":"Ivoicer"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "carol").Return(nil, user.ErrNotFound)
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = 3
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"user_type":"invoicer"`,
		},
		{
			name:       "InvalidRole",
			body:       `{"username":"carol","password":"pw","user_type":"boss"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   user.ErrInvalidRole.Error(),
		},
		{
			name: "UsernameTaken",
			body: `{"username":"alice","password":"pw","user_type":"saler"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(&user.User{Username: "alice"}, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   user.ErrUsernameTaken.Error(),
		},
		{
			name:       "MissingPassword",
			body:       `{"username":"carol","user_type":"saler"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "password: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo, _ := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/create_user", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_DeleteUser(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		router, repo, _ := newRouter(t)
		repo.EXPECT().DeleteUser(gomock.Any(), "ghost").Return(user.ErrNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delete_user/ghost", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Deleted", func(t *testing.T) {
		router, repo, _ := newRouter(t)
		repo.EXPECT().DeleteUser(gomock.Any(), "bob").Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delete_user/bob", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"user bob deleted"}`, rec.Body.String())
	})
}
