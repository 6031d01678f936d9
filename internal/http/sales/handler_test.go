package sales_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yufj-331/ordershare/internal/auth"
	salesHandler "github.com/yufj-331/ordershare/internal/http/sales"
	"github.com/yufj-331/ordershare/internal/importer"
	"github.com/yufj-331/ordershare/internal/sales"
)

func allowAll(auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newRouter(t *testing.T) (http.Handler, *sales.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := sales.NewMockRepository(ctrl)

	h := salesHandler.NewHandler(sales.NewService(repo), importer.NewService(time.UTC), 1<<20)

	r := chi.NewRouter()
	h.Routes(r, allowAll)

	return r, repo
}

func uploadRequest(t *testing.T, filename, body string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *sales.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"id":"S1","customer_name":"Acme","product_name":"Widget","quantity":3,"price_per_unit":"12.5"}`,
			setupMock: func(m *sales.MockRepository) {
				m.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"total_amount":37.5`,
		},
		{
			name:       "ZeroQuantity",
			body:       `{"customer_name":"Acme","product_name":"Widget","quantity":0,"price_per_unit":"1"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "quantity",
		},
		{
			name:       "MalformedJSON",
			body:       `{"customer_name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateID",
			body: `{"id":"S1","customer_name":"Acme","product_name":"Widget","quantity":1,"price_per_unit":"1"}`,
			setupMock: func(m *sales.MockRepository) {
				m.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(sales.ErrDuplicateID)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   sales.ErrDuplicateID.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	router, repo := newRouter(t)
	repo.EXPECT().GetSale(gomock.Any(), "missing").Return(nil, sales.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"sales order not found"}`, rec.Body.String())
}

func TestHandler_Import(t *testing.T) {
	t.Run("PartialSuccess", func(t *testing.T) {
		router, repo := newRouter(t)
		repo.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil)

		csv := "customer_name,product_name,quantity,price_per_unit\n" +
			"Acme,Widget,2,5\n" +
			"Acme,Widget,abc,5\n"

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "sales.csv", csv))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Count    int      `json:"imported_count"`
			Warnings []string `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "row 3")
	})

	t.Run("NothingImported", func(t *testing.T) {
		router, _ := newRouter(t)

		csv := "customer_name,product_name,quantity,price_per_unit\n" +
			"Acme,Widget,0,5\n"

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "sales.csv", csv))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), sales.ErrNothingImported.Error())
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "sales.txt", "x"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingColumns", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "sales.csv", "customer_name\nAcme\n"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "product_name")
	})
}
