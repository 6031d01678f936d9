package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	reportHandler "github.com/yufj-331/ordershare/internal/http/report"
	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/report"
	"github.com/yufj-331/ordershare/internal/sales"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := report.NewMockSource(ctrl)

	src.EXPECT().FetchSales(gomock.Any()).Return([]*sales.Sale{
		{
			ID:           "S1",
			CustomerName: "Acme",
			ProductName:  "Widget",
			Quantity:     2,
			PricePerUnit: decimal.NewFromInt(10),
			TotalAmount:  decimal.NewFromInt(20),
			CreatedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           "S2",
			CustomerName: "Globex",
			ProductName:  "Gadget",
			Quantity:     1,
			PricePerUnit: decimal.NewFromInt(99),
			TotalAmount:  decimal.NewFromInt(99),
			CreatedAt:    time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		},
	}, nil).AnyTimes()
	src.EXPECT().FetchIncomes(gomock.Any()).Return([]*income.Income{
		{ID: 1, SalesOrderID: "S1", BankOrBill: "bank", Amount: decimal.NewFromInt(15), CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}, nil).AnyTimes()
	src.EXPECT().FetchInvoices(gomock.Any()).Return([]*invoice.Invoice{}, nil).AnyTimes()

	svc := report.NewService(src, report.WithLocation(time.UTC))

	r := chi.NewRouter()
	reportHandler.NewHandler(svc).Routes(r)

	return r
}

func TestHandler_Overview(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantIDs    []string
	}

	tests := []testCase{
		{
			name:       "EmptyBody",
			body:       "",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"S1", "S2"},
		},
		{
			name:       "CustomerFilter",
			body:       `{"customer_name":"Acme"}`,
			wantStatus: http.StatusOK,
			wantIDs:    []string{"S1"},
		},
		{
			name:       "DateRange",
			body:       `{"date_start":"2024-03-15","date_end":"2024-04-30"}`,
			wantStatus: http.StatusOK,
			wantIDs:    []string{"S2"},
		},
		{
			name:       "NoMatches",
			body:       `{"min_total_amount":1000}`,
			wantStatus: http.StatusOK,
			wantIDs:    []string{},
		},
		{
			name:       "BadDate",
			body:       `{"date_start":"03/15/2024"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/overview", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(t).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantIDs == nil {
				return
			}

			var resp struct {
				Data []report.Record `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Data)

			ids := make([]string, 0, len(resp.Data))
			for _, r := range resp.Data {
				ids = append(ids, r.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestHandler_Overview_EmptyDataIsArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/overview", strings.NewReader(`{"customer_name":"Nobody"}`))
	rec := httptest.NewRecorder()

	newRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestHandler_Download(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/overview/download", strings.NewReader(`{"customer_name":"Acme"}`))
	rec := httptest.NewRecorder()

	newRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MIMEType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report_overview.xlsx", rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, report.Columns, rows[0])
	assert.Equal(t, "S1", rows[1][0])
}
