package report

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/overview", h.overview)
	r.Post("/overview/download", h.download)
}

type filterRequest struct {
	CustomerName   *string          `json:"customer_name"`
	ProductName    *string          `json:"product_name"`
	DateStart      *string          `json:"date_start"`
	DateEnd        *string          `json:"date_end"`
	MinTotalAmount *decimal.Decimal `json:"min_total_amount"`
	MaxTotalAmount *decimal.Decimal `json:"max_total_amount"`
}

// decodeFilter accepts an empty body as "no constraints". Only the shape of
// each bound is checked; inverted ranges pass through.
func decodeFilter(r *http.Request) (report.Filter, error) {
	var req filterRequest
	if err := httputil.DecodeJSON(r, &req, true); err != nil {
		return report.Filter{}, err
	}

	f := report.Filter{
		CustomerName:   req.CustomerName,
		ProductName:    req.ProductName,
		MinTotalAmount: req.MinTotalAmount,
		MaxTotalAmount: req.MaxTotalAmount,
	}

	var err error

	if req.DateStart != nil {
		if f.DateStart, err = httputil.ParseDate(*req.DateStart); err != nil {
			return report.Filter{}, err
		}
	}

	if req.DateEnd != nil {
		if f.DateEnd, err = httputil.ParseDate(*req.DateEnd); err != nil {
			return report.Filter{}, err
		}
	}

	return f, nil
}

type overviewResponse struct {
	Data []report.Record `json:"data"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFilter(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.svc.Records(r.Context(), f)
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, overviewResponse{Data: records})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFilter(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteSpreadsheet(r.Context(), f, &buf); err != nil {
		httputil.Internal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.MIMEType)
	w.Header().Set("Content-Disposition", "attachment; filename="+report.FileName)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	_, _ = buf.WriteTo(w)
}
