package invoice

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/importer"
	"github.com/yufj-331/ordershare/internal/invoice"
)

type Handler struct {
	svc       *invoice.Service
	importSvc *importer.Service
	maxUpload int64
	loc       *time.Location
}

// NewHandler builds the handler. Request dates are read as wall time in loc.
func NewHandler(svc *invoice.Service, importSvc *importer.Service, maxUpload int64, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}

	return &Handler{svc: svc, importSvc: importSvc, maxUpload: maxUpload, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/filter", h.filter)
	r.Post("/", h.create)
	r.Post("/import", h.importFile)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, invoice.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, invoice.ErrSaleNotFound),
		errors.Is(err, invoice.ErrDuplicateNumber),
		errors.Is(err, invoice.ErrEmptyNumber),
		errors.Is(err, invoice.ErrFutureDate),
		errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrInvalidTax),
		errors.Is(err, invoice.ErrInvalidType):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httputil.Internal(w, r, err)
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}

	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.All(r.Context())
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponseList(list, h.loc))
}

func parseFilter(r *http.Request, loc *time.Location) (invoice.ListFilter, error) {
	q := r.URL.Query()

	filter := invoice.ListFilter{
		SalesOrderID:  httputil.Optional(q.Get("sales_order_id")),
		InvoiceNumber: httputil.Optional(q.Get("invoice_number")),
		InvoiceType:   httputil.Optional(q.Get("invoice_type")),
	}

	var err error

	if filter.AmountMin, err = httputil.ParseDecimal(q.Get("amount_min")); err != nil {
		return filter, err
	}

	if filter.AmountMax, err = httputil.ParseDecimal(q.Get("amount_max")); err != nil {
		return filter, err
	}

	if filter.StartDate, err = httputil.ParseDateIn(q.Get("start_date"), loc); err != nil {
		return filter, err
	}

	if filter.InvoiceDateStart, err = httputil.ParseDateIn(q.Get("invoice_date_start"), loc); err != nil {
		return filter, err
	}

	end, err := httputil.ParseDateIn(q.Get("end_date"), loc)
	if err != nil {
		return filter, err
	}

	filter.EndDate = httputil.EndOfDay(end)

	invoiceEnd, err := httputil.ParseDateIn(q.Get("invoice_date_end"), loc)
	if err != nil {
		return filter, err
	}

	filter.InvoiceDateEnd = httputil.EndOfDay(invoiceEnd)

	return filter, nil
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, h.loc)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponseList(list, h.loc))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(inv, h.loc))
}

type createInvoiceRequest struct {
	SalesOrderID  string           `json:"sales_order_id" validate:"required,max=16"`
	InvoiceNumber string           `json:"invoice_number" validate:"required,max=255"`
	InvoiceDate   string           `json:"invoice_date" validate:"required"`
	Amount        decimal.Decimal  `json:"amount" validate:"gt=0"`
	TaxAmount     *decimal.Decimal `json:"tax_amount" validate:"omitempty,gte=0"`
	InvoiceType   string           `json:"invoice_type" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := httputil.ParseDateIn(req.InvoiceDate, h.loc)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		SalesOrderID:  req.SalesOrderID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   *date,
		Amount:        req.Amount,
		TaxAmount:     req.TaxAmount,
		InvoiceType:   req.InvoiceType,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toResponse(inv, h.loc))
}

type updateInvoiceRequest struct {
	SalesOrderID  *string          `json:"sales_order_id" validate:"omitempty,max=16"`
	InvoiceNumber *string          `json:"invoice_number" validate:"omitempty,max=255"`
	InvoiceDate   *string          `json:"invoice_date" validate:"omitempty"`
	Amount        *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	TaxAmount     *decimal.Decimal `json:"tax_amount" validate:"omitempty,gte=0"`
	InvoiceType   *string          `json:"invoice_type"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateInvoiceRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := invoice.UpdateParams{
		SalesOrderID:  req.SalesOrderID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		TaxAmount:     req.TaxAmount,
		InvoiceType:   req.InvoiceType,
	}

	if req.InvoiceDate != nil {
		if params.InvoiceDate, err = httputil.ParseDateIn(*req.InvoiceDate, h.loc); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	inv, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(inv, h.loc))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "invoice order deleted")
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	file, filename, err := httputil.FormFile(w, r, h.maxUpload)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	rows, warnings, err := h.importSvc.Invoices(filename, file)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Import(r.Context(), rows)
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	warnings = append(warnings, result.Warnings...)

	if len(result.Imported) == 0 {
		httputil.WriteImportFailure(w, invoice.ErrNothingImported.Error(), warnings)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated,
		httputil.NewImportResponse("invoice orders", toResponseList(result.Imported, h.loc), warnings))
}
