package income

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/importer"
	"github.com/yufj-331/ordershare/internal/income"
)

type Handler struct {
	svc       *income.Service
	importSvc *importer.Service
	maxUpload int64
	loc       *time.Location
}

// NewHandler builds the handler. Request dates are read as wall time in loc.
func NewHandler(svc *income.Service, importSvc *importer.Service, maxUpload int64, loc *time.Location) *Handler {
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
	case errors.Is(err, income.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, income.ErrSaleNotFound), errors.Is(err, income.ErrInvalidAmount):
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

	httputil.WriteJSON(w, http.StatusOK, toResponseList(list))
}

func parseFilter(r *http.Request, loc *time.Location) (income.ListFilter, error) {
	q := r.URL.Query()

	filter := income.ListFilter{
		SalesOrderID: httputil.Optional(q.Get("sales_order_id")),
		BankOrBill:   httputil.Optional(q.Get("bankorbill")),
		Description:  httputil.Optional(q.Get("description")),
	}

	var err error

	if filter.Amount, err = httputil.ParseDecimal(q.Get("amount")); err != nil {
		return filter, err
	}

	if filter.StartDate, err = httputil.ParseDateIn(q.Get("start_date"), loc); err != nil {
		return filter, err
	}

	end, err := httputil.ParseDateIn(q.Get("end_date"), loc)
	if err != nil {
		return filter, err
	}

	filter.EndDate = httputil.EndOfDay(end)

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

	httputil.WriteJSON(w, http.StatusOK, toResponseList(list))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(in))
}

type createIncomeRequest struct {
	SalesOrderID string          `json:"sales_order_id" validate:"required,max=16"`
	BankOrBill   string          `json:"bankorbill" validate:"required,max=255"`
	Amount       decimal.Decimal `json:"amount" validate:"gt=0"`
	Description  *string         `json:"description" validate:"omitempty,max=255"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.svc.Create(r.Context(), income.CreateParams{
		SalesOrderID: req.SalesOrderID,
		BankOrBill:   req.BankOrBill,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toResponse(in))
}

type updateIncomeRequest struct {
	SalesOrderID *string          `json:"sales_order_id" validate:"omitempty,max=16"`
	BankOrBill   *string          `json:"bankorbill" validate:"omitempty,max=255"`
	Amount       *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Description  *string          `json:"description" validate:"omitempty,max=255"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateIncomeRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := h.svc.Update(r.Context(), id, income.UpdateParams{
		SalesOrderID: req.SalesOrderID,
		BankOrBill:   req.BankOrBill,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(in))
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

	httputil.WriteMessage(w, http.StatusOK, "income order deleted")
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	file, filename, err := httputil.FormFile(w, r, h.maxUpload)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	rows, warnings, err := h.importSvc.Incomes(filename, file)
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
		httputil.WriteImportFailure(w, income.ErrNothingImported.Error(), warnings)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated,
		httputil.NewImportResponse("income orders", toResponseList(result.Imported), warnings))
}
