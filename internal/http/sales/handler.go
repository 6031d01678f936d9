package sales

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/auth"
	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/importer"
	"github.com/yufj-331/ordershare/internal/sales"
)

type Handler struct {
	svc       *sales.Service
	importSvc *importer.Service
	maxUpload int64
}

func NewHandler(svc *sales.Service, importSvc *importer.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, importSvc: importSvc, maxUpload: maxUpload}
}

// Routes registers the sales endpoints. require wraps a handler with a
// capability check.
func (h *Handler) Routes(r chi.Router, require func(auth.Capability) func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(require(auth.SalesRead))
		r.Get("/", h.list)
		r.Get("/filter", h.filter)
		r.Get("/{id}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(require(auth.SalesWrite))
		r.Post("/", h.create)
		r.Post("/import", h.importFile)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sales.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sales.ErrInvalidQuantity),
		errors.Is(err, sales.ErrInvalidPrice),
		errors.Is(err, sales.ErrInvalidID),
		errors.Is(err, sales.ErrDuplicateID):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httputil.Internal(w, r, err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.All(r.Context())
	if err != nil {
		httputil.Internal(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponseList(list))
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, errors.New("invalid integer " + strconv.Quote(s))
	}

	return &n, nil
}

func parseFilter(r *http.Request) (sales.ListFilter, error) {
	q := r.URL.Query()

	filter := sales.ListFilter{
		CustomerName:     httputil.Optional(q.Get("customer_name")),
		CustomerNameLike: q.Get("customer_name_like") == "true",
		ProductName:      httputil.Optional(q.Get("product_name")),
		ProductNameLike:  q.Get("product_name_like") == "true",
	}

	var err error

	if filter.QuantityMin, err = parseOptionalInt(q.Get("quantity_min")); err != nil {
		return filter, err
	}

	if filter.QuantityMax, err = parseOptionalInt(q.Get("quantity_max")); err != nil {
		return filter, err
	}

	if filter.PriceMin, err = httputil.ParseDecimal(q.Get("price_min")); err != nil {
		return filter, err
	}

	if filter.PriceMax, err = httputil.ParseDecimal(q.Get("price_max")); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
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
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(s))
}

type createSaleRequest struct {
	ID           string          `json:"id" validate:"max=16"`
	CustomerName string          `json:"customer_name" validate:"required,max=255"`
	ProductName  string          `json:"product_name" validate:"required,max=255"`
	Quantity     int             `json:"quantity" validate:"gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"gt=0"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.svc.Create(r.Context(), sales.CreateParams{
		ID:           req.ID,
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toResponse(s))
}

type updateSaleRequest struct {
	CustomerName string          `json:"customer_name" validate:"required,max=255"`
	ProductName  string          `json:"product_name" validate:"required,max=255"`
	Quantity     int             `json:"quantity" validate:"gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"gt=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSaleRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), sales.UpdateParams{
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "sales order deleted")
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	file, filename, err := httputil.FormFile(w, r, h.maxUpload)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	rows, warnings, err := h.importSvc.Sales(filename, file)
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
		httputil.WriteImportFailure(w, sales.ErrNothingImported.Error(), warnings)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated,
		httputil.NewImportResponse("sales orders", toResponseList(result.Imported), warnings))
}
