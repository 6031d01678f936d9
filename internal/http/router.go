package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yufj-331/ordershare/internal/auth"
	authHandler "github.com/yufj-331/ordershare/internal/http/auth"
	"github.com/yufj-331/ordershare/internal/http/httputil"
	incomeHandler "github.com/yufj-331/ordershare/internal/http/income"
	invoiceHandler "github.com/yufj-331/ordershare/internal/http/invoice"
	authMiddleware "github.com/yufj-331/ordershare/internal/http/middleware"
	reportHandler "github.com/yufj-331/ordershare/internal/http/report"
	salesHandler "github.com/yufj-331/ordershare/internal/http/sales"
)

// Pinger reports database reachability for /db_test.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	AppName        string
	AllowedOrigins []string

	Authenticator *authMiddleware.Authenticator
	DB            Pinger

	Auth    *authHandler.Handler
	Sales   *salesHandler.Handler
	Income  *incomeHandler.Handler
	Invoice *invoiceHandler.Handler
	Report  *reportHandler.Handler
}

func New(d Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", greeting(d.AppName))
	router.Get("/db_test", dbTest(d.DB))

	router.Route("/auth", func(r chi.Router) {
		d.Auth.PublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(d.Authenticator.Authenticate)
			r.Use(d.Authenticator.Require(auth.ManageUser))
			d.Auth.AdminRoutes(r)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(d.Authenticator.Authenticate)

		r.Route("/sales/sales", func(r chi.Router) {
			d.Sales.Routes(r, d.Authenticator.Require)
		})

		r.Route("/income/incomes", func(r chi.Router) {
			r.Use(d.Authenticator.Require(auth.Income))
			d.Income.Routes(r)
		})

		r.Route("/invoice/invoices", func(r chi.Router) {
			r.Use(d.Authenticator.Require(auth.Invoice))
			d.Invoice.Routes(r)
		})

		r.Route("/report", func(r chi.Router) {
			r.Use(d.Authenticator.Require(auth.Report))
			d.Report.Routes(r)
		})
	})

	return router
}

func greeting(appName string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusOK, "Welcome to "+appName)
	}
}

type dbStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func dbTest(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "database ping failed", "error", err)
			httputil.WriteJSON(w, http.StatusOK, dbStatus{Status: "fail", Error: err.Error()})

			return
		}

		httputil.WriteJSON(w, http.StatusOK, dbStatus{Status: "success"})
	}
}
