package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yufj-331/ordershare/internal/auth"
	"github.com/yufj-331/ordershare/internal/config"
	"github.com/yufj-331/ordershare/internal/database"
	orderHttp "github.com/yufj-331/ordershare/internal/http"
	authHandler "github.com/yufj-331/ordershare/internal/http/auth"
	incomeHandler "github.com/yufj-331/ordershare/internal/http/income"
	invoiceHandler "github.com/yufj-331/ordershare/internal/http/invoice"
	"github.com/yufj-331/ordershare/internal/http/middleware"
	reportHandler "github.com/yufj-331/ordershare/internal/http/report"
	salesHandler "github.com/yufj-331/ordershare/internal/http/sales"
	"github.com/yufj-331/ordershare/internal/importer"
	"github.com/yufj-331/ordershare/internal/income"
	incomeStore "github.com/yufj-331/ordershare/internal/income/store"
	"github.com/yufj-331/ordershare/internal/invoice"
	invoiceStore "github.com/yufj-331/ordershare/internal/invoice/store"
	"github.com/yufj-331/ordershare/internal/report"
	"github.com/yufj-331/ordershare/internal/sales"
	salesStore "github.com/yufj-331/ordershare/internal/sales/store"
	"github.com/yufj-331/ordershare/internal/user"
	userStore "github.com/yufj-331/ordershare/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid report timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		salesService   = sales.NewService(salesStore.New(db))
		incomeService  = income.NewService(incomeStore.New(db))
		invoiceService = invoice.NewService(invoiceStore.New(db))
		userService    = user.NewService(userStore.New(db))
		importService  = importer.NewService(loc)
		reportService  = report.NewService(report.ServiceSource{
			Sales:    salesService,
			Incomes:  incomeService,
			Invoices: invoiceService,
		}, report.WithLocation(loc))
	)

	if err := userService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		slog.Error("failed to create bootstrap admin", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	maxUpload := cfg.Import.MaxUploadBytes

	router := orderHttp.New(orderHttp.Deps{
		AppName:        cfg.App.Name,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Authenticator:  middleware.NewAuthenticator(tokens, userService, auth.DefaultPolicy()),
		DB:             db,
		Auth:           authHandler.NewHandler(userService, tokens),
		Sales:          salesHandler.NewHandler(salesService, importService, maxUpload),
		Income:         incomeHandler.NewHandler(incomeService, importService, maxUpload, loc),
		Invoice:        invoiceHandler.NewHandler(invoiceService, importService, maxUpload, loc),
		Report:         reportHandler.NewHandler(reportService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
