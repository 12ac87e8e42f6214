package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mctasu/vending-machine-service/docs"
	"github.com/mctasu/vending-machine-service/internal/app"
	"github.com/mctasu/vending-machine-service/internal/config"
	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/events"
	"github.com/mctasu/vending-machine-service/internal/handler"
	"github.com/mctasu/vending-machine-service/internal/middleware"
	"github.com/mctasu/vending-machine-service/internal/paymob"
	"github.com/mctasu/vending-machine-service/internal/postgres"
	"github.com/mctasu/vending-machine-service/internal/repo"
	"github.com/mctasu/vending-machine-service/internal/service"
	"github.com/mctasu/vending-machine-service/pkg/cache"
	"github.com/mctasu/vending-machine-service/pkg/trm"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

// @title           Vending Machine API
// @version         1.0
// @description     Catalog, orders and QR payments for self-service vending machines.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to postgres", err)

	txManager := trm.NewManager(db)
	ordersRepo := repo.NewOrdersRepo(db)
	productsRepo := repo.NewProductsRepo(db)
	usersRepo := repo.NewUsersRepo(db)

	catalogCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	gateway := paymob.NewClient(conf.Paymob)
	publisher := events.NewPublisher(conf.Kafka)

	orderService := service.NewOrderService(logger, txManager, ordersRepo, publisher)
	paymentService := service.NewPaymentService(logger, gateway)
	catalogService := service.NewCatalogService(logger, productsRepo, catalogCache)
	authService := service.NewAuthService(logger, usersRepo, conf.JWT)

	admin := adminOnly(authService)

	application := app.New(logger, conf)
	application.SetHTTPHandlers(
		handler.NewOrdersHandler(logger, conf.Env, orderService, admin),
		handler.NewPaymentsHandler(logger, conf.Env, paymentService, orderService),
		handler.NewProductsHandler(logger, conf.Env, catalogService, admin),
		handler.NewAuthHandler(logger, conf.Env, authService),
	)
	application.SetStarters(catalogCache, app.StarterFunc(catalogService.WarmUpCache))
	application.SetClosers(publisher)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	panicIfErr("failed to start application", application.Start(ctx))
	<-ctx.Done()

	if err := application.Stop(); err != nil {
		logger.Error("failed to stop application", slog.Any("error", err))
	}
}

func adminOnly(verifier middleware.TokenVerifier) func(http.Handler) http.Handler {
	authn := middleware.Authenticate(verifier)
	gate := middleware.RequireRole(entities.RoleAdmin)
	return func(next http.Handler) http.Handler {
		return authn(gate(next))
	}
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func panicIfErr(msg string, err error) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
