package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	"github.com/huum-shop/storefront-api/internal/address"
	"github.com/huum-shop/storefront-api/internal/cart"
	"github.com/huum-shop/storefront-api/internal/catalog"
	"github.com/huum-shop/storefront-api/internal/cep"
	"github.com/huum-shop/storefront-api/internal/checkout"
	"github.com/huum-shop/storefront-api/internal/config"
	"github.com/huum-shop/storefront-api/internal/health"
	"github.com/huum-shop/storefront-api/internal/obs"
	"github.com/huum-shop/storefront-api/internal/ratelimit"
	"github.com/huum-shop/storefront-api/internal/resilience"
	"github.com/huum-shop/storefront-api/internal/shipping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.RegisterDomainMetrics(nil)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Fatal().Err(err).Msg("ping redis")
	}
	cancelPing()

	viaCEPBreaker := resilience.NewBreaker("viacep", cfg.BreakerMaxFailures, cfg.BreakerOpenFor, logger)
	nominatimBreaker := resilience.NewBreaker("nominatim", cfg.BreakerMaxFailures, cfg.BreakerOpenFor, logger)

	viaCEP := cep.ViaCEPClient{
		BaseURL: cfg.ViaCEPBaseURL,
		HTTP:    resilience.NewHTTPClient(cfg.UpstreamTimeout, viaCEPBreaker),
	}
	resolver := &cep.Resolver{
		Lookup: viaCEP,
		Geocoder: cep.NominatimClient{
			BaseURL:   cfg.NominatimBaseURL,
			UserAgent: cfg.NominatimUserAgent,
			HTTP:      resilience.NewHTTPClient(cfg.UpstreamTimeout, nominatimBreaker),
		},
		Cache:     cep.NewCoordCache(),
		Centroids: cep.DefaultCentroids(),
		Log:       logger,
	}

	policy := cfg.ShippingPolicy()
	shippingSvc := &shipping.Service{
		Resolver: resolver,
		Policy:   policy,
		Carrier:  cfg.CarrierName,
		Log:      logger,
	}

	ctx := context.Background()
	cartStore := cart.NewStore(redisClient, "")
	cartMgr := cart.NewManager(ctx, cartStore, shippingSvc, logger)

	addrStore := address.NewStore(redisClient)
	validate := validator.New()

	catalogSvc := catalog.NewService(catalog.DefaultProducts())
	catalogHandler := &catalog.Handler{Svc: catalogSvc}

	shippingHandler := &shipping.Handler{
		Svc:     shippingSvc,
		Basket:  cartMgr,
		LastZip: addrStore,
		Lookup:  viaCEP,
	}
	cartHandler := &cart.Handler{
		Mgr: cartMgr,
		Catalog: cart.ProductSourceFunc(func(id string) (cart.Product, bool) {
			p, err := catalogSvc.ByID(id)
			if err != nil {
				return cart.Product{}, false
			}
			return cart.Product{ID: p.ID, Slug: p.Slug, Name: p.Name, Price: p.Price}, true
		}),
		OutsideAreaMessage: policy.OutsideAreaMessage,
	}
	addressHandler := &address.Handler{Store: addrStore, Validate: validate}
	checkoutHandler := &checkout.Handler{
		Svc:       &checkout.Service{Number: cfg.WhatsAppNumber, UseAPI: true},
		Cart:      cartMgr,
		Addresses: addrStore,
		Lookup:    viaCEP,
		Validate:  validate,
		Log:       logger,
	}

	quoteLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient},
		Config: ratelimit.Config{
			Key:    ratelimit.ByClientIP,
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		Log: logger,
	}

	httpMetrics := obs.NewHTTPMetrics("huum", nil, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	healthHandler := health.Handler{
		Checker:      health.RedisChecker{Client: redisClient},
		RedisTimeout: 300 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/categories", catalogHandler.Categories)
		v.Get("/products", catalogHandler.List)
		v.Get("/products/{slug}", catalogHandler.GetBySlug)

		v.Route("/shipping", func(s chi.Router) {
			s.With(quoteLimiter.Middleware).Post("/quote", shippingHandler.Quote)
			s.Get("/cep/{code}", shippingHandler.GetAddress)
		})

		v.Route("/cart", func(c chi.Router) {
			c.Get("/", cartHandler.Get)
			c.Post("/items", cartHandler.AddItem)
			c.Patch("/items/{productId}", cartHandler.SetQuantity)
			c.Delete("/items/{productId}", cartHandler.RemoveItem)
			c.Post("/shipping", cartHandler.ApplyQuote)
			c.Delete("/", cartHandler.Clear)
		})

		v.Route("/addresses", func(a chi.Router) {
			a.Get("/last-zipcode", addressHandler.LastZip)
			a.Get("/{code}", addressHandler.Get)
			a.Put("/", addressHandler.Save)
		})

		v.Post("/checkout", checkoutHandler.Submit)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()
	health.SetReady(true)

	select {
	case <-shutdownCtx.Done():
		health.SetReady(false)
		logger.Info().Msg("shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
