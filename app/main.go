package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"example.com/ecomshop/app/internal/config"
	"example.com/ecomshop/app/internal/infra/persistence/sqlite"
	"example.com/ecomshop/app/internal/infra/security"
	"example.com/ecomshop/app/internal/infra/storage/cloudinary"
	httpapi "example.com/ecomshop/app/internal/interface/http"
	authuc "example.com/ecomshop/app/internal/usecase/auth"
	memberuc "example.com/ecomshop/app/internal/usecase/member"
	productuc "example.com/ecomshop/app/internal/usecase/product"
)

func main() {
	cfg := config.MustLoad()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if cfg.SeedFile != "" {
		if err := sqlite.SeedProducts(ctx, db, cfg.SeedFile, logger); err != nil {
			logger.Warn("product seeding failed", zap.Error(err))
		}
	}

	var storage productuc.Storage
	if cfg.Cloudinary.CloudName != "" {
		storage, err = cloudinary.New(cloudinary.Config{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			Folder:    cfg.Cloudinary.Folder,
		})
		if err != nil {
			logger.Fatal("cloudinary init", zap.Error(err))
		}
	} else {
		logger.Warn("cloudinary is not configured, asset uploads disabled")
		storage = cloudinary.Disabled{}
	}

	productRepo := sqlite.NewProductRepository(db)
	memberRepo := sqlite.NewMemberRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	tokenSvc := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	hasher := security.NewBcryptService(cfg.Auth.BcryptCost)

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService: productuc.NewService(productRepo, storage),
		MemberService:  memberuc.NewService(memberRepo),
		AuthService:    authuc.NewService(userRepo, memberRepo, hasher, tokenSvc),
		TokenService:   tokenSvc,
		Logger:         logger,
		Store:          db,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Port,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
