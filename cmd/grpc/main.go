package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/tagro-storefront-service/config"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/imagehost"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/internal/seed"
	"github.com/fekuna/tagro-storefront-service/internal/server"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/i18n"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/fekuna/tagro-storefront-service/pkg/middleware"

	addrH "github.com/fekuna/tagro-storefront-service/internal/address/handler"
	addrUCPkg "github.com/fekuna/tagro-storefront-service/internal/address/usecase"

	cartH "github.com/fekuna/tagro-storefront-service/internal/cart/handler"
	cartUCPkg "github.com/fekuna/tagro-storefront-service/internal/cart/usecase"

	contentH "github.com/fekuna/tagro-storefront-service/internal/content/handler"
	contentUCPkg "github.com/fekuna/tagro-storefront-service/internal/content/usecase"

	dealerH "github.com/fekuna/tagro-storefront-service/internal/dealer/handler"
	dealerUCPkg "github.com/fekuna/tagro-storefront-service/internal/dealer/usecase"

	invH "github.com/fekuna/tagro-storefront-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/tagro-storefront-service/internal/inventory/listener"
	invUCPkg "github.com/fekuna/tagro-storefront-service/internal/inventory/usecase"

	notifH "github.com/fekuna/tagro-storefront-service/internal/notification/handler"
	"github.com/fekuna/tagro-storefront-service/internal/notification/sms"
	notifUCPkg "github.com/fekuna/tagro-storefront-service/internal/notification/usecase"

	orderH "github.com/fekuna/tagro-storefront-service/internal/order/handler"
	orderUCPkg "github.com/fekuna/tagro-storefront-service/internal/order/usecase"

	payH "github.com/fekuna/tagro-storefront-service/internal/payment/handler"
	payUCPkg "github.com/fekuna/tagro-storefront-service/internal/payment/usecase"

	prodH "github.com/fekuna/tagro-storefront-service/internal/product/handler"
	prodUCPkg "github.com/fekuna/tagro-storefront-service/internal/product/usecase"

	userH "github.com/fekuna/tagro-storefront-service/internal/user/handler"
	userUCPkg "github.com/fekuna/tagro-storefront-service/internal/user/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n. Files in I18N_DIR override the bundled messages.
	i18n.Init()
	if cfg.I18n.Dir != "" {
		files, _ := filepath.Glob(filepath.Join(cfg.I18n.Dir, "*.json"))
		for _, f := range files {
			if err := i18n.Load(f); err != nil {
				appLogger.Warn("Failed to load locale file", zap.String("file", f), zap.Error(err))
			}
		}
	}

	// 4. Connect storage
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var st *stores
	if cfg.Storage.Driver == "memory" {
		st = newMemoryStores()
		appLogger.Warn("Using in-memory storage; data is lost on restart")
	} else {
		var err error
		st, err = newInfraStores(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Could not initialize storage", zap.Error(err))
		}
	}
	defer st.Close()

	// 5. Initialize external clients
	var sender notification.Sender
	if cfg.SMS.APIKey != "" {
		sender = sms.NewBulkSMSClient(sms.Config{
			BaseURL:  cfg.SMS.BaseURL,
			APIKey:   cfg.SMS.APIKey,
			SenderID: cfg.SMS.SenderID,
		}, appLogger)
	} else {
		appLogger.Warn("BULKSMSBD_API_KEY not set, SMS messages are only logged")
		sender = sms.NewLogSender(appLogger)
	}
	uploader := imagehost.NewImgBBClient(imagehost.Config{
		BaseURL: cfg.ImageHost.BaseURL,
		APIKey:  cfg.ImageHost.APIKey,
	}, appLogger)
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// 6. Initialize UseCases
	templateUC := notifUCPkg.NewTemplateUseCase(st.settings, appLogger)
	notifier := notifUCPkg.NewSmsNotifier(sender, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(st.products, st.redis, st.es, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(st.inventory, st.locker, prodUC, appLogger)
	dealerUC := dealerUCPkg.NewDealerUseCase(st.dealers, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(st.carts, st.products, appLogger)
	addrUC := addrUCPkg.NewAddressUseCase(st.users, st.locker, appLogger)
	payUC := payUCPkg.NewPaymentUseCase(st.settings, appLogger)
	contentUC := contentUCPkg.NewContentUseCase(st.settings, st.products, appLogger)
	userUC := userUCPkg.NewUserUseCase(st.users, st.otps, notifier, templateUC, tokens, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderUCPkg.Deps{
		Users:     st.users,
		Carts:     st.carts,
		Products:  st.products,
		Payments:  payUC,
		Notifier:  notifier,
		Templates: templateUC,
		Publisher: st.publisher,
		Locker:    st.locker,
	}, appLogger)

	// 7. Bootstrap data
	if _, err := seed.EnsureAdmin(ctx, st.users, seed.Admin{
		ID:       cfg.Admin.ID,
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Phone:    cfg.Admin.Phone,
		Password: cfg.Admin.Password,
	}, appLogger); err != nil {
		appLogger.Fatal("Could not create admin user", zap.Error(err))
	}
	if cfg.Storage.SeedOnStart || cfg.Storage.Driver == "memory" {
		catalog, err := seed.Load("")
		if err != nil {
			appLogger.Fatal("Could not load seed catalog", zap.Error(err))
		}
		if _, err := seed.Apply(ctx, catalog, st.products, st.dealers, appLogger); err != nil {
			appLogger.Fatal("Could not seed catalog", zap.Error(err))
		}
	}

	// 8. Start Listeners
	if st.consumer != nil {
		invListener := invListenerPkg.NewInventoryListener(st.consumer, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 9. Initialize Handlers
	handlers := []interface{ Register(grpc.ServiceRegistrar) }{
		prodH.NewProductHandler(prodUC, appLogger),
		invH.NewInventoryHandler(invUC, appLogger),
		dealerH.NewDealerHandler(dealerUC, appLogger),
		cartH.NewCartHandler(cartUC, appLogger),
		addrH.NewAddressHandler(addrUC, appLogger),
		payH.NewPaymentHandler(payUC, appLogger),
		orderH.NewOrderHandler(orderUC, appLogger),
		userH.NewUserHandler(userUC, appLogger),
		notifH.NewNotificationHandler(templateUC, appLogger),
		contentH.NewContentHandler(contentUC, appLogger),
	}

	// 10. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(grpcx.Codec()),
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.LoggingInterceptor(appLogger),
			middleware.LanguageInterceptor(cfg.I18n.DefaultLanguage),
			auth.UnaryInterceptor(tokens),
		),
	)
	for _, h := range handlers {
		h.Register(grpcServer)
	}
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 11. Start HTTP side-car
	httpPort := cfg.Server.HTTPPort
	if !strings.HasPrefix(httpPort, ":") {
		httpPort = ":" + httpPort
	}
	httpServer := server.NewServer(uploader, st.checks, appLogger)
	go func() {
		if err := httpServer.Start(httpPort); err != nil {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
