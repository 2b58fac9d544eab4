package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	gcstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/teamalhin-buss/ALH-perfume/internal/blob"
	"github.com/teamalhin-buss/ALH-perfume/internal/cart"
	"github.com/teamalhin-buss/ALH-perfume/internal/config"
	"github.com/teamalhin-buss/ALH-perfume/internal/events"
	"github.com/teamalhin-buss/ALH-perfume/internal/gateway"
	"github.com/teamalhin-buss/ALH-perfume/internal/httpapi"
	"github.com/teamalhin-buss/ALH-perfume/internal/repository"
	"github.com/teamalhin-buss/ALH-perfume/internal/service"
	"github.com/teamalhin-buss/ALH-perfume/internal/storage"
)

const firestoreProbeTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	log.Printf("environment: %s", cfg.Environment)

	ctx := context.Background()

	// Firebase is best-effort: order creation still works against the
	// gateway when Firestore is down, just without local records.
	app, authClient, fsClient := initFirebase(ctx, cfg)
	var orders repository.OrderRepository
	if fsClient != nil {
		orders = repository.NewFirestoreOrders(fsClient)
		defer fsClient.Close()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	log.Printf("connected to redis at %s", cfg.RedisAddr)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("publishing order events to %v", cfg.KafkaBrokers)
	}

	store := cart.NewStore(storage.NewRedisSnapshots(redisClient), logNotifier{})
	dispatcher := cart.NewDispatcher(store)

	razorpay := gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	checkout := service.NewCheckoutService(razorpay, orders)
	verify := service.NewVerifyService(orders, publisher, cfg.RazorpayKeySecret)

	handlers := httpapi.Handlers{
		Cart:           httpapi.NewCartHandler(dispatcher, store, cfg.RequestTimeout),
		Orders:         httpapi.NewOrderHandler(checkout, verify, cfg.RequestTimeout),
		Health:         httpapi.NewHealthHandler(cfg.Environment, fsClient != nil, cfg.RazorpayKeyID != ""),
		RequestTimeout: cfg.RequestTimeout,
	}
	if authClient != nil {
		handlers.Verifier = &firebaseVerifier{auth: authClient}
	}
	if cfg.StorageBucket != "" && app != nil {
		if gcsClient, err := gcstorage.NewClient(ctx); err != nil {
			log.Printf("storage client init failed, avatar uploads disabled: %v", err)
		} else {
			defer gcsClient.Close()
			handlers.Avatar = httpapi.NewAvatarHandler(blob.NewGCSAvatars(gcsClient, cfg.StorageBucket), cfg.RequestTimeout)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpapi.NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

// initFirebase sets up the Firebase app, auth client and Firestore client.
// Any failure degrades the corresponding feature instead of stopping the
// server: the gateway endpoints stay up without local order records.
func initFirebase(ctx context.Context, cfg *config.Config) (*firebase.App, *auth.Client, *firestore.Client) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		log.Printf("firebase init failed: %v", err)
		return nil, nil, nil
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Printf("firebase auth init failed: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		log.Printf("firestore init failed: %v", err)
		return app, authClient, nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, firestoreProbeTimeout)
	defer cancel()
	if err := repository.Ping(probeCtx, fsClient); err != nil {
		log.Printf("firestore connectivity probe failed, running without order store: %v", err)
		fsClient.Close()
		return app, authClient, nil
	}

	log.Printf("connected to firestore project %s", cfg.FirebaseProjectID)
	return app, authClient, fsClient
}

type firebaseVerifier struct {
	auth *auth.Client
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

// logNotifier writes cart notices to the log; the HTTP layer also returns
// them in mutation responses.
type logNotifier struct{}

func (logNotifier) Notify(sessionID, message string) {
	log.Printf("notice for session %s: %s", sessionID, message)
}
