// Package main, chat-app backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1. Config'i yükle
//   2. Database'i başlat (embedded migration'larla)
//   3. Repository'leri oluştur (DB bağlantısı ile)
//   4. WebSocket Hub'ı başlat
//   5. Service'leri oluştur (repository'ler ile)
//   6. Handler'ları oluştur (service'ler ile)
//   7. Middleware'ları oluştur (service + repo'lar ile)
//   8. HTTP router'ı kur, route'ları bağla
//   9. CORS yapılandır
//  10. HTTP Server'ı başlat
//  11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/varunk-2005/chat-app/config"
	"github.com/varunk-2005/chat-app/database"
	"github.com/varunk-2005/chat-app/handlers"
	"github.com/varunk-2005/chat-app/middleware"
	"github.com/varunk-2005/chat-app/pkg/ratelimit"
	"github.com/varunk-2005/chat-app/repository"
	"github.com/varunk-2005/chat-app/services"
	"github.com/varunk-2005/chat-app/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] chat server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (env=%s, addr=%s)", cfg.Env, cfg.Server.Addr())

	// ─── 2. Database ───
	//
	// Migration'lar binary'ye gömülüdür (go:embed) — deploy edilen tek
	// dosya binary'nin kendisidir, yanında migration dizini taşınmaz.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır:
	// register/unregister channel'larını dinler, presence map'ini günceller
	// ve her değişiklikte online kullanıcı listesini broadcast eder.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryDays)
	uploadService := services.NewImageHostUploader(nil, cfg.ImageHost.UploadURL, cfg.ImageHost.APIKey)
	authService := services.NewAuthService(userRepo, tokenService, uploadService)

	// Login brute-force koruması: IP başına 5 dakikada 10 deneme.
	loginLimiter := ratelimit.New(10, 5*time.Minute)
	defer loginLimiter.Stop()

	// ─── 6. Handler Layer ───
	cookieOpts := handlers.CookieOptions{
		Domain: cfg.Cookie.Domain,
		Secure: cfg.IsProduction(),
		MaxAge: time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour,
	}
	authHandler := handlers.NewAuthHandler(authService, loginLimiter, cookieOpts)
	userHandler := handlers.NewUserHandler()
	healthHandler := handlers.NewHealthHandler(hub)
	wsHandler := ws.NewHandler(hub, cfg.AllowedOrigins)

	// ─── 7. Middleware ───
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// Protected endpoint'ler — authMiddleware.Require() sarar
	mux.Handle("GET /auth/check", authMiddleware.Require(http.HandlerFunc(authHandler.CheckAuth)))
	mux.Handle("PUT /auth/update-profile", authMiddleware.Require(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("GET /users/profile", authMiddleware.Require(http.HandlerFunc(userHandler.Profile)))

	// WebSocket — kimlik handshake query parameter'ı ile taşınır:
	//   ws://server/ws?userId=USER_ID
	// userId'siz bağlantılar upgrade edilir ama presence listesine girmez.
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// ─── 9. CORS ───
	//
	// AllowCredentials=true zorunlu — session cookie'sinin cross-origin
	// isteklerde taşınabilmesi için. Bu modda wildcard origin KULLANILAMAZ,
	// origin listesi config'den explicit gelir.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// yeni request kabul etmeyi durdurur, mevcut request'lerin
	// bitmesini bekler (5sn timeout).
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
