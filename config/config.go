// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment mode değerleri — cookie flag'lerini etkiler.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	ImageHost ImageHostConfig

	// Env: "production" veya "development". Production'da cookie Secure +
	// SameSite=Strict olur, development'ta Lax (http üzerinden test için).
	Env string

	// AllowedOrigins: CORS için izin verilen origin listesi.
	// Cookie'li (credentials) istekler wildcard origin ile ÇALIŞMAZ —
	// origin'ler tek tek listelenmek zorundadır.
	AllowedOrigins []string
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/chat.db)
}

// JWTConfig, session token ayarları.
type JWTConfig struct {
	Secret     string // Token imzalama anahtarı — GİZLİ TUTULMALI
	ExpiryDays int    // Token geçerlilik süresi, gün cinsinden (varsayılan: 7)
}

// CookieConfig, session cookie ayarları.
type CookieConfig struct {
	Domain string // Environment'a göre scope'lanan cookie domain'i
}

// ImageHostConfig, harici resim barındırma servisi ayarları.
// Profil fotoğrafları bu servise yüklenir, DB'ye dönen kalıcı URL yazılır.
type ImageHostConfig struct {
	UploadURL string // Upload endpoint'i (ör: https://api.imagehost.example/v1/upload)
	APIKey    string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için) —
// production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "5001"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	expiryDays, err := strconv.Atoi(getEnv("JWT_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DAYS: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	env := getEnv("APP_ENV", EnvDevelopment)
	if env != EnvProduction && env != EnvDevelopment {
		return nil, fmt.Errorf("invalid APP_ENV: %q (must be %q or %q)", env, EnvProduction, EnvDevelopment)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/chat.db"),
		},
		JWT: JWTConfig{
			Secret:     jwtSecret,
			ExpiryDays: expiryDays,
		},
		Cookie: CookieConfig{
			Domain: getEnv("COOKIE_DOMAIN", ""),
		},
		ImageHost: ImageHostConfig{
			UploadURL: getEnv("IMAGE_HOST_URL", ""),
			APIKey:    getEnv("IMAGE_HOST_KEY", ""),
		},
		Env:            env,
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
	}

	return cfg, nil
}

// IsProduction, production modda çalışıp çalışmadığımızı döner.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:5001").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitOrigins, virgülle ayrılmış origin listesini parse eder.
// Boş parçalar ve gereksiz whitespace atlanır.
func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
