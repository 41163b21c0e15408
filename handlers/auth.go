// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/varunk-2005/chat-app/models"
	"github.com/varunk-2005/chat-app/pkg"
	"github.com/varunk-2005/chat-app/pkg/ratelimit"
	"github.com/varunk-2005/chat-app/services"
)

// TokenCookieName, session JWT'sinin taşındığı cookie'nin adı.
// Frontend bu cookie'yi okumaz (httpOnly) — browser otomatik gönderir.
const TokenCookieName = "jwt"

// UserContextKey, context'te kullanıcı bilgisi taşımak için kullanılan key tipi.
//
// Go'da context.Value() any tip kabul eder — string key kullanmak çakışmaya
// neden olabilir. Özel bir tip tanımlayarak namespace collision'ı önleriz.
type contextKey string

const UserContextKey contextKey = "user"

// CookieOptions, session cookie'sinin ortama göre değişen ayarları.
//
// Secure=true (production): cookie sadece HTTPS üzerinden gider ve
// SameSite=Strict olur. Development'ta Secure=false, SameSite=Lax —
// localhost'ta farklı portlar arası çalışabilsin diye.
type CookieOptions struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i ve rate limiter constructor'dan alınır (DI).
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.Limiter
	cookie       CookieOptions
}

// NewAuthHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise rate limiting devre dışı kalır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.Limiter, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		cookie:       cookie,
	}
}

// setTokenCookie, session JWT'sini httpOnly cookie olarak yazar.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	})
}

// clearTokenCookie, session cookie'sini geçersizleştirir (MaxAge < 0 → sil).
// Cookie silme işleminin çalışması için Path/Domain set edilenle aynı olmalı.
func (h *AuthHandler) clearTokenCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	})
}

// Signup godoc
// POST /auth/signup
// Body: { "fullName": "...", "email": "...", "password": "..." }
//
// Başarılı kayıtta session cookie'si de set edilir — kullanıcı kayıt
// olur olmaz giriş yapmış sayılır, ayrıca login gerekmez.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest

	// json.NewDecoder: Request body'yi Go struct'ına parse eder.
	// r.Body bir io.Reader'dır — stream olarak okunur, hepsini belleğe almaz.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.setTokenCookie(w, token)
	pkg.JSON(w, http.StatusCreated, map[string]string{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
	})
}

// Login godoc
// POST /auth/login
// Body: { "email": "...", "password": "..." }
//
// Rate limiting: IP bazlı brute-force koruması.
// - Her IP adresi için belirli bir zaman penceresi içinde izin verilen
//   maksimum login denemesi sayısı sınırlandırılır.
// - Limit aşıldığında 429 Too Many Requests döner.
// - Başarılı login sayacı sıfırlar — meşru kullanıcı bloke olmaz.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %d seconds", retryAfter))
		return
	}

	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı login — sayacı sıfırla.
	// Meşru kullanıcı doğru şifreyi girdiğinde sayaç temizlenir,
	// böylece sonraki oturumlarında rate limit'e takılmaz.
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	h.setTokenCookie(w, token)
	pkg.JSON(w, http.StatusOK, user)
}

// Logout godoc
// POST /auth/logout
//
// Cookie'siz çağrılsa bile 200 döner — logout idempotent'tir,
// "zaten çıkış yapmışsın" bir hata durumu değildir.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// UpdateProfile godoc
// PUT /auth/update-profile
// Body: { "fullName"?: "...", "email"?: "...", "profilePic"?: "data:image/..." }
//
// Auth middleware gerektirir. Alanlar opsiyoneldir — sadece gönderilenler
// güncellenir. profilePic base64 data-URI olarak gelir, harici image host'a
// yüklenir ve DB'ye dönen URL yazılır.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}

// CheckAuth godoc
// GET /auth/check
//
// Auth middleware gerektirir — middleware token'ı doğrulayıp kullanıcıyı
// DB'den TAZE olarak çektiği için burada sadece context'teki principal döner.
// Frontend sayfa yüklenirken bu endpoint ile session'ın hâlâ geçerli
// olduğunu kontrol eder.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}
