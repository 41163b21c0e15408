// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern nedir?
// Her HTTP request, handler'a ulaşmadan önce bir veya daha fazla middleware'dan geçer.
// Middleware'lar zincir şeklinde çalışır: Auth → RateLimit → Handler
//
// Go'da middleware bir fonksiyondur:
//   func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/varunk-2005/chat-app/handlers"
	"github.com/varunk-2005/chat-app/pkg"
	"github.com/varunk-2005/chat-app/repository"
	"github.com/varunk-2005/chat-app/services"
)

// AuthMiddleware, JWT cookie doğrulama middleware'ı.
type AuthMiddleware struct {
	tokens   services.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(tokens services.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Require, geçerli bir session cookie'si zorunlu kılan middleware.
//
// Token, Authorization header'ından değil "jwt" isimli httpOnly cookie'den
// okunur — browser her istekte otomatik gönderir, JS erişemez.
//
// Akış:
// 1. "jwt" cookie'sini oku — yoksa 401
// 2. TokenService.Verify() ile doğrula — süresi dolmuşsa "session expired",
//    diğer hatalarda "invalid token" mesajı (ikisi de 401)
// 3. Kullanıcıyı DB'den getir — token geçerli ama kullanıcı silinmiş olabilir → 404
// 4. Kullanıcıyı context'e ekle → next handler'ı çağır
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(handlers.TokenCookieName)
		if err != nil || cookie.Value == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "no token provided")
			return
		}

		userID, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			if errors.Is(err, pkg.ErrTokenExpired) {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "session expired, please login again")
				return
			}
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			// Token geçerli ama kullanıcı artık yok (silinmiş hesap).
			pkg.ErrorWithMessage(w, http.StatusNotFound, "user not found")
			return
		}

		// Password hash'i temizle — context'te taşınmamalı
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
