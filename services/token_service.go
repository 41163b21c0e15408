// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - Session token oluşturma/doğrulama
//   - Profil güncelleme kuralları
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/varunk-2005/chat-app/models"
	"github.com/varunk-2005/chat-app/pkg"
)

// TokenService, session token üretimi ve doğrulaması.
//
// Token state'siz çalışır: server tarafında session kaydı YOKTUR.
// Geçerli imzalı, süresi dolmamış bir token'a sahip olmak session'ın
// kendisidir. Logout sadece cookie'yi siler — token süresi dolana kadar
// kriptografik olarak geçerli kalır (aktif revocation yok).
type TokenService interface {
	// Issue, verilen kullanıcı için imzalı bir session token üretir.
	// Saf bir hesaplamadır — transport (cookie set etme) caller'ın işi.
	Issue(userID string) (string, error)
	// Verify, token'ın imzasını ve süresini kontrol eder; geçerliyse
	// içindeki kullanıcı ID'sini döner.
	// Süresi dolmuş token → pkg.ErrTokenExpired (caller "session expired"
	// mesajı gösterebilsin diye generic invalid'den ayrı).
	// Diğer tüm hatalar (imza bozuk, format hatalı) → pkg.ErrUnauthorized.
	Verify(tokenString string) (string, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration

	// now: test edilebilirlik için enjekte edilen saat.
	// Production'da her zaman time.Now'dur.
	now func() time.Time
}

// NewTokenService, constructor.
// expiryDays: token geçerlilik süresi, gün cinsinden (varsayılan davranış: 7).
func NewTokenService(secret string, expiryDays int) TokenService {
	return &tokenService{
		secret: []byte(secret),
		ttl:    time.Duration(expiryDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

func (s *tokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.TokenClaims{},
		func(token *jwt.Token) (any, error) {
			// alg confusion saldırısına karşı imza yöntemini sabitle —
			// sadece HMAC kabul edilir.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		// jwt/v5, expiry hatasını sentinel olarak işaretler — errors.Is
		// ile chain'den yakalanır.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: session expired", pkg.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims.UserID, nil
}
