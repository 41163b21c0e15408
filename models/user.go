// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// JSON tag'leri frontend kontratına göre camelCase'dir (fullName, profilePic) —
// React client bu alan isimlerini bekler.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir kullanıcıyı temsil eder.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME (güvenlik!)
	ProfilePic   *string   `json:"profilePic"` // *string = nullable — avatar yüklenmemişse nil
	CreatedAt    time.Time `json:"createdAt"`
}

// Public, API'ye dönmeden önce hassas alanları temizlenmiş bir kopya döner.
// PasswordHash zaten json:"-" ile gizlidir ama context'te veya log'larda
// taşınmaması için değer olarak da sıfırlanır.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// SignupRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar:
//   - FullName, Email, Password: üçü de zorunlu
//   - Email: basit format kontrolü (a@b şeklinde)
//   - Password: minimum 6 karakter
func (r *SignupRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if r.FullName == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("all fields are required")
	}

	if !validEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// UpdateProfileRequest, profil güncellemesi için gelen sparse payload.
// Pointer alanlar nil ise o alan değiştirilmez (partial update).
// ProfilePic, base64 data-URI olarak gelir ve harici image host'a yüklenir —
// DB'ye yüklemeden dönen kalıcı URL yazılır.
type UpdateProfileRequest struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

// Empty, payload'da güncellenecek hiçbir alan olmadığını döner.
func (r *UpdateProfileRequest) Empty() bool {
	return r.FullName == nil && r.Email == nil && r.ProfilePic == nil
}

// Validate, verilen alanların geçerliliğini kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	if r.FullName != nil {
		trimmed := strings.TrimSpace(*r.FullName)
		if trimmed == "" {
			return fmt.Errorf("fullName cannot be empty")
		}
		r.FullName = &trimmed
	}

	if r.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*r.Email))
		if !validEmail(normalized) {
			return fmt.Errorf("invalid email format")
		}
		r.Email = &normalized
	}

	if r.ProfilePic != nil && *r.ProfilePic == "" {
		return fmt.Errorf("profilePic cannot be empty")
	}

	return nil
}

// validEmail, basit bir email format kontrolü yapar.
// Tam RFC 5322 parse etmek gereksiz — local@domain şekli ve domain'de
// nokta olması pratik kullanım için yeterli bir filtre.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.ContainsAny(domain, "@ ") {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
