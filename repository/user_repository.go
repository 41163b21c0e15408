// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern nedir?
// Veritabanı işlemlerini (CRUD) soyutlayan bir tasarım kalıbıdır.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: Mock repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan başka bir store'a geçmek istersen sadece yeni implementasyon yazarsın
// 3. SOLID (Dependency Inversion): Service, concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/varunk-2005/chat-app/models"
)

// UserRepository, kullanıcı kayıtlarına id/email ile erişen adapter interface'i.
//
// context.Context nedir?
// Goroutine'ler arası iptal sinyali ve deadline taşıyan bir yapıdır.
// Client bağlantıyı koparırsa request context'i iptal olur ve devam eden
// DB sorgusu da durur — resource waste önlenir.
type UserRepository interface {
	// Create, yeni kullanıcı kaydı oluşturur. ID ve CreatedAt alanlarını doldurur.
	// Email zaten kayıtlıysa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update, kullanıcının değiştirilebilir alanlarını (full_name, email,
	// profile_pic) tek seferde yazar — parçalı yazma yoktur.
	Update(ctx context.Context, user *models.User) error
}
