package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/varunk-2005/chat-app/models"
	"github.com/varunk-2005/chat-app/pkg"
	"github.com/varunk-2005/chat-app/repository"
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	// Signup, yeni kullanıcı oluşturur ve session token döner.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error)
	// Login, kimlik bilgilerini doğrular ve session token döner.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	// UpdateProfile, sparse alanlarla profili günceller.
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	// GetUser, kullanıcının güncel kaydını döner (checkAuth re-fetch için).
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// bcryptCost, şifre hash'leme maliyeti.
// Yüksek cost brute-force'u yavaşlatır ama login CPU maliyetini artırır —
// 12 makul bir denge.
const bcryptCost = 12

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	uploader UploadService
}

// NewAuthService, constructor.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	uploader UploadService,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		uploader: uploader,
	}
}

// Signup, yeni kullanıcı kaydı oluşturur.
//
// Akış:
// 1. Validation (alanlar zorunlu, şifre >= 6 karakter)
// 2. Email benzersizlik kontrolü (UNIQUE index backstop olarak kalır)
// 3. Bcrypt hash
// 4. Persist + token üretimi
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Email zaten kayıtlı mı?
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", fmt.Errorf("%w: user already exists", pkg.ErrAlreadyExists)
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err // ErrAlreadyExists olabilir (eşzamanlı kayıt)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login, kullanıcı girişi yapar.
//
// Güvenlik: "böyle bir kullanıcı yok" ile "şifre yanlış" AYIRT EDİLMEZ —
// ikisi de aynı mesajı döner. Aksi halde saldırgan hangi email'lerin
// kayıtlı olduğunu öğrenebilir (account enumeration).
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", pkg.ErrBadRequest)
		}
		return nil, "", err
	}

	// Bcrypt karşılaştırması constant-time çalışır — timing attack'e dayanıklı.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", pkg.ErrBadRequest)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// UpdateProfile, sparse payload ile profili günceller.
//
// Kurallar:
// - Boş payload → bad request ("nothing to update")
// - Email değişiyorsa benzersizlik kontrolü kendi kaydı HARİÇ yapılır
// - ProfilePic harici image host'a yüklenir; yükleme başarısızsa
//   güncelleme İPTAL edilir — parçalı yazma olmaz
// - Tüm alanlar çözümlendikten sonra tek bir UPDATE çalışır
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", pkg.ErrBadRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Email != nil && *req.Email != user.Email {
		// Yeni email başka bir kullanıcıda var mı?
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: email already in use", pkg.ErrAlreadyExists)
		}
		if err != nil && !errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}

	if req.ProfilePic != nil {
		// Upload DB yazmasından ÖNCE yapılır — başarısız olursa hiçbir
		// alan persist edilmemiş olur.
		url, err := s.uploader.Upload(ctx, *req.ProfilePic)
		if err != nil {
			log.Printf("[auth] profile picture upload failed for user %s: %v", userID, err)
			return nil, fmt.Errorf("%w: image upload failed", pkg.ErrUpstream)
		}
		user.ProfilePic = &url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUser, kullanıcının en güncel persist edilmiş halini döner.
// CheckAuth handler'ı bunu kullanır — middleware zaten doğrulama yaptı,
// burada sadece taze veri okunur.
func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
