package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/varunk-2005/chat-app/models"
	"github.com/varunk-2005/chat-app/pkg"
)

// fakeUserRepo, UserRepository'nin in-memory test implementasyonu.
// Gerçek SQLite yerine map kullanır — servis kuralları DB olmadan test edilir.
type fakeUserRepo struct {
	users   map[string]*models.User // id → user
	nextID  int
	updates int // Update çağrı sayacı — "upload başarısızsa yazma olmaz" testi için
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already in use", pkg.ErrAlreadyExists)
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now().UTC()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", pkg.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: user", pkg.ErrNotFound)
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	u, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("%w: user", pkg.ErrNotFound)
	}
	r.updates++
	u.FullName = user.FullName
	u.Email = user.Email
	u.ProfilePic = user.ProfilePic
	return nil
}

// fakeUploader, UploadService'in test implementasyonu.
type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newTestAuthService(repo *fakeUserRepo, uploader UploadService) AuthService {
	if uploader == nil {
		uploader = &fakeUploader{url: "https://img.example/pic.png"}
	}
	return NewAuthService(repo, NewTokenService("test-secret", 7), uploader)
}

func signupReq() *models.SignupRequest {
	return &models.SignupRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	}
}

func TestSignup_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	user, token, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, token)

	// Dönen user'da hash taşınmamalı.
	assert.Empty(t, user.PasswordHash)

	// DB'deki kayıt plaintext şifre İÇERMEMELİ — bcrypt hash olmalı.
	stored := repo.users[user.ID]
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestSignup_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	tests := []struct {
		name string
		req  *models.SignupRequest
	}{
		{"missing fullName", &models.SignupRequest{Email: "a@b.com", Password: "123456"}},
		{"missing email", &models.SignupRequest{FullName: "A", Password: "123456"}},
		{"short password", &models.SignupRequest{FullName: "A", Email: "a@b.com", Password: "12345"}},
		{"bad email", &models.SignupRequest{FullName: "A", Email: "not-an-email", Password: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkg.ErrBadRequest))
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), signupReq())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	created, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)
}

// Güvenlik: bilinmeyen email ve yanlış şifre AYNI hatayı dönmeli —
// fark edilirse saldırgan hangi email'lerin kayıtlı olduğunu öğrenir.
func TestLogin_NoAccountEnumeration(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	_, _, errWrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.True(t, errors.Is(errUnknown, pkg.ErrBadRequest))
	assert.True(t, errors.Is(errWrongPass, pkg.ErrBadRequest))
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestUpdateProfile_EmptyPayload(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, err := svc.UpdateProfile(context.Background(), "user-1", &models.UpdateProfileRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestUpdateProfile_SparseFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	created, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	// Sadece fullName gönderilir — email değişmemeli.
	newName := "Ada L."
	updated, err := svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{
		FullName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	first, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	taken := "grace@example.com"
	_, err = svc.UpdateProfile(context.Background(), first.ID, &models.UpdateProfileRequest{
		Email: &taken,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
}

// Kendi email'ini aynen göndermek conflict DEĞİLDİR.
func TestUpdateProfile_OwnEmailNoConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	created, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	same := "ada@example.com"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{
		Email: &same,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateProfile_UploadSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeUploader{url: "https://img.example/final.png"})

	created, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	pic := "data:image/png;base64,aGVsbG8="
	updated, err := svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{
		ProfilePic: &pic,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ProfilePic)
	// DB'ye data-URI değil, host'un döndürdüğü kalıcı URL yazılır.
	assert.Equal(t, "https://img.example/final.png", *updated.ProfilePic)
}

// Upload başarısızsa güncelleme TAMAMEN iptal edilir — diğer alanlar da yazılmaz.
func TestUpdateProfile_UploadFailureAborts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, &fakeUploader{err: errors.New("image host down")})

	created, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	newName := "Should Not Persist"
	pic := "data:image/png;base64,aGVsbG8="
	_, err = svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{
		FullName:   &newName,
		ProfilePic: &pic,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrUpstream))

	// Hiçbir yazma olmamalı.
	assert.Zero(t, repo.updates)
	stored, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
	assert.Nil(t, stored.ProfilePic)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, err := svc.GetUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}
