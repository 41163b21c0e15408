package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{"valid", SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "123456"}, false},
		{"missing fullName", SignupRequest{Email: "ada@example.com", Password: "123456"}, true},
		{"missing email", SignupRequest{FullName: "Ada", Password: "123456"}, true},
		{"missing password", SignupRequest{FullName: "Ada", Email: "ada@example.com"}, true},
		{"short password", SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "12345"}, true},
		{"email without at", SignupRequest{FullName: "Ada", Email: "ada.example.com", Password: "123456"}, true},
		{"email without domain dot", SignupRequest{FullName: "Ada", Email: "ada@example", Password: "123456"}, true},
		{"whitespace-only fullName", SignupRequest{FullName: "   ", Email: "ada@example.com", Password: "123456"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Email normalize edilir: büyük harf küçültülür, whitespace kırpılır.
func TestSignupRequest_NormalizesEmail(t *testing.T) {
	req := SignupRequest{FullName: "Ada", Email: "  Ada@Example.COM ", Password: "123456"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ada@example.com", req.Email)
}

// Şifre uzunluğu byte değil RUNE sayısıyla ölçülür — "ışıklı" 6 karakterdir.
func TestSignupRequest_UnicodePassword(t *testing.T) {
	req := SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "ışıklı"}
	assert.NoError(t, req.Validate())
}

func TestUpdateProfileRequest_Empty(t *testing.T) {
	assert.True(t, (&UpdateProfileRequest{}).Empty())

	name := "Ada"
	assert.False(t, (&UpdateProfileRequest{FullName: &name}).Empty())
}

func TestUpdateProfileRequest_Validate(t *testing.T) {
	empty := ""
	badEmail := "not-an-email"
	goodEmail := "Ada@Example.com"

	assert.Error(t, (&UpdateProfileRequest{FullName: &empty}).Validate())
	assert.Error(t, (&UpdateProfileRequest{Email: &badEmail}).Validate())
	assert.Error(t, (&UpdateProfileRequest{ProfilePic: &empty}).Validate())

	req := &UpdateProfileRequest{Email: &goodEmail}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ada@example.com", *req.Email)
}

func TestUser_Public(t *testing.T) {
	u := User{ID: "user-1", PasswordHash: "secret-hash"}
	assert.Empty(t, u.Public().PasswordHash)
	// Orijinal kopya değişmez — Public değer döner.
	assert.Equal(t, "secret-hash", u.PasswordHash)
}
