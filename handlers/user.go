package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/varunk-2005/chat-app/models"
	"github.com/varunk-2005/chat-app/pkg"
)

// avatarFallbackURL, profil fotoğrafı olmayan kullanıcılar için isimden
// avatar üreten harici servisin base URL'i.
const avatarFallbackURL = "https://ui-avatars.com/api/"

// UserHandler, kullanıcı profil endpoint'lerini yöneten struct.
type UserHandler struct{}

// NewUserHandler, constructor.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// profileResponse, GET /users/profile yanıtı.
// models.User'dan farkı: profilePic her zaman doludur — kullanıcı fotoğraf
// yüklememişse isminden üretilen fallback avatar URL'i döner.
type profileResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
	CreatedAt  string `json:"createdAt"`
}

// Profile godoc
// GET /users/profile
// Auth middleware gerektirir — context'te user bilgisi olur.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pic := ""
	if user.ProfilePic != nil {
		pic = *user.ProfilePic
	}
	if pic == "" {
		pic = avatarFallbackURL + "?name=" + url.QueryEscape(user.FullName)
	}

	pkg.JSON(w, http.StatusOK, profileResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		ProfilePic: pic,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	})
}
