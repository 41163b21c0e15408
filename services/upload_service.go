package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UploadService, profil fotoğraflarını harici image host'a yükler.
//
// Kontrat: image, frontend'den base64 data-URI olarak gelir
// ("data:image/png;base64,...."). Upload başarılıysa host'un döndürdüğü
// kalıcı URL döner — DB'ye bu URL yazılır, resim verisi asla DB'de tutulmaz.
type UploadService interface {
	Upload(ctx context.Context, image string) (string, error)
}

// imageHostUploader, UploadService'in HTTP implementasyonu.
//
// Image host API'si:
//
//	POST {uploadURL}
//	Content-Type: application/x-www-form-urlencoded
//	Authorization: Bearer {apiKey}
//	Body: image=<data-uri>
//
//	200 → {"url": "https://..."}
type imageHostUploader struct {
	client    *http.Client
	uploadURL string
	apiKey    string
}

// NewImageHostUploader, constructor.
// client nil ise http.DefaultClient kullanılır (testlerde httptest server'a
// yönlendirmek için enjekte edilebilir).
func NewImageHostUploader(client *http.Client, uploadURL, apiKey string) UploadService {
	if client == nil {
		client = http.DefaultClient
	}
	return &imageHostUploader{
		client:    client,
		uploadURL: uploadURL,
		apiKey:    apiKey,
	}
}

// uploadResponse, image host'un başarılı yanıt gövdesi.
type uploadResponse struct {
	URL string `json:"url"`
}

func (u *imageHostUploader) Upload(ctx context.Context, image string) (string, error) {
	if u.uploadURL == "" {
		return "", fmt.Errorf("image host is not configured")
	}

	form := url.Values{}
	form.Set("image", image)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("image host returned empty url")
	}

	return body.URL, nil
}
