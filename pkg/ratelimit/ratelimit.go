// Package ratelimit, login endpoint'i için IP bazlı brute-force koruması sağlar.
//
// Tasarım:
// - Her IP için sabit pencereli (fixed window) bir deneme sayacı tutulur.
// - Pencere içinde maxAttempts aşılırsa istek reddedilir — caller 429 döner.
// - Başarılı login sonrası Reset() sayacı temizler, meşru kullanıcı bloke olmaz.
// - Arka plan goroutine'i süresi dolmuş sayaçları siler (memory leak engeli).
//
// Neden in-memory?
// Tek instance deploy için yeterli — her login denemesinde DB'ye yazmak
// gereksiz I/O yaratır, Redis ise fazladan bağımlılık olurdu.
// Paket proje içi hiçbir pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// attempt, bir IP'nin mevcut penceredeki deneme sayısını tutar.
type attempt struct {
	count       int
	windowStart time.Time
}

// Limiter, IP bazlı login rate limiter.
//
// Kullanım:
//
//	limiter := ratelimit.New(5, 2*time.Minute)
//	if !limiter.Allow(ip) { /* 429 + Retry-After */ }
//	// başarılı login'de:
//	limiter.Reset(ip)
type Limiter struct {
	mu          sync.Mutex
	attempts    map[string]*attempt
	maxAttempts int
	window      time.Duration
	done        chan struct{}
}

// New, yeni bir Limiter oluşturur ve temizleme goroutine'ini başlatır.
// maxAttempts: pencere başına izin verilen deneme (ör: 5).
// window: pencere süresi (ör: 2*time.Minute).
func New(maxAttempts int, window time.Duration) *Limiter {
	l := &Limiter{
		attempts:    make(map[string]*attempt),
		maxAttempts: maxAttempts,
		window:      window,
		done:        make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Allow, IP'nin yeni bir login denemesine izin verilip verilmediğini döner.
// Her çağrı sayacı artırır — deneme başarısız olsa bile sayılır.
func (l *Limiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[ip]
	if !ok || now.Sub(a.windowStart) > l.window {
		// İlk deneme veya pencere süresi dolmuş — yeni pencere başlat
		l.attempts[ip] = &attempt{count: 1, windowStart: now}
		return true
	}

	a.count++
	return a.count <= l.maxAttempts
}

// Reset, başarılı login sonrası IP sayacını temizler.
func (l *Limiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, ip)
}

// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini saniye cinsinden
// döner — HTTP Retry-After header değeri olarak kullanılır.
func (l *Limiter) RetryAfterSeconds(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[ip]
	if !ok {
		return 0
	}

	remaining := l.window - time.Since(a.windowStart)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // yukarı yuvarla
}

// Stop, temizleme goroutine'ini durdurur (test ve graceful shutdown için).
func (l *Limiter) Stop() {
	close(l.done)
}

// cleanupLoop, her dakika süresi dolmuş sayaçları siler.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for ip, a := range l.attempts {
				if now.Sub(a.windowStart) > l.window {
					delete(l.attempts, ip)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// ExtractIP, request'ten client IP'sini çıkarır.
// Reverse proxy arkasında RemoteAddr her zaman proxy'nin adresidir —
// gerçek client IP'si X-Forwarded-For veya X-Real-IP header'ındadır.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// "client, proxy1, proxy2" — ilk değer gerçek client
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
