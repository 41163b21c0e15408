package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// Presence, handler katmanının online kullanıcı listesine salt okunur
// erişimi için kullandığı interface.
//
// Dependency Inversion: Handler'lar Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır — testlerde mock Presence kullanılabilir.
type Presence interface {
	GetOnlineUserIDs() []string
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Presence modeli: her kullanıcı için EN FAZLA BİR bağlantı tutulur.
// Aynı kullanıcı ikinci bir tab'dan bağlanırsa yeni bağlantı eskisinin
// yerini alır (last-wins) ve eski bağlantı kapatılır. Online listesi
// map'in key'lerinden türetilir.
//
// Go channel nedir? (register, unregister)
// Goroutine'ler arası güvenli iletişim sağlayan yapılar.
// Hub.Run() goroutine'i bu channel'lardan `select` ile okur:
// - register channel'dan yeni client gelirse → clients map'e ekle
// - unregister channel'dan client gelirse → map'ten çıkar
// Her iki durumda da güncel online listesi herkese broadcast edilir.
type Hub struct {
	// clients: userID → aktif Client. Kullanıcı başına tek giriş.
	clients map[string]*Client

	// mu: clients map'ini koruyan read-write mutex.
	// Birden fazla okuyucu aynı anda erişebilir (RLock),
	// yazma işlemi sırasında tüm erişim bloklanır (Lock).
	mu sync.RWMutex

	// register/unregister: Client giriş/çıkış sinyalleri.
	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	// atomic.Int64: Birden fazla goroutine'in güvenle okuyup yazabildiği sayı.
	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
//
// select nedir?
// Birden fazla channel'ı aynı anda dinler.
// Hangi channel'dan veri gelirse o case çalışır.
//
// Broadcast, addClient/removeClient döndükten SONRA yapılır —
// mutation write lock altında, snapshot read lock altında çalışır.
// sync.RWMutex reentrant değildir, iç içe kilitlenemez.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
			h.broadcastOnlineUsers()

		case client := <-h.unregister:
			if h.removeClient(client) {
				h.broadcastOnlineUsers()
			}
		}
	}
}

// addClient, client'ı presence map'ine ekler (last-wins).
// Aynı kullanıcının mevcut bir bağlantısı varsa eski bağlantı kapatılır —
// kullanıcı yeni tab açtığında eski tab'ın bağlantısı düşer.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.clients[client.userID]; ok && prev != client {
		prev.closeSend()
		log.Printf("[ws] replacing existing connection for user %s", client.userID)
	}
	h.clients[client.userID] = client

	log.Printf("[ws] client connected: user=%s (online: %d)", client.userID, len(h.clients))
}

// removeClient, client'ı presence map'inden çıkarır.
//
// Identity guard: map'teki giriş BU client değilse silme yapılmaz.
// Last-wins senaryosunda eski bağlantının gecikmiş disconnect'i,
// yerine geçen yeni bağlantıyı listeden düşürmemelidir.
//
// Dönüş değeri, online listesinin değişip değişmediğini bildirir —
// değişmediyse broadcast gereksizdir.
func (h *Hub) removeClient(client *Client) bool {
	h.mu.Lock()
	changed := false
	if cur, ok := h.clients[client.userID]; ok && cur == client {
		delete(h.clients, client.userID)
		changed = true
		log.Printf("[ws] client disconnected: user=%s (online: %d)", client.userID, len(h.clients))
	}
	h.mu.Unlock()

	// send channel'ı her durumda kapatılır — WritePump sonlanır.
	// sync.Once sayesinde eviction sırasında zaten kapatıldıysa sorun olmaz.
	client.closeSend()
	return changed
}

// broadcastOnlineUsers, güncel online kullanıcı listesini (tam snapshot)
// tüm bağlı client'lara gönderir.
func (h *Hub) broadcastOnlineUsers() {
	event := Event{
		Op:   OpGetOnlineUsers,
		Data: h.GetOnlineUserIDs(),
		Seq:  h.seq.Add(1),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal online users event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Buffer dolu — bu client yavaş, kapat.
			// unregister'a goroutine ile gönderilir: Run() bu fonksiyonu
			// çağıran goroutine'dir, doğrudan gönderim deadlock olurdu.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// GetOnlineUserIDs, bağlı olan tüm kullanıcı ID'lerini döner.
func (h *Hub) GetOnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.closeSend()
	}
	h.clients = make(map[string]*Client)
	log.Println("[ws] hub shut down, all connections closed")
}
