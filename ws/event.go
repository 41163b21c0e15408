// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı presence
// (çevrimiçi kullanıcı) dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Presence akışı:
// 1. Kullanıcı bağlanır → Hub register → online listesi değişir
// 2. Hub, güncel listeyi TÜM bağlı client'lara broadcast eder
// 3. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 4. Frontend event'i alır ve online kullanıcı göstergelerini günceller
//
// Liste her zaman TAM snapshot olarak gönderilir, delta değil —
// client state'i kaçırılan event'lerden etkilenmez.
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "getOnlineUsers", "heartbeat" vb.
// Data: Event'e özgü payload — online userID listesi vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	// OpHeartbeat, client'ın periyodik "hâlâ bağlıyım" sinyali.
	// Gelmediğinde read deadline dolar ve bağlantı kopmuş sayılır.
	OpHeartbeat = "heartbeat"
)

// Server → Client operasyonları
const (
	// OpHeartbeatAck, heartbeat'e yanıt — "seni duydum".
	OpHeartbeatAck = "heartbeat_ack"

	// OpGetOnlineUsers, o an çevrimiçi olan TÜM kullanıcı ID'lerinin
	// listesi. Her bağlantı/kopma sonrası herkese gönderilir.
	OpGetOnlineUsers = "getOnlineUsers"
)
