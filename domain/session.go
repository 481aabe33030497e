package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionData, auth-service'in redis'e yazdığı oturum kaydıdır.
type SessionData struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Device    string    `json:"device"`
	Ip        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity, bir bağlantıya bağlanmış doğrulanmış oyuncu kimliği.
type Identity struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}
