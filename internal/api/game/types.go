package game

import (
	"duel-service/domain"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GameType, eşleştirme kuyruğunun ve içerik üreticisinin anahtarıdır.
type GameType string

const (
	SpeedMathDuel GameType = "speed_math_duel"
	RiddleArena   GameType = "riddle_arena"
	MemoryMatch   GameType = "memory_match"
)

var knownGameTypes = map[GameType]bool{
	SpeedMathDuel: true,
	RiddleArena:   true,
	MemoryMatch:   true,
}

// ParseGameType normalizes a client supplied game type.
func ParseGameType(s string) (GameType, error) {
	gt := GameType(strings.ToLower(strings.TrimSpace(s)))
	if !knownGameTypes[gt] {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownGameType, s)
	}
	return gt, nil
}

// Status, odanın yaşam döngüsü: waiting -> playing -> finished. Geri dönüş yok.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const MaxPlayers = 2

// Settings, oda başına tur sayısı ve tur süresi.
type Settings struct {
	RoundCount       int `json:"roundCount" validate:"omitempty,min=1,max=50"`
	TimeLimitSeconds int `json:"timeLimitSeconds" validate:"omitempty,min=1,max=600"`
}

func (s Settings) withDefaults(def Settings) Settings {
	if s.RoundCount <= 0 {
		s.RoundCount = def.RoundCount
	}
	if s.TimeLimitSeconds <= 0 {
		s.TimeLimitSeconds = def.TimeLimitSeconds
	}
	return s
}

// RoundItem, bir turun içeriği (soru, bilmece ya da kart dizilimi).
type RoundItem struct {
	ID      int      `json:"id"`
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
	Cards   []string `json:"cards,omitempty"`
}

func (it RoundItem) clone() RoundItem {
	if it.Options != nil {
		it.Options = append([]string(nil), it.Options...)
	}
	if it.Cards != nil {
		it.Cards = append([]string(nil), it.Cards...)
	}
	return it
}

// RoundAnswer, oyuncunun bir tura verdiği cevap.
// MaxAnswerMs, tek bir cevap için kabul edilen en uzun süre (1 saat).
const MaxAnswerMs = 3_600_000

type RoundAnswer struct {
	RoundID   int    `json:"roundId"`
	Value     string `json:"value"`
	Correct   bool   `json:"correct"`
	ElapsedMs int64  `json:"elapsedMs" validate:"gte=0,max=3600000"`
}

// Player, odadaki bir oyuncu. ConnID bağlantı kimliğidir ve istemciye gönderilmez.
type Player struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"displayName"`
	ConnID      uuid.UUID     `json:"-"`
	Score       int           `json:"score"`
	Ready       bool          `json:"ready"`
	Finished    bool          `json:"finished"`
	Answers     []RoundAnswer `json:"answers"`
	JoinedAt    time.Time     `json:"joinedAt"`
}

func NewPlayer(id, displayName string, connID uuid.UUID) *Player {
	return &Player{
		ID:          id,
		DisplayName: displayName,
		ConnID:      connID,
		Answers:     make([]RoundAnswer, 0),
	}
}

// TotalTime returns the summed answer time in milliseconds.
func (p *Player) TotalTime() int64 {
	return sumElapsed(p.Answers)
}

// sumElapsed clamps each answer to [0, MaxAnswerMs] and saturates at MaxInt64.
func sumElapsed(answers []RoundAnswer) int64 {
	var total int64
	for _, a := range answers {
		ms := min(max(a.ElapsedMs, 0), MaxAnswerMs)
		if total > math.MaxInt64-ms {
			return math.MaxInt64
		}
		total += ms
	}
	return total
}
