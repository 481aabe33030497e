package game

import (
	"duel-service/domain"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
)

// ContentProvider produces the ordered round content of a room. It is called once
// per room; the result is stored on the room and never regenerated.
type ContentProvider interface {
	GenerateRoundContent(gameType GameType, settings Settings) ([]RoundItem, error)
}

const (
	kindMath   = "math"
	kindRiddle = "riddle"
	kindMemory = "memory"

	mathOptionCount = 4
	memoryBasePairs = 4
	memoryMaxPairs  = 8
)

type riddle struct {
	prompt string
	answer string
}

var riddleBank = []riddle{
	{"What has keys but can't open locks?", "piano"},
	{"What gets wetter the more it dries?", "towel"},
	{"What has a neck but no head?", "bottle"},
	{"What can travel around the world while staying in a corner?", "stamp"},
	{"What has hands but can't clap?", "clock"},
	{"What has many teeth but can't bite?", "comb"},
	{"What goes up but never comes down?", "age"},
	{"What has one eye but can't see?", "needle"},
	{"What can you catch but not throw?", "cold"},
	{"What runs but never walks?", "river"},
	{"What has a head and a tail but no body?", "coin"},
	{"What belongs to you but others use it more?", "name"},
	{"What is full of holes but still holds water?", "sponge"},
	{"What comes once in a minute, twice in a moment, but never in a thousand years?", "m"},
	{"What has to be broken before you can use it?", "egg"},
	{"What building has the most stories?", "library"},
}

var cardSymbols = []string{
	"apple", "anchor", "bell", "cactus", "crown", "diamond", "feather", "flame",
	"key", "leaf", "moon", "rocket", "star", "sun", "tree", "wave",
}

// Generator, seed'li bir kaynakla tur içeriği üretir. Aynı seed aynı içeriği verir.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) GenerateRoundContent(gameType GameType, settings Settings) ([]RoundItem, error) {
	if settings.RoundCount < 1 {
		return nil, fmt.Errorf("%w: round count must be positive", domain.ErrInvalidInput)
	}

	if gameType == RiddleArena && settings.RoundCount > len(riddleBank) {
		return nil, fmt.Errorf("%w: riddle arena supports at most %d rounds", domain.ErrInvalidInput, len(riddleBank))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// her oda kendi destesini çeker, bir odada aynı bilmece iki kez gelmez
	var deck []int
	if gameType == RiddleArena {
		deck = g.rng.Perm(len(riddleBank))
	}

	items := make([]RoundItem, 0, settings.RoundCount)
	for i := 0; i < settings.RoundCount; i++ {
		var item RoundItem
		switch gameType {
		case SpeedMathDuel:
			item = g.mathItem(i, settings.RoundCount)
		case RiddleArena:
			item = riddleItem(deck[i])
		case MemoryMatch:
			item = g.memoryItem(i)
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGameType, gameType)
		}
		item.ID = i + 1
		items = append(items, item)
	}
	return items, nil
}

// mathItem zorluğu turun bulunduğu üçte birlik dilime göre seçer: toplama, çıkarma, çarpma.
func (g *Generator) mathItem(round, total int) RoundItem {
	var a, b, answer int
	var op string
	switch tier := round * 3 / total; tier {
	case 0:
		a, b = g.between(1, 20), g.between(1, 20)
		op, answer = "+", a+b
	case 1:
		a, b = g.between(10, 50), g.between(10, 50)
		if b > a {
			a, b = b, a
		}
		op, answer = "-", a-b
	default:
		a, b = g.between(2, 12), g.between(2, 12)
		op, answer = "x", a*b
	}

	options := []string{strconv.Itoa(answer)}
	seen := map[int]bool{answer: true}
	for len(options) < mathOptionCount {
		d := answer + g.between(-10, 10)
		if d < 0 || seen[d] {
			continue
		}
		seen[d] = true
		options = append(options, strconv.Itoa(d))
	}
	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return RoundItem{
		Kind:    kindMath,
		Prompt:  fmt.Sprintf("%d %s %d", a, op, b),
		Options: options,
		Answer:  strconv.Itoa(answer),
	}
}

func riddleItem(idx int) RoundItem {
	r := riddleBank[idx]
	return RoundItem{
		Kind:   kindRiddle,
		Prompt: r.prompt,
		Answer: r.answer,
	}
}

func (g *Generator) memoryItem(round int) RoundItem {
	pairs := min(memoryBasePairs+round, memoryMaxPairs)
	symbols := g.rng.Perm(len(cardSymbols))[:pairs]

	cards := make([]string, 0, pairs*2)
	for _, s := range symbols {
		cards = append(cards, cardSymbols[s], cardSymbols[s])
	}
	g.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return RoundItem{
		Kind:  kindMemory,
		Cards: cards,
	}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
