package game

const (
	pointsPerCorrect  = 10
	memoryMissPenalty = 2
)

// FinishScore, oyuncunun tüm cevaplarından oyun tipine özel puanı hesaplar.
func FinishScore(gameType GameType, settings Settings, answers []RoundAnswer) int {
	correct, wrong := 0, 0
	for _, a := range answers {
		if a.Correct {
			correct++
		} else {
			wrong++
		}
	}
	elapsed := sumElapsed(answers)

	switch gameType {
	case MemoryMatch:
		score := correct*pointsPerCorrect - wrong*memoryMissPenalty
		// her tam saniye için bir bonus puan
		budget := int64(settings.TimeLimitSeconds) * 1000 * int64(len(answers))
		if elapsed < budget {
			score += int((budget - elapsed) / 1000)
		}
		return max(score, 0)
	default:
		return correct * pointsPerCorrect
	}
}
