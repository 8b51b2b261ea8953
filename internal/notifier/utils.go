package notifier

import (
	"math/rand/v2"
	"time"
)

// idleSpread разброс паузы между пустыми итерациями, чтобы несколько инстансов не опрашивали outbox синхронно.
const idleSpread = 0.2

// spreadPause возвращает d, смещенное на случайную долю в пределах ±spread. Отрицательный spread
// считается нулевым.
func spreadPause(d time.Duration, spread float64) time.Duration {
	if spread <= 0 {
		return d
	}
	factor := 1 - spread + rand.Float64()*2*spread //nolint:gosec
	return time.Duration(float64(d) * factor)
}
