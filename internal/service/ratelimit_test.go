package service

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// TestRateLimiter_Burst проверяет, что после burst отправок клиент ограничен.
func TestRateLimiter_Burst(t *testing.T) {
	l := NewRateLimiter(time.Hour, 2, 100)

	if !l.Allow("10.0.0.1") {
		t.Fatal("первая отправка должна быть разрешена")
	}
	if !l.Allow("10.0.0.1") {
		t.Fatal("вторая отправка должна быть разрешена (burst=2)")
	}
	if l.Allow("10.0.0.1") {
		t.Error("третья отправка должна быть отклонена")
	}

	// Другой клиент не затронут
	if !l.Allow("10.0.0.2") {
		t.Error("отправка другого клиента должна быть разрешена")
	}
	if got := l.Clients(); got != 2 {
		t.Errorf("Clients() = %d, ожидалось 2", got)
	}
}

// TestRateLimiter_Refill проверяет восстановление после интервала.
func TestRateLimiter_Refill(t *testing.T) {
	l := NewRateLimiter(50*time.Millisecond, 1, 100)

	if !l.Allow("c") {
		t.Fatal("первая отправка должна быть разрешена")
	}
	if l.Allow("c") {
		t.Fatal("повторная отправка сразу должна быть отклонена")
	}

	time.Sleep(80 * time.Millisecond)
	if !l.Allow("c") {
		t.Error("после интервала отправка должна быть разрешена")
	}
}

// TestRateLimiter_Eviction проверяет ограничение размера таблицы.
func TestRateLimiter_Eviction(t *testing.T) {
	l := NewRateLimiter(time.Hour, 1, 3)

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	if got := l.Clients(); got != 3 {
		t.Errorf("Clients() = %d, ожидалось 3", got)
	}
}

// TestRateLimiter_Disabled проверяет отключённый лимитер и nil.
func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(0, 1, 10)
	for i := 0; i < 100; i++ {
		if !l.Allow("c") {
			t.Fatal("отключённый лимитер не должен отклонять запросы")
		}
	}
	if l.Clients() != 0 {
		t.Errorf("Clients() = %d, ожидался 0", l.Clients())
	}

	var nilLimiter *RateLimiter
	if !nilLimiter.Allow("c") {
		t.Error("nil-лимитер не должен отклонять запросы")
	}
}

// TestRateLimiter_Concurrent проверяет отсутствие гонок при одном ключе.
func TestRateLimiter_Concurrent(t *testing.T) {
	l := NewRateLimiter(time.Hour, 5, 100)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("same") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 5 {
		t.Errorf("разрешено %d отправок, ожидалось 5", allowed)
	}
}

// TestRateLimiter_SteadyRate проверяет, что постоянный клиент не получает
// новый полный бакет по истечении TTL записи.
func TestRateLimiter_SteadyRate(t *testing.T) {
	const (
		interval = 100 * time.Millisecond
		burst    = 2
	)
	l := NewRateLimiter(interval, burst, 10)

	start := time.Now()
	allowed := 0
	for time.Since(start) < time.Second {
		if l.Allow("1.2.3.4") {
			allowed++
		}
		time.Sleep(10 * time.Millisecond)
	}
	elapsed := time.Since(start)

	// token bucket: не больше burst + elapsed/interval (+1 на округление)
	limit := burst + int(elapsed/interval) + 1
	if allowed > limit {
		t.Errorf("разрешено %d отправок за %v, ожидалось не больше %d", allowed, elapsed, limit)
	}
	if got := l.Clients(); got != 1 {
		t.Errorf("Clients() = %d, ожидался 1", got)
	}
}
