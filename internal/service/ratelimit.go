// ratelimit.go — ограничение частоты отправки формы обратной связи.
// Таблица лимитеров по клиенту — LRU с TTL (hashicorp/golang-lru/v2/expirable),
// поэтому память ограничена и неактивные клиенты вытесняются.
package service

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

// Prometheus-метрики лимитера.
var (
	rateLimitRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pf_rate_limit_rejected_total",
		Help: "Количество запросов, отклонённых лимитером частоты.",
	})
	rateLimitNewClientsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pf_rate_limit_clients_total",
		Help: "Количество клиентов, для которых создан лимитер.",
	})
)

// RateLimiter — token bucket на каждого клиента (ключ — обычно IP).
// Нулевой интервал отключает ограничение.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	disabled bool
}

// NewRateLimiter создаёт лимитер.
// interval — минимальный средний интервал между отправками одного клиента.
// burst — сколько отправок подряд допускается.
// maxClients — максимальное количество отслеживаемых клиентов.
func NewRateLimiter(interval time.Duration, burst, maxClients int) *RateLimiter {
	if interval <= 0 || burst <= 0 {
		return &RateLimiter{disabled: true}
	}
	if maxClients <= 0 {
		maxClients = 1
	}
	// Запись продлевается при каждом обращении, поэтому вытесняется
	// только клиент, молчавший interval*burst: его бакет уже полон.
	ttl := interval * time.Duration(burst)
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxClients, nil, ttl),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

// Allow сообщает, можно ли клиенту key выполнить ещё одну отправку.
func (l *RateLimiter) Allow(key string) bool {
	if l == nil || l.disabled {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		rateLimitNewClientsTotal.Inc()
	}
	// Add продлевает TTL (Get его не трогает)
	l.limiters.Add(key, limiter)
	l.mu.Unlock()

	if !limiter.Allow() {
		rateLimitRejectedTotal.Inc()
		return false
	}
	return true
}

// Clients — количество отслеживаемых клиентов.
func (l *RateLimiter) Clients() int {
	if l == nil || l.disabled {
		return 0
	}
	return l.limiters.Len()
}
