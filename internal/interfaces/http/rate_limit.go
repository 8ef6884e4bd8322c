package http

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
)

const rateLimitWindow = time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter mantém um token bucket por IP; entradas ociosas são descartadas.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	perMinute int
	now       func() time.Time
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		visitors:  make(map[string]*visitor),
		perMinute: perMinute,
		now:       time.Now,
	}
}

// reserve consome um token do IP; ok=false traz o tempo até o próximo token.
func (l *ipRateLimiter) reserve(ip string) (ok bool, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(l.perMinute)), l.perMinute)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// cleanup remove IPs sem requisições há mais de duas janelas.
func (l *ipRateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-2 * rateLimitWindow)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// RateLimit limita requisições por IP a perMinute por minuto.
// Ao estourar responde 429 com Retry-After em segundos.
func RateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 60
	}
	l := newIPRateLimiter(perMinute)
	var calls atomic.Uint64
	return func(c *fiber.Ctx) error {
		if calls.Add(1)%1000 == 0 {
			l.cleanup()
		}
		ok, wait := l.reserve(c.IP())
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.RateLimitResponse{
				Detail:        "Limite de requisições excedido",
				Limit:         perMinute,
				WindowSeconds: int(rateLimitWindow.Seconds()),
			})
		}
		return c.Next()
	}
}
