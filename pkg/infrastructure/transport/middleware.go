package transport

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"storefront/pkg/account/domain/model"
)

const (
	limiterIdleTTL       = 30 * time.Minute
	limiterPurgeInterval = 5 * time.Minute
	limiterMaxEntries    = 10000
)

var tracer = otel.Tracer("storefront/transport")

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

func traceMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				name = template
			}
		}
		ctx, span := tracer.Start(r.Context(), r.Method+" "+name)
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", name),
		)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session model.Session)

// authenticated resolves the bearer token into a session and hands it to next.
func (h *handler) authenticated(next sessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := h.Auth.Authenticate(bearerToken(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r, session)
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps a token bucket per client address. At most maxEntries
// addresses are tracked; the least recently seen one makes room for a newcomer.
type ipRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*ipLimiter
	limit      rate.Limit
	burst      int
	maxEntries int
	proxies    trustedProxies
	lastPurge  time.Time
	now        func() time.Time
}

func newIPRateLimiter(limit rate.Limit, burst int, proxies []netip.Prefix) *ipRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{
		limiters:   make(map[string]*ipLimiter),
		limit:      limit,
		burst:      burst,
		maxEntries: limiterMaxEntries,
		proxies:    proxies,
		now:        time.Now,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) > limiterPurgeInterval {
		l.purge(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= l.maxEntries {
			l.purge(now)
		}
		if len(l.limiters) >= l.maxEntries {
			l.evictOldest()
		}
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) purge(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastPurge = now
}

func (l *ipRateLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range l.limiters {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey, oldest = key, entry.lastSeen
		}
	}
	delete(l.limiters, oldestKey)
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.limit == 0 {
			next.ServeHTTP(w, r)
			return
		}
		if !l.allow(l.proxies.clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Title:       "Too many requests",
				Description: "Please wait a moment and try again",
				Variant:     variantDestructive,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trustedProxies lists the peers allowed to report the client address in
// X-Forwarded-For.
type trustedProxies []netip.Prefix

// clientIP returns the peer address. When the peer is a trusted proxy the
// forwarded chain is walked from the right and the first untrusted hop wins.
func (p trustedProxies) clientIP(r *http.Request) string {
	client := peerHost(r.RemoteAddr)
	if !p.contains(client) {
		return client
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		client = addr.Unmap().String()
		if !p.contains(client) {
			break
		}
	}
	return client
}

func (p trustedProxies) contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func peerHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
