package elevate

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/doodlesbykumbi/forms-in-go/pkg/audit"
	"github.com/doodlesbykumbi/forms-in-go/pkg/config"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// Handler is a form operation that runs with both identities in hand: the
// caller's session for authorization decisions and the elevated service
// session (plus its uid) for reads and writes of shared form state.
type Handler func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64)

// Elevator opens the privilege-elevated service session around form
// operations. The resolved service account id is cached process-wide after
// the first successful lookup; failed lookups are not cached, so a fixed
// configuration takes effect without a restart.
type Elevator struct {
	sessions *session.Store

	mu         sync.Mutex
	serviceUID int64
	resolved   bool
}

// NewElevator creates an Elevator backed by the given session store.
func NewElevator(sessions *session.Store) *Elevator {
	return &Elevator{sessions: sessions}
}

// ServiceUID resolves the configured service account name to its account
// id. The name must resolve to exactly one account; zero or multiple
// matches is a fatal configuration error.
func (e *Elevator) ServiceUID() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.resolved {
		return e.serviceUID, nil
	}

	cfg := config.Get()
	uid, err := e.sessions.LookupUID(cfg.ServiceAccountUser)
	if err != nil {
		return 0, fmt.Errorf("resolving service account %q: %w", cfg.ServiceAccountUser, err)
	}

	e.serviceUID = uid
	e.resolved = true
	return uid, nil
}

// Wrap turns a Handler into an http.HandlerFunc that establishes the
// elevated session before the operation and guarantees its release after,
// on every path including panics.
//
// The three elevation failure modes produce distinct messages so operators
// can tell missing credentials, a bad password and a demoted service
// account apart. None of them are retried; a bad password does not fix
// itself.
func (e *Elevator) Wrap(op Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := session.Get(r.Context())
		if !ok {
			http.Error(w, "Unable to determine caller identity", http.StatusUnauthorized)
			return
		}

		cfg := config.Get()
		clientIP := ClientIP(r)

		if !cfg.HasServiceCredentials() {
			e.failElevation(w, caller, clientIP,
				"forms configuration error: missing service account credentials in settings")
			return
		}

		serviceUID, err := e.ServiceUID()
		if err != nil {
			e.failElevation(w, caller, clientIP, serviceUIDError(cfg.ServiceAccountUser, err))
			return
		}

		elevated, err := e.sessions.Authenticate(cfg.ServiceAccountUser, cfg.ServiceAccountPassword)
		if err != nil {
			e.failElevation(w, caller, clientIP, fmt.Sprintf(
				"forms service account %q could not connect. "+
					"Check if the account exists and the password is correct.",
				cfg.ServiceAccountUser))
			return
		}

		defer func() {
			if cerr := elevated.Close(); cerr != nil {
				log.Printf("elevate: releasing service session: %v", cerr)
			}
			if rec := recover(); rec != nil {
				log.Printf("elevate: panic in form operation: %v", rec)
				audit.Log(audit.ElevationEvent{
					ServiceUser:  cfg.ServiceAccountUser,
					CallerID:     caller.UserID,
					ClientIP:     clientIP,
					Success:      false,
					ErrorMessage: fmt.Sprintf("panic: %v", rec),
				})
				http.Error(w, "forms service connection error", http.StatusInternalServerError)
			}
		}()

		if !elevated.IsAdmin() {
			e.failElevation(w, caller, clientIP, fmt.Sprintf(
				"forms service account %q exists but lacks admin privileges",
				cfg.ServiceAccountUser))
			return
		}

		op(w, r, caller, elevated, serviceUID)
	}
}

func (e *Elevator) failElevation(w http.ResponseWriter, caller *session.Session, clientIP, message string) {
	cfg := config.Get()
	log.Printf("elevate: %s", message)
	audit.Log(audit.ElevationEvent{
		ServiceUser:  cfg.ServiceAccountUser,
		CallerID:     caller.UserID,
		ClientIP:     clientIP,
		Success:      false,
		ErrorMessage: message,
	})
	http.Error(w, message, http.StatusInternalServerError)
}

func serviceUIDError(serviceUser string, err error) string {
	switch {
	case errors.Is(err, session.ErrUnknownAccount):
		return fmt.Sprintf("forms configuration error: service account %q does not exist", serviceUser)
	case errors.Is(err, session.ErrAmbiguousAccount):
		return fmt.Sprintf("forms configuration error: service account %q matches multiple accounts", serviceUser)
	default:
		return fmt.Sprintf("forms service connection error: %v", err)
	}
}

// ClientIP reports the requesting client address. X-Forwarded-For is
// honored only when the immediate peer is a configured trusted proxy.
func ClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" && config.Get().IsTrustedProxy(ip) {
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}
	return ip
}
