package auth

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-tweeter/models"
)

// Names of the built-in strategies.
const (
	StrategyLocal = "local"
	StrategyJWT   = "jwt"
)

// Strategy turns a request into the user it was made by.
type Strategy interface {
	Authenticate(r *http.Request) (models.User, error)
}

// StrategyFunc adapts a plain function to [Strategy].
type StrategyFunc func(r *http.Request) (models.User, error)

func (f StrategyFunc) Authenticate(r *http.Request) (models.User, error) {
	return f(r)
}

// Authenticator is a registry of named strategies. Registration happens at
// startup; lookups are safe for concurrent use.
type Authenticator struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	order      []string
}

func NewAuthenticator() *Authenticator {
	return &Authenticator{strategies: make(map[string]Strategy)}
}

// Use registers s under name, replacing any previous strategy with that name.
func (a *Authenticator) Use(name string, s Strategy) *Authenticator {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.strategies[name]; !ok {
		a.order = append(a.order, name)
	}
	a.strategies[name] = s

	return a
}

// Authenticate runs the strategy registered under name against r.
func (a *Authenticator) Authenticate(name string, r *http.Request) (models.User, error) {
	a.mu.RLock()
	s, ok := a.strategies[name]
	a.mu.RUnlock()

	if !ok {
		return models.User{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return s.Authenticate(r)
}

// Strategies lists the registered names in registration order.
func (a *Authenticator) Strategies() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]string(nil), a.order...)
}
