package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// OAuthStateRepository holds the anti-CSRF state tokens handed out when a
// login redirect is built. States are single-use and expire on their own.
type OAuthStateRepository struct {
	cache *cache.Cache
}

func NewOAuthStateRepository() *OAuthStateRepository {
	// States live 10 minutes; stale ones are purged every 5.
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &OAuthStateRepository{
		cache: c,
	}
}

func (r *OAuthStateRepository) Save(state string) {
	r.cache.Set(state, struct{}{}, cache.DefaultExpiration)
}

// Consume reports whether the state was issued by us and removes it so a
// replayed callback fails.
func (r *OAuthStateRepository) Consume(state string) bool {
	if _, found := r.cache.Get(state); !found {
		return false
	}
	r.cache.Delete(state)
	return true
}
