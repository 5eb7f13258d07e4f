package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"

	"pocketa-server/src/models"
)

// Identity lookups happen on every authenticated request, so resolved
// users are cached by identity-provider subject. Keys are tracked
// separately so the whole set can be cleared at once.
var (
	Cache         *ristretto.Cache
	UserCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func GetUserCache(subject string) (*models.User, bool) {
	if Cache == nil {
		return nil, false
	}
	value, found := Cache.Get("user:" + subject)
	if !found {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func SetUserCache(subject string, user *models.User) {
	if Cache == nil {
		return
	}
	UserCacheKeys.Lock()
	UserCacheKeys.m[subject] = struct{}{}
	UserCacheKeys.Unlock()
	Cache.Set("user:"+subject, user, 1)
}

func DelUserCache(subject string) {
	if Cache == nil {
		return
	}
	UserCacheKeys.Lock()
	delete(UserCacheKeys.m, subject)
	UserCacheKeys.Unlock()
	Cache.Del("user:" + subject)
}

func ClearAllUserCaches() {
	if Cache == nil {
		return
	}
	UserCacheKeys.Lock()
	for key := range UserCacheKeys.m {
		Cache.Del("user:" + key)
	}
	UserCacheKeys.m = make(map[string]struct{})
	UserCacheKeys.Unlock()
}
