package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	domain "github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
)

func TestRedisStore_Key(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.Equal(t, "portfolio:session:abc", NewRedisStoreWithClient(client, "", time.Hour).key("abc"))
	assert.Equal(t, "web:abc", NewRedisStoreWithClient(client, "web:", time.Hour).key("abc"))
}

func TestRedisStore_UnreachableIsNotMissing(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisStoreWithClient(client, "", time.Hour)
	defer store.Close()

	_, err := store.Get(context.Background(), "s1", domain.TokenKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoValue)
}
