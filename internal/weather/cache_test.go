package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache(30*time.Minute, func() time.Time { return clock })

	cache.Set("qweather-北京", &Data{Temperature: "5°C", Condition: "晴"})

	got, ok := cache.Get("qweather-北京")
	require.True(t, ok)
	assert.Equal(t, "5°C", got.Temperature)

	clock = clock.Add(29 * time.Minute)
	_, ok = cache.Get("qweather-北京")
	assert.True(t, ok)

	clock = clock.Add(time.Minute)
	_, ok = cache.Get("qweather-北京")
	assert.False(t, ok)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache(30*time.Minute, time.Now)
	_, ok := cache.Get("openweather-上海")
	assert.False(t, ok)
}

func TestCacheFlush(t *testing.T) {
	cache := NewCache(30*time.Minute, time.Now)
	cache.Set("seniverse-广州", &Data{Temperature: "28°C"})
	cache.Flush()
	_, ok := cache.Get("seniverse-广州")
	assert.False(t, ok)
}
