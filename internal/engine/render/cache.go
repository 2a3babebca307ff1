package render

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"
)

type cachedImage struct {
	data     []byte
	cachedAt time.Time
}

// Cache memoizes rendered images for a fixed TTL.
type Cache struct {
	store sync.Map // map[key]*cachedImage
	ttl   time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Key identifies a rendering by everything that changes its bytes.
func Key(payload string, c Customization, o Output) string {
	h := sha256.New()
	for _, part := range []string{
		payload, c.Foreground, c.Background,
		string(o.Format), strconv.Itoa(o.Size), strconv.Itoa(o.MarginModules()), string(o.Level),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) Get(key string) ([]byte, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	img := val.(*cachedImage)
	if time.Since(img.cachedAt) > c.ttl {
		c.store.Delete(key)
		return nil, false
	}

	return img.data, true
}

// Prune drops expired entries and reports how many were removed.
func (c *Cache) Prune() int {
	removed := 0
	c.store.Range(func(key, value interface{}) bool {
		if time.Since(value.(*cachedImage).cachedAt) > c.ttl {
			c.store.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (c *Cache) Set(key string, data []byte) {
	c.store.Store(key, &cachedImage{data: data, cachedAt: time.Now()})
}

// Render serves from the cache or renders and stores.
func (c *Cache) Render(payload string, cust Customization, o Output) ([]byte, error) {
	cust = cust.WithDefaults()
	o = o.WithDefaults()
	key := Key(payload, cust, o)
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := Image(payload, cust, o)
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}
