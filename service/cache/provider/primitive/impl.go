package primitive

import (
	"time"

	"github.com/coocood/freecache"
	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive returns an in-process cache of sizeMB megabytes
func NewPrimitive(name string, sizeMB int) provider.Provider {
	return &impl{name, freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).WithField("cache", im.name).Error("cache.Get failed")
		return nil, 0, err
	}
	if expireAt == 0 {
		return val, 0, nil
	}
	return val, time.Until(time.Unix(int64(expireAt), 0)), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, seconds(ttl)); err != nil {
		c.WithField("err", err).WithField("key", key).WithField("cache", im.name).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

// seconds rounds up so a sub second ttl does not become "never expire"
func seconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	s := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		s++
	}
	return s
}
