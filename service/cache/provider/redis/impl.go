package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/service/cache/provider"
)

// pttlNoExpire is the PTTL reply for a key without expiry
const pttlNoExpire = -1

type impl struct {
	pool *redis.Pool
}

func NewRedis(pool *redis.Pool) provider.Provider {
	return &impl{pool}
}

func (im *impl) conn(c ctx.Ctx) (redis.Conn, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, err
	}
	return conn, nil
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	conn, err := im.conn(c)
	if err != nil {
		return nil, 0, err
	}
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return nil, 0, err
	}
	_ = conn.Send("GET", key)
	_ = conn.Send("PTTL", key)
	reply, err := redis.Values(conn.Do("EXEC"))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis GET failed")
		return nil, 0, err
	}

	val, err := redis.Bytes(reply[0], nil)
	if err == redis.ErrNil {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Bytes failed")
		return nil, 0, err
	}
	pttl, err := redis.Int64(reply[1], nil)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Int64 failed")
		return nil, 0, err
	}
	if pttl == pttlNoExpire || pttl < 0 {
		return val, 0, nil
	}
	return val, time.Duration(pttl) * time.Millisecond, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	args := redis.Args{}.Add(key, value)
	if ttl > 0 {
		args = args.Add("PX", ttl.Milliseconds())
	}
	if _, err := conn.Do("SET", args...); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis DEL failed")
		return err
	}
	return nil
}
