package redisclient

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/nftmeta/base/backoff"
	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
)

// RedisParam is the optional param for redis connection
type RedisParam struct {
	MaxIdle   int
	MaxActive int
	// Retries is how many extra dials are attempted before giving up
	Retries int
}

func newPool(uri, password string, p RedisParam) *redis.Pool {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	return &redis.Pool{
		MaxIdle:     p.MaxIdle,
		MaxActive:   p.MaxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// ConnectRedis builds a pool for uri and checks it with a PING, retrying
// with exponential backoff
func ConnectRedis(c ctx.Ctx, uri, password string, param RedisParam) (*redis.Pool, error) {
	if param.MaxIdle == 0 {
		param.MaxIdle = 16
	}
	if param.MaxActive == 0 {
		param.MaxActive = 128
	}
	p := newPool(uri, password, param)

	attempt := 0
	err := backoff.Retry(c, backoff.NewExponential(time.Second, 8*time.Second), param.Retries+1,
		func(error) bool { return true },
		func() error {
			attempt++
			conn, err := p.GetContext(c)
			if err == nil {
				_, err = conn.Do("PING")
				conn.Close()
			}
			if err != nil {
				c.WithFields(log.Fields{
					"redisURI": uri,
					"err":      err,
					"attempt":  attempt,
				}).Error("fail to dial Redis")
			}
			return err
		})
	if err != nil {
		p.Close()
		return nil, err
	}

	c.WithField("redisURI", uri).Info("redis connected")
	return p, nil
}
