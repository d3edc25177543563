package repository

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	shell "github.com/ipfs/go-ipfs-api"

	"github.com/x-xyz/nftmeta/base/ctx"
	hcdomain "github.com/x-xyz/nftmeta/domain/healthcheck"
)

const pingTimeout = 2 * time.Second

var errIpfsDown = errors.New("ipfs node unreachable")

type impl struct {
	redisPool *redis.Pool
	ipfs      *shell.Shell
}

// New creates a HealthCheckRepo. Either backend may be nil when it is not
// configured and is then reported healthy.
func New(redisPool *redis.Pool, ipfs *shell.Shell) hcdomain.HealthCheckRepo {
	return &impl{
		redisPool: redisPool,
		ipfs:      ipfs,
	}
}

func (im *impl) PingCache(context ctx.Ctx) error {
	if im.redisPool == nil {
		return nil
	}
	c, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	conn, err := im.redisPool.GetContext(c)
	if err != nil {
		context.WithField("err", err).Error("redis GetContext failed")
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("PING"); err != nil {
		context.WithField("err", err).Error("ping redis error")
		return err
	}
	return nil
}

func (im *impl) PingIpfs(context ctx.Ctx) error {
	if im.ipfs == nil {
		return nil
	}
	if !im.ipfs.IsUp() {
		context.Error("ping ipfs error")
		return errIpfsDown
	}
	return nil
}
