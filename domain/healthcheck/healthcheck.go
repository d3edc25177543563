package healthcheck

import (
	"github.com/x-xyz/nftmeta/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo pings the backends the service depends on
type HealthCheckRepo interface {
	PingCache(context ctx.Ctx) error
	PingIpfs(context ctx.Ctx) error
}
