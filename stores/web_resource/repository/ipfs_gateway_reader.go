package repository

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
)

type ipfsGatewayReaderRepo struct {
	client     http.Client
	gateway    string
	ctxTimeout time.Duration
}

// NewIpfsGatewayReaderRepo reads "<cid>[/path]" through a public gateway
// such as https://ipfs.io/ipfs
func NewIpfsGatewayReaderRepo(c http.Client, gateway string, timeout time.Duration) domain.WebResourceReaderRepository {
	return &ipfsGatewayReaderRepo{client: c, gateway: strings.TrimSuffix(gateway, "/"), ctxTimeout: timeout}
}

func (r *ipfsGatewayReaderRepo) Get(c bCtx.Ctx, cid string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", r.gateway, cid)
	return get(bCtx.WithValue(c, "cid", cid), &r.client, r.ctxTimeout, url, nil)
}
