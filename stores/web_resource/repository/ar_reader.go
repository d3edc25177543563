package repository

import (
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
	"golang.org/x/xerrors"
)

const (
	arUriSchema      = "ar://"
	DefaultArGateway = "https://arweave.net"
)

type arReaderRepo struct {
	client     http.Client
	gateway    string
	ctxTimeout time.Duration
	headers    map[string]string
}

// NewArReaderRepo resolves ar://<tx>/<path> against gateway, DefaultArGateway when empty
func NewArReaderRepo(client http.Client, gateway string, timeout time.Duration, headers map[string]string) domain.WebResourceReaderRepository {
	if gateway == "" {
		gateway = DefaultArGateway
	}
	return &arReaderRepo{client: client, gateway: strings.TrimSuffix(gateway, "/"), ctxTimeout: timeout, headers: headers}
}

func (r *arReaderRepo) Get(c bCtx.Ctx, uri string) ([]byte, error) {
	if !hasPrefixFold(uri, arUriSchema) || len(uri) == len(arUriSchema) {
		return nil, xerrors.Errorf("invalid ar uri: %w", domain.ErrBadParamInput)
	}
	url := r.gateway + "/" + uri[len(arUriSchema):]
	return get(c, &r.client, r.ctxTimeout, url, r.headers)
}
