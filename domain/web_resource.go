package domain

import (
	"github.com/x-xyz/nftmeta/base/ctx"
)

// WebResourceReaderRepository fetches the raw bytes behind one kind of uri
type WebResourceReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}

// WebResourceWriterRepository stores bytes under a path and returns the public url
type WebResourceWriterRepository interface {
	Store(ctx.Ctx, string, []byte, string) (string, error)
}

type WebResourceUseCase interface {
	// Get dispatches on the uri scheme
	Get(ctx.Ctx, string) ([]byte, error)
	// GetJson is Get plus a syntax check of the payload
	GetJson(ctx.Ctx, string) ([]byte, error)
	// Store writes <chainId>/<contract>/<tokenId><ext>
	Store(ctx.Ctx, ChainId, Address, TokenId, string, []byte, string) (string, error)
}
