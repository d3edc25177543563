package domain

import (
	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain/metadata"
)

// MetadataResult is one entry of a batch fetch. Err is set when Uri could
// not be fetched or decoded.
type MetadataResult struct {
	Uri      string
	Metadata *metadata.Metadata
	Err      error
}

type MetadataUseCase interface {
	GetFromUrl(ctx.Ctx, string) (*metadata.Metadata, error)
	GetContractFromUrl(ctx.Ctx, string) (*metadata.ContractMetadata, error)
	// GetManyFromUrls keeps the order of the input uris
	GetManyFromUrls(ctx.Ctx, []string) ([]MetadataResult, error)
	// Normalize decodes a raw document and encodes it back in canonical form
	Normalize(ctx.Ctx, []byte) ([]byte, error)
	Store(ctx.Ctx, ChainId, Address, TokenId, *metadata.Metadata) (string, error)
	// Pin uploads the document to ipfs and returns its ipfs:// uri
	Pin(ctx.Ctx, string, *metadata.Metadata) (string, error)
}
