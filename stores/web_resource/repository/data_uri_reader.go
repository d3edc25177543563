package repository

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
	"golang.org/x/xerrors"
)

const dataUriSchema = "data:"

type dataUriReaderRepo struct {
}

func NewDataUriReaderRepo() domain.WebResourceReaderRepository {
	return &dataUriReaderRepo{}
}

func (r *dataUriReaderRepo) Get(_ ctx.Ctx, uri string) ([]byte, error) {
	if !hasPrefixFold(uri, dataUriSchema) {
		return nil, xerrors.Errorf("invalid data uri: %w", domain.ErrBadParamInput)
	}
	// data:[<mediatype>][;base64],<data>
	parts := strings.SplitN(uri[len(dataUriSchema):], ",", 2)
	if len(parts) < 2 || len(parts[1]) == 0 {
		return nil, xerrors.Errorf("no data part provided: %w", domain.ErrBadParamInput)
	}

	if hasSuffixFold(parts[0], ";base64") {
		data, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput)
		}
		return data, nil
	}
	// many contracts embed raw json without escaping, keep it as is when it
	// is not valid percent encoding
	if unescaped, err := url.PathUnescape(parts[1]); err == nil {
		return []byte(unescaped), nil
	}
	return []byte(parts[1]), nil
}
