package usecase

import (
	"errors"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/nftmeta/base/backoff"
	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
	"github.com/x-xyz/nftmeta/base/metrics"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/metadata"
	"github.com/x-xyz/nftmeta/service/cache"
	"github.com/x-xyz/nftmeta/service/pinata"
	"golang.org/x/xerrors"
)

const (
	defaultWorkers    = 8
	defaultRetryStart = 500 * time.Millisecond
	defaultRetryLimit = 4 * time.Second
)

type MetadataUseCaseCfg struct {
	WebResource domain.WebResourceUseCase
	// Pinata and Cache are optional
	Pinata pinata.Service
	Cache  cache.Service
	// Retries is the number of extra attempts after a transport error
	Retries    int
	RetryStart time.Duration
	RetryLimit time.Duration
	// Workers bounds the concurrent fetches of GetManyFromUrls
	Workers int
}

type metadataUseCase struct {
	webResource domain.WebResourceUseCase
	pinata      pinata.Service
	cache       cache.Service
	retries     int
	retryStart  time.Duration
	retryLimit  time.Duration
	workers     int
	met         metrics.Service
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) domain.MetadataUseCase {
	u := &metadataUseCase{
		webResource: cfg.WebResource,
		pinata:      cfg.Pinata,
		cache:       cfg.Cache,
		retries:     cfg.Retries,
		retryStart:  cfg.RetryStart,
		retryLimit:  cfg.RetryLimit,
		workers:     cfg.Workers,
		met:         metrics.New("metadata"),
	}
	if u.retryStart <= 0 {
		u.retryStart = defaultRetryStart
	}
	if u.retryLimit <= 0 {
		u.retryLimit = defaultRetryLimit
	}
	if u.workers <= 0 {
		u.workers = defaultWorkers
	}
	return u
}

func (u *metadataUseCase) GetFromUrl(c bCtx.Ctx, uri string) (*metadata.Metadata, error) {
	defer u.met.BumpTime("get.time").End()
	c = bCtx.WithValue(c, "uri", uri)

	if u.cache == nil {
		return u.fetch(c, uri)
	}
	m := &metadata.Metadata{}
	if err := u.cache.GetByFunc(c, cache.Key("token", uri), m, func() (interface{}, error) {
		return u.fetch(c, uri)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *metadataUseCase) GetContractFromUrl(c bCtx.Ctx, uri string) (*metadata.ContractMetadata, error) {
	c = bCtx.WithValue(c, "uri", uri)
	// contract uris often point at a website, reject those before decoding
	data, err := u.fetchRaw(c, uri, u.webResource.GetJson)
	if err != nil {
		return nil, err
	}
	m, err := metadata.DeserializeContract(data)
	if err != nil {
		u.reportSchemaError(c, data, err)
		return nil, err
	}
	return m, nil
}

func (u *metadataUseCase) GetManyFromUrls(c bCtx.Ctx, uris []string) ([]domain.MetadataResult, error) {
	if len(uris) == 0 {
		return []domain.MetadataResult{}, nil
	}

	type indexed struct {
		idx int
		res domain.MetadataResult
	}

	b := goroutines.NewBatch(u.workers, goroutines.WithBatchSize(len(uris)))
	defer b.Close()
	for i := range uris {
		idx := i
		b.Queue(func() (interface{}, error) {
			m, err := u.GetFromUrl(c, uris[idx])
			return indexed{idx, domain.MetadataResult{Uri: uris[idx], Metadata: m, Err: err}}, nil
		})
	}
	b.QueueComplete()

	results := make([]domain.MetadataResult, len(uris))
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("batch task failed")
			continue
		}
		r := ret.Value().(indexed)
		results[r.idx] = r.res
	}
	return results, nil
}

func (u *metadataUseCase) Normalize(c bCtx.Ctx, data []byte) ([]byte, error) {
	m, err := metadata.Deserialize(data)
	if err != nil {
		u.reportSchemaError(c, data, err)
		return nil, err
	}
	return metadata.Serialize(m)
}

func (u *metadataUseCase) Store(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId, m *metadata.Metadata) (string, error) {
	data, err := metadata.Serialize(m)
	if err != nil {
		c.WithField("err", err).Error("metadata.Serialize failed")
		return "", err
	}
	url, err := u.webResource.Store(c, chainId, contract, tokenId, ".json", data, "application/json")
	if err != nil {
		c.WithFields(log.Fields{
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
			"err":      err,
		}).Error("webResource.Store failed")
		return "", err
	}
	return url, nil
}

func (u *metadataUseCase) Pin(c bCtx.Ctx, name string, m *metadata.Metadata) (string, error) {
	if u.pinata == nil {
		return "", xerrors.Errorf("pinata: %w", domain.ErrNotConfigured)
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	hash, err := u.pinata.PinJson(c, m, pinata.WithMetadata(pinata.PinataMetadata{Name: name}))
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Error("pinata.PinJson failed")
		return "", err
	}
	return "ipfs://" + hash, nil
}

func (u *metadataUseCase) fetch(c bCtx.Ctx, uri string) (*metadata.Metadata, error) {
	data, err := u.fetchRaw(c, uri, u.webResource.Get)
	if err != nil {
		return nil, err
	}
	m, err := metadata.Deserialize(data)
	if err != nil {
		u.reportSchemaError(c, data, err)
		return nil, err
	}
	u.met.BumpHistogram("attributes", float64(len(m.Attributes)))
	return m, nil
}

// fetchRaw retries transport failures only
func (u *metadataUseCase) fetchRaw(c bCtx.Ctx, uri string, get func(bCtx.Ctx, string) ([]byte, error)) ([]byte, error) {
	var data []byte
	err := backoff.Retry(c, backoff.NewExponential(u.retryStart, u.retryLimit), u.retries+1, isTransient, func() error {
		var err error
		data, err = get(c, uri)
		if err != nil && isTransient(err) {
			u.met.BumpSum("fetch.err", 1)
		}
		return err
	})
	if err != nil {
		c.WithField("err", err).Error("webResource.Get failed")
		return nil, err
	}
	return data, nil
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, domain.ErrUnsupportedSchema),
		errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidJsonFormat),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNotConfigured):
		return false
	}
	var schemaErr *metadata.SchemaError
	return !errors.As(err, &schemaErr)
}

func (u *metadataUseCase) reportSchemaError(c bCtx.Ctx, data []byte, err error) {
	fields := log.Fields{"err": err, "size": len(data)}
	var schemaErr *metadata.SchemaError
	if errors.As(err, &schemaErr) {
		u.met.BumpSum("decode.err", 1, "kind", schemaErr.Kind.String())
		if schemaErr.Kind == metadata.MalformedPayload {
			// not json at all, record what was served instead
			fields["mime"] = mimetype.Detect(data).String()
		}
	}
	c.WithFields(fields).Warn("invalid metadata document")
}
