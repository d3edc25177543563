package usecase

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
	"github.com/x-xyz/nftmeta/domain"
	"golang.org/x/xerrors"
)

type WebResourceUseCaseCfg struct {
	HttpReader         domain.WebResourceReaderRepository
	IpfsReader         domain.WebResourceReaderRepository
	DataUriReader      domain.WebResourceReaderRepository
	ArUriReader        domain.WebResourceReaderRepository
	CloudStorageWriter domain.WebResourceWriterRepository
}

type webResourceUseCase struct {
	httpReader         domain.WebResourceReaderRepository
	ipfsReader         domain.WebResourceReaderRepository
	dataUriReader      domain.WebResourceReaderRepository
	arUriReader        domain.WebResourceReaderRepository
	cloudStorageWriter domain.WebResourceWriterRepository
}

func NewWebResourceUseCase(cfg *WebResourceUseCaseCfg) domain.WebResourceUseCase {
	return &webResourceUseCase{
		httpReader:         cfg.HttpReader,
		ipfsReader:         cfg.IpfsReader,
		dataUriReader:      cfg.DataUriReader,
		arUriReader:        cfg.ArUriReader,
		cloudStorageWriter: cfg.CloudStorageWriter,
	}
}

func (u *webResourceUseCase) Get(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	return u.get(c, rawUrl, true)
}

func (u *webResourceUseCase) GetJson(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	data, err := u.get(c, rawUrl, true)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		c.WithFields(log.Fields{
			"url": rawUrl,
		}).Error("invalid json")
		return nil, domain.ErrInvalidJsonFormat
	}
	return data, nil
}

func (u *webResourceUseCase) get(c bCtx.Ctx, rawUrl string, fallback bool) ([]byte, error) {
	pUrl, err := url.Parse(rawUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"url": rawUrl,
			"err": err,
		}).Error("failed to parse url")
		return nil, xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput)
	}

	var (
		data   []byte
		reader domain.WebResourceReaderRepository
		target = rawUrl
	)
	switch pUrl.Scheme {
	case "http", "https":
		reader = u.httpReader
	case "ipfs":
		if target, err = ipfsPath(pUrl); err != nil {
			c.WithFields(log.Fields{
				"url": rawUrl,
				"err": err,
			}).Warn("invalid ipfs uri")
			return nil, err
		}
		reader = u.ipfsReader
	case "data":
		reader = u.dataUriReader
	case "ar":
		reader = u.arUriReader
	default:
		return nil, domain.ErrUnsupportedSchema
	}
	if reader == nil {
		c.WithField("schema", pUrl.Scheme).Warn("no reader configured")
		return nil, domain.ErrUnsupportedSchema
	}

	data, err = reader.Get(c, target)
	if err == nil {
		return data, nil
	}

	if fallback && pUrl.Scheme == "https" {
		if ipfsUrl := getIpfsUrl(rawUrl); len(ipfsUrl) > 0 {
			c.WithFields(log.Fields{
				"url":     rawUrl,
				"ipfsUrl": ipfsUrl,
			}).Info("falling back to ipfs")
			return u.get(c, ipfsUrl, false)
		}
	}

	c.WithFields(log.Fields{
		"schema": pUrl.Scheme,
		"url":    rawUrl,
		"err":    err,
	}).Error("failed to fetch")
	return nil, err
}

func (u *webResourceUseCase) Store(c bCtx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId, ext string, data []byte, contentType string) (string, error) {
	if u.cloudStorageWriter == nil {
		return "", xerrors.Errorf("cloud storage: %w", domain.ErrNotConfigured)
	}
	_path := path.Join(
		fmt.Sprintf("%d", chainId),
		contractAddress.ToLowerStr(),
		fmt.Sprintf("%s%s", tokenId, ext),
	)
	url, err := u.cloudStorageWriter.Store(c, _path, data, contentType)
	if err != nil {
		c.WithFields(log.Fields{
			"path": _path,
			"err":  err,
		}).Error("cloudStorageWriter.Store failed")
		return "", err
	}
	return url, nil
}

// ipfsPath turns ipfs://<cid>/<path> into <cid>/<path>. Some early
// contracts wrote ipfs://ipfs/<cid>.
func ipfsPath(u *url.URL) (string, error) {
	if u.Opaque != "" || u.Host == "" {
		return "", xerrors.Errorf("ipfs uri without cid: %w", domain.ErrBadParamInput)
	}
	p := strings.TrimPrefix(u.Host+u.EscapedPath(), "ipfs/")
	if p == "" || p == "ipfs" {
		return "", xerrors.Errorf("ipfs uri without cid: %w", domain.ErrBadParamInput)
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p, nil
}

var (
	gatewayPrefixes = []string{
		"https://gateway.pinata.cloud/ipfs/",
		"https://ipfs.io/ipfs/",
		"https://cloudflare-ipfs.com/ipfs/",
		"https://ipfs.foundation.app/ipfs/",
	}
	dedicatedPinataRegex = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)
)

// getIpfsUrl maps a well known gateway url to its ipfs:// form, or returns
// an empty string
func getIpfsUrl(url string) string {
	for _, p := range gatewayPrefixes {
		if strings.HasPrefix(url, p) {
			return "ipfs://" + strings.TrimPrefix(url, p)
		}
	}
	if loc := dedicatedPinataRegex.FindStringIndex(url); loc != nil {
		return "ipfs://" + url[loc[1]:]
	}
	return ""
}
