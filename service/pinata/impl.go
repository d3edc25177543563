package pinata

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/x-xyz/nftmeta/base/ctx"
	"golang.org/x/xerrors"
)

const (
	DefaultEndpoint = "https://api.pinata.cloud"
	pinJsonPath     = "/pinning/pinJSONToIPFS"
)

type Config struct {
	ApiKey    string
	ApiSecret string
	// Endpoint defaults to DefaultEndpoint
	Endpoint string
	Client   *http.Client
}

type pinataImpl struct {
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

func New(cfg Config) Service {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &pinataImpl{
		apiKey:    cfg.ApiKey,
		apiSecret: cfg.ApiSecret,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		client:    cfg.Client,
	}
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}
	opts.PinataContent = value

	body, err := json.Marshal(opts)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, im.endpoint+pinJsonPath, bytes.NewReader(body))
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithField("err", err).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.WithField("status", resp.StatusCode).WithField("errorBody", string(errorBody)).Error("Request failed")
		return "", xerrors.Errorf("status %d: %w", resp.StatusCode, ErrRequestFailed)
	}

	p := struct {
		IpfsHash string `json:"IpfsHash"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", err
	}
	if p.IpfsHash == "" {
		return "", xerrors.Errorf("empty IpfsHash: %w", ErrRequestFailed)
	}
	return p.IpfsHash, nil
}
