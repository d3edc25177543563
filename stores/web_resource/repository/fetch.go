package repository

import (
	"io"
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
	"github.com/x-xyz/nftmeta/domain"
	"golang.org/x/xerrors"
)

// maxBodySize caps a single token uri payload
const maxBodySize = 16 << 20

func get(c bCtx.Ctx, client *http.Client, timeout time.Duration, url string, headers map[string]string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(c, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Warn("failed with request")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		if resp.StatusCode == http.StatusNotFound {
			return nil, xerrors.Errorf("get %s: %w", url, domain.ErrNotFound)
		}
		return nil, xerrors.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, xerrors.Errorf("get %s: body exceeds %d bytes: %w", url, maxBodySize, domain.ErrBadParamInput)
	}
	return body, nil
}

// schemes are case insensitive and url.Parse lowercases them before dispatch
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
