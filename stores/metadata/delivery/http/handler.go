package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/delivery"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/metadata"
	"github.com/x-xyz/nftmeta/middleware"
)

const (
	maxBatchSize   = 100
	maxRequestBody = 1 << 20
)

type handler struct {
	metadata domain.MetadataUseCase
}

// New registers the metadata routes. readMiddlewares wrap the GET routes,
// typically a response cache.
func New(e *echo.Echo, metadata domain.MetadataUseCase, readMiddlewares ...echo.MiddlewareFunc) {
	h := &handler{metadata}

	g := e.Group("/metadata")

	readMws := append([]echo.MiddlewareFunc{middleware.IsTokenUri("uri")}, readMiddlewares...)
	g.GET("", h.get, readMws...)
	g.GET("/contract", h.getContract, readMws...)

	g.POST("/batch", h.getMany)
	g.POST("/normalize", h.normalize)
	g.POST("/pin", h.pin)

	g.PUT("/:chainId/:contract/:tokenId", h.store, middleware.IsValidAddress("contract"))
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	m, err := h.metadata.GetFromUrl(ctx, c.QueryParam("uri"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, m)
}

func (h *handler) getContract(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	m, err := h.metadata.GetContractFromUrl(ctx, c.QueryParam("uri"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, m)
}

type batchResult struct {
	Uri      string             `json:"uri"`
	Metadata *metadata.Metadata `json:"metadata,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (h *handler) getMany(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Uris []string `json:"uris" validate:"required,min=1,dive,tokenuri"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if len(p.Uris) > maxBatchSize {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "too many uris")
	}

	results, err := h.metadata.GetManyFromUrls(ctx, p.Uris)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := make([]batchResult, len(results))
	for i, r := range results {
		res[i] = batchResult{Uri: r.Uri, Metadata: r.Metadata}
		if r.Err != nil {
			res[i].Error = r.Err.Error()
		}
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) normalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	body, err := readBody(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	out, err := h.metadata.Normalize(ctx, body)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, json.RawMessage(out))
}

func (h *handler) pin(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name     string          `json:"name" validate:"required"`
		Metadata json.RawMessage `json:"metadata" validate:"required"`
	}

	body, err := readBody(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p := &payload{}
	if err := json.Unmarshal(body, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	// decode separately so schema errors keep their field path
	m, err := metadata.Deserialize(p.Metadata)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	uri, err := h.metadata.Pin(ctx, p.Name, m)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"uri": uri})
}

func (h *handler) store(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	chainId, err := strconv.ParseInt(c.Param("chainId"), 10, 32)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidChainId)
	}
	contract := domain.Address(c.Param("contract")).ToLower()
	tokenId := domain.TokenId(c.Param("tokenId"))

	body, err := readBody(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	m, err := metadata.Deserialize(body)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	url, err := h.metadata.Store(ctx, domain.ChainId(chainId), contract, tokenId, m)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"url": url})
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBody+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxRequestBody {
		return nil, domain.ErrBadParamInput
	}
	return body, nil
}
