package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/metadata"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp wraps data in the response envelope. When data is an error
// the status is derived from it unless the caller asked for a 4xx.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if status < 400 || status >= 500 {
			status = ErrorStatus(err)
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

func ErrorStatus(err error) int {
	var schemaErr *metadata.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnsupportedSchema),
		errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidJsonFormat),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidChainId):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
