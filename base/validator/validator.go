package validator

import (
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TokenUriSchemes are the schemes a token uri may be fetched from
var TokenUriSchemes = []string{"http", "https", "ipfs", "data", "ar"}

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.EqualFold(checksum, address)
}

// IsTokenUri reports whether uri has a supported scheme and a non empty
// location after it
func IsTokenUri(uri string) bool {
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	supported := false
	for _, s := range TokenUriSchemes {
		if s == scheme {
			supported = true
			break
		}
	}
	if !supported {
		return false
	}
	if scheme == "data" {
		return u.Opaque != ""
	}
	return u.Host != ""
}

// New returns a validate instance with the tags used by request payloads:
// tokenuri and eth_address
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tokenuri", func(fl validator.FieldLevel) bool {
		return IsTokenUri(fl.Field().String())
	})
	_ = v.RegisterValidation("eth_address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
