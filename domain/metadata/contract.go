package metadata

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

// ContractMetadata is the collection level document returned by a
// contract's contractURI(). It carries the royalty settings marketplaces
// apply to secondary sales.
type ContractMetadata struct {
	Name                 string
	Description          *string
	Image                *string
	ExternalLink         *string
	SellerFeeBasisPoints *int64
	FeeRecipient         *common.Address
}

func DeserializeContract(data []byte) (*ContractMetadata, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	var m ContractMetadata
	if m.Name, err = obj.requiredString("", "name"); err != nil {
		return nil, err
	}
	if m.Description, err = obj.optionalString("", "description"); err != nil {
		return nil, err
	}
	if m.Image, err = obj.optionalString("", "image"); err != nil {
		return nil, err
	}
	if m.ExternalLink, err = obj.optionalString("", "external_link"); err != nil {
		return nil, err
	}

	if raw, ok := obj.lookup("seller_fee_basis_points"); ok {
		n, ok := raw.(json.Number)
		if !ok {
			return nil, typeMismatch("seller_fee_basis_points", "integer", raw)
		}
		bps, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, &SchemaError{Kind: TypeMismatch, Field: "seller_fee_basis_points", Err: err}
		}
		m.SellerFeeBasisPoints = &bps
	}

	recipient, err := obj.optionalString("", "fee_recipient")
	if err != nil {
		return nil, err
	}
	if recipient != nil {
		if !common.IsHexAddress(*recipient) {
			return nil, &SchemaError{
				Kind:  TypeMismatch,
				Field: "fee_recipient",
				Err:   xerrors.Errorf("%q is not a hex address", *recipient),
			}
		}
		addr := common.HexToAddress(*recipient)
		m.FeeRecipient = &addr
	}
	return &m, nil
}

// SerializeContract only fails on a nil document.
func SerializeContract(m *ContractMetadata) ([]byte, error) {
	if m == nil {
		return nil, &SchemaError{Kind: TypeMismatch, Err: errNilDocument}
	}
	var buf bytes.Buffer
	w := newObjectWriter(&buf)
	w.stringField("name", m.Name)
	w.optionalStringField("description", m.Description)
	w.optionalStringField("image", m.Image)
	w.optionalStringField("external_link", m.ExternalLink)
	if m.SellerFeeBasisPoints != nil {
		w.rawField("seller_fee_basis_points", strconv.FormatInt(*m.SellerFeeBasisPoints, 10))
	}
	if m.FeeRecipient != nil {
		w.stringField("fee_recipient", m.FeeRecipient.Hex())
	}
	w.close()
	return buf.Bytes(), nil
}

func (m ContractMetadata) MarshalJSON() ([]byte, error) {
	return SerializeContract(&m)
}

func (m *ContractMetadata) UnmarshalJSON(data []byte) error {
	decoded, err := DeserializeContract(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
