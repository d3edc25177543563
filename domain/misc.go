package domain

import (
	"strings"
)

type ChainId int32

type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}
