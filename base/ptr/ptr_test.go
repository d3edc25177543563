package ptr

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	p1 := String(`ipfs://abc`)
	p2 := Int64(891011)
	p3 := Float64(689.777)

	s.Equal(`ipfs://abc`, *p1)
	s.Equal(int64(891011), *p2)
	s.Equal(float64(689.777), *p3)
}

func (s *pointerSuite) TestStringValue() {
	s.Equal("", StringValue(nil))
	s.Equal("https://x", StringValue(String("https://x")))
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}
