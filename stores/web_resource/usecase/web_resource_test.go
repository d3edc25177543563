package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/mocks"
)

func Test_getIpfsUrl(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "pinata",
			url:  "https://gateway.pinata.cloud/ipfs/QmVVutd4A4i1jCQnJXR49miQdXLNLVeGwyo5wWznpgRGeH",
			want: "ipfs://QmVVutd4A4i1jCQnJXR49miQdXLNLVeGwyo5wWznpgRGeH",
		},
		{
			name: "pinata dedicated",
			url:  "https://womenandweapons.mypinata.cloud/ipfs/QmTeTTMFgPYULCNkfxLcJSu5KByxDWh6JA4HFZY4CQnxdS",
			want: "ipfs://QmTeTTMFgPYULCNkfxLcJSu5KByxDWh6JA4HFZY4CQnxdS",
		},
		{
			name: "ipfs.io with path",
			url:  "https://ipfs.io/ipfs/QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0.png",
			want: "ipfs://QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0.png",
		},
		{
			name: "noop",
			url:  "https://some.url",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, getIpfsUrl(tt.url))
		})
	}
}

type webResourceTestSuite struct {
	suite.Suite
	http    *mocks.WebResourceReaderRepository
	ipfs    *mocks.WebResourceReaderRepository
	dataUri *mocks.WebResourceReaderRepository
	ar      *mocks.WebResourceReaderRepository
	writer  *mocks.WebResourceWriterRepository
	u       domain.WebResourceUseCase
}

func TestWebResourceUseCase(t *testing.T) {
	suite.Run(t, new(webResourceTestSuite))
}

func (s *webResourceTestSuite) SetupTest() {
	s.http = &mocks.WebResourceReaderRepository{}
	s.ipfs = &mocks.WebResourceReaderRepository{}
	s.dataUri = &mocks.WebResourceReaderRepository{}
	s.ar = &mocks.WebResourceReaderRepository{}
	s.writer = &mocks.WebResourceWriterRepository{}
	s.u = NewWebResourceUseCase(&WebResourceUseCaseCfg{
		HttpReader:         s.http,
		IpfsReader:         s.ipfs,
		DataUriReader:      s.dataUri,
		ArUriReader:        s.ar,
		CloudStorageWriter: s.writer,
	})
}

func (s *webResourceTestSuite) TearDownTest() {
	s.http.AssertExpectations(s.T())
	s.ipfs.AssertExpectations(s.T())
	s.dataUri.AssertExpectations(s.T())
	s.ar.AssertExpectations(s.T())
	s.writer.AssertExpectations(s.T())
}

func (s *webResourceTestSuite) TestGet_Dispatch() {
	c := bCtx.Background()
	s.http.On("Get", mock.Anything, "http://token/1").Return([]byte("http"), nil).Once()
	s.http.On("Get", mock.Anything, "https://token/1").Return([]byte("https"), nil).Once()
	s.ipfs.On("Get", mock.Anything, "QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/0").Return([]byte("ipfs"), nil).Twice()
	s.dataUri.On("Get", mock.Anything, "data:,x").Return([]byte("data"), nil).Once()
	s.ar.On("Get", mock.Anything, "ar://tx/1.json").Return([]byte("ar"), nil).Once()

	tests := map[string]string{
		"http://token/1":  "http",
		"https://token/1": "https",
		"ipfs://QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/0":      "ipfs",
		"ipfs://ipfs/QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/0": "ipfs",
		"data:,x":        "data",
		"ar://tx/1.json": "ar",
	}
	for uri, want := range tests {
		got, err := s.u.Get(c, uri)
		s.NoError(err, uri)
		s.Equal(want, string(got), uri)
	}
}

func (s *webResourceTestSuite) TestGet_UnsupportedSchema() {
	_, err := s.u.Get(bCtx.Background(), "ftp://token/1")
	s.True(errors.Is(err, domain.ErrUnsupportedSchema))
}

func (s *webResourceTestSuite) TestGet_InvalidIpfsUri() {
	for _, uri := range []string{"ipfs:a", "ipfs:QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq", "ipfs://", "ipfs:///Qm", "ipfs://ipfs/"} {
		s.NotPanics(func() {
			_, err := s.u.Get(bCtx.Background(), uri)
			s.True(errors.Is(err, domain.ErrBadParamInput), uri)
		}, uri)
	}
}

func (s *webResourceTestSuite) TestGet_IpfsUriKeepsQuery() {
	s.ipfs.On("Get", mock.Anything, "QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/0?v=2").Return([]byte("ipfs"), nil).Once()

	got, err := s.u.Get(bCtx.Background(), "ipfs://QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/0?v=2")
	s.NoError(err)
	s.Equal("ipfs", string(got))
}

func (s *webResourceTestSuite) TestGet_FallsBackToIpfs() {
	c := bCtx.Background()
	gateway := "https://ipfs.io/ipfs/QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0"
	s.http.On("Get", mock.Anything, gateway).Return(nil, errors.New("timeout")).Once()
	s.ipfs.On("Get", mock.Anything, "QmRM6jM1Agru6fgm9aae1oFukwSi5d3Kk71Lue2rYznEYm/0").Return([]byte("{}"), nil).Once()

	got, err := s.u.Get(c, gateway)
	s.NoError(err)
	s.Equal("{}", string(got))
}

func (s *webResourceTestSuite) TestGet_NoFallbackForOtherHosts() {
	errFetch := errors.New("timeout")
	s.http.On("Get", mock.Anything, "https://token/1").Return(nil, errFetch).Once()
	_, err := s.u.Get(bCtx.Background(), "https://token/1")
	s.Equal(errFetch, err)
}

func (s *webResourceTestSuite) TestGetJson() {
	c := bCtx.Background()
	s.http.On("Get", mock.Anything, "https://token/1").Return([]byte(`{"name":"x"}`), nil).Once()
	s.http.On("Get", mock.Anything, "https://token/2").Return([]byte(`<html>`), nil).Once()

	got, err := s.u.GetJson(c, "https://token/1")
	s.NoError(err)
	s.Equal(`{"name":"x"}`, string(got))

	_, err = s.u.GetJson(c, "https://token/2")
	s.Equal(domain.ErrInvalidJsonFormat, err)
}

func (s *webResourceTestSuite) TestStore() {
	body := []byte(`{"name":"x"}`)
	s.writer.On("Store", mock.Anything, "1/0xabcdef/5566.json", body, "application/json").
		Return("https://storage/1/0xabcdef/5566.json", nil).Once()

	url, err := s.u.Store(bCtx.Background(), 1, "0xABCDEF", "5566", ".json", body, "application/json")
	s.NoError(err)
	s.Equal("https://storage/1/0xabcdef/5566.json", url)
}

func TestWebResourceUseCase_StoreNotConfigured(t *testing.T) {
	u := NewWebResourceUseCase(&WebResourceUseCaseCfg{})
	_, err := u.Store(bCtx.Background(), 1, "0xabc", "1", ".json", nil, "")
	require.True(t, errors.Is(err, domain.ErrNotConfigured))

	_, err = u.Get(bCtx.Background(), "https://token/1")
	require.True(t, errors.Is(err, domain.ErrUnsupportedSchema))
}
