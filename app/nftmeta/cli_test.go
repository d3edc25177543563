package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/domain/metadata"
	"github.com/x-xyz/nftmeta/domain/mocks"
)

const swordJson = `{"name":"Sword","description":"A blade","image":"ipfs://abc","attributes":[{"trait_type":"power","value":10}]}`

type cliTestSuite struct {
	suite.Suite
	uc     *mocks.MetadataUseCase
	stdin  *bytes.Buffer
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cli    *cli
}

func TestCli(t *testing.T) {
	suite.Run(t, new(cliTestSuite))
}

func (s *cliTestSuite) SetupTest() {
	s.uc = &mocks.MetadataUseCase{}
	s.stdin = &bytes.Buffer{}
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
	s.cli = &cli{metadata: s.uc, stdin: s.stdin, stdout: s.stdout, stderr: s.stderr}
}

func (s *cliTestSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *cliTestSuite) run(args ...string) int {
	return s.cli.run(ctx.Background(), args)
}

func (s *cliTestSuite) TestUsage() {
	s.Equal(exitUsage, s.run())
	s.Contains(s.stderr.String(), "usage: nftmeta")

	s.Equal(exitUsage, s.run("frobnicate"))
	s.Equal(exitUsage, s.run("normalize"))
	s.Equal(exitUsage, s.run("fetch"))
}

func (s *cliTestSuite) TestNormalizeStdin() {
	s.stdin.WriteString(swordJson)
	s.uc.On("Normalize", mock.Anything, []byte(swordJson)).Return([]byte(swordJson), nil).Once()

	s.Equal(exitOk, s.run("normalize", "-"))
	s.Equal(swordJson+"\n", s.stdout.String())
}

func (s *cliTestSuite) TestNormalizeFile() {
	path := filepath.Join(s.T().TempDir(), "1.json")
	s.Require().NoError(os.WriteFile(path, []byte(swordJson), 0o600))

	_, schemaErr := metadata.Deserialize([]byte(`{}`))
	s.uc.On("Normalize", mock.Anything, []byte(swordJson)).Return(nil, schemaErr).Once()

	s.Equal(exitFailed, s.run("normalize", path))
	s.Contains(s.stderr.String(), "missing field")
	s.Empty(s.stdout.String())

	s.Equal(exitFailed, s.run("normalize", filepath.Join(s.T().TempDir(), "nope.json")))
}

func (s *cliTestSuite) TestFetch() {
	sword, err := metadata.Deserialize([]byte(swordJson))
	s.Require().NoError(err)
	s.uc.On("GetManyFromUrls", mock.Anything, []string{"ipfs://a", "ipfs://b"}).Return([]domain.MetadataResult{
		{Uri: "ipfs://a", Metadata: sword},
		{Uri: "ipfs://b", Err: domain.ErrNotFound},
	}, nil).Once()

	s.Equal(exitFailed, s.run("fetch", "ipfs://a", "ipfs://b"))
	s.Equal(swordJson+"\n", s.stdout.String())
	s.True(strings.HasPrefix(s.stderr.String(), "ipfs://b: "))
}

func (s *cliTestSuite) TestFetchContract() {
	c, err := metadata.DeserializeContract([]byte(`{"name":"Swords"}`))
	s.Require().NoError(err)
	s.uc.On("GetContractFromUrl", mock.Anything, "https://x/contract").Return(c, nil).Once()

	s.Equal(exitOk, s.run("fetch", "--contract", "https://x/contract"))
	s.Equal(`{"name":"Swords"}`+"\n", s.stdout.String())
}

func (s *cliTestSuite) TestPin() {
	sword, err := metadata.Deserialize([]byte(swordJson))
	s.Require().NoError(err)
	s.stdin.WriteString(swordJson)
	s.uc.On("Pin", mock.Anything, "sword.json", sword).Return("ipfs://QmSword", nil).Once()

	s.Equal(exitOk, s.run("pin", "--name", "sword.json", "-"))
	s.Equal("ipfs://QmSword\n", s.stdout.String())
}

func (s *cliTestSuite) TestPin_InvalidDocument() {
	s.stdin.WriteString(`{"name":"Sword"}`)

	s.Equal(exitFailed, s.run("pin", "-"))
	s.Contains(s.stderr.String(), "description")
}
