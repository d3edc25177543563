package main

import (
	"net/http"
	"os"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
	"github.com/x-xyz/nftmeta/domain"
	"github.com/x-xyz/nftmeta/service/pinata"
	metadata_usecase "github.com/x-xyz/nftmeta/stores/metadata/usecase"
	webresource_repository "github.com/x-xyz/nftmeta/stores/web_resource/repository"
	webresource_usecase "github.com/x-xyz/nftmeta/stores/web_resource/usecase"
)

func main() {
	flags := pflag.NewFlagSet("nftmeta", pflag.ExitOnError)
	flags.SetInterspersed(false)
	configFile := flags.String("config", "", "optional yaml config, same keys as the api server")
	flags.Bool("debug", false, "debug logging")
	flags.Duration("http.timeout", defaultTimeout, "timeout of a single fetch")
	flags.String("ipfs.gateway", "https://ipfs.io/ipfs/", "ipfs gateway used for ipfs:// uris")
	flags.String("ipfs.nodeApi", "", "ipfs node api address, takes precedence over the gateway")
	flags.Int("metadata.retries", 2, "extra attempts after a transport error")
	flags.Int("metadata.workers", 8, "concurrent fetches")
	flags.Usage = func() {
		os.Stderr.WriteString(usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if err := loadConfig(*configFile, flags); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	if err := log.Init(viper.GetBool("debug")); err != nil {
		panic(err)
	}
	defer log.Sync()

	c := &cli{
		metadata: newMetadataUseCase(ctx.Background()),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	code := c.run(ctx.Background(), flags.Args())
	log.Sync()
	os.Exit(code)
}

func loadConfig(configFile string, flags *pflag.FlagSet) error {
	if err := viper.BindPFlags(flags); err != nil {
		return err
	}
	viper.SetEnvPrefix("nftmeta")
	viper.AutomaticEnv()
	if configFile == "" {
		return nil
	}
	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)
	return viper.ReadInConfig()
}

func newMetadataUseCase(c ctx.Ctx) domain.MetadataUseCase {
	httpClient := http.Client{}
	httpTimeout := viper.GetDuration("http.timeout")
	httpHeaders := viper.GetStringMapString("http.headers")

	var ipfsReader domain.WebResourceReaderRepository
	if nodeApi := viper.GetString("ipfs.nodeApi"); nodeApi != "" {
		ipfsReader = webresource_repository.NewIpfsNodeApiReaderRepo(shell.NewShell(nodeApi), httpTimeout)
	} else {
		ipfsReader = webresource_repository.NewIpfsGatewayReaderRepo(httpClient, viper.GetString("ipfs.gateway"), httpTimeout)
	}
	arGateway := viper.GetString("ar.gateway")
	if arGateway == "" {
		arGateway = webresource_repository.DefaultArGateway
	}

	webResource := webresource_usecase.NewWebResourceUseCase(&webresource_usecase.WebResourceUseCaseCfg{
		HttpReader:    webresource_repository.NewHttpReaderRepo(httpClient, httpTimeout, httpHeaders),
		IpfsReader:    ipfsReader,
		DataUriReader: webresource_repository.NewDataUriReaderRepo(),
		ArUriReader:   webresource_repository.NewArReaderRepo(httpClient, arGateway, httpTimeout, httpHeaders),
	})

	var pinataService pinata.Service
	if apiKey := viper.GetString("pinata.apiKey"); apiKey != "" {
		c.Debug("pinata enabled")
		pinataService = pinata.New(pinata.Config{
			ApiKey:    apiKey,
			ApiSecret: viper.GetString("pinata.apiSecret"),
			Endpoint:  viper.GetString("pinata.endpoint"),
			Client:    &http.Client{Timeout: httpTimeout},
		})
	}

	return metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		WebResource: webResource,
		Pinata:      pinataService,
		Retries:     viper.GetInt("metadata.retries"),
		RetryStart:  viper.GetDuration("metadata.retryStart"),
		RetryLimit:  viper.GetDuration("metadata.retryLimit"),
		Workers:     viper.GetInt("metadata.workers"),
	})
}
