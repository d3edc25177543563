package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gomodule/redigo/redis"
	shell "github.com/ipfs/go-ipfs-api"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/database/redisclient"
	"github.com/x-xyz/nftmeta/base/goroutine"
	"github.com/x-xyz/nftmeta/base/log"
	"github.com/x-xyz/nftmeta/base/metrics"
	bValidator "github.com/x-xyz/nftmeta/base/validator"
	"github.com/x-xyz/nftmeta/domain"
	mmiddleware "github.com/x-xyz/nftmeta/middleware"
	"github.com/x-xyz/nftmeta/service/cache"
	"github.com/x-xyz/nftmeta/service/cache/provider"
	"github.com/x-xyz/nftmeta/service/cache/provider/compound"
	"github.com/x-xyz/nftmeta/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/nftmeta/service/cache/provider/redis"
	"github.com/x-xyz/nftmeta/service/pinata"
	hc_delivery "github.com/x-xyz/nftmeta/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/nftmeta/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/nftmeta/stores/healthcheck/usecase"
	metadata_delivery "github.com/x-xyz/nftmeta/stores/metadata/delivery/http"
	metadata_usecase "github.com/x-xyz/nftmeta/stores/metadata/usecase"
	webresource_repository "github.com/x-xyz/nftmeta/stores/web_resource/repository"
	webresource_usecase "github.com/x-xyz/nftmeta/stores/web_resource/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvPrefix("nftmeta")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := log.Init(viper.GetBool("debug")); err != nil {
		panic(err)
	}
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()
	context := ctx.Background()

	if err := metrics.Init(viper.GetString("datadog.host"), viper.GetInt("datadog.port")); err != nil {
		context.WithField("err", err).Panic("metrics.Init failed")
	}

	httpClient := http.Client{}
	httpTimeout := viper.GetDuration("http.timeout")
	httpHeaders := viper.GetStringMapString("http.headers")

	// readers
	var ipfsShell *shell.Shell
	var ipfsReader domain.WebResourceReaderRepository
	if nodeApi := viper.GetString("ipfs.nodeApi"); nodeApi != "" {
		context.WithField("nodeApi", nodeApi).Info("init ipfs node api")
		ipfsShell = shell.NewShell(nodeApi)
		ipfsReader = webresource_repository.NewIpfsNodeApiReaderRepo(ipfsShell, viper.GetDuration("ipfs.timeout"))
	} else {
		ipfsReader = webresource_repository.NewIpfsGatewayReaderRepo(httpClient, viper.GetString("ipfs.gateway"), viper.GetDuration("ipfs.timeout"))
	}
	arGateway := viper.GetString("ar.gateway")
	if arGateway == "" {
		arGateway = webresource_repository.DefaultArGateway
	}

	// writer
	var cloudStorageRepo domain.WebResourceWriterRepository
	if bucket := viper.GetString("cloud-storage.bucket"); bucket != "" {
		context.WithField("bucket", bucket).Info("init cloud storage")
		opts := []option.ClientOption{}
		if cred := viper.GetString("cloud-storage.credentialsFile"); cred != "" {
			opts = append(opts, option.WithCredentialsFile(cred))
		}
		storageClient, err := storage.NewClient(context, opts...)
		if err != nil {
			context.WithField("err", err).Panic("storage.NewClient failed")
		}
		defer storageClient.Close()
		cloudStorageRepo, err = webresource_repository.NewCloudStorageWriterRepo(&webresource_repository.CloudStorageWriterRepoCfg{
			Timeout:    viper.GetDuration("cloud-storage.timeout"),
			Client:     storageClient,
			BucketName: bucket,
			Url:        viper.GetString("cloud-storage.url"),
		})
		if err != nil {
			context.WithField("err", err).Panic("NewCloudStorageWriterRepo failed")
		}
	}

	webResourceUseCase := webresource_usecase.NewWebResourceUseCase(&webresource_usecase.WebResourceUseCaseCfg{
		HttpReader:         webresource_repository.NewHttpReaderRepo(httpClient, httpTimeout, httpHeaders),
		IpfsReader:         ipfsReader,
		DataUriReader:      webresource_repository.NewDataUriReaderRepo(),
		ArUriReader:        webresource_repository.NewArReaderRepo(httpClient, arGateway, httpTimeout, httpHeaders),
		CloudStorageWriter: cloudStorageRepo,
	})

	// cache: local freecache in front of an optional shared redis
	var redisPool *redis.Pool
	cacheLayers := []provider.Provider{
		primitive.NewPrimitive("metadata", viper.GetInt("cache.localSizeMB")),
	}
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		pool, err := redisclient.ConnectRedis(context, uri, viper.GetString("redis_cache.password"), redisclient.RedisParam{
			MaxIdle:   viper.GetInt("redis_cache.maxIdle"),
			MaxActive: viper.GetInt("redis_cache.maxActive"),
			Retries:   viper.GetInt("redis_cache.retries"),
		})
		if err != nil {
			context.WithField("err", err).Panic("redisclient.ConnectRedis failed")
		}
		defer pool.Close()
		redisPool = pool
		cacheLayers = append(cacheLayers, redisCache.NewRedis(pool))
	}
	cacheProvider := compound.NewCompound(cacheLayers...)

	var pinataService pinata.Service
	if apiKey := viper.GetString("pinata.apiKey"); apiKey != "" {
		pinataService = pinata.New(pinata.Config{
			ApiKey:    apiKey,
			ApiSecret: viper.GetString("pinata.apiSecret"),
			Endpoint:  viper.GetString("pinata.endpoint"),
			Client:    &http.Client{Timeout: httpTimeout},
		})
	}

	metadataUseCase := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		WebResource: webResourceUseCase,
		Pinata:      pinataService,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("cache.ttl"),
			Pfx:   "nftmeta",
			Cache: cacheProvider,
		}),
		Retries:    viper.GetInt("metadata.retries"),
		RetryStart: viper.GetDuration("metadata.retryStart"),
		RetryLimit: viper.GetDuration("metadata.retryLimit"),
		Workers:    viper.GetInt("metadata.workers"),
	})

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	hc_delivery.New(e, hc_usecase.New(hc_repo.New(redisPool, ipfsShell)))
	metadata_delivery.New(e, metadataUseCase, mmiddleware.CacheHttp(cacheProvider, viper.GetDuration("cache.httpTtl")))

	serverDone := goroutine.RecoverableGo(context, func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	})

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case <-serverDone:
		log.Log().Warn("server stopped unexpectedly")
	}
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
