package app

import (
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods"
	goodsUCPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	masterUCPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	priceListUCPkg "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/usecase"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/cache"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/search"
)

// Integrations are the optional backends. Nil fields are disabled.
type Integrations struct {
	Cache     *cache.RedisClient
	Search    *search.Client
	Publisher syncjob.Publisher
}

type Services struct {
	PriceLists pricelist.UseCase
	Executor   *syncjob.Executor
	Dispatcher syncjob.Dispatcher
	Goods      goods.UseCase
	Masters    masterdata.UseCase

	inline *syncjob.InlineDispatcher
}

// NewServices wires the usecases in dependency order: the reconciler runs
// the jobs that the goods synchronizer dispatches after master data renames.
func NewServices(cfg *config.Config, stores *Stores, integ Integrations, log logger.ZapLogger) *Services {
	s := &Services{}
	var locks priceListUCPkg.Locker
	if integ.Cache != nil {
		locks = integ.Cache
	}
	s.PriceLists = priceListUCPkg.NewPriceListUseCase(stores.PriceLists, stores.Goods, stores.Masters, locks, log)
	s.Executor = syncjob.NewExecutor(stores.Jobs, s.PriceLists, log)

	if integ.Publisher != nil {
		s.Dispatcher = syncjob.NewKafkaDispatcher(s.Executor, integ.Publisher, log)
		log.Info("sync jobs dispatched over kafka", zap.String("topic", cfg.Kafka.Topic))
	} else {
		s.inline = syncjob.NewInlineDispatcher(s.Executor, cfg.Sync.JobTimeout)
		s.Dispatcher = s.inline
		log.Info("sync jobs run in process")
	}

	s.Goods = goodsUCPkg.NewGoodsUseCase(stores.Goods, stores.Masters, s.Dispatcher, integ.Cache, integ.Search, goodsUCPkg.Config{
		CacheTTL:    cfg.Redis.TTL,
		SearchIndex: cfg.Elastic.Index,
	}, log)
	s.Masters = masterUCPkg.NewMasterUseCase(stores.Masters, s.Goods, log)
	return s
}

// Drain waits for in-process sync jobs to finish.
func (s *Services) Drain() {
	if s.inline != nil {
		s.inline.Wait()
	}
}
