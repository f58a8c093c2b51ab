package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/auth"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/syncjob"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/cache"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/search"
)

const (
	cacheKeyPrefix     = "goods:list:"
	defaultCacheTTL    = 5 * time.Minute
	defaultSearchIndex = "goods"
	defaultSearchLimit = 20
)

const searchMapping = `{
	"mappings": {
		"properties": {
			"fullName": { "type": "text" },
			"code": { "type": "keyword" },
			"barcode": { "type": "keyword" },
			"category": { "type": "keyword" },
			"bagProduct": { "type": "keyword" },
			"remainingsubsubcategory": { "type": "text" },
			"price": { "type": "double" },
			"createdAt": { "type": "date" }
		}
	}
}`

type Config struct {
	CacheTTL    time.Duration
	SearchIndex string
}

type goodsUseCase struct {
	repo       goods.Repository
	masters    masterdata.Repository
	dispatcher syncjob.Dispatcher
	cache      *cache.RedisClient
	es         *search.Client
	cfg        Config
	indexOnce  sync.Once
	logger     logger.ZapLogger
	tracer     trace.Tracer
}

// NewGoodsUseCase builds the goods usecase. dispatcher, cache and es are
// optional and may be nil.
func NewGoodsUseCase(
	repo goods.Repository,
	masters masterdata.Repository,
	dispatcher syncjob.Dispatcher,
	cache *cache.RedisClient,
	es *search.Client,
	cfg Config,
	log logger.ZapLogger,
) goods.UseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.SearchIndex == "" {
		cfg.SearchIndex = defaultSearchIndex
	}
	return &goodsUseCase{
		repo:       repo,
		masters:    masters,
		dispatcher: dispatcher,
		cache:      cache,
		es:         es,
		cfg:        cfg,
		logger:     log,
		tracer:     otel.Tracer("goods"),
	}
}

func (uc *goodsUseCase) CreateGood(ctx context.Context, input *dto.CreateGoodInput) (*model.Good, error) {
	category := strings.ReplaceAll(strings.TrimSpace(input.Category), "_", " ")

	g, err := uc.prepare(ctx, &input.GoodInput, category, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	uc.afterWrite(g)

	// Product card flow: the new good enters every price list with its own prices.
	if input.SeedPrices {
		uc.dispatch(ctx, "goods.create", model.SyncOptions{
			AddNew:       true,
			UpdatePrices: true,
			GoodIDs:      []string{g.ID},
		})
	}

	return g, nil
}

func (uc *goodsUseCase) GetGood(ctx context.Context, id string) (*model.Good, error) {
	g, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperror.NotFound("good %s not found", id)
	}
	return g, nil
}

func (uc *goodsUseCase) ListGoods(ctx context.Context, filters *dto.GoodFilters) ([]model.Good, error) {
	// 1. Generate Cache Key
	cacheKey := ""
	if uc.cache != nil {
		if key, err := generateCacheKey(filters); err == nil {
			cacheKey = key
		}
	}

	// 2. Check Cache
	if cacheKey != "" {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []model.Good
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	// 3. DB Query
	list, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	// 4. Set Cache
	if cacheKey != "" {
		if data, err := json.Marshal(list); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, uc.cfg.CacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache goods list", zap.Error(err))
			}
		}
	}

	return list, nil
}

func generateCacheKey(filters *dto.GoodFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", cacheKeyPrefix, md5.Sum(data)), nil
}

// SearchGoods queries the search index and falls back to the database when
// the index is unavailable.
func (uc *goodsUseCase) SearchGoods(ctx context.Context, query string, limit int) ([]model.Good, int, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if uc.es != nil {
		q := map[string]any{
			"query": map[string]any{
				"query_string": map[string]any{
					"query":  fmt.Sprintf("*%s*", escapeQueryString(query)),
					"fields": []string{"fullName^3", "code", "barcode", "bagProduct", "remainingsubsubcategory"},
				},
			},
			"size": limit,
		}
		res, err := uc.es.Search(ctx, uc.cfg.SearchIndex, q)
		if err == nil {
			found := make([]model.Good, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var g model.Good
				if err := json.Unmarshal(hit.Source, &g); err == nil {
					found = append(found, g)
				}
			}
			return found, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	list, err := uc.repo.FindAll(ctx, &dto.GoodFilters{Search: query})
	if err != nil {
		return nil, 0, err
	}
	total := len(list)
	if len(list) > limit {
		list = list[:limit]
	}
	return list, total, nil
}

var queryStringEscaper = strings.NewReplacer(
	`\`, `\\`, `+`, `\+`, `-`, `\-`, `=`, `\=`, `&`, `\&`, `|`, `\|`, `>`, `\>`, `<`, `\<`,
	`!`, `\!`, `(`, `\(`, `)`, `\)`, `{`, `\{`, `}`, `\}`, `[`, `\[`, `]`, `\]`, `^`, `\^`,
	`"`, `\"`, `~`, `\~`, `*`, `\*`, `?`, `\?`, `:`, `\:`, `/`, `\/`,
)

func escapeQueryString(s string) string {
	return queryStringEscaper.Replace(s)
}

func (uc *goodsUseCase) UpdateGood(ctx context.Context, input *dto.UpdateGoodInput) (*model.Good, error) {
	existing, err := uc.GetGood(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Category is fixed once a good exists; a different value is ignored.
	if c := strings.ReplaceAll(strings.TrimSpace(input.Category), "_", " "); c != existing.Category {
		uc.logger.Debug("ignoring category change on update",
			zap.String("good_id", existing.ID),
			zap.String("category", existing.Category),
			zap.String("requested", c),
		)
	}

	g, err := uc.prepare(ctx, &input.GoodInput, existing.Category, existing.ID)
	if err != nil {
		return nil, err
	}
	g.BaseModel = existing.BaseModel
	g.UpdatedAt = time.Now()

	pricesChanged := !g.Price.Equal(existing.Price) ||
		!g.DiscountPrice.Equal(existing.DiscountPrice) ||
		!g.PriceExceptions.Equal(existing.PriceExceptions)

	if err := uc.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	uc.afterWrite(g)

	uc.dispatch(ctx, "goods.update", model.SyncOptions{
		UpdateOutdated: true,
		AddNew:         true,
		UpdatePrices:   pricesChanged || input.PropagatePrices,
		GoodIDs:        []string{g.ID},
	})

	return g, nil
}

func (uc *goodsUseCase) DeleteGood(ctx context.Context, id string) error {
	if _, err := uc.GetGood(ctx, id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Price list items of the good stay until a sync with removeDeleted runs.
	go uc.invalidateCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.cfg.SearchIndex, id); err != nil {
				uc.logger.Error("failed to delete good from ES", zap.String("good_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

// afterWrite refreshes the list cache and the search index in the background.
func (uc *goodsUseCase) afterWrite(changed ...*model.Good) {
	go uc.invalidateCache(context.Background())
	for _, g := range changed {
		go uc.syncToElastic(context.Background(), g.Clone())
	}
}

func (uc *goodsUseCase) invalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPattern(ctx, cacheKeyPrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate goods cache", zap.Error(err))
	}
}

func (uc *goodsUseCase) syncToElastic(ctx context.Context, g *model.Good) {
	if uc.es == nil {
		return
	}
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, uc.cfg.SearchIndex, searchMapping); err != nil {
			uc.logger.Warn("failed to create goods index", zap.Error(err))
		}
	})
	if err := uc.es.Index(ctx, uc.cfg.SearchIndex, g.ID, g); err != nil {
		uc.logger.Error("failed to index good", zap.String("good_id", g.ID), zap.Error(err))
	}
}

// dispatch schedules a price list sync. The catalog change is already stored,
// so a failed dispatch is logged and the job id, if any, returned.
func (uc *goodsUseCase) dispatch(ctx context.Context, action string, opts model.SyncOptions) string {
	if uc.dispatcher == nil {
		return ""
	}
	job, err := uc.dispatcher.Dispatch(ctx, syncjob.Request{
		Trigger: action + ":" + auth.GetSubject(ctx).Name,
		Options: opts,
	})
	if err != nil {
		uc.logger.Error("failed to dispatch price list sync",
			zap.String("trigger", action),
			zap.Strings("good_ids", opts.GoodIDs),
			zap.Error(err),
		)
	}
	if job == nil {
		return ""
	}
	return job.ID
}
