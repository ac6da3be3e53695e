package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"
	"myStoreCloud/pkg/metrics"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ---- Repository interfaces ----

// BehaviorReader exposes the behavior-log projections the strategies
// score from.
type BehaviorReader interface {
	PurchasedProductIDs(ctx context.Context, customerID uint64) ([]uint64, error)
	PurchasersOf(ctx context.Context, productIDs []uint64, excludeCustomerID uint64) ([]domain.PurchasePair, error)
	PurchasesByCustomers(ctx context.Context, customerIDs []uint64) ([]domain.PurchasePair, error)
	ActionCountsByProduct(ctx context.Context, since time.Time) ([]domain.ProductActionCount, error)
	EventsByCustomer(ctx context.Context, customerID uint64) ([]domain.BehaviorEvent, error)
}

// ViewReader reads the product-view log, most recent first.
type ViewReader interface {
	RecentViews(ctx context.Context, customerID *uint64, sessionID string, since time.Time, limit int) ([]domain.ProductView, error)
}

// CatalogReader reads category structure, the content-based strategy's
// only catalog input.
type CatalogReader interface {
	CategoriesForProducts(ctx context.Context, productIDs []uint64) ([]domain.ProductCategoryMapping, error)
	ProductsInCategories(ctx context.Context, categoryIDs []uint64) ([]domain.ProductCategoryMapping, error)
	CategoriesByID(ctx context.Context, categoryIDs []uint64) ([]domain.Category, error)
}

// RecommendationRepository persists generated results and their feedback
// transitions.
type RecommendationRepository interface {
	SaveBatch(ctx context.Context, recs []domain.Recommendation) error
	FindForFeedback(ctx context.Context, customerID *uint64, sessionID string, productID uint64) (domain.Recommendation, error)
	MarkFeedback(ctx context.Context, id uint64, action string, at time.Time) error
	ShownSince(ctx context.Context, since time.Time) ([]domain.Recommendation, error)
}

// PreferenceRepository upserts derived category affinities.
type PreferenceRepository interface {
	Upsert(ctx context.Context, pref *domain.CustomerPreference) error
}

// Repositories bundles the per-tenant data access the engine needs. One
// bundle is scoped to exactly one tenant handle; nothing in the engine
// ever touches two tenants in one request.
type Repositories struct {
	Behavior BehaviorReader
	Views    ViewReader
	Catalog  CatalogReader
	Recs     RecommendationRepository
	Prefs    PreferenceRepository
}

// TenantResolver maps a tenant identifier to its isolated database
// handle.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (*gorm.DB, error)
}

// RepositoryFactory builds a tenant-scoped repository bundle from a
// resolved handle. Wired in main, faked in tests.
type RepositoryFactory func(db *gorm.DB) Repositories

// TrendingCache holds the tenant-wide trending ranking for a short TTL,
// since it is identical for every visitor of a store. Optional; a nil
// cache means every request recomputes.
type TrendingCache interface {
	Get(ctx context.Context, tenantID string) ([]domain.RecommendationResult, error)
	Set(ctx context.Context, tenantID string, results []domain.RecommendationResult) error
}

// ---- Usecase / Service ----

type Service struct {
	tenants    TenantResolver
	repos      RepositoryFactory
	trendCache TrendingCache
	cfg        Config
}

func NewService(tenants TenantResolver, repos RepositoryFactory, trendCache TrendingCache, cfg Config) *Service {
	if cfg.Plans == nil {
		cfg = DefaultConfig()
	}

	return &Service{
		tenants:    tenants,
		repos:      repos,
		trendCache: trendCache,
		cfg:        cfg,
	}
}

// Request is one recommendation call. TenantID and SessionID are
// mandatory; an empty Type asks for the hybrid blend.
type Request struct {
	TenantID          string
	CustomerID        *uint64
	SessionID         string
	Limit             int
	ExcludeProductIDs []uint64
	Type              string
}

const defaultLimit = 10

var validTypes = map[string]bool{
	domain.TypeCollaborative:  true,
	domain.TypeContentBased:   true,
	domain.TypeTrending:       true,
	domain.TypeRecentlyViewed: true,
	domain.TypeHybrid:         true,
}

// Generate produces at most req.Limit ranked results. A failing strategy
// degrades to an empty contribution, never to a request error: showing no
// recommendations is always an acceptable state.
func (s *Service) Generate(ctx context.Context, req Request) ([]domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if req.TenantID == "" {
		return nil, errors.New("tenant id is required")
	}
	if req.SessionID == "" {
		return nil, errors.New("session id is required")
	}
	if req.Type != "" && !validTypes[req.Type] {
		return nil, fmt.Errorf("unknown recommendation type %q", req.Type)
	}

	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Type == "" {
		req.Type = domain.TypeHybrid
	}

	db, err := s.tenants.Resolve(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	repos := s.repos(db)

	exclude := make(map[uint64]struct{}, len(req.ExcludeProductIDs))
	for _, id := range req.ExcludeProductIDs {
		exclude[id] = struct{}{}
	}

	var results []domain.RecommendationResult
	switch req.Type {
	case domain.TypeHybrid:
		results = s.hybrid(ctx, repos, req, exclude)
	default:
		results = s.runStrategy(ctx, req.Type, repos, req, req.Limit, exclude)
	}

	metrics.RecommendationRequestsTotal.WithLabelValues(req.Type).Inc()

	// Persist for feedback tracking. Best effort: a storage failure must
	// not take down the recommendation response.
	if len(results) > 0 {
		if err := s.persistResults(ctx, repos, req, results); err != nil {
			logger.Error("failed to persist recommendations", "tenant", req.TenantID, "error", err)
		}
	}

	return results, nil
}

// runStrategy executes one strategy under its timeout budget and
// converts any failure into an empty result list.
func (s *Service) runStrategy(
	ctx context.Context,
	strategyType string,
	repos Repositories,
	req Request,
	limit int,
	exclude map[uint64]struct{},
) []domain.RecommendationResult {

	sctx, cancel := context.WithTimeout(ctx, s.cfg.StrategyTimeout)
	defer cancel()

	var (
		results []domain.RecommendationResult
		err     error
	)

	switch strategyType {
	case domain.TypeCollaborative:
		results, err = s.collaborative(sctx, repos, req, limit, exclude)
	case domain.TypeContentBased:
		results, err = s.contentBased(sctx, repos, req, limit, exclude)
	case domain.TypeTrending:
		results, err = s.trending(sctx, repos, req, limit, exclude)
	case domain.TypeRecentlyViewed:
		results, err = s.recentlyViewed(sctx, repos, req, limit, exclude)
	default:
		err = fmt.Errorf("unknown strategy %q", strategyType)
	}

	if err != nil {
		logger.Error("strategy failed, returning empty result",
			"strategy", strategyType,
			"tenant", req.TenantID,
			"error", err,
		)
		metrics.StrategyFailuresTotal.WithLabelValues(strategyType).Inc()
		return []domain.RecommendationResult{}
	}

	return results
}

func (s *Service) persistResults(ctx context.Context, repos Repositories, req Request, results []domain.RecommendationResult) error {
	recs := make([]domain.Recommendation, 0, len(results))
	for _, r := range results {
		recs = append(recs, domain.Recommendation{
			CustomerID:         req.CustomerID,
			SessionID:          req.SessionID,
			ProductID:          r.ProductID,
			RecommendationType: r.Type,
			Score:              r.Score,
			Reasons:            datatypes.NewJSONSlice(r.Reasons),
		})
	}

	return repos.Recs.SaveBatch(ctx, recs)
}

func (s *Service) reposFor(ctx context.Context, tenantID string) (Repositories, error) {
	if tenantID == "" {
		return Repositories{}, errors.New("tenant id is required")
	}

	db, err := s.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return Repositories{}, err
	}

	return s.repos(db), nil
}
