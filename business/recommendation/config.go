package recommendation

import (
	"time"

	"myStoreCloud/domain"
)

// StrategyPlan describes how one strategy participates in the hybrid
// merge: the share of the requested limit it may fill and the weight
// applied to its raw scores before summing.
type StrategyPlan struct {
	Share  float64
	Weight float64
}

// Config drives the combiner. Weights are data here, not literals spread
// through the merge code, so a deployment can rebalance strategies
// without touching scoring.
type Config struct {
	// Per-strategy wall clock budget inside a hybrid request. A strategy
	// that exceeds it is treated like a failed one: empty result.
	StrategyTimeout time.Duration

	Plans map[string]StrategyPlan
}

func DefaultConfig() Config {
	return Config{
		StrategyTimeout: 3 * time.Second,
		Plans: map[string]StrategyPlan{
			domain.TypeCollaborative:  {Share: 0.3, Weight: 0.4},
			domain.TypeContentBased:   {Share: 0.3, Weight: 0.3},
			domain.TypeTrending:       {Share: 0.2, Weight: 0.2},
			domain.TypeRecentlyViewed: {Share: 0.2, Weight: 0.1},
		},
	}
}

func (c Config) plan(strategyType string) StrategyPlan {
	if p, ok := c.Plans[strategyType]; ok {
		return p
	}

	return StrategyPlan{Share: 0.25, Weight: 0.25}
}
