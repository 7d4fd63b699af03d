// Package budget tracks cumulative token usage and spend across API calls.
package budget

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
)

// Usage holds token counts for a single API call.
type Usage struct {
	InputTokens              int
	OutputTokens             int
	CacheReadInputTokens     int
	CacheCreationInputTokens int
}

// Tracker accumulates token usage and cost. It is safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	maxBudget  decimal.Decimal // 0 = unlimited
	totalCost  decimal.Decimal
	totalUsage Usage
	pricing    map[anthropic.Model]ModelPricing
}

// NewTracker creates a new tracker. maxBudget of 0 means unlimited.
func NewTracker(maxBudget decimal.Decimal, pricing map[anthropic.Model]ModelPricing) *Tracker {
	return &Tracker{
		maxBudget: maxBudget,
		totalCost: decimal.Zero,
		pricing:   pricing,
	}
}

// RecordUsage records token usage for one API call and updates the
// cumulative cost. Unknown models have their tokens counted with no cost.
func (t *Tracker) RecordUsage(model anthropic.Model, usage Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalUsage.InputTokens += usage.InputTokens
	t.totalUsage.OutputTokens += usage.OutputTokens
	t.totalUsage.CacheReadInputTokens += usage.CacheReadInputTokens
	t.totalUsage.CacheCreationInputTokens += usage.CacheCreationInputTokens

	if pricing, ok := t.pricing[model]; ok {
		t.totalCost = t.totalCost.Add(pricing.Cost(usage))
	}
}

// Exhausted reports whether the cumulative cost has reached the budget.
func (t *Tracker) Exhausted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.maxBudget.IsZero() {
		return false
	}
	return t.totalCost.GreaterThanOrEqual(t.maxBudget)
}

// TotalCost returns the cumulative cost so far.
func (t *Tracker) TotalCost() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCost
}

// TotalUsage returns the cumulative token usage so far.
func (t *Tracker) TotalUsage() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalUsage
}
