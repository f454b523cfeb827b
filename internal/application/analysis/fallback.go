package analysis

import (
	"math/rand/v2"
	"sync"

	domain "github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

// KeepProbability is the chance each canned entry survives into a fallback result.
const KeepProbability = 0.7

var (
	fallbackIssues = []string{
		"使いにくいインターフェース",
		"クラッシュや動作の遅さ",
		"機能の不足",
		"バグの存在",
		"バッテリー消費が多い",
	}
	fallbackSuggestions = []string{
		"より直感的なユーザーインターフェースの設計",
		"パフォーマンスの最適化",
		"ユーザーが求める主要機能の追加",
		"徹底的なバグテストとフィードバックシステムの導入",
		"バッテリー消費を抑えるための最適化",
	}
)

// FallbackIssues returns a copy of the canned issue list.
func FallbackIssues() []string { return append([]string(nil), fallbackIssues...) }

// FallbackSuggestions returns a copy of the canned suggestion list.
func FallbackSuggestions() []string { return append([]string(nil), fallbackSuggestions...) }

// Fallback produces a degraded Result when the analyzer is unavailable.
type Fallback struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFallback seeds the random source; equal seeds give equal sequences.
func NewFallback(seed uint64) *Fallback {
	return &Fallback{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (f *Fallback) Result() domain.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Result{
		CommonIssues: f.pick(fallbackIssues),
		Suggestions:  f.pick(fallbackSuggestions),
		Degraded:     true,
	}
}

func (f *Fallback) pick(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if f.rnd.Float64() < KeepProbability {
			out = append(out, c)
		}
	}
	return out
}
