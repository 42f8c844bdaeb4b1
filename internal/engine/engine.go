// Package engine orchestrates scans: it resolves the effective rule set
// for a repository, fans content units out over a bounded worker pool,
// and assembles raw matcher hits into an ordered stream of findings.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ghostai/ghostscan/internal/matcher"
	"github.com/ghostai/ghostscan/internal/rules"
	"github.com/ghostai/ghostscan/internal/types"
)

// ErrCancelled marks a scan stopped by caller cancellation. The Result
// returned alongside it still carries everything accumulated so far.
var ErrCancelled = errors.New("scan cancelled")

// DefaultSnippetRadius is the window, in bytes, captured on each side of
// a hit for the finding snippet. The same width applies to every matcher
// kind.
const DefaultSnippetRadius = 40

// Config controls scan behavior.
type Config struct {
	// Threads bounds the worker pool; 0 means GOMAXPROCS.
	Threads int
	// SnippetRadius overrides DefaultSnippetRadius when positive.
	SnippetRadius int
	// Now supplies the scan-start timestamp; nil means time.Now.
	// Every finding of one run shares this timestamp.
	Now func() time.Time
}

// UnitError records a content unit that could not be evaluated. Unit
// errors are isolated: the rest of the scan proceeds.
type UnitError struct {
	FilePath string `json:"filePath"`
	Err      error  `json:"-"`
}

func (e UnitError) Error() string {
	return fmt.Sprintf("content unit %s: %v", e.FilePath, e.Err)
}

// Result carries the findings of one scan run plus per-unit errors and
// basic statistics. A scan either fails outright on a configuration
// error, or succeeds with UnitErrors listing any skipped units.
type Result struct {
	Findings     []types.Finding
	UnitErrors   []UnitError
	UnitsScanned int
	Cancelled    bool
	Duration     time.Duration
}

// rawHit carries the sort key that restores deterministic ordering
// after concurrent evaluation: rule order outer, unit order middle,
// offset inner.
type rawHit struct {
	ruleIdx int
	unitIdx int
	hit     types.Hit
}

// Scan evaluates every enabled rule of the effective rule set against
// every content unit and returns the findings in deterministic order.
//
// Override resolution runs first; its failure aborts the whole scan
// before any unit is touched. Unit-level failures are recorded in
// Result.UnitErrors without stopping the run. Cancellation via ctx
// returns the findings accumulated so far together with ErrCancelled.
func Scan(ctx context.Context, cfg Config, set *rules.RuleSet, repository string, units []types.ContentUnit) (Result, error) {
	var res Result
	started := time.Now()
	if cfg.Now != nil {
		started = cfg.Now()
	}

	eff, err := rules.Resolve(set, repository)
	if err != nil {
		return res, err
	}

	var enabled []indexedRule
	for i, r := range eff.Rules() {
		if r.Enabled {
			enabled = append(enabled, indexedRule{idx: i, rule: r})
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > len(units) && len(units) > 0 {
		threads = len(units)
	}
	if threads < 1 {
		threads = 1
	}

	var (
		mu       sync.Mutex
		raw      []rawHit
		unitErrs []UnitError
		scanned  int
	)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue // drain
				}
				u := units[idx]
				hits, err := scanUnit(u, idx, enabled)
				mu.Lock()
				if err != nil {
					unitErrs = append(unitErrs, UnitError{FilePath: u.FilePath, Err: err})
				} else {
					raw = append(raw, hits...)
				}
				scanned++
				mu.Unlock()
			}
		}()
	}

feed:
	for i := range units {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	res.Cancelled = ctx.Err() != nil
	res.UnitsScanned = scanned

	// restore the deterministic order defined by (rule, unit, offset)
	sort.Slice(raw, func(i, j int) bool {
		if raw[i].ruleIdx != raw[j].ruleIdx {
			return raw[i].ruleIdx < raw[j].ruleIdx
		}
		if raw[i].unitIdx != raw[j].unitIdx {
			return raw[i].unitIdx < raw[j].unitIdx
		}
		return raw[i].hit.Offset < raw[j].hit.Offset
	})
	sort.Slice(unitErrs, func(i, j int) bool { return unitErrs[i].FilePath < unitErrs[j].FilePath })
	res.UnitErrors = unitErrs

	radius := cfg.SnippetRadius
	if radius <= 0 {
		radius = DefaultSnippetRadius
	}
	ruleList := eff.Rules()
	res.Findings = make([]types.Finding, 0, len(raw))
	for i, rh := range raw {
		r := ruleList[rh.ruleIdx]
		u := units[rh.unitIdx]
		res.Findings = append(res.Findings, types.Finding{
			ID:         int64(i + 1),
			FilePath:   u.FilePath,
			Line:       rh.hit.Line,
			Detector:   r.Name,
			Severity:   r.Threshold,
			Repository: u.Repository,
			Snippet:    snippet(u.Text, rh.hit.Offset, radius),
			CreatedAt:  started,
		})
	}

	res.Duration = time.Since(started)
	if res.Cancelled {
		return res, ErrCancelled
	}
	return res, nil
}

// indexedRule pairs an enabled rule with its position in the effective
// rule set, which is the outer component of the finding sort key.
type indexedRule struct {
	idx  int
	rule rules.Rule
}

func scanUnit(u types.ContentUnit, unitIdx int, enabled []indexedRule) (hits []rawHit, err error) {
	defer func() {
		if r := recover(); r != nil {
			hits = nil
			err = fmt.Errorf("matcher panic: %v", r)
		}
	}()
	if !utf8.ValidString(u.Text) || strings.ContainsRune(u.Text, 0) {
		return nil, errors.New("content is not valid text")
	}
	for _, ir := range enabled {
		for _, h := range matcher.Apply(ir.rule, u) {
			hits = append(hits, rawHit{ruleIdx: ir.idx, unitIdx: unitIdx, hit: h})
		}
	}
	return hits, nil
}

// snippet returns a bounded window of text around offset, trimmed to
// the surrounding line breaks so multi-line context stays readable.
func snippet(text string, offset, radius int) string {
	lo := offset - radius
	if lo < 0 {
		lo = 0
	}
	hi := offset + radius
	if hi > len(text) {
		hi = len(text)
	}
	// back off partial UTF-8 sequences at the window edges
	for lo > 0 && lo < len(text) && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return strings.TrimSpace(text[lo:hi])
}
