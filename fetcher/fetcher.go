// Package fetcher implements the bounded, breadth-first traversal of
// the DAG through a store.BlockStore, described in spec.md section 4.6.
// It plays a role analogous to mosaicnetworks/babble's gossip/sync
// machinery, except the "network" here is just the block store, and the
// "peers" being caught up with are missing parent digests.
package fetcher

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/entry"
	"github.com/mosaicnetworks/hashlog/store"
)

// DefaultTimeout is the per-fetch timeout used when Options.Timeout is
// zero, matching spec.md section 5's stated default.
const DefaultTimeout = 30 * time.Second

// OnProgress is invoked once per successfully fetched entry, in BFS
// order. parent is nil for seed digests; depth is the BFS depth (0 for
// seeds).
type OnProgress func(hash string, e *entry.Entry, parent *entry.Entry, depth int)

// Options configures a Fetch call.
type Options struct {
	// Max bounds the number of entries returned. Negative means
	// unbounded.
	Max int
	// Exclude lists digests that are already known and should not be
	// fetched even if discovered.
	Exclude map[string]bool
	// Timeout bounds each individual store.Get call. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// OnProgress, if non-nil, is invoked after each successful fetch.
	OnProgress OnProgress
	// Logger receives structured traversal diagnostics. A nil Logger
	// gets a default one, in the style of
	// mosaicnetworks/babble's NewHashgraph(nil logger) fallback.
	Logger *logrus.Entry
}

// Stats summarizes a completed Fetch, supplementing spec.md's bare
// "return the result list" with enough information for a caller to
// decide whether to retry Expand, per spec.md section 7's guidance.
type Stats struct {
	Fetched  int
	TimedOut int
	MaxDepth int
}

type workItem struct {
	hash   string
	parent *entry.Entry
	depth  int
}

// Fetch performs the bounded BFS traversal seeded by seeds. It never
// fails outright because of unreachable blocks: those are treated as
// unfetchable and the traversal continues. Only a malformed block
// (ParseError) or a context cancellation propagates as an error.
func Fetch(ctx context.Context, s store.BlockStore, seeds []string, opts Options) ([]*entry.Entry, Stats, error) {
	if s == nil {
		return nil, Stats{}, common.NewStoreNotDefined()
	}

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.Level = logrus.DebugLevel
		logger = logrus.NewEntry(l)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	seen := make(map[string]bool, len(opts.Exclude)+len(seeds))
	for h := range opts.Exclude {
		seen[h] = true
	}

	queue := make([]workItem, 0, len(seeds))
	for _, h := range seeds {
		if seen[h] {
			continue
		}
		queue = append(queue, workItem{hash: h, parent: nil, depth: 0})
	}

	var (
		results []*entry.Entry
		stats   Stats
	)

	for len(queue) > 0 {
		if opts.Max >= 0 && len(results) >= opts.Max {
			break
		}

		item := queue[0]
		queue = queue[1:]

		if seen[item.hash] {
			continue
		}

		e, timedOut, err := fetchOne(ctx, s, item.hash, timeout)
		if err != nil {
			return results, stats, err
		}
		if timedOut {
			stats.TimedOut++
			logger.WithField("hash", item.hash).Debug("fetcher: timed out, treating as unfetchable")
			continue
		}

		seen[item.hash] = true
		results = append(results, e)
		stats.Fetched++
		if item.depth > stats.MaxDepth {
			stats.MaxDepth = item.depth
		}

		if opts.OnProgress != nil {
			opts.OnProgress(item.hash, e, item.parent, item.depth)
		}

		// Every discovered digest is enqueued regardless of the result
		// cap: the cap bounds what we return, not what we discover,
		// per spec.md section 4.6.
		for _, n := range e.Next() {
			h := n.String()
			if seen[h] {
				continue
			}
			queue = append(queue, workItem{hash: h, parent: e, depth: item.depth + 1})
		}
	}

	return results, stats, nil
}

// fetchOne races a single store.Get against timeout, the same
// select{}/time.After pattern mosaicnetworks/babble's
// src/net.InmemTransport.makeRPC uses to bound an RPC round trip.
func fetchOne(ctx context.Context, s store.BlockStore, hash string, timeout time.Duration) (*entry.Entry, bool, error) {
	d, err := digest.Parse(hash)
	if err != nil {
		return nil, false, common.NewParseError(hash, err)
	}

	type result struct {
		e   *entry.Entry
		err error
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result, 1)
	go func() {
		e, err := entry.FromHash(fetchCtx, s, d)
		ch <- result{e: e, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if common.Is(r.err, common.ParseError) {
				return nil, false, r.err
			}
			// StoreError (not found, unreachable, or context deadline
			// surfaced through the store) degrades to a skipped node.
			return nil, true, nil
		}
		return r.e, false, nil
	case <-time.After(timeout):
		return nil, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
