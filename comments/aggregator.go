package comments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Outcome is the result of a successful aggregation run.
type Outcome struct {
	VideoID   string
	Rows      []CommentRow
	Progress  Progress
	Pages     int
	EndReason EndReason
	State     State
}

// PageEvent describes one processed page.
type PageEvent struct {
	VideoID  string
	Number   int
	Cursor   string
	Threads  int
	Rows     int
	HasNext  bool
	Drift    bool
	Duration time.Duration
}

// PageObserver is notified after each page has been merged into the dataset.
type PageObserver func(ev PageEvent)

// Aggregator walks the paginated comment API until it is exhausted.
// It holds no per-run state, so one Aggregator can serve concurrent runs.
type Aggregator struct {
	fetcher  PageFetcher
	replies  ReplyResolver
	oracle   TotalCountOracle
	observer PageObserver
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithPageObserver registers a callback invoked once per merged page.
func WithPageObserver(obs PageObserver) AggregatorOption {
	return func(a *Aggregator) {
		a.observer = obs
	}
}

// NewAggregator returns an Aggregator over the given collaborators.
func NewAggregator(fetcher PageFetcher, replies ReplyResolver, oracle TotalCountOracle, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		replies: replies,
		oracle:  oracle,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// run is the state owned by a single aggregation.
type run struct {
	videoID   string
	state     State
	rows      []CommentRow
	progress  Progress
	pages     int
	flattener *Flattener
}

func (r *run) moveTo(next State) {
	if !CanTransition(r.state, next) {
		panic(fmt.Sprintf("illegal aggregation transition %s -> %s", r.state, next))
	}
	if r.state != next {
		log.Printf("Aggregator: video %s %s -> %s", r.videoID, r.state, next)
	}
	r.state = next
}

// Run builds the complete dataset for videoID. On error the returned Outcome is nil
// and rows collected so far are discarded.
func (a *Aggregator) Run(ctx context.Context, videoID string, sink ProgressSink) (*Outcome, error) {
	r := &run{
		videoID:   videoID,
		state:     StateOraclePending,
		flattener: NewFlattener(a.replies, sink),
	}

	total, err := a.oracle.TotalCount(ctx, videoID)
	if err != nil {
		r.moveTo(StateFailed)
		return nil, err
	}
	r.progress = Progress{Total: total}
	log.Printf("Aggregator: video %s reports %d comments", videoID, total)
	r.moveTo(StateFirstPagePending)

	cursor := ""
	endReason := EndOfData
	for {
		started := time.Now()
		page, err := a.fetcher.FetchPage(ctx, videoID, cursor)
		r.pages++

		var drift *ProtocolDriftError
		drifted := err != nil && errors.As(err, &drift)
		if err != nil && !drifted {
			return nil, r.fail("fetch page", err)
		}

		before := len(r.rows)
		rows, progress, err := r.flattener.FlattenPage(ctx, page, r.progress)
		if err != nil {
			return nil, r.fail("flatten page", err)
		}
		r.rows = append(r.rows, rows...)
		r.progress = progress

		next := ""
		if page != nil && !drifted {
			next = page.NextCursor
		}
		a.notify(PageEvent{
			VideoID:  videoID,
			Number:   r.pages,
			Cursor:   cursor,
			Threads:  threadCount(page),
			Rows:     len(r.rows) - before,
			HasNext:  next != "",
			Drift:    drifted,
			Duration: time.Since(started),
		})

		if drifted {
			log.Printf("Aggregator: video %s page %d: %v, treating as end of data", videoID, r.pages, drift)
			endReason = EndProtocolDrift
			r.moveTo(StateDone)
			break
		}
		if next == "" {
			r.moveTo(StateDone)
			break
		}
		cursor = next
		r.moveTo(StatePaging)
	}

	log.Printf("Aggregator: video %s done, %d rows over %d pages (%s)", videoID, len(r.rows), r.pages, endReason)
	return &Outcome{
		VideoID:   videoID,
		Rows:      r.rows,
		Progress:  r.progress,
		Pages:     r.pages,
		EndReason: endReason,
		State:     r.state,
	}, nil
}

// fail moves the run to FAILED and returns the error to surface. Credential and
// not-found errors are unwrapped and returned as is, anything else is wrapped with context.
func (r *run) fail(op string, err error) error {
	at := r.state
	r.moveTo(StateFailed)
	r.rows = nil

	var credErr *CredentialError
	var notFoundErr *ResourceNotFoundError
	if errors.As(err, &credErr) {
		return credErr
	}
	if errors.As(err, &notFoundErr) {
		return notFoundErr
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		fetchErr.Page = r.pages
		fetchErr.State = at
		return fetchErr
	}
	return &FetchError{Op: op, Page: r.pages, State: at, Err: err}
}

func (a *Aggregator) notify(ev PageEvent) {
	if a.observer != nil {
		a.observer(ev)
	}
}

func threadCount(page *Page) int {
	if page == nil {
		return 0
	}
	return len(page.Threads)
}
