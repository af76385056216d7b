package hubspot

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// DateField selects which date properties the fetch filter applies to.
type DateField string

const (
	// DateFieldCreated filters on createdate only.
	DateFieldCreated DateField = "created"
	// DateFieldModified filters on lastmodifieddate only.
	DateFieldModified DateField = "modified"
	// DateFieldEither matches records whose createdate OR lastmodifieddate
	// falls inside the window (two filter groups, OR-of-AND semantics).
	DateFieldEither DateField = "either"
)

const (
	// maxPageSize is the protocol-imposed maximum records per search call.
	maxPageSize = 100

	// defaultPageDelay keeps sequential page requests under typical
	// burst-rate ceilings. Policy knob, not a correctness requirement.
	defaultPageDelay = 200 * time.Millisecond

	// defaultRetryWait applies when a 429 carries no Retry-After header.
	defaultRetryWait = 10 * time.Second
)

// Query describes one complete fetch: the date selector, the resolved UTC
// millisecond window, and the properties to retrieve per record.
type Query struct {
	DateField  DateField
	StartMS    int64
	EndMS      int64
	Properties []string
}

// ProgressFunc receives monotonically increasing progress after every fetched
// page. It is a side effect only; it does not influence the walk.
type ProgressFunc func(pages, contacts int)

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithPageDelay overrides the inter-page pacing delay.
func WithPageDelay(d time.Duration) WalkerOption {
	return func(w *Walker) {
		if d > 0 {
			w.pageDelay = d
		}
	}
}

// WithRetryWait overrides the fallback wait used when a 429 response carries
// no Retry-After header.
func WithRetryWait(d time.Duration) WalkerOption {
	return func(w *Walker) {
		if d > 0 {
			w.retryWait = d
		}
	}
}

// WithProgress registers a progress sink.
func WithProgress(fn ProgressFunc) WalkerOption {
	return func(w *Walker) {
		w.progress = fn
	}
}

// Walker retrieves the complete result set for a date-bounded filter query,
// following the continuation cursor page by page. The cursor protocol is
// strictly sequential, so there is no parallel fetching.
type Walker struct {
	client    Client
	pageDelay time.Duration
	retryWait time.Duration
	progress  ProgressFunc
}

// NewWalker creates a Walker over the given client.
func NewWalker(client Client, opts ...WalkerOption) *Walker {
	w := &Walker{
		client:    client,
		pageDelay: defaultPageDelay,
		retryWait: defaultRetryWait,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FetchAll walks every page matched by the query and returns the concatenated
// records in the API's sort order (ascending by the primary filter date).
//
// On a 429 the walker waits the server-directed duration and retries the same
// page; the cursor is not advanced and no page is recorded twice. Any other
// failure is terminal: accumulated pages are discarded and only the error is
// returned, so callers never aggregate a partial result set.
func (w *Walker) FetchAll(ctx context.Context, q Query) ([]model.RawContact, error) {
	props := q.Properties
	if len(props) == 0 {
		props = ContactProperties
	}

	limiter := rate.NewLimiter(rate.Every(w.pageDelay), 1)

	var all []model.RawContact
	var after string
	pages := 0

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "hubspot: page pacing")
		}

		req := SearchRequest{
			FilterGroups: buildFilterGroups(q),
			Properties:   props,
			Limit:        maxPageSize,
			Sorts: []Sort{{
				PropertyName: sortProperty(q.DateField),
				Direction:    "ASCENDING",
			}},
			After: after,
		}

		resp, err := w.client.SearchContacts(ctx, req)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.RateLimited() {
				wait := apiErr.RetryAfter
				if wait <= 0 {
					wait = w.retryWait
				}
				zap.L().Warn("hubspot: rate limited, waiting before retrying page",
					zap.Duration("wait", wait),
					zap.Int("pages_fetched", pages),
				)
				if err := sleepCtx(ctx, wait); err != nil {
					return nil, eris.Wrap(err, "hubspot: rate limit wait")
				}
				continue // retry the same page, cursor unchanged
			}
			return nil, eris.Wrapf(err, "hubspot: fetch page %d", pages+1)
		}

		if len(resp.Results) == 0 {
			break
		}

		all = append(all, resp.Results...)
		pages++
		if w.progress != nil {
			w.progress(pages, len(all))
		}
		zap.L().Debug("hubspot: page fetched",
			zap.Int("page", pages),
			zap.Int("contacts", len(all)),
		)

		after = resp.NextAfter()
		if after == "" {
			break
		}
	}

	zap.L().Info("hubspot: fetch complete",
		zap.Int("pages", pages),
		zap.Int("contacts", len(all)),
	)
	return all, nil
}

// buildFilterGroups returns one AND group per date property in scope. With
// the Either selector the two groups are ORed by the API, so a record matches
// when either date falls inside the window.
func buildFilterGroups(q Query) []FilterGroup {
	group := func(property string) FilterGroup {
		return FilterGroup{Filters: []Filter{
			{PropertyName: property, Operator: "GTE", Value: strconv.FormatInt(q.StartMS, 10)},
			{PropertyName: property, Operator: "LTE", Value: strconv.FormatInt(q.EndMS, 10)},
		}}
	}

	switch q.DateField {
	case DateFieldCreated:
		return []FilterGroup{group("createdate")}
	case DateFieldModified:
		return []FilterGroup{group("lastmodifieddate")}
	default:
		return []FilterGroup{group("createdate"), group("lastmodifieddate")}
	}
}

func sortProperty(f DateField) string {
	if f == DateFieldCreated {
		return "createdate"
	}
	return "lastmodifieddate"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
