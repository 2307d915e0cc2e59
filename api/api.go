package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/singleflight"

	"github.com/foliocms/go-folio/apierror"
	"github.com/foliocms/go-folio/document"
)

var log = logging.Logger("folio/api")

const apiPath = "api"

// EverythingForm is the name of the form every repository exposes. It
// searches all documents.
const EverythingForm = "everything"

var (
	// ErrNoMasterRef means the repository data does not include a master
	// ref. A repository without one cannot be queried.
	ErrNoMasterRef = errors.New("repository has no master ref")
	// ErrFormNotFound means the repository does not expose the requested
	// search form.
	ErrFormNotFound = errors.New("form not found")
)

// Client queries one content repository. It is safe for concurrent use.
//
// Search responses are cached in a ResponseCache keyed by request URL.
// Clients not configured with a cache share DefaultCache. The cache is
// cleared whenever a refresh observes that the master ref advanced, so a
// stale response can outlive a publication only until the next refresh.
type Client struct {
	hc          *http.Client
	apiURL      *url.URL
	accessToken string

	cache   *ResponseCache
	fetches singleflight.Group

	mutex  sync.Mutex
	repo   *Repository
	master Ref

	refreshIn    time.Duration
	refreshTimer *time.Timer
	needsRefresh atomic.Bool

	watchMutex sync.Mutex
	watchers   map[int]chan<- RefChange
	watchSeq   int
}

// NewClient creates a client for the repository at baseURL and loads the
// repository data from it. The URL addresses the repository root; the /api
// path is implied.
func NewClient(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url must have http or https scheme: %s", baseURL)
	}
	u.Path = ""

	opts, err := getOpts(options)
	if err != nil {
		return nil, err
	}

	httpClient := opts.httpClient
	if opts.retryMax != 0 {
		// Client with retry config.
		rclient := &retryablehttp.Client{
			HTTPClient:   httpClient,
			RetryWaitMin: opts.retryWaitMin,
			RetryWaitMax: opts.retryWaitMax,
			RetryMax:     opts.retryMax,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
			Backoff:      retryablehttp.DefaultBackoff,
		}
		httpClient = rclient.StandardClient()
	}

	cache := opts.cache
	if cache == nil {
		cache = DefaultCache()
	}

	c := &Client{
		hc:          httpClient,
		apiURL:      u.JoinPath(apiPath),
		accessToken: opts.accessToken,
		cache:       cache,
		refreshIn:   opts.refreshIn,
	}

	if err = c.Refresh(ctx); err != nil {
		return nil, err
	}

	if opts.refreshIn != 0 {
		c.refreshTimer = time.AfterFunc(opts.refreshIn, func() {
			c.needsRefresh.Store(true)
		})
	}
	return c, nil
}

// Refresh re-fetches the repository data. When the master ref advanced since
// the previous fetch, the response cache is cleared and ref watchers are
// notified.
func (c *Client) Refresh(ctx context.Context) error {
	repo, err := c.fetchRepository(ctx)
	if err != nil {
		return err
	}
	master, found := repo.MasterRef()
	if !found {
		return ErrNoMasterRef
	}

	var change RefChange
	var advanced bool

	c.mutex.Lock()
	if c.repo != nil && c.master.Ref != master.Ref {
		change = RefChange{Old: c.master, New: master}
		advanced = true
		c.cache.Clear()
	}
	c.repo = repo
	c.master = master
	c.mutex.Unlock()

	if advanced {
		log.Infow("Master ref advanced, response cache cleared", "old", change.Old.Ref, "new", change.New.Ref)
		c.notifyRefChange(change)
	}
	return nil
}

// Close stops the automatic refresh timer and closes any channels created by
// OnRefChange. The client remains usable for queries.
func (c *Client) Close() {
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
	}
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()
	for id, ch := range c.watchers {
		delete(c.watchers, id)
		close(ch)
	}
}

// Repository returns the repository data from the most recent refresh.
func (c *Client) Repository() *Repository {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.repo
}

// Master returns the current master ref.
func (c *Client) Master() Ref {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.master
}

// RefFromLabel returns the ref with the given label, such as a release name.
func (c *Client) RefFromLabel(label string) (Ref, bool) {
	return c.Repository().RefFromLabel(label)
}

// Refs returns all refs the repository currently exposes.
func (c *Client) Refs() []Ref {
	return c.Repository().Refs
}

// Bookmarks returns the repository's bookmarked document IDs by bookmark
// name.
func (c *Client) Bookmarks() map[string]string {
	return c.Repository().Bookmarks
}

// Types returns the repository's document type labels by type name.
func (c *Client) Types() map[string]string {
	return c.Repository().Types
}

// Tags returns every tag in use in the repository.
func (c *Client) Tags() []string {
	return c.Repository().Tags
}

// Experiments returns the repository's content experiments.
func (c *Client) Experiments() Experiments {
	return c.Repository().Experiments
}

// GetByID returns the document with the given ID. If no document has the ID
// then a nil document without error is returned.
func (c *Client) GetByID(ctx context.Context, id string) (*document.Document, error) {
	form, err := c.Form(EverythingForm)
	if err != nil {
		return nil, err
	}
	return QueryFirst(ctx, form.Query(At("document.id", id)).PageSize(1))
}

// GetByUID returns the document of the given type with the given UID. If no
// document matches then a nil document without error is returned.
func (c *Client) GetByUID(ctx context.Context, docType, uid string) (*document.Document, error) {
	form, err := c.Form(EverythingForm)
	if err != nil {
		return nil, err
	}
	return QueryFirst(ctx, form.Query(At("my."+docType+".uid", uid)).PageSize(1))
}

// GetByIDs returns the documents with the given IDs, in the order given.
// IDs that match nothing are absent from the results.
func (c *Client) GetByIDs(ctx context.Context, ids []string) ([]*document.Document, error) {
	form, err := c.Form(EverythingForm)
	if err != nil {
		return nil, err
	}
	return form.Query(In("document.id", ids)).SubmitAll(ctx)
}

// GetBookmark returns the document behind the named bookmark. If the
// bookmark is not set then a nil document without error is returned.
func (c *Client) GetBookmark(ctx context.Context, name string) (*document.Document, error) {
	id, ok := c.Repository().Bookmarks[name]
	if !ok || id == "" {
		return nil, nil
	}
	return c.GetByID(ctx, id)
}

// query runs one search request, serving it from the response cache when
// possible. Concurrent requests for the same URL share a single fetch.
func (c *Client) query(ctx context.Context, u string) (*Response, error) {
	if resp, ok := c.cache.Get(u); ok {
		log.Debugw("Response cache hit", "url", u)
		c.maybeRefresh()
		return resp, nil
	}

	v, err, _ := c.fetches.Do(u, func() (interface{}, error) {
		log.Debugw("Fetching search results", "url", u)
		data, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}
		resp, err := UnmarshalResponse(data)
		if err != nil {
			return nil, err
		}
		c.cache.Store(u, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	c.maybeRefresh()
	return v.(*Response), nil
}

// maybeRefresh launches a background refresh when the refresh interval has
// elapsed since the previous one.
func (c *Client) maybeRefresh() {
	if c.refreshTimer != nil && c.needsRefresh.CompareAndSwap(true, false) {
		go func() {
			if err := c.Refresh(context.Background()); err != nil {
				log.Errorw("Cannot refresh repository data", "err", err)
			}
			c.refreshTimer.Reset(c.refreshIn)
		}()
	}
}

func (c *Client) fetchRepository(ctx context.Context) (*Repository, error) {
	u := *c.apiURL
	if c.accessToken != "" {
		u.RawQuery = url.Values{"access_token": {c.accessToken}}.Encode()
	}
	data, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	var repo Repository
	if err = json.Unmarshal(data, &repo); err != nil {
		return nil, fmt.Errorf("cannot decode repository data: %w", err)
	}
	return &repo, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	defer resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apierror.FromResponse(resp.StatusCode, body)
	}
	return body, nil
}
