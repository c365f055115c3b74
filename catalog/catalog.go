package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"tickethub-cli/model"
)

// ErrCatalogLoad marks every failure to read or decode the event catalog.
var ErrCatalogLoad = errors.New("could not load events")

// AllCategories disables the category filter.
const AllCategories = "all"

// DefaultTimeout applies when no HTTP client is supplied.
const DefaultTimeout = 12 * time.Second

//go:embed data/events.json
var embeddedEvents []byte

// Source yields the event catalog. It is read once per session.
type Source interface {
	Load(ctx context.Context) ([]model.Event, error)
}

// New picks a Source for location: an http(s) URL, a file path, or the
// built-in catalog when location is empty.
func New(location string, httpClient *http.Client) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return EmbeddedSource{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, httpClient)
	default:
		return FileSource{Path: location}
	}
}

type EmbeddedSource struct{}

func (EmbeddedSource) Load(ctx context.Context) ([]model.Event, error) {
	return decode(bytes.NewReader(embeddedEvents), "built-in catalog")
}

type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) ([]model.Event, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open catalog %s", f.Path), ErrCatalogLoad)
	}
	defer file.Close()
	return decode(file, f.Path)
}

// StatusError is returned when the catalog endpoint responds with a non-2xx
// status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "catalog endpoint error"
	}
	return fmt.Sprintf("catalog responded %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the catalog
// endpoint.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return false
}

// HTTPSource fetches the catalog with a single GET. Failures are not retried.
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

func NewHTTPSource(url string, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPSource{httpClient: httpClient, url: url}
}

func (h *HTTPSource) Timeout() time.Duration {
	return h.httpClient.Timeout
}

func (h *HTTPSource) Load(ctx context.Context) ([]model.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create request"), ErrCatalogLoad)
	}
	req.Header.Set("Accept", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "request failed"), ErrCatalogLoad)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return nil, errors.Mark(&StatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			URL:        h.url,
			Body:       strings.TrimSpace(string(snippet)),
		}, ErrCatalogLoad)
	}
	return decode(res.Body, h.url)
}

func decode(r io.Reader, origin string) ([]model.Event, error) {
	var catalog model.Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s", origin), ErrCatalogLoad)
	}
	if err := check(catalog.Events); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid %s", origin), ErrCatalogLoad)
	}
	return catalog.Events, nil
}

func check(events []model.Event) error {
	seen := make(map[int]bool, len(events))
	for _, event := range events {
		if seen[event.Id] {
			return errors.Newf("duplicate event id %d", event.Id)
		}
		seen[event.Id] = true
		if event.Price < 0 {
			return errors.Newf("event %d has a negative price", event.Id)
		}
	}
	return nil
}

// Find returns the event with id.
func Find(events []model.Event, id int) (model.Event, bool) {
	for _, event := range events {
		if event.Id == id {
			return event, true
		}
	}
	return model.Event{}, false
}

// Search keeps events whose title or description contains term, ignoring
// case. An empty term keeps everything.
func Search(events []model.Event, term string) []model.Event {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return events
	}
	var out []model.Event
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), term) ||
			strings.Contains(strings.ToLower(event.Description), term) {
			out = append(out, event)
		}
	}
	return out
}

func ByCategory(events []model.Event, category string) []model.Event {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategories) {
		return events
	}
	var out []model.Event
	for _, event := range events {
		if strings.EqualFold(event.Category, category) {
			out = append(out, event)
		}
	}
	return out
}

// Categories lists the distinct categories, sorted, with AllCategories first.
func Categories(events []model.Event) []string {
	set := map[string]bool{}
	for _, event := range events {
		if c := strings.ToLower(strings.TrimSpace(event.Category)); c != "" {
			set[c] = true
		}
	}
	names := maps.Keys(set)
	sort.Strings(names)
	return append([]string{AllCategories}, names...)
}
