package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// LocationService discovers the destinations items can be sent to and keeps
// them in the location store. The inbox is always the first location.
//
// Document bodies are kept in a cache keyed by document ID and version, so a
// refresh only reads documents that changed since the previous one.
type LocationService struct {
	session  *Session
	client   driven.DynalistClient
	store    driven.LocationStore
	cache    httpcache.Cache
	interval time.Duration
	logger   *slog.Logger

	refreshMu sync.Mutex
	cacheKeys map[string]string // document ID -> current cache key
}

// NewLocationService creates a LocationService. A nil cache gets an
// in-memory one.
func NewLocationService(
	session *Session,
	client driven.DynalistClient,
	store driven.LocationStore,
	cache httpcache.Cache,
	interval time.Duration,
	logger *slog.Logger,
) *LocationService {
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}
	return &LocationService{
		session:   session,
		client:    client,
		store:     store,
		cache:     cache,
		interval:  interval,
		logger:    logger,
		cacheKeys: make(map[string]string),
	}
}

// Start refreshes immediately and then on every interval tick until ctx is
// canceled. Cycles are skipped while no token is stored.
func (s *LocationService) Start(ctx context.Context) {
	s.refreshIfAuthenticated(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("location refresh stopped")
			return
		case <-ticker.C:
			s.refreshIfAuthenticated(ctx)
		}
	}
}

func (s *LocationService) refreshIfAuthenticated(ctx context.Context) {
	if !s.session.IsAuthenticated() {
		s.logger.Debug("location refresh skipped, not authenticated")
		return
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Error("location refresh failed", "error", err)
	}
}

// Refresh rebuilds the location list from the user's editable documents
// and stores it. Concurrent calls are serialized.
func (s *LocationService) Refresh(ctx context.Context) ([]model.Location, error) {
	token := s.session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()

	files, err := s.client.ListFiles(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var documents []model.File
	for _, f := range files {
		if f.IsDocument() && f.IsEditable() {
			documents = append(documents, f)
		}
	}

	versions := s.documentVersions(ctx, token, documents)

	docs := make([]documentNodes, 0, len(documents))
	var cached int
	for _, doc := range documents {
		nodes, hit, err := s.documentNodes(ctx, token, doc.ID, versions)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", doc.ID, err)
		}
		if hit {
			cached++
		}
		docs = append(docs, documentNodes{file: doc, nodes: nodes})
	}

	locations := append([]model.Location{model.InboxLocation()}, selectBookmarks(docs)...)
	if err := s.store.ReplaceAll(ctx, locations); err != nil {
		return nil, fmt.Errorf("store locations: %w", err)
	}

	s.logger.Info("locations refreshed",
		"documents", len(documents),
		"cached_documents", cached,
		"locations", len(locations),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return locations, nil
}

// List returns the stored locations, or just the inbox before the first
// refresh.
func (s *LocationService) List(ctx context.Context) ([]model.Location, error) {
	locations, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	if len(locations) == 0 {
		return []model.Location{model.InboxLocation()}, nil
	}
	return locations, nil
}

// Resolve maps a user-supplied destination name to a location. An empty
// name or "inbox" (any case) is the inbox.
func (s *LocationService) Resolve(ctx context.Context, name string) (model.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, model.InboxLocationName) {
		return model.InboxLocation(), nil
	}

	loc, err := s.store.GetByName(ctx, name)
	if err != nil {
		return model.Location{}, fmt.Errorf("resolve location %q: %w", name, err)
	}
	if loc == nil {
		return model.Location{}, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	}
	return *loc, nil
}

// documentVersions fetches the version of every document. Failure is not
// fatal: without versions every document is read.
func (s *LocationService) documentVersions(ctx context.Context, token string, documents []model.File) map[string]int64 {
	if len(documents) == 0 {
		return nil
	}

	ids := make([]string, 0, len(documents))
	for _, d := range documents {
		ids = append(ids, d.ID)
	}

	versions, err := s.client.DocumentVersions(ctx, token, ids)
	if err != nil {
		s.logger.Warn("document versions unavailable, reading all documents", "error", err)
		return nil
	}
	return versions
}

// documentNodes returns the nodes of a document, from cache when the
// document's version has been read before.
func (s *LocationService) documentNodes(ctx context.Context, token, fileID string, versions map[string]int64) ([]model.Node, bool, error) {
	version, known := versions[fileID]
	key := fmt.Sprintf("%s@%d", fileID, version)

	if known {
		if raw, ok := s.cache.Get(key); ok {
			var nodes []model.Node
			if err := json.Unmarshal(raw, &nodes); err == nil {
				return nodes, true, nil
			}
			s.cache.Delete(key)
		}
	}

	nodes, err := s.client.ReadDocument(ctx, token, fileID)
	if err != nil {
		return nil, false, err
	}

	if known {
		if raw, err := json.Marshal(nodes); err == nil {
			if old, ok := s.cacheKeys[fileID]; ok && old != key {
				s.cache.Delete(old)
			}
			s.cache.Set(key, raw)
			s.cacheKeys[fileID] = key
		}
	}

	return nodes, false, nil
}
