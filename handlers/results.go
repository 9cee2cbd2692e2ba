// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/matchboard/auth"
	"github.com/danielhkuo/matchboard/cliparse"
	"github.com/danielhkuo/matchboard/metrics"
	"github.com/danielhkuo/matchboard/middleware"
	"github.com/danielhkuo/matchboard/models"
	"github.com/danielhkuo/matchboard/ranking"
	"github.com/danielhkuo/matchboard/source"
)

const sourceHint = "Check the source configuration (SOURCE_TYPE, SHEET_ID, CSV_LOCATION or DATABASE_URL) and its credentials."

// Fetcher returns the current snapshot of the nomination table.
// *source.Cache is the production implementation.
type Fetcher interface {
	Get(ctx context.Context) (source.Snapshot, error)
	Invalidate()
}

type ResultsHandler struct {
	cache   Fetcher
	cfg     cliparse.Config
	metrics *metrics.Metrics
	limiter *rate.Limiter
}

func NewResultsHandler(cache Fetcher, cfg cliparse.Config, m *metrics.Metrics) *ResultsHandler {
	return &ResultsHandler{
		cache:   cache,
		cfg:     cfg,
		metrics: m,
		// One manual refresh per interval; a zero interval is unlimited
		limiter: rate.NewLimiter(rate.Every(cfg.RefreshInterval), 1),
	}
}

// GetLeaderboard handles GET /leaderboard?limit=N
// Returns the aggregate metrics and the top N pairs
func (h *ResultsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.TopN
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	snap, res, ok := h.compute(w, r)
	if !ok {
		return
	}

	summary := ranking.Summarize(res.Entries)
	response := models.LeaderboardResponse{
		Status:     models.StatusOK,
		TotalVotes: summary.TotalVotes,
		PairCount:  summary.Pairs,
		MaxVotes:   summary.MaxVotes,
		Entries:    withPopularity(ranking.TopN(res.Entries, limit), summary.MaxVotes),
		FetchedAt:  snap.FetchedAt,
		FetchedAgo: humanize.Time(snap.FetchedAt),
		FormURL:    h.cfg.FormURL,
	}

	if summary.Leader != nil {
		response.Leader = summary.Leader.Label
		response.LeaderVotes = summary.Leader.Votes
	} else {
		response.Status = models.StatusEmpty
		response.Message = "No votes yet. Be the first to nominate a pair!"
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// Search handles GET /search?q=...
// Matches are case-insensitive on the pair label; an empty query matches nothing
func (h *ResultsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	_, res, ok := h.compute(w, r)
	if !ok {
		return
	}

	maxVotes := ranking.Summarize(res.Entries).MaxVotes
	matches := ranking.Search(res.Entries, query)

	response := models.SearchResponse{
		Query:   query,
		Count:   len(matches),
		Found:   len(matches) > 0,
		Matches: withPopularity(matches, maxVotes),
	}

	switch {
	case response.Found:
		response.Message = fmt.Sprintf("Found %d match(es)", len(matches))
	case strings.TrimSpace(query) == "":
		response.Message = "Enter a name to search"
	default:
		response.Message = "No matches yet. Nominate this pair with the form!"
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// Refresh handles POST /refresh
// Drops the cached snapshot and recomputes from the source
func (h *ResultsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := auth.CheckRequest(r, h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	if !h.limiter.Allow() {
		retry := int(math.Ceil(h.cfg.RefreshInterval.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		middleware.ErrorResponse(w, http.StatusTooManyRequests,
			fmt.Sprintf("Refresh is limited to once every %s", h.cfg.RefreshInterval))
		return
	}

	h.cache.Invalidate()
	snap, res, ok := h.compute(w, r)
	if !ok {
		return
	}

	slog.Info("manual refresh",
		"records", len(snap.Records),
		"pairs", len(res.Entries),
		"dropped", res.Dropped,
	)

	middleware.JSONResponse(w, http.StatusOK, models.RefreshResponse{
		FetchedAt: snap.FetchedAt,
		Records:   len(snap.Records),
		Valid:     res.Valid,
		Dropped:   res.Dropped,
		Pairs:     len(res.Entries),
	})
}

// GetForm handles GET /form
// Redirects to the nomination form
func (h *ResultsHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	if h.cfg.FormURL == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "No nomination form configured")
		return
	}
	http.Redirect(w, r, h.cfg.FormURL, http.StatusFound)
}

// compute fetches the snapshot and ranks it. On failure it has already
// written the error response; no partial ranking is ever returned.
func (h *ResultsHandler) compute(w http.ResponseWriter, r *http.Request) (source.Snapshot, ranking.Result, bool) {
	start := time.Now()

	snap, err := h.cache.Get(r.Context())
	if err != nil {
		h.sourceError(w, err)
		return source.Snapshot{}, ranking.Result{}, false
	}

	res := ranking.Compute(snap.Records)
	h.metrics.ObserveRanking(len(res.Entries), res.Dropped)

	slog.Debug("ranking computed",
		"records", len(snap.Records),
		"pairs", len(res.Entries),
		"dropped", res.Dropped,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, res, true
}

func (h *ResultsHandler) sourceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, source.ErrConnection):
		middleware.ErrorResponseWithHint(w, http.StatusServiceUnavailable,
			"Could not reach the nomination source: "+err.Error(), sourceHint)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled while loading nominations")
	default:
		slog.Error("unexpected error loading nominations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load nominations")
	}
}

func withPopularity(entries []models.RankingEntry, maxVotes int) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = models.LeaderboardEntry{
			RankingEntry: e,
			Popularity:   ranking.Popularity(e.Votes, maxVotes),
		}
	}
	return out
}
