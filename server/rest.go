package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/repository"
	"github.com/umputun/dealscope/pkg/scheduler"
)

const (
	defaultReviewsLimit = 50
	maxReviewsLimit     = 500
)

// statusResponse is the status endpoint payload
type statusResponse struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	Time            time.Time `json:"time"`
	Autonomous      bool      `json:"autonomous"`
	Cycles          int64     `json:"cycles"`
	LastCycleAt     time.Time `json:"last_cycle_at,omitzero"`
	Fetched         int64     `json:"fetched"`
	Sent            int64     `json:"sent"`
	Pending         int64     `json:"pending"`
	Discarded       int64     `json:"discarded"`
	Blacklisted     int64     `json:"blacklisted"`
	TotalSeen       int64     `json:"total_seen"`
	SourceFailures  int64     `json:"source_failures"`
	StorageFailures int64     `json:"storage_failures"`
	MintFailures    int64     `json:"mint_failures"`
	PublishFailures int64     `json:"publish_failures"`
	Warning         string    `json:"warning,omitempty"`
}

// modeResponse is returned by the mode endpoints
type modeResponse struct {
	Autonomous bool      `json:"autonomous"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

// reviewView is one review in the list
type reviewView struct {
	Ref          string     `json:"ref"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	Identity     string     `json:"identity"`
	Title        string     `json:"title"`
	Price        float64    `json:"price"`
	OldPrice     float64    `json:"old_price,omitempty"`
	Score        float64    `json:"score"`
	Category     string     `json:"category,omitempty"`
	Store        string     `json:"store,omitempty"`
	URL          string     `json:"url"`
	AffiliateURL string     `json:"affiliate_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// statusHandler returns counters, pending reviews and the current mode.
// A partial storage failure still returns the counters with a warning.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.commands.Status(r.Context())
	resp := statusResponse{
		Status:          "ok",
		Version:         s.version,
		Time:            time.Now().UTC(),
		Autonomous:      st.Autonomous,
		Cycles:          st.Cycles,
		LastCycleAt:     st.LastCycleAt,
		Fetched:         st.Fetched,
		Sent:            st.Sent,
		Pending:         st.Queued,
		Discarded:       st.Discarded,
		Blacklisted:     st.Blacklisted,
		TotalSeen:       st.TotalSeen,
		SourceFailures:  st.SourceFailures,
		StorageFailures: st.StorageFailures,
		MintFailures:    st.MintFailures,
		PublishFailures: st.PublishFailures,
	}
	if err != nil {
		lgr.Printf("[WARN] status is partial: %v", err)
		resp.Status = "degraded"
		resp.Warning = err.Error()
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// scanHandler requests an early cycle
func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	requested := s.commands.ForceScan()
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"requested": requested})
}

// toggleModeHandler flips the autonomous flag
func (s *Server) toggleModeHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.commands.ToggleMode(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to toggle mode: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, modeResponse{Autonomous: state.Autonomous, UpdatedAt: state.UpdatedAt})
}

// setModeHandler sets the autonomous flag from {"autonomous": bool}
func (s *Server) setModeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Autonomous *bool `json:"autonomous"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Autonomous == nil {
		renderError(w, r, errors.New("expected {\"autonomous\": true|false}"), http.StatusBadRequest)
		return
	}
	state, err := s.commands.SetMode(r.Context(), *req.Autonomous)
	if err != nil {
		lgr.Printf("[ERROR] failed to set mode: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, modeResponse{Autonomous: state.Autonomous, UpdatedAt: state.UpdatedAt})
}

// blacklistHandler adds a term from {"term": "..."}
func (s *Server) blacklistHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Term) == "" {
		renderError(w, r, errors.New("term is required"), http.StatusBadRequest)
		return
	}
	added, err := s.commands.AddBlacklistTerm(r.Context(), req.Term)
	if err != nil {
		lgr.Printf("[ERROR] failed to add blacklist term: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"term": strings.TrimSpace(req.Term), "added": added})
}

// manualHandler queues a product url from {"url": "..."}
func (s *Server) manualHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}
	added, err := s.commands.AddManualURL(r.Context(), strings.TrimSpace(req.URL))
	switch {
	case errors.Is(err, scheduler.ErrManualDisabled):
		renderError(w, r, err, http.StatusConflict)
		return
	case err != nil:
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"url": strings.TrimSpace(req.URL), "added": added})
}

// listReviewsHandler lists reviews, ?status=pending|approved|rejected&limit=N
func (s *Server) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	f := repository.ReviewFilter{Limit: defaultReviewsLimit}

	switch status := domain.ReviewStatus(r.URL.Query().Get("status")); status {
	case "", domain.ReviewPending, domain.ReviewApproved, domain.ReviewRejected:
		f.Status = status
	default:
		renderError(w, r, errors.New("invalid status"), http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			renderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		f.Limit = min(limit, maxReviewsLimit)
	}

	reviews, err := s.reviews.List(r.Context(), f)
	if err != nil {
		lgr.Printf("[ERROR] failed to list reviews: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]reviewView, 0, len(reviews))
	for _, rv := range reviews {
		res = append(res, reviewView{
			Ref:          rv.Ref,
			Status:       string(rv.Status),
			Reason:       string(rv.Reason),
			Identity:     rv.Listing.Identity,
			Title:        rv.Listing.Title,
			Price:        rv.Listing.Price,
			OldPrice:     rv.OldPrice,
			Score:        rv.Listing.Score,
			Category:     rv.Listing.Category,
			Store:        rv.Listing.Store,
			URL:          rv.Listing.URL,
			AffiliateURL: rv.Listing.AffiliateURL,
			CreatedAt:    rv.CreatedAt,
			ResolvedAt:   rv.ResolvedAt,
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// approveHandler publishes a pending review
func (s *Server) approveHandler(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	ok, err := s.commands.Approve(r.Context(), ref)
	if err != nil {
		lgr.Printf("[ERROR] failed to approve %s: %v", ref, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ref": ref, "resolved": ok})
}

// rejectHandler rejects a pending review
func (s *Server) rejectHandler(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	ok, err := s.commands.Reject(r.Context(), ref)
	if err != nil {
		lgr.Printf("[ERROR] failed to reject %s: %v", ref, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ref": ref, "resolved": ok})
}
