package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/repository"
	"github.com/umputun/topicwatch/pkg/scheduler"
)

// defaultSources is the sources threshold for topics created without one
const defaultSources = 4

type queryRequest struct {
	Interest string `json:"interest"`
}

type accountRequest struct {
	Email string `json:"email"`
}

type topicRequest struct {
	AccountID int64  `json:"account_id"`
	Title     string `json:"title"`
	Interest  string `json:"interest"`
	Sources   int    `json:"sources"`
	Contact   int    `json:"contact"`
}

type accountResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	ReportsSent int       `json:"reports_sent"`
	CreatedAt   time.Time `json:"created_at"`
}

type topicResponse struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Title       string    `json:"title"`
	Interest    string    `json:"interest"`
	Searches    []string  `json:"searches"`
	Sources     int       `json:"sources"`
	Contact     int       `json:"contact"`
	ContactName string    `json:"contact_name"`
	Checkpoint  time.Time `json:"checkpoint"`
	LastReport  time.Time `json:"last_report"`
	ReportsSent int       `json:"reports_sent"`
	Pending     *int      `json:"pending,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// queryHandler returns the search plan for an interest without creating a topic
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	interest := strings.TrimSpace(req.Interest)
	if interest == "" {
		renderError(w, r, errors.New("interest is required"), http.StatusBadRequest)
		return
	}

	searches, err := s.planner.GenerateSearches(r.Context(), interest)
	if err != nil {
		lgr.Printf("[WARN] failed to generate searches: %v", err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"searches": searches})
}

// createAccountHandler registers a report recipient
func (s *Server) createAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		renderError(w, r, errors.New("valid email is required"), http.StatusBadRequest)
		return
	}

	acc := &domain.Account{Email: email}
	if err := s.store.CreateAccount(r.Context(), acc); err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, toAccountResponse(acc))
}

// createTopicHandler generates the search plan and stores the topic, nothing is stored if generation fails
func (s *Server) createTopicHandler(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	req.Interest = strings.TrimSpace(req.Interest)
	if req.Interest == "" {
		renderError(w, r, errors.New("interest is required"), http.StatusBadRequest)
		return
	}
	if req.Sources == 0 {
		req.Sources = defaultSources
	}
	if req.Sources < 1 {
		renderError(w, r, errors.New("sources must be at least 1"), http.StatusBadRequest)
		return
	}
	contact := domain.Contact(req.Contact)
	if !contact.Valid() {
		renderError(w, r, fmt.Errorf("unknown contact %d", req.Contact), http.StatusBadRequest)
		return
	}

	if _, err := s.store.GetAccount(r.Context(), req.AccountID); err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}

	searches, err := s.planner.GenerateSearches(r.Context(), req.Interest)
	if err != nil {
		lgr.Printf("[WARN] topic not created, search plan failed: %v", err)
		renderError(w, r, fmt.Errorf("search plan generation failed: %w", err), http.StatusBadGateway)
		return
	}

	topic := &domain.Topic{
		AccountID: req.AccountID,
		Title:     strings.TrimSpace(req.Title),
		Interest:  req.Interest,
		Searches:  searches,
		Sources:   req.Sources,
		Contact:   contact,
	}
	if err := s.store.CreateTopic(r.Context(), topic); err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	lgr.Printf("[INFO] topic %d created for account %d, %s", topic.ID, topic.AccountID, topic.Contact)
	renderJSON(w, r, http.StatusCreated, toTopicResponse(topic, nil))
}

// listTopicsHandler lists topics, optionally for one account
func (s *Server) listTopicsHandler(w http.ResponseWriter, r *http.Request) {
	var accountID int64
	if v := r.URL.Query().Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			renderError(w, r, errors.New("invalid account_id"), http.StatusBadRequest)
			return
		}
		accountID = id
	}

	topics, err := s.store.ListTopics(r.Context(), accountID)
	if err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	res := make([]topicResponse, len(topics))
	for i := range topics {
		res[i] = toTopicResponse(&topics[i], nil)
	}
	renderJSON(w, r, http.StatusOK, res)
}

// getTopicHandler returns one topic with its pending candidate count
func (s *Server) getTopicHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := topicID(w, r)
	if !ok {
		return
	}
	topic, err := s.store.GetTopic(r.Context(), id)
	if err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	pending, err := s.store.CountCandidates(r.Context(), id)
	if err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, toTopicResponse(topic, &pending))
}

// deleteTopicHandler removes the topic and its candidates
func (s *Server) deleteTopicHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := topicID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTopic(r.Context(), id); err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshTopicHandler runs one cycle for the topic right away
func (s *Server) refreshTopicHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := topicID(w, r)
	if !ok {
		return
	}
	res, err := s.refresher.Cycle(r.Context(), id)
	if err != nil {
		lgr.Printf("[WARN] refresh of topic %d failed: %v", id, err)
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func topicID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		renderError(w, r, errors.New("invalid topic ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// statusFor maps store and cycle errors to http codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, scheduler.ErrDatastore):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func toAccountResponse(acc *domain.Account) accountResponse {
	return accountResponse{ID: acc.ID, Email: acc.Email, ReportsSent: acc.ReportsSent, CreatedAt: acc.CreatedAt}
}

func toTopicResponse(t *domain.Topic, pending *int) topicResponse {
	return topicResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Title:       t.Title,
		Interest:    t.Interest,
		Searches:    t.Searches,
		Sources:     t.Sources,
		Contact:     int(t.Contact),
		ContactName: t.Contact.String(),
		Checkpoint:  t.Checkpoint,
		LastReport:  t.LastReport,
		ReportsSent: t.ReportsSent,
		Pending:     pending,
		CreatedAt:   t.CreatedAt,
	}
}
