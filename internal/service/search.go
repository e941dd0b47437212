package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"offplanbot/internal/constant"
	"offplanbot/internal/metrics"
	"offplanbot/internal/model"

	"github.com/sirupsen/logrus"
)

// pendingSearch is everything a search needs, captured under the session lock
type pendingSearch struct {
	generation uint64
	request    *model.SearchRequest
	override   *int
}

// searchOutcome is the unlocked half of a search
type searchOutcome struct {
	results ResultSet
	err     error
	took    time.Duration
}

// finish completes a turn. It is entered with the session lock held and releases it.
// When the turn asked for a search, the backend call runs without the lock; its result
// is applied only if no reset happened in the meantime.
func (c *ChatService) finish(ctx context.Context, t *turn) ([]model.Message, error) {
	if !t.search {
		t.sess.mu.Unlock()
		return t.out, nil
	}

	pending := c.beginSearch(t)
	t.sess.mu.Unlock()

	outcome := c.runSearch(ctx, t.sess.ID, pending)

	t.sess.mu.Lock()
	defer t.sess.mu.Unlock()

	if t.sess.generation != pending.generation {
		metrics.ChatSearches.WithLabelValues(metrics.OutcomeDiscarded).Inc()
		logrus.WithFields(logrus.Fields{
			"session_id": t.sess.ID,
			"generation": pending.generation,
			"current":    t.sess.generation,
		}).Info("discarding search result from before a reset")
		return t.out, nil
	}

	t.sess.inFlight = false
	c.applySearch(t, outcome)
	return t.out, nil
}

// beginSearch appends the typing placeholder and marks the session busy. Caller holds the lock.
func (c *ChatService) beginSearch(t *turn) *pendingSearch {
	req := BuildSearchRequest(t.sess.slots)

	pending := &pendingSearch{
		generation: t.sess.generation,
		request:    req,
	}
	if t.sess.bedroomOverride != nil {
		override := *t.sess.bedroomOverride
		pending.override = &override
	}

	t.sess.inFlight = true
	t.say(model.NewBotMessage(SearchSummary(t.sess.slots)).Typing())

	return pending
}

func (c *ChatService) runSearch(ctx context.Context, sessionID string, pending *pendingSearch) searchOutcome {
	start := time.Now()
	resp, err := c.searcher.SearchProjects(ctx, pending.request)
	took := time.Since(start)
	metrics.ChatSearchDuration.Observe(took.Seconds())

	outcome := searchOutcome{took: took}
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		outcome.err = err
	} else {
		outcome.results = ProcessResults(resp.Data, pending.override)
		if outcome.results.Matched == 0 {
			outcome.err = ErrEmptyResultSet
		}
	}

	c.logSearch(sessionID, pending.request, outcome)
	return outcome
}

// applySearch appends the result message. Caller holds the lock.
func (c *ChatService) applySearch(t *turn, outcome searchOutcome) {
	fields := logrus.Fields{
		"session_id": t.sess.ID,
		"took_ms":    outcome.took.Milliseconds(),
	}

	switch {
	case errors.Is(outcome.err, ErrEmptyResultSet):
		metrics.ChatSearches.WithLabelValues(metrics.OutcomeEmpty).Inc()
		logrus.WithFields(fields).Info("search returned no matching properties")
		t.say(model.NewBotMessage(constant.TEXT_NO_RESULTS,
			constant.BUTTON_ADJUST_FILTERS, constant.BUTTON_BROWSE_ALL, constant.BUTTON_CONTACT_AGENT))

	case outcome.err != nil:
		metrics.ChatSearches.WithLabelValues(metrics.OutcomeError).Inc()
		fields["error"] = outcome.err
		logrus.WithFields(fields).Error("search failed")
		t.say(model.NewBotMessage(fmt.Sprintf(constant.TEXT_SEARCH_FAILED, outcome.err.Error()),
			constant.BUTTON_TRY_AGAIN, constant.BUTTON_CONTACT_SUPPORT))

	default:
		metrics.ChatSearches.WithLabelValues(metrics.OutcomeSuccess).Inc()
		fields["matched"] = outcome.results.Matched
		logrus.WithFields(fields).Info("search completed")
		headline := fmt.Sprintf(constant.SuccessTemplates[c.pick(len(constant.SuccessTemplates))], outcome.results.Matched)
		msg := model.NewBotMessage(headline+constant.TEXT_RESULTS_SUFFIX,
			constant.BUTTON_SEE_MORE_PROPERTIES, constant.BUTTON_START_NEW_SEARCH, constant.BUTTON_CONTACT_AGENT)
		t.say(msg.WithProperties(outcome.results.Properties))
	}
}

// logSearch records the search without blocking the conversation
func (c *ChatService) logSearch(sessionID string, req *model.SearchRequest, outcome searchOutcome) {
	if c.logger == nil {
		return
	}

	entry := &model.SearchLogEntry{
		SessionID:      sessionID,
		Request:        req,
		ResultCount:    outcome.results.Matched,
		ResponseTimeMs: int(outcome.took.Milliseconds()),
	}
	for _, p := range outcome.results.Properties {
		entry.ReturnedIDs = append(entry.ReturnedIDs, p.ID)
	}
	if outcome.err != nil && !errors.Is(outcome.err, ErrEmptyResultSet) {
		entry.Error = outcome.err.Error()
	}

	go func() {
		if err := c.logger.LogSearch(context.Background(), entry); err != nil {
			logrus.WithError(err).Warn("failed to record search")
		}
	}()
}

// SearchSummary is the text of the typing placeholder shown while the backend is queried
func SearchSummary(slots model.Slots) string {
	var b strings.Builder
	b.WriteString(constant.TEXT_SEARCHING)
	if slots.Developer != nil && *slots.Developer != "" {
		b.WriteString("🏢 Developer: " + *slots.Developer + "\n")
	}
	if slots.Region != nil && *slots.Region != "" {
		b.WriteString("📍 Location: " + *slots.Region + "\n")
	}
	b.WriteString("💰 Budget: " + CappedBudget(slots.MinPrice, slots.MaxPrice))
	return b.String()
}
