package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"offplanbot/internal/constant"
	"offplanbot/internal/metrics"
	"offplanbot/internal/model"

	"github.com/sirupsen/logrus"
)

// Picker returns an index in [0, n). It chooses between copy variants.
type Picker func(n int) int

// MessageCallback is called for every message as it is appended
type MessageCallback func(msg model.Message)

// ChatService drives conversations: it consumes one user action at a time,
// updates the session and runs backend searches when the flow asks for one.
type ChatService struct {
	extractor *Extractor
	searcher  ProjectSearcher
	logger    SearchLogger
	pick      Picker
	now       func() time.Time
}

// ChatOption customizes a ChatService
type ChatOption func(*ChatService)

// WithSearchLogger records every backend search
func WithSearchLogger(logger SearchLogger) ChatOption {
	return func(c *ChatService) {
		c.logger = logger
	}
}

// WithPicker replaces the random copy picker
func WithPicker(pick Picker) ChatOption {
	return func(c *ChatService) {
		c.pick = pick
	}
}

// WithClock replaces time.Now for message timestamps
func WithClock(now func() time.Time) ChatOption {
	return func(c *ChatService) {
		c.now = now
	}
}

// NewChatService creates a new chat service
func NewChatService(extractor *Extractor, searcher ProjectSearcher, opts ...ChatOption) *ChatService {
	c := &ChatService{
		extractor: extractor,
		searcher:  searcher,
		pick:      rand.Intn,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSession creates a session stamped with the service clock
func (c *ChatService) NewSession() *Session {
	return NewSession(c.now())
}

// turn collects what one user action appended to the session
type turn struct {
	svc    *ChatService
	sess   *Session
	emit   MessageCallback
	out    []model.Message
	search bool
}

func (t *turn) say(msg model.Message) {
	stored := t.sess.append(msg, t.svc.now())
	t.out = append(t.out, stored)
	if t.emit != nil {
		t.emit(stored)
	}
}

func (t *turn) requestSearch() {
	t.search = true
}

// Start appends the opening greeting with the budget buttons
func (c *ChatService) Start(sess *Session, emit MessageCallback) []model.Message {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	t := &turn{svc: c, sess: sess, emit: emit}
	greeting := constant.Greetings[c.pick(len(constant.Greetings))]
	t.say(model.NewBotMessage(fmt.Sprintf(constant.TEXT_WELCOME, greeting), constant.BudgetOptions()...))
	return t.out
}

// HandleText processes a typed message. Free text that yields any slot bypasses the
// guided steps and searches with the merged criteria; otherwise the current step handles it.
func (c *ChatService) HandleText(ctx context.Context, sess *Session, text string, emit MessageCallback) ([]model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	metrics.ChatTurns.WithLabelValues("text").Inc()

	sess.mu.Lock()
	if sess.inFlight {
		sess.mu.Unlock()
		return nil, ErrSearchInFlight
	}

	t := &turn{svc: c, sess: sess, emit: emit}
	t.say(model.NewUserMessage(text))
	c.onText(t, text)

	return c.finish(ctx, t)
}

// HandleOption processes a button click
func (c *ChatService) HandleOption(ctx context.Context, sess *Session, option string, emit MessageCallback) ([]model.Message, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return nil, ErrEmptyInput
	}
	metrics.ChatTurns.WithLabelValues("option").Inc()

	sess.mu.Lock()
	if sess.inFlight && !isResetOption(option) {
		sess.mu.Unlock()
		return nil, ErrSearchInFlight
	}

	t := &turn{svc: c, sess: sess, emit: emit}
	t.say(model.NewUserMessage(option))
	c.onOption(t, option)

	return c.finish(ctx, t)
}

func isResetOption(option string) bool {
	switch option {
	case constant.BUTTON_START_NEW_SEARCH, constant.BUTTON_ADJUST_FILTERS,
		constant.BUTTON_REFINE_SEARCH, constant.BUTTON_CONTINUE_SEARCHING:
		return true
	}
	return false
}

func (c *ChatService) onText(t *turn, text string) {
	parsed := c.extractor.Extract(text)
	if parsed.IsEmpty() {
		c.onStep(t, text)
		return
	}

	if parsed.BedroomMentioned && !parsed.HasUsableBedroomCount() {
		logrus.WithFields(logrus.Fields{
			"session_id": t.sess.ID,
			"error":      ErrUnsupportedBedroomCount,
		}).Info("routing bedroom request to contact details")
		c.sayBedroomContact(t)
		return
	}

	t.sess.slots.Merge(parsed)
	if parsed.HasUsableBedroomCount() {
		override := *parsed.BedroomCount
		t.sess.bedroomOverride = &override
	}

	logrus.WithFields(logrus.Fields{
		"session_id": t.sess.ID,
		"step":       t.sess.step.String(),
		"slots":      t.sess.slots.String(),
	}).Info("free text understood, searching")

	t.say(model.NewBotMessage(constant.TEXT_UNDERSTOOD + strings.Join(understoodItems(parsed), "\n") + constant.TEXT_UNDERSTOOD_SEARCH))
	t.requestSearch()
}

func (c *ChatService) onOption(t *turn, option string) {
	switch option {
	case constant.BUTTON_TRY_AGAIN:
		t.requestSearch()

	case constant.BUTTON_START_NEW_SEARCH, constant.BUTTON_ADJUST_FILTERS:
		t.sess.reset()
		t.say(model.NewBotMessage(constant.TEXT_RESET_NEW_SEARCH, constant.BudgetOptions()...))

	case constant.BUTTON_REFINE_SEARCH, constant.BUTTON_CONTINUE_SEARCHING:
		t.sess.reset()
		t.say(model.NewBotMessage(constant.TEXT_RESET_CONTINUE, constant.BudgetOptions()...))

	case constant.BUTTON_CONTACT_AGENT, constant.BUTTON_CONTACT_SUPPORT:
		t.say(model.NewBotMessage(constant.TEXT_CONTACT,
			constant.BUTTON_CONTINUE_SEARCHING, constant.BUTTON_START_NEW_SEARCH))

	case constant.BUTTON_SEE_MORE_PROPERTIES, constant.BUTTON_BROWSE_ALL:
		t.say(model.NewBotMessage(constant.TEXT_BROWSE,
			constant.BUTTON_REFINE_SEARCH, constant.BUTTON_START_NEW_SEARCH, constant.BUTTON_CONTACT_AGENT))

	default:
		c.onStep(t, option)
	}
}

func (c *ChatService) onStep(t *turn, input string) {
	switch t.sess.step {
	case StepBudget:
		c.onBudget(t, input)
	case StepDeveloper:
		c.onDeveloper(t, input)
	default:
		t.say(model.NewBotMessage(constant.TEXT_HELP,
			constant.BUTTON_START_NEW_SEARCH, constant.BUTTON_CONTACT_AGENT))
	}
}

func (c *ChatService) onBudget(t *turn, input string) {
	var bounds PriceBounds

	switch input {
	case constant.BUTTON_UNDER_1M:
		bounds = PriceBounds{Max: millions(1)}
	case constant.BUTTON_1M_2M:
		bounds = PriceBounds{Min: millions(1), Max: millions(2)}
	case constant.BUTTON_2M_5M:
		bounds = PriceBounds{Min: millions(2), Max: millions(5)}
	case constant.BUTTON_CUSTOM_BUDGET:
		t.say(model.NewBotMessage(constant.TEXT_CUSTOM_BUDGET))
		return
	default:
		parsed, err := c.parseBudget(input)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"session_id": t.sess.ID,
				"input":      input,
			}).Debug(err)
			t.say(model.NewBotMessage(constant.TEXT_BUDGET_NOT_UNDERSTOOD, constant.QuickBudgetOptions()...))
			return
		}
		bounds = parsed
	}

	// guided budgets replace both bounds, a nil bound included
	t.sess.slots.MinPrice, t.sess.slots.MaxPrice = bounds.Min, bounds.Max
	t.sess.step = StepDeveloper

	t.say(model.NewBotMessage(constant.FunFacts[c.pick(len(constant.FunFacts))]))
	t.say(model.NewBotMessage(
		fmt.Sprintf(constant.TEXT_BUDGET_SET, BudgetRange(t.sess.slots.MinPrice, t.sess.slots.MaxPrice)),
		constant.DeveloperOptions()...,
	))
}

func (c *ChatService) parseBudget(input string) (PriceBounds, error) {
	bounds, ok := c.extractor.ExtractPrice(input)
	if !ok {
		return PriceBounds{}, fmt.Errorf("%w: %q", ErrParseAmbiguous, input)
	}
	return bounds, nil
}

func (c *ChatService) onDeveloper(t *turn, input string) {
	if input == constant.BUTTON_ANY_DEVELOPER {
		t.say(model.NewBotMessage(constant.TEXT_ANY_DEVELOPER))
	} else if dev, ok := c.extractor.Developers().Lookup(input); ok {
		t.sess.slots.Merge(model.PartialSlots{Developer: &dev})
		t.say(model.NewBotMessage(fmt.Sprintf(constant.TEXT_DEVELOPER_CHOSEN, dev)))
	} else {
		t.say(model.NewBotMessage(constant.TEXT_PICK_DEVELOPER, constant.DeveloperOptions()...))
		return
	}

	t.sess.step = StepSearching
	t.requestSearch()
}

func (c *ChatService) sayBedroomContact(t *turn) {
	t.say(model.NewBotMessage(constant.TEXT_BEDROOM_CONTACT_INTRO))
	t.say(model.NewBotMessage(constant.TEXT_BEDROOM_CONTACT_DETAILS,
		constant.BUTTON_CONTINUE_SEARCHING, constant.BUTTON_START_NEW_SEARCH))
}

// understoodItems lists what one free-text turn produced, for the confirmation message
func understoodItems(parsed model.PartialSlots) []string {
	var items []string
	if parsed.BedroomCount != nil {
		label := BedroomLabel(*parsed.BedroomCount)
		items = append(items, fmt.Sprintf("🛏️ %s (will show %s properties)", label, label))
	}
	if parsed.Developer != nil {
		items = append(items, "🏢 Developer: "+*parsed.Developer)
	}
	if parsed.Region != nil {
		items = append(items, "📍 Location: "+*parsed.Region)
	}
	if parsed.HasPrice() {
		items = append(items, "💰 Budget: "+CappedBudget(parsed.MinPrice, parsed.MaxPrice))
	}
	return items
}

// BedroomLabel renders a bedroom count: Studio, 1 Bedroom, 2 Bedrooms
func BedroomLabel(count int) string {
	switch {
	case count == 0:
		return "Studio"
	case count == 1:
		return "1 Bedroom"
	default:
		return fmt.Sprintf("%d Bedrooms", count)
	}
}

// BudgetRange renders a budget as picked: "AED 1.0M - AED 2.0M", "Any - AED 1.0M", "AED 3.0M - No limit"
func BudgetRange(minPrice, maxPrice *float64) string {
	return formatAED(minPrice, "Any") + " - " + formatAED(maxPrice, "No limit")
}

// CappedBudget renders a budget with the upper bound the backend will actually receive
func CappedBudget(minPrice, maxPrice *float64) string {
	capped := CappedMaxPrice(maxPrice)
	return formatAED(minPrice, "Any") + " - " + formatAED(&capped, "")
}

func formatAED(price *float64, fallback string) string {
	if price == nil || *price == 0 {
		return fallback
	}
	return fmt.Sprintf("AED %.1fM", *price/million)
}
