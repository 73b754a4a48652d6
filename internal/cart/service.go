package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/kitcart/internal/notifications"
	"github.com/angelmondragon/kitcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitcart/pkg/errors"
	"github.com/angelmondragon/kitcart/pkg/logger"
	"github.com/angelmondragon/kitcart/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	noticeNotInCart   = "Item was not in your cart."
	noticeCleared     = "Cart cleared"
	noticeEmptyCart   = "Your cart is empty."
	noticeSaveFailed  = "Your cart could not be saved. Please try again."
	noticeClearFailed = "Your cart could not be cleared. Please try again."
	noticeLoadFailed  = "Your cart could not be loaded. Please try again."
)

// Service runs cart operations for one session at a time.
type Service interface {
	Get(ctx context.Context, sessionID string) (Result, error)
	Add(ctx context.Context, sessionID string, input AddInput) (Result, error)
	Remove(ctx context.Context, sessionID string, id ProductID) (Result, error)
	Clear(ctx context.Context, sessionID string) (Result, error)
	Checkout(ctx context.Context, sessionID string) (Result, error)
}

// ProductLookup resolves known product ids to add candidates.
type ProductLookup interface {
	Candidate(id ProductID) (Candidate, bool)
}

// AddInput is an add request. Name and Price are only consulted for ids the catalog does not know.
type AddInput struct {
	ID    ProductID
	Name  string
	Price *decimal.Decimal
}

// Result is what every service call hands back to the caller.
type Result struct {
	Outcome enums.CartOutcome     `json:"outcome"`
	Summary Summary               `json:"cart"`
	Notice  *notifications.Notice `json:"notice,omitempty"`
	Removed []string              `json:"removed,omitempty"`
}

type ServiceParams struct {
	Engine   *Engine
	Store    *Store
	Products ProductLookup
	Notifier notifications.Notifier
	Renderer Renderer
	Metrics  *metrics.CartMetrics
	Logger   *logger.Logger
}

type service struct {
	engine   *Engine
	store    *Store
	products ProductLookup
	notifier notifications.Notifier
	renderer Renderer
	metrics  *metrics.CartMetrics
	logg     *logger.Logger
	locks    *sessionLocks
}

func NewService(params ServiceParams) (Service, error) {
	if params.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup is required")
	}
	return &service{
		engine:   params.Engine,
		store:    params.Store,
		products: params.Products,
		notifier: params.Notifier,
		renderer: params.Renderer,
		metrics:  params.Metrics,
		logg:     params.Logger,
		locks:    newSessionLocks(),
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Result, error) {
	if err := validateSession(sessionID); err != nil {
		return Result{}, err
	}
	defer s.observe("get", time.Now())

	current := s.store.Load(ctx, sessionID)
	return s.render(ctx, sessionID, current, Result{Outcome: enums.CartOutcomeUnchanged}), nil
}

func (s *service) Add(ctx context.Context, sessionID string, input AddInput) (Result, error) {
	if err := validateSession(sessionID); err != nil {
		return Result{}, err
	}
	candidate, err := s.resolveCandidate(input)
	if err != nil {
		return Result{}, err
	}
	if s.logg != nil {
		ctx = s.logg.WithProductID(ctx, string(candidate.ID))
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()
	defer s.observe("add", time.Now())

	current, err := s.store.Fetch(ctx, sessionID)
	if err != nil {
		return s.loadFailed(ctx, sessionID, err), nil
	}
	decision := s.engine.ResolveAdd(current, candidate)
	next, changed := decision.Result()
	if !changed {
		next = current
	}

	notice := noticeFor(decision)
	res := Result{Outcome: decision.Outcome(), Notice: &notice}
	if upgraded, ok := decision.(Upgraded); ok {
		res.Removed = upgraded.Removed
	}
	if changed {
		next, res = s.persist(ctx, sessionID, current, next, res)
	} else {
		s.notify(ctx, sessionID, notice)
	}
	return s.render(ctx, sessionID, next, res), nil
}

func (s *service) Remove(ctx context.Context, sessionID string, id ProductID) (Result, error) {
	if err := validateSession(sessionID); err != nil {
		return Result{}, err
	}
	id = ProductID(strings.TrimSpace(string(id)))
	if id == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()
	defer s.observe("remove", time.Now())

	current, err := s.store.Fetch(ctx, sessionID)
	if err != nil {
		return s.loadFailed(ctx, sessionID, err), nil
	}
	item, ok := current.Item(id)
	if !ok {
		notice := notifications.Info(noticeNotInCart)
		s.notify(ctx, sessionID, notice)
		return s.render(ctx, sessionID, current, Result{Outcome: enums.CartOutcomeUnchanged, Notice: &notice}), nil
	}

	notice := notifications.Info(fmt.Sprintf("%s removed from cart", item.Name))
	next, res := s.persist(ctx, sessionID, current, current.Remove(id), Result{Outcome: enums.CartOutcomeRemoved, Notice: &notice})
	return s.render(ctx, sessionID, next, res), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (Result, error) {
	if err := validateSession(sessionID); err != nil {
		return Result{}, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()
	defer s.observe("clear", time.Now())

	notice := notifications.Info(noticeCleared)
	cleared, err := s.store.Clear(ctx, sessionID)
	if err != nil {
		s.logError(ctx, "cart.clear_failed", err)
		notice = notifications.Error(noticeClearFailed)
	}
	s.notify(ctx, sessionID, notice)
	return s.render(ctx, sessionID, cleared, Result{Outcome: enums.CartOutcomeCleared, Notice: &notice}), nil
}

// Checkout reports the total without mutating the cart; payment is not wired yet.
func (s *service) Checkout(ctx context.Context, sessionID string) (Result, error) {
	if err := validateSession(sessionID); err != nil {
		return Result{}, err
	}
	defer s.observe("checkout", time.Now())

	current := s.store.Load(ctx, sessionID)
	var notice notifications.Notice
	if current.IsEmpty() {
		notice = notifications.Warning(noticeEmptyCart)
	} else {
		notice = notifications.Info(fmt.Sprintf("Checkout is not available yet. Total: $%s", current.Totals().Price.StringFixed(2)))
	}
	s.notify(ctx, sessionID, notice)
	return s.render(ctx, sessionID, current, Result{Outcome: enums.CartOutcomeUnchanged, Notice: &notice}), nil
}

func (s *service) resolveCandidate(input AddInput) (Candidate, error) {
	id := ProductID(strings.TrimSpace(string(input.ID)))
	if id == "" {
		return Candidate{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if known, ok := s.products.Candidate(id); ok {
		return known, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Candidate{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required for products outside the catalog").
			WithDetails(map[string]any{"id": string(id)})
	}
	if input.Price == nil {
		return Candidate{}, pkgerrors.New(pkgerrors.CodeValidation, "price is required for products outside the catalog").
			WithDetails(map[string]any{"id": string(id)})
	}
	if input.Price.IsNegative() {
		return Candidate{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
			WithDetails(map[string]any{"id": string(id)})
	}
	return Candidate{ID: id, Name: name, Price: *input.Price}, nil
}

// persist writes next through to storage and only then announces res. A failed write
// leaves the stored cart as it was, so the caller gets current back with an error notice.
func (s *service) persist(ctx context.Context, sessionID string, current, next Cart, res Result) (Cart, Result) {
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		s.logError(ctx, "cart.save_failed", err)
		failed := notifications.Error(noticeSaveFailed)
		s.notify(ctx, sessionID, failed)
		return current, Result{Outcome: enums.CartOutcomeUnchanged, Notice: &failed}
	}
	if res.Notice != nil {
		s.notify(ctx, sessionID, *res.Notice)
	}
	return next, res
}

// loadFailed answers a mutation whose read failed. Nothing is resolved or written, and
// the renderer is not told about a cart the service never saw.
func (s *service) loadFailed(ctx context.Context, sessionID string, err error) Result {
	s.logError(ctx, "cart.load_failed", err)
	notice := notifications.Error(noticeLoadFailed)
	s.notify(ctx, sessionID, notice)
	s.metrics.IncOutcome(enums.CartOutcomeUnchanged.String())
	return Result{Outcome: enums.CartOutcomeUnchanged, Summary: Summarize(Empty()), Notice: &notice}
}

func (s *service) render(ctx context.Context, sessionID string, c Cart, res Result) Result {
	res.Summary = Summarize(c)
	s.metrics.IncOutcome(res.Outcome.String())
	if s.renderer != nil {
		s.renderer.Render(ctx, sessionID, res.Summary)
	}
	return res
}

func (s *service) notify(ctx context.Context, sessionID string, notice notifications.Notice) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, sessionID, notice)
}

func (s *service) observe(op string, start time.Time) {
	s.metrics.ObserveDuration(op, time.Since(start))
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}

func noticeFor(d Decision) notifications.Notice {
	if d.Outcome() == enums.CartOutcomeRejected {
		return notifications.Warning(d.Text())
	}
	return notifications.Success(d.Text())
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
