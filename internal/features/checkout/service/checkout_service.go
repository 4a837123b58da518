package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"foodie-api/internal/core/logger"
	cartdomain "foodie-api/internal/features/cart/domain"
	"foodie-api/internal/features/checkout/domain"
	"foodie-api/internal/features/checkout/ports"
	pricingdomain "foodie-api/internal/features/pricing/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cartClearAttempts bounds the clear retries after a placed order. Row
// deletion is idempotent, so retrying a partial clear is safe.
const cartClearAttempts = 3

// ErrNoSession is returned when an operation needs a checkout session and
// none has been started.
var ErrNoSession = errors.New("no active checkout session")

// ErrEmptyCart is returned when checkout is started or submitted with
// nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrPaymentMethodUnavailable is returned for payment methods that are
// displayed but not live.
var ErrPaymentMethodUnavailable = errors.New("payment method unavailable")

// ErrSubmissionInFlight rejects a second submit while one is running.
var ErrSubmissionInFlight = errors.New("order submission already in flight")

// ErrInvalidTransition is returned when an operation is not allowed in the
// session's current state.
var ErrInvalidTransition = errors.New("operation not allowed in current checkout state")

// ErrStoreUnavailable is returned when a backing store fails mid-checkout.
var ErrStoreUnavailable = errors.New("checkout store unavailable")

// ErrDeliveryDetailsMissing is returned when submit finds no saved address.
var ErrDeliveryDetailsMissing = errors.New("delivery details missing")

// ErrSubmissionIncomplete rejects session mutation after the order text
// has gone out but before the cart was cleared. Only Submit may proceed,
// and it resumes at the clear step.
var ErrSubmissionIncomplete = errors.New("order already dispatched, retry submit to finalize")

// NotificationDispatchError reports that the order text could not be
// delivered. The order is NOT confirmed; nothing was cleared.
type NotificationDispatchError struct {
	Err error
}

// Error implements the error interface.
func (e *NotificationDispatchError) Error() string {
	return fmt.Sprintf("order notification dispatch failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *NotificationDispatchError) Unwrap() error { return e.Err }

// CartClearError reports that the cart could not be cleared after the
// order text went out. The order is NOT confirmed even though the
// restaurant was notified.
type CartClearError struct {
	NotificationSent bool
	Err              error
}

// Error implements the error interface.
func (e *CartClearError) Error() string {
	return fmt.Sprintf("cart clear failed after order dispatch (notified=%t): %v", e.NotificationSent, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CartClearError) Unwrap() error { return e.Err }

// session is the per-user checkout state. Guarded by CheckoutService.mu.
type session struct {
	state    domain.CheckoutState
	coupon   *pricingdomain.Coupon
	payment  domain.PaymentMethod
	inFlight bool
	// pending is set the moment the order text is dispatched. It makes
	// the hand-off explicit: once set, the snapshot is committed and a
	// retried submit must never dispatch again, only finish the clear.
	pending    *pendingDispatch
	submission *domain.OrderSubmission
}

// pendingDispatch is the committed order waiting for its cart clear.
type pendingDispatch struct {
	submission domain.OrderSubmission
	link       string
}

// SessionView is the read model of a checkout session.
type SessionView struct {
	State         domain.CheckoutState      `json:"state"`
	CouponCode    string                    `json:"coupon_code,omitempty"`
	PaymentMethod domain.PaymentMethod      `json:"payment_method,omitempty"`
	Items         []cartdomain.CartItem     `json:"items"`
	Totals        pricingdomain.OrderTotals `json:"totals"`
	Delivery      *domain.DeliveryDetails   `json:"delivery,omitempty"`
}

// SubmitResult is what a successful submit hands back.
type SubmitResult struct {
	Submission   domain.OrderSubmission `json:"submission"`
	WhatsAppLink string                 `json:"whatsapp_link"`
}

// CheckoutService drives the checkout flow: one session per user, advanced
// strictly forward until the order is confirmed. Sessions live in memory;
// delivery details persist through the DeliveryRepository.
type CheckoutService struct {
	mu       sync.Mutex
	sessions map[string]*session

	cart        ports.CartReader
	pricing     ports.PricingEngine
	delivery    ports.DeliveryRepository
	notifier    ports.Notifier
	destination string

	// now and newID are injectable for tests.
	now   func() time.Time
	newID func() uuid.UUID
}

// NewCheckoutService creates a new CheckoutService. destination is the
// restaurant's WhatsApp number.
func NewCheckoutService(cart ports.CartReader, pricing ports.PricingEngine, delivery ports.DeliveryRepository, notifier ports.Notifier, destination string) *CheckoutService {
	return &CheckoutService{
		sessions:    make(map[string]*session),
		cart:        cart,
		pricing:     pricing,
		delivery:    delivery,
		notifier:    notifier,
		destination: destination,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// Start opens a fresh session in REVIEWING_CART. An existing session is
// replaced unless a submission is running. The cart must not be empty.
func (s *CheckoutService) Start(ctx context.Context, email string) (*SessionView, error) {
	s.mu.Lock()
	if existing, ok := s.sessions[email]; ok {
		if existing.inFlight {
			s.mu.Unlock()
			return nil, ErrSubmissionInFlight
		}
		// A dispatched order must be finalized before a new checkout can
		// begin, or the uncleared cart would be ordered twice.
		if existing.pending != nil {
			s.mu.Unlock()
			return nil, ErrSubmissionIncomplete
		}
	}
	s.mu.Unlock()

	items, err := s.cart.ListItems(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	s.sessions[email] = &session{state: domain.StateReviewingCart}
	s.mu.Unlock()

	return s.Session(ctx, email)
}

// Session returns the current view: state, cart snapshot and a live quote
// for the applied coupon.
func (s *CheckoutService) Session(ctx context.Context, email string) (*SessionView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[email]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	view := &SessionView{
		State:         sess.state,
		PaymentMethod: sess.payment,
	}
	coupon := sess.coupon
	if coupon != nil {
		view.CouponCode = coupon.Code
	}
	if sess.submission != nil {
		sub := *sess.submission
		view.Items = sub.Items
		view.Totals = sub.Totals
		view.Delivery = &sub.Delivery
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	items, err := s.cart.ListItems(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	view.Items = items
	view.Totals = s.pricing.ComputeTotals(items, coupon).Rounded()

	details, err := s.delivery.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	view.Delivery = details

	return view, nil
}

// ApplyCoupon resolves the code and attaches it to the session. A failed
// lookup leaves any previously applied coupon in place.
func (s *CheckoutService) ApplyCoupon(email, code string) (*pricingdomain.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeSession(email)
	if err != nil {
		return nil, err
	}

	coupon, err := s.pricing.ApplyCoupon(code)
	if err != nil {
		return nil, err
	}

	sess.coupon = coupon
	return coupon, nil
}

// RemoveCoupon detaches any applied coupon.
func (s *CheckoutService) RemoveCoupon(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeSession(email)
	if err != nil {
		return err
	}

	sess.coupon = nil
	return nil
}

// SaveDeliveryDetails validates and persists the address, then advances
// the session to SELECTING_PAYMENT. On a validation failure nothing is
// written and the session stays in ENTERING_DELIVERY.
func (s *CheckoutService) SaveDeliveryDetails(ctx context.Context, email string, details domain.DeliveryDetails) error {
	s.mu.Lock()
	sess, err := s.activeSession(email)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if sess.state == domain.StateReviewingCart {
		sess.state = domain.StateEnteringDelivery
	}
	s.mu.Unlock()

	if err := details.Validate(); err != nil {
		return err
	}

	if err := s.delivery.Save(ctx, email, details); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	if sess.state == domain.StateEnteringDelivery {
		sess.state = domain.StateSelectingPayment
	}
	s.mu.Unlock()

	return nil
}

// DeliveryDetails returns the saved address, or nil when none is stored.
// Used to prefill the form; no session is required.
func (s *CheckoutService) DeliveryDetails(ctx context.Context, email string) (*domain.DeliveryDetails, error) {
	details, err := s.delivery.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return details, nil
}

// ClearDeliveryDetails removes the saved address.
func (s *CheckoutService) ClearDeliveryDetails(ctx context.Context, email string) error {
	if err := s.delivery.Clear(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// SelectPayment records the chosen method. Only enabled methods pass.
func (s *CheckoutService) SelectPayment(email string, method domain.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeSession(email)
	if err != nil {
		return err
	}
	if sess.state != domain.StateSelectingPayment {
		return ErrInvalidTransition
	}

	if !method.Known() {
		return &domain.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if !method.Enabled() {
		return ErrPaymentMethodUnavailable
	}

	sess.payment = method
	return nil
}

// Submit places the order: snapshot the cart and totals, dispatch the
// order text, then clear the cart. The notification is sent exactly once
// with no retry; the clear is retried because row deletion is idempotent.
// The session reaches CONFIRMED only when both steps succeed. A retried
// submit after a clear failure resumes at the clear step with the already
// dispatched snapshot, never re-sending the order text.
func (s *CheckoutService) Submit(ctx context.Context, email string) (*SubmitResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[email]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if sess.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if sess.state.IsTerminal() {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if sess.pending == nil && (sess.state != domain.StateSelectingPayment || sess.payment == "") {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	sess.inFlight = true
	sess.state = domain.StateSubmitting
	pending := sess.pending
	coupon := sess.coupon
	payment := sess.payment
	s.mu.Unlock()

	var result *SubmitResult
	var err error
	if pending != nil {
		result, err = s.finishClear(ctx, email, pending)
	} else {
		result, err = s.place(ctx, email, sess, coupon, payment)
	}
	if err != nil {
		s.mu.Lock()
		sess.inFlight = false
		sess.state = domain.StateSelectingPayment
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	sess.inFlight = false
	sess.state = domain.StateConfirmed
	sess.pending = nil
	sess.submission = &result.Submission
	s.mu.Unlock()

	return result, nil
}

// place runs the submit side effects outside the session lock.
func (s *CheckoutService) place(ctx context.Context, email string, sess *session, coupon *pricingdomain.Coupon, payment domain.PaymentMethod) (*SubmitResult, error) {
	items, err := s.cart.ListItems(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	details, err := s.delivery.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if details == nil {
		return nil, ErrDeliveryDetailsMissing
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	submission := domain.OrderSubmission{
		ID:            s.newID(),
		CustomerName:  details.RecipientName,
		CustomerEmail: email,
		CustomerPhone: details.Phone,
		Items:         items,
		Totals:        s.pricing.ComputeTotals(items, coupon).Rounded(),
		TaxRate:       s.pricing.TaxRate(),
		Delivery:      *details,
		PaymentMethod: payment,
		SubmittedAt:   s.now(),
	}
	if coupon != nil {
		submission.CouponCode = coupon.Code
	}

	text := domain.BuildOrderMessage(submission)

	if err := s.notifier.Send(ctx, s.destination, text); err != nil {
		return nil, &NotificationDispatchError{Err: err}
	}

	// The dispatch is committed. Record it before touching the cart so a
	// clear failure can never lead to a second send.
	pending := &pendingDispatch{
		submission: submission,
		link:       domain.BuildDeepLink(s.destination, text),
	}
	s.mu.Lock()
	sess.pending = pending
	s.mu.Unlock()

	return s.finishClear(ctx, email, pending)
}

// finishClear retries the cart clear for an already-dispatched order.
func (s *CheckoutService) finishClear(ctx context.Context, email string, pending *pendingDispatch) (*SubmitResult, error) {
	var clearErr error
	for attempt := 1; attempt <= cartClearAttempts; attempt++ {
		clearErr = s.cart.Clear(ctx, email)
		if clearErr == nil {
			break
		}
		logger.Get().Warn("Cart clear failed after order dispatch",
			zap.String("order_id", pending.submission.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(clearErr),
		)
	}
	if clearErr != nil {
		return nil, &CartClearError{NotificationSent: true, Err: clearErr}
	}

	return &SubmitResult{
		Submission:   pending.submission,
		WhatsAppLink: pending.link,
	}, nil
}

// activeSession returns the caller's session, rejecting terminal and
// in-flight ones. Callers must hold s.mu.
func (s *CheckoutService) activeSession(email string) (*session, error) {
	sess, ok := s.sessions[email]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.inFlight {
		return nil, ErrSubmissionInFlight
	}
	if sess.pending != nil {
		return nil, ErrSubmissionIncomplete
	}
	if sess.state.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	return sess, nil
}
