package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"plantstore-bff/internal/cart"
	"plantstore-bff/internal/logger"
	"plantstore-bff/internal/order"
	"plantstore-bff/internal/product"

	"go.uber.org/zap"
)

// Result is the outcome of a submission attempt. Exactly one of the
// failure fields is populated when the returned error is non-nil.
type Result struct {
	Order       *order.CreateResult `json:"order,omitempty"`
	Warning     string              `json:"warning,omitempty"`
	Errors      order.Errors        `json:"errors,omitempty"`
	StockReport *StockReport        `json:"stockReport,omitempty"`
}

// Service runs the pre-checkout stock gate and the order submission flow.
type Service interface {
	ValidateStock(ctx context.Context, items []cart.Item) *StockReport
	ValidateDraft(draft *order.Draft) order.Errors
	Submit(ctx context.Context, sessionID string, draft *order.Draft, slip *SlipUpload) (*Result, error)
}

type service struct {
	carts    cart.Service
	products product.Gateway
	orders   order.Gateway

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(carts cart.Service, products product.Gateway, orders order.Gateway) Service {
	return &service{
		carts:    carts,
		products: products,
		orders:   orders,
		inFlight: make(map[string]bool),
	}
}

// ValidateStock re-verifies every cart line against authoritative remote
// stock. All lookups are attempted; one failure never short-circuits the
// rest, and messages come out in cart order.
func (s *service) ValidateStock(ctx context.Context, items []cart.Item) *StockReport {
	log := logger.FromCtx(ctx).With(zap.Int("items", len(items)))

	report := &StockReport{
		Results:  make([]StockResult, 0, len(items)),
		Messages: []string{},
	}

	for _, it := range items {
		result := StockResult{
			ProductID: it.ID,
			Name:      it.Name,
			Requested: it.Quantity,
		}

		p, err := s.products.GetByID(ctx, it.ID)
		switch {
		case err != nil:
			result.Outcome = StockNotFound
			result.Message = fmt.Sprintf("%s: This product may have been removed from the store", it.Name)
			if !errors.Is(err, product.ErrProductNotFound) {
				log.Warn("stock lookup failed",
					zap.String("product_id", it.ID),
					zap.Error(err),
				)
			}
		case p.Stock < it.Quantity:
			result.Outcome = StockInsufficient
			result.Available = p.Stock
			result.Message = fmt.Sprintf("%s: Only %d available, but %d in cart", it.Name, p.Stock, it.Quantity)
		default:
			result.Outcome = StockOK
			result.Available = p.Stock
		}

		if result.Message != "" {
			report.Messages = append(report.Messages, result.Message)
		}
		report.Results = append(report.Results, result)
	}

	return report
}

// ValidateDraft runs structural, relational, and phone-confirmation checks
// without touching the network.
func (s *service) ValidateDraft(draft *order.Draft) order.Errors {
	errs := order.Validate(draft)
	for path, msg := range order.CheckPhoneConfirmation(draft.MetaData) {
		if _, ok := errs[path]; !ok {
			errs[path] = msg
		}
	}
	return errs
}

// Submit drives the whole checkout: derive items from the cart, validate,
// gate on stock, price upstream, create the order, then optionally upload
// the slip. The in-flight guard rejects duplicate submissions for the
// session until the create+upload sequence finishes.
func (s *service) Submit(ctx context.Context, sessionID string, draft *order.Draft, slip *SlipUpload) (*Result, error) {
	log := logger.FromCtx(ctx).With(zap.String("session_id", sessionID))

	s.mu.Lock()
	if s.inFlight[sessionID] {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight[sessionID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Order lines always come from the cart as it stands right now, never
	// from the caller.
	draft.Items = make([]order.Item, 0, len(state.Items))
	for _, it := range state.Items {
		draft.Items = append(draft.Items, order.Item{
			ProductID:        it.ID,
			RequiredQuantity: it.Quantity,
		})
	}

	if errs := s.ValidateDraft(draft); !errs.Valid() {
		log.Info("draft rejected", zap.Int("errors", len(errs)))
		return &Result{Errors: errs}, ErrValidation
	}

	report := s.ValidateStock(ctx, state.Items)
	if !report.OK() {
		log.Info("checkout blocked by stock gate", zap.Strings("messages", report.Messages))
		return &Result{StockReport: report}, ErrStockConflict
	}

	// The upstream owns pricing; whatever the client displayed is replaced
	// here.
	value, err := s.orders.CalculateOrderValue(ctx, draft.Items)
	if err != nil {
		return nil, err
	}
	draft.MetaData.OrderValue = value.TotalValue
	draft.MetaData.Status = order.StatusPending

	draft.Normalize()

	created, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	result := &Result{Order: created}

	if slip != nil && draft.MetaData.PaymentMethod.RequiresPaymentData() {
		if err := s.orders.UploadPaymentSlip(ctx, created.OrderID, slip.Filename, slip.Reader); err != nil {
			// The order exists; the slip does not. Report, never roll back.
			log.Warn("payment slip upload failed after order creation",
				zap.String("order_id", created.OrderID),
				zap.Error(err),
			)
			result.Warning = fmt.Sprintf(
				"Order %s was created, but the payment slip could not be uploaded. Please submit the slip again.",
				created.OrderID,
			)
		}
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Warn("failed to clear cart after order creation", zap.Error(err))
	}

	return result, nil
}
