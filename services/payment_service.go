package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mealhub/entity"
	"mealhub/pkg/events"
	"mealhub/pkg/gateway"
	"mealhub/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const gatewayCallTimeout = 15 * time.Second

// gatewayStatusMap folds the provider's free-text status onto the internal
// enum; anything unlisted leaves the payment pending.
var gatewayStatusMap = map[string]entity.PaymentStatus{
	"success":    entity.PaymentPaid,
	"successful": entity.PaymentPaid,
	"succeeded":  entity.PaymentPaid,
	"paid":       entity.PaymentPaid,
	"completed":  entity.PaymentPaid,
	"refunded":   entity.PaymentRefunded,
	"refund":     entity.PaymentRefunded,
	"failed":     entity.PaymentFailed,
	"cancelled":  entity.PaymentFailed,
	"canceled":   entity.PaymentFailed,
	"expired":    entity.PaymentFailed,
	"reversed":   entity.PaymentFailed,
	"error":      entity.PaymentFailed,
}

func mapGatewayStatus(s string) entity.PaymentStatus {
	if mapped, ok := gatewayStatusMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return mapped
	}
	return entity.PaymentPending
}

type PaymentConfig struct {
	Currency         string
	PlaceholderEmail string
	PublicBaseURL    string
	FrontendURL      string
}

// PaymentService creates payment intents and reconciles gateway status into
// the internal record. Verify is the single funnel for webhooks and polling.
type PaymentService struct {
	DB        *gorm.DB
	Repo      *repository.PaymentRepository
	OrderRepo *repository.OrderRepository
	UserRepo  *repository.UserRepository
	Gateway   gateway.Gateway
	Bus       events.Publisher
	Cfg       PaymentConfig
}

func NewPaymentService(
	db *gorm.DB,
	repo *repository.PaymentRepository,
	orderRepo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	gw gateway.Gateway,
	bus events.Publisher,
	cfg PaymentConfig,
) *PaymentService {
	return &PaymentService{
		DB: db, Repo: repo, OrderRepo: orderRepo, UserRepo: userRepo,
		Gateway: gw, Bus: bus, Cfg: cfg,
	}
}

type PaymentIntentOut struct {
	Payment     *entity.Payment `json:"payment"`
	CheckoutURL string          `json:"checkoutUrl"`
}

// CreateIntent creates (or, on retry, reuses) the pending payment row and asks
// the gateway for a checkout session. A gateway failure leaves the row pending
// and is safe to retry.
func (s *PaymentService) CreateIntent(ctx context.Context, orderID uint, returnOrigin string) (*PaymentIntentOut, error) {
	order, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	customer, err := s.UserRepo.Get(order.CustomerID)
	if err != nil {
		return nil, err
	}

	p, err := s.Repo.GetPendingByOrder(order.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &entity.Payment{
			Gateway:  s.Gateway.Name(),
			TxRef:    "mh-" + uuid.NewString(),
			Amount:   order.Total,
			Currency: s.Cfg.Currency,
			Status:   entity.PaymentPending,
			OrderID:  order.ID,
		}
		if err := s.Repo.Create(s.DB, p); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	res, err := s.Gateway.CreateIntent(callCtx, gateway.IntentRequest{
		Amount:      p.Amount,
		Currency:    p.Currency,
		Email:       s.sanitizeEmail(customer.Email),
		FirstName:   customer.FirstName,
		TxRef:       p.TxRef,
		CallbackURL: s.Cfg.PublicBaseURL + "/payments/webhook",
		ReturnURL:   s.returnURL(returnOrigin, order.ID),
	})
	if err != nil {
		logrus.WithError(err).WithField("txRef", p.TxRef).Error("gateway create intent")
		return nil, ErrGateway
	}

	if err := s.Repo.Update(s.DB, p.ID, map[string]any{
		"gateway_ref": res.CheckoutURL,
		"payload":     string(res.Raw),
	}); err != nil {
		return nil, err
	}
	p.GatewayRef = res.CheckoutURL
	p.Payload = string(res.Raw)

	return &PaymentIntentOut{Payment: p, CheckoutURL: res.CheckoutURL}, nil
}

// sanitizeEmail falls back to the configured placeholder for missing or
// obviously fake addresses; the gateway rejects malformed ones outright.
func (s *PaymentService) sanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return s.Cfg.PlaceholderEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return s.Cfg.PlaceholderEmail
	}
	lower := strings.ToLower(addr.Address)
	for _, fake := range []string{"@example.com", "@example.org", "@test.com", "@localhost"} {
		if strings.HasSuffix(lower, fake) {
			return s.Cfg.PlaceholderEmail
		}
	}
	return addr.Address
}

// returnURL derives the post-checkout redirect from the client's origin when
// it is a well-formed http(s) origin, else from the configured frontend.
func (s *PaymentService) returnURL(origin string, orderID uint) string {
	base := s.Cfg.FrontendURL
	if origin != "" {
		if u, err := url.Parse(origin); err == nil &&
			(u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			base = u.Scheme + "://" + u.Host
		}
	}
	return strings.TrimRight(base, "/") + "/orders/" + uintString(orderID)
}

// Verify re-queries the gateway by transaction reference and folds the answer
// into the payment row. It may be called repeatedly and concurrently for the
// same payment: the row is re-read under a lock, and the completion signal
// fires only on the first transition into paid.
func (s *PaymentService) Verify(ctx context.Context, paymentID uint) (*entity.Payment, error) {
	p, err := s.Repo.Get(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	res, err := s.Gateway.Verify(callCtx, p.TxRef)
	if err != nil {
		logrus.WithError(err).WithField("txRef", p.TxRef).Error("gateway verify")
		return nil, ErrGateway
	}
	mapped := mapGatewayStatus(res.Status)

	justPaid := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.Repo.GetForUpdate(tx, p.ID)
		if err != nil {
			return err
		}

		newStatus := locked.Status
		if mapped != entity.PaymentPending {
			newStatus = mapped
		}
		updates := map[string]any{
			"status":  newStatus,
			"payload": string(res.Raw),
		}
		if newStatus == entity.PaymentPaid && locked.Status != entity.PaymentPaid {
			now := time.Now()
			updates["paid_at"] = now
			p.PaidAt = &now
			justPaid = true
		} else {
			p.PaidAt = locked.PaidAt
		}
		p.Status = newStatus
		p.Payload = string(res.Raw)
		return s.Repo.Update(tx, p.ID, updates)
	})
	if err != nil {
		return nil, err
	}

	if justPaid {
		s.Bus.Publish(context.Background(), events.New(events.PaymentCompleted, map[string]any{
			"paymentId": p.ID,
			"orderId":   p.OrderID,
			"txRef":     p.TxRef,
			"amount":    p.Amount,
		}))
	}
	return p, nil
}

// VerifyByTxRef serves the webhook path: the callback body is trusted only for
// the reference, truth comes from the gateway's verify API.
func (s *PaymentService) VerifyByTxRef(ctx context.Context, txRef string) (*entity.Payment, error) {
	p, err := s.Repo.GetByTxRef(txRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Verify(ctx, p.ID)
}

type refundStamp struct {
	Reason     string    `json:"refund_reason"`
	RefundedAt time.Time `json:"refunded_at"`
	Previous   string    `json:"previous_payload,omitempty"`
}

// Refund flips a paid payment to refunded, recording reason and time. Any
// other starting state is rejected.
func (s *PaymentService) Refund(paymentID uint, reason string) (*entity.Payment, error) {
	var out *entity.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.Repo.GetForUpdate(tx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if p.Status != entity.PaymentPaid {
			return ErrInvalidState
		}

		stamp, err := json.Marshal(refundStamp{
			Reason: reason, RefundedAt: time.Now(), Previous: p.Payload,
		})
		if err != nil {
			return err
		}
		if err := s.Repo.Update(tx, p.ID, map[string]any{
			"status":  entity.PaymentRefunded,
			"payload": string(stamp),
		}); err != nil {
			return err
		}
		p.Status = entity.PaymentRefunded
		p.Payload = string(stamp)
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
