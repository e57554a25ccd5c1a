package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/cart"
	cartdto "github.com/fekuna/tagro-storefront-service/internal/cart/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/internal/order"
	"github.com/fekuna/tagro-storefront-service/internal/order/dto"
	"github.com/fekuna/tagro-storefront-service/internal/payment"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/pkg/broker"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/i18n"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Deps struct {
	Users     user.Repository
	Carts     cart.Repository
	Products  product.Repository
	Payments  payment.UseCase
	Notifier  notification.Notifier
	Templates notification.TemplateUseCase
	// Publisher may be nil, in which case no events are emitted.
	Publisher broker.Publisher
	Locker    cache.Locker
}

type orderUseCase struct {
	Deps
	logger logger.ZapLogger
	now    func() time.Time
}

func NewOrderUseCase(deps Deps, log logger.ZapLogger) order.UseCase {
	if deps.Locker == nil {
		deps.Locker = cache.NewNoopLocker()
	}
	return &orderUseCase{
		Deps:   deps,
		logger: log,
		now:    time.Now,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error) {
	// an anonymous caller has no server-side cart, so the emptiness check comes first
	var lines []cartdto.Line
	if input.UserID != "" {
		var err error
		if lines, err = uc.Carts.Lines(ctx, input.UserID); err != nil {
			return nil, errors.Wrap(err, "load cart")
		}
	}
	if len(lines) == 0 {
		return nil, apperror.Validation("cart is empty").WithCode("cart_empty")
	}
	if input.UserID == "" {
		return nil, apperror.Auth("login required")
	}

	u, err := uc.Users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if u == nil {
		return nil, apperror.NotFound("user %s not found", input.UserID)
	}
	if len(u.Addresses) == 0 {
		return nil, apperror.Validation("please add a shipping address before checking out").WithCode("address_required")
	}

	var shipping *model.Address
	if input.AddressID != "" {
		shipping = u.FindAddress(input.AddressID)
		if shipping == nil {
			return nil, apperror.Validation("unknown shipping address %s", input.AddressID)
		}
	} else {
		shipping = u.DefaultAddress()
	}

	method, err := uc.Payments.GetEnabledByType(ctx, input.PaymentType)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.Validation("payment method %q is not available", input.PaymentType).WithCode("payment_method_unavailable")
	}
	details, err := method.Details(input.Proof)
	if err != nil {
		return nil, err
	}

	c := &model.Cart{UserID: u.ID}
	for _, l := range lines {
		p, err := uc.Products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "load cart product")
		}
		if p == nil {
			return nil, apperror.Validation("product %s is no longer available, please update your cart", l.ProductID).WithCode("product_unavailable")
		}
		c.Add(*p, l.Quantity)
	}

	items := c.OrderItems()
	o := model.Order{
		ID:              uuid.New().String(),
		UserID:          u.ID,
		UserName:        u.Name,
		UserPhone:       u.Phone,
		OrderDate:       uc.now(),
		Items:           items,
		TotalAmount:     model.ComputeTotal(items),
		ShippingAddress: *shipping,
		PaymentDetails:  details,
		Status:          model.OrderStatusPending,
	}

	err = uc.withUser(ctx, u.ID, func(fresh *model.User) error {
		return uc.Users.ReplaceOrders(ctx, fresh.ID, append(fresh.Orders, o))
	})
	if err != nil {
		return nil, err
	}

	if err := uc.Carts.Clear(ctx, u.ID); err != nil {
		uc.logger.Error("failed to clear cart after checkout", zap.String("user_id", u.ID), zap.Error(err))
	}
	uc.publishOrderCreated(ctx, &o)

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", u.ID),
		zap.String("total", o.TotalString()),
		zap.String("method", details.Method),
	)
	return &dto.CheckoutResult{
		Order:   &o,
		Message: i18n.T(string(input.Lang), "PaymentPending", nil),
	}, nil
}

func (uc *orderUseCase) publishOrderCreated(ctx context.Context, o *model.Order) {
	if uc.Publisher == nil {
		return
	}
	data, err := json.Marshal(model.NewOrderCreatedEvent(o, uc.now()))
	if err != nil {
		uc.logger.Error("failed to encode order event", zap.String("order_id", o.ID), zap.Error(err))
		return
	}
	if err := uc.Publisher.Publish(ctx, []byte(o.ID), data); err != nil {
		uc.logger.Error("failed to publish order event", zap.String("order_id", o.ID), zap.Error(err))
	}
}

// withUser re-reads the user under its lock so list replacements never
// overwrite a concurrent write.
func (uc *orderUseCase) withUser(ctx context.Context, userID string, fn func(u *model.User) error) error {
	err := uc.Locker.WithLock(ctx, user.LockKey(userID), func() error {
		u, err := uc.Users.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "find user")
		}
		if u == nil {
			return apperror.NotFound("user %s not found", userID)
		}
		return fn(u)
	})
	if errors.Is(err, cache.ErrLockNotAcquired) {
		return apperror.Precondition("%s", err.Error())
	}
	return err
}

var actionMessages = map[model.OrderAction]string{
	model.ActionRequestCancellation: "CancellationRequestSent",
	model.ActionApproveCancellation: "CancellationApproved",
	model.ActionDenyCancellation:    "CancellationDenied",
}

func (uc *orderUseCase) Transition(ctx context.Context, input *dto.TransitionInput) (*dto.TransitionResult, error) {
	owner, err := uc.Users.FindByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "find order owner")
	}
	if owner == nil {
		return nil, apperror.NotFound("order %s not found", input.OrderID)
	}
	if input.ActorRole != model.RoleAdmin && owner.ID != input.ActorID {
		return nil, apperror.NotFound("order %s not found", input.OrderID)
	}

	var updated model.Order
	err = uc.withUser(ctx, owner.ID, func(u *model.User) error {
		o := u.FindOrder(input.OrderID)
		if o == nil {
			return apperror.NotFound("order %s not found", input.OrderID)
		}
		next, err := model.NextStatus(o.Status, input.Action, input.ActorRole)
		if err != nil {
			return err
		}
		o.Status = next
		updated = *o
		return uc.Users.ReplaceOrders(ctx, u.ID, u.Orders)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order status changed",
		zap.String("order_id", updated.ID),
		zap.String("action", string(input.Action)),
		zap.String("status", string(updated.Status)),
	)

	lang := string(input.Lang)
	res := &dto.TransitionResult{Order: &updated}
	if id, ok := actionMessages[input.Action]; ok {
		res.Message = i18n.T(lang, id, nil)
	} else {
		res.Message = i18n.T(lang, "OrderStatusUpdated", map[string]interface{}{
			"OrderID": updated.ID,
			"Status":  updated.Status,
		})
	}

	// every entry into Processing, a denied cancellation included, re-sends the confirmation
	if updated.Status == model.OrderStatusProcessing {
		if err := uc.sendConfirmation(ctx, &updated, input.Lang); err != nil {
			uc.logger.Warn("order confirmation sms failed", zap.String("order_id", updated.ID), zap.Error(err))
			res.Warning = i18n.T(lang, "OrderSmsFailed", nil)
		}
	}
	return res, nil
}

func (uc *orderUseCase) sendConfirmation(ctx context.Context, o *model.Order, lang model.Language) error {
	if o.UserPhone == "" {
		return nil
	}
	templates, err := uc.Templates.GetTemplates(ctx)
	if err != nil {
		return err
	}
	return uc.Notifier.SendOrderConfirmation(ctx, o.UserPhone, templates.OrderConfirmation.Get(lang), notification.OrderConfirmationData{
		OrderID:     o.ID,
		UserName:    o.UserName,
		TotalAmount: o.TotalString(),
	})
}

func newestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
}

func (uc *orderUseCase) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	users, err := uc.Users.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	orders := []model.Order{}
	for _, u := range users {
		for _, o := range u.Orders {
			o.UserID = u.ID
			o.UserName = u.Name
			if o.UserPhone == "" {
				o.UserPhone = u.Phone
			}
			orders = append(orders, o)
		}
	}
	newestFirst(orders)
	return orders, nil
}

func (uc *orderUseCase) ListMyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if u == nil {
		return nil, apperror.NotFound("user %s not found", userID)
	}
	orders := append([]model.Order{}, u.Orders...)
	newestFirst(orders)
	return orders, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, orderID, actorID string, actorRole model.Role) (*model.Order, error) {
	u, err := uc.Users.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "find order owner")
	}
	if u == nil || (actorRole != model.RoleAdmin && u.ID != actorID) {
		return nil, apperror.NotFound("order %s not found", orderID)
	}
	return u.FindOrder(orderID), nil
}
