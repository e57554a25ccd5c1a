package user

import (
	"context"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// Repository persists the User aggregate. Addresses and orders live inside
// it; the Replace methods swap a whole list in a single write.
//
// Create reports a duplicate email or phone as a validation error. Lookups
// return nil, nil when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)

	// Update writes the scalar profile fields, not addresses or orders.
	Update(ctx context.Context, user *model.User) error
	ReplaceAddresses(ctx context.Context, userID string, addresses []model.Address) error
	ReplaceOrders(ctx context.Context, userID string, orders []model.Order) error
	Delete(ctx context.Context, id string) error
}

// OTPStore keeps issued one-time codes until they expire or are used.
type OTPStore interface {
	Save(ctx context.Context, purpose, phone, code string, ttl time.Duration) error
	// Verify consumes the code when it matches.
	Verify(ctx context.Context, purpose, phone, code string) (bool, error)
}

// LockKey names the lock that serializes list replacements on one user.
func LockKey(userID string) string {
	return "lock:user:" + userID
}
