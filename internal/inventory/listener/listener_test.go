package listener

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	msgs chan kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

type recordingUseCase struct {
	mu    sync.Mutex
	calls []dto.AdjustStockInput
	done  chan struct{}
	want  int
}

func (u *recordingUseCase) GetStock(context.Context, string) (int, error) { return 0, nil }

func (u *recordingUseCase) AdjustStock(_ context.Context, in *dto.AdjustStockInput) (*model.StockMovement, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, *in)
	if len(u.calls) == u.want {
		close(u.done)
	}
	return &model.StockMovement{}, nil
}

func (u *recordingUseCase) ListMovements(context.Context, *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return nil, 0, nil
}

func TestInventoryListener_DeductsOrderLines(t *testing.T) {
	order := &model.Order{
		ID:     "ORD-1",
		UserID: "u1",
		Items: []model.OrderItem{
			{Product: model.ProductSnapshot{ID: "ff001"}, Quantity: 2},
			{Product: model.ProductSnapshot{ID: "pf001"}, Quantity: 0},
			{Product: model.ProductSnapshot{ID: "cf001"}, Quantity: 1},
		},
	}
	event, err := json.Marshal(model.NewOrderCreatedEvent(order, time.Now()))
	require.NoError(t, err)

	reader := &fakeReader{msgs: make(chan kafka.Message, 3)}
	reader.msgs <- kafka.Message{Value: []byte("not json")}
	reader.msgs <- kafka.Message{Value: []byte(`{"event_type":"OrderShipped"}`)}
	reader.msgs <- kafka.Message{Value: event}

	uc := &recordingUseCase{done: make(chan struct{}), want: 2}
	l := NewInventoryListener(reader, uc, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not process the event")
	}
	cancel()
	<-stopped

	uc.mu.Lock()
	defer uc.mu.Unlock()
	require.Len(t, uc.calls, 2)
	assert.Equal(t, "ff001", uc.calls[0].ProductID)
	assert.Equal(t, -2, uc.calls[0].QuantityChange)
	assert.Equal(t, dto.ReferenceSale, uc.calls[0].ReferenceType)
	assert.Equal(t, "ORD-1", uc.calls[0].ReferenceID)
	assert.Equal(t, "cf001", uc.calls[1].ProductID)
}
