package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulnair-dev/vastra-backend/pkg/config"
	"github.com/rahulnair-dev/vastra-backend/pkg/db"
	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
	"github.com/rahulnair-dev/vastra-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("opening sqlite client: %v", err)
	}
	if err := client.DB().AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func seedOrder(t *testing.T, client *db.Client, userID uuid.UUID, total string, createdAt time.Time, itemQuantities ...int) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:      userID,
		TotalAmount: decimal.RequireFromString(total),
	}
	if err := client.DB().Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	if err := client.DB().Model(order).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate order: %v", err)
	}
	order.CreatedAt = createdAt

	for _, qty := range itemQuantities {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Quantity:  qty,
			Price:     decimal.RequireFromString("100.00"),
		}
		if err := client.DB().Create(&item).Error; err != nil {
			t.Fatalf("seed order item: %v", err)
		}
	}
	return order
}

func TestGetScopedToOwner(t *testing.T) {
	client := newTestDB(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	order := seedOrder(t, client, owner, "450.00", time.Now().UTC(), 2, 1)

	detail, err := svc.Get(ctx, owner, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(detail.Items))
	}
	if !detail.TotalAmount.Equal(decimal.RequireFromString("450.00")) {
		t.Fatalf("unexpected total %s", detail.TotalAmount)
	}
	if detail.Status != "pending" {
		t.Fatalf("expected pending status, got %s", detail.Status)
	}

	_, err = svc.Get(ctx, stranger, order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestListNewestFirstWithCursor(t *testing.T) {
	client := newTestDB(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, client, userID, "100.00", base.Add(time.Duration(i)*time.Hour), 1)
	}
	seedOrder(t, client, uuid.New(), "999.00", base.Add(24*time.Hour), 1)

	first, err := svc.List(ctx, userID, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(first.Orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(first.Orders))
	}
	if first.NextCursor == "" {
		t.Fatal("expected next cursor for remaining orders")
	}
	for i := 1; i < len(first.Orders); i++ {
		if first.Orders[i].CreatedAt.After(first.Orders[i-1].CreatedAt) {
			t.Fatal("expected newest-first ordering")
		}
	}

	second, err := svc.List(ctx, userID, pagination.Params{Limit: 3, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(second.Orders) != 2 {
		t.Fatalf("expected 2 orders on second page, got %d", len(second.Orders))
	}
	if second.NextCursor != "" {
		t.Fatalf("expected no further pages, got cursor %q", second.NextCursor)
	}

	seen := map[uuid.UUID]bool{}
	for _, o := range append(first.Orders, second.Orders...) {
		if seen[o.ID] {
			t.Fatalf("order %s returned twice", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestListEmptyHistory(t *testing.T) {
	client := newTestDB(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	list, err := svc.List(context.Background(), uuid.New(), pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Orders) != 0 || list.NextCursor != "" {
		t.Fatalf("expected empty history, got %+v", list)
	}
}
