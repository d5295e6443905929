package usecase_test

import (
	"context"
	"errors"
	"github.com/ajdiallo/chopnow/internal/usecase"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	testhelpers "github.com/ajdiallo/chopnow/internal/test"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderUseCaseCheckout(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewOrderUseCase(repo)

	items := []model.OrderItem{
		{Name: "jollof rice", Quantity: 2, UnitPrice: price("1500")},
		{Name: "suya", Quantity: 1, UnitPrice: price("2000")},
	}
	delivery := model.DeliverySnapshot{RecipientName: "Ada", RecipientPhone: "0800", Street: "1 Broad St", City: "Lagos"}

	order, err := uc.Checkout(context.Background(), 7, items, delivery)
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if len(repo.Created) != 1 {
		t.Fatalf("expected one create call, got %d", len(repo.Created))
	}

	created := repo.Created[0]
	if !created.TotalAmount.Equal(price("5000")) {
		t.Fatalf("total = %s, want 5000", created.TotalAmount)
	}
	if !created.PayableAmount.Equal(created.TotalAmount) {
		t.Fatalf("payable must equal total at checkout, got %s", created.PayableAmount)
	}
	if !created.DiscountAmount.IsZero() {
		t.Fatalf("discount must be zero at checkout, got %s", created.DiscountAmount)
	}
	if created.Delivery != delivery {
		t.Fatalf("delivery snapshot not carried: %+v", created.Delivery)
	}
}

func TestOrderUseCaseCheckoutRejectsBadInput(t *testing.T) {
	uc := usecase.NewOrderUseCase(&testhelpers.OrderRepositoryStub{})
	ctx := context.Background()

	if _, err := uc.Checkout(ctx, 1, nil, model.DeliverySnapshot{}); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}

	zeroQty := []model.OrderItem{{Name: "rice", Quantity: 0, UnitPrice: price("100")}}
	if _, err := uc.Checkout(ctx, 1, zeroQty, model.DeliverySnapshot{}); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero quantity, got %v", err)
	}

	zeroPrice := []model.OrderItem{{Name: "rice", Quantity: 1, UnitPrice: decimal.Zero}}
	if _, err := uc.Checkout(ctx, 1, zeroPrice, model.DeliverySnapshot{}); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero price, got %v", err)
	}
}

func TestOrderUseCaseGetEnforcesOwnership(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{{ID: 3, UserID: 9, Status: model.OrderStatusPending}},
	}
	uc := usecase.NewOrderUseCase(repo)
	ctx := context.Background()

	if _, err := uc.Get(ctx, 3, 9); err != nil {
		t.Fatalf("owner fetch failed: %v", err)
	}
	if _, err := uc.Get(ctx, 3, 4); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := uc.Get(ctx, 99, 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{{ID: 1, UserID: 2, Status: model.OrderStatusConfirmed}},
	}
	uc := usecase.NewOrderUseCase(repo)
	ctx := context.Background()

	order, err := uc.UpdateStatus(ctx, 1, "preparing")
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if order.Status != model.OrderStatusPreparing {
		t.Fatalf("expected preparing, got %s", order.Status)
	}

	if _, err := uc.UpdateStatus(ctx, 1, "burnt"); !errors.Is(err, domainErrors.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}

	var transitionErr domainErrors.InvalidTransitionError
	if _, err := uc.UpdateStatus(ctx, 1, "completed"); !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestOrderUseCaseCancel(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{
		Orders: []model.Order{{ID: 5, UserID: 2, Status: model.OrderStatusPending}},
	}
	uc := usecase.NewOrderUseCase(repo)
	ctx := context.Background()

	if _, err := uc.Cancel(ctx, 5, 3); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	order, err := uc.Cancel(ctx, 5, 2)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", order.Status)
	}
}
