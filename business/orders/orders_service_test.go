//go:build !integration

package orders

import (
	"context"
	"errors"
	"testing"

	"myStoreCloud/business/behavior"
	"myStoreCloud/domain"

	"gorm.io/gorm"
)

type fakeOrdersRepo struct {
	created   []domain.Orders
	createErr error
}

func (f *fakeOrdersRepo) Create(ctx context.Context, order *domain.Orders) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *order)
	return nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, id uint64) (domain.Orders, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Orders{}, errors.New("order not found")
}

func (f *fakeOrdersRepo) FindByCustomer(ctx context.Context, customerID uint64) ([]domain.Orders, error) {
	var out []domain.Orders
	for _, o := range f.created {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error { return nil }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error { return nil }

func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error { return nil }

type fakeTracker struct {
	tracked []behavior.BehaviorInput
	err     error
}

func (f *fakeTracker) TrackBehavior(ctx context.Context, in behavior.BehaviorInput) error {
	if f.err != nil {
		return f.err
	}
	f.tracked = append(f.tracked, in)
	return nil
}

type fakeResolver struct {
	err error
}

func (f *fakeResolver) Resolve(ctx context.Context, tenantID string) (*gorm.DB, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gorm.DB{}, nil
}

func testRepos(ordersRepo *fakeOrdersRepo, productRepo *fakeProductRepo) RepositoryFactory {
	return func(db *gorm.DB) Repositories {
		return Repositories{
			Orders:   ordersRepo,
			Products: productRepo,
		}
	}
}

func catalogWithProduct() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint64]domain.Product{
		7: {ID: 7, ProductName: "Boots", NormalPrice: 50, SalePrice: 40},
	}}
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		TenantID:   "acme",
		CustomerID: 9,
		SessionID:  "s1",
		ProductID:  7,
		Quantity:   2,
	}
}

func TestCreateOrder_PricesFromSaleAndTracksPurchase(t *testing.T) {
	ordersRepo := &fakeOrdersRepo{}
	tracker := &fakeTracker{}
	svc := NewOrdersService(&fakeResolver{}, testRepos(ordersRepo, catalogWithProduct()), tracker)

	order, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	if order.PriceEach != 40 || order.Subtotal != 80 {
		t.Errorf("expected sale pricing 40/80, got %v/%v", order.PriceEach, order.Subtotal)
	}
	if order.OrderStatus != StatusPending {
		t.Errorf("expected status %q, got %q", StatusPending, order.OrderStatus)
	}

	if len(tracker.tracked) != 1 {
		t.Fatalf("expected one purchase event, got %d", len(tracker.tracked))
	}
	ev := tracker.tracked[0]
	if ev.Action != domain.ActionPurchase || ev.SessionID != "s1" || ev.Source != "checkout" {
		t.Errorf("unexpected purchase event: %+v", ev)
	}
	if ev.ProductID == nil || *ev.ProductID != 7 {
		t.Errorf("purchase event missing product id: %+v", ev.ProductID)
	}
}

func TestCreateOrder_ValidatesInput(t *testing.T) {
	ordersRepo := &fakeOrdersRepo{}
	svc := NewOrdersService(&fakeResolver{}, testRepos(ordersRepo, catalogWithProduct()), &fakeTracker{})

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missing customer", func(in *CreateOrderInput) { in.CustomerID = 0 }},
		{"missing session", func(in *CreateOrderInput) { in.SessionID = "" }},
		{"missing product", func(in *CreateOrderInput) { in.ProductID = 0 }},
		{"zero quantity", func(in *CreateOrderInput) { in.Quantity = 0 }},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if _, err := svc.CreateOrder(context.Background(), in); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if len(ordersRepo.created) != 0 {
		t.Fatalf("invalid input must not create orders, got %+v", ordersRepo.created)
	}
}

func TestCreateOrder_TrackerFailureDoesNotFailOrder(t *testing.T) {
	ordersRepo := &fakeOrdersRepo{}
	tracker := &fakeTracker{err: errors.New("behavior store down")}
	svc := NewOrdersService(&fakeResolver{}, testRepos(ordersRepo, catalogWithProduct()), tracker)

	order, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("tracking is best effort, failure must not fail the order: %v", err)
	}
	if order.ID == 0 {
		t.Error("expected the created order back")
	}
}

func TestCreateOrder_UnknownProductFails(t *testing.T) {
	svc := NewOrdersService(&fakeResolver{}, testRepos(&fakeOrdersRepo{}, &fakeProductRepo{}), &fakeTracker{})

	in := validInput()
	in.ProductID = 99
	if _, err := svc.CreateOrder(context.Background(), in); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewOrdersService(&fakeResolver{}, testRepos(&fakeOrdersRepo{}, &fakeProductRepo{}), &fakeTracker{})

	if err := svc.UpdateOrderStatus(context.Background(), "acme", 1, "refunded"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
