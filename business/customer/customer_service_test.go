//go:build !integration

package customer

import (
	"context"
	"errors"
	"testing"

	"myStoreCloud/domain"

	"gorm.io/gorm"
)

type fakeCustomerRepo struct {
	byEmail   map[string]domain.Customer
	byID      map[uint64]domain.Customer
	created   []domain.Customer
	createErr error
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	customer.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *customer)
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint64) (domain.Customer, error) {
	customer, ok := f.byID[id]
	if !ok {
		return domain.Customer{}, errors.New("customer not found")
	}
	return customer, nil
}

func (f *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	customer, ok := f.byEmail[email]
	if !ok {
		return domain.Customer{}, errors.New("customer not found")
	}
	return customer, nil
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

func newTestService(repo *fakeCustomerRepo) *customerService {
	return NewCustomerService(&fakeResolver{}, func(db *gorm.DB) CustomerRepository { return repo })
}

func TestRegisterCustomer_CreatesShopper(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	customer := domain.Customer{FullName: "Ana", Email: "ana@example.com"}
	if err := svc.RegisterCustomer(context.Background(), "acme", &customer); err != nil {
		t.Fatal(err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one created customer, got %d", len(repo.created))
	}
	if customer.ID == 0 {
		t.Error("expected the assigned id to be visible to the caller")
	}
	if repo.created[0].Email != "ana@example.com" {
		t.Errorf("unexpected customer: %+v", repo.created[0])
	}
}

func TestRegisterCustomer_RejectsDuplicateEmail(t *testing.T) {
	repo := &fakeCustomerRepo{
		byEmail: map[string]domain.Customer{
			"ana@example.com": {ID: 7, Email: "ana@example.com"},
		},
	}
	svc := newTestService(repo)

	err := svc.RegisterCustomer(context.Background(), "acme", &domain.Customer{Email: "ana@example.com"})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if len(repo.created) != 0 {
		t.Fatalf("duplicate must not be created, got %+v", repo.created)
	}
}

func TestRegisterCustomer_RequiresEmail(t *testing.T) {
	svc := newTestService(&fakeCustomerRepo{})

	if err := svc.RegisterCustomer(context.Background(), "acme", &domain.Customer{FullName: "Ana"}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestRegisterCustomer_TenantResolveErrorSurfaces(t *testing.T) {
	svc := NewCustomerService(
		&fakeResolver{err: domain.ErrTenantNotFound},
		func(db *gorm.DB) CustomerRepository { return &fakeCustomerRepo{} },
	)

	err := svc.RegisterCustomer(context.Background(), "ghost", &domain.Customer{Email: "ana@example.com"})
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestGetCustomerByID(t *testing.T) {
	repo := &fakeCustomerRepo{
		byID: map[uint64]domain.Customer{
			7: {ID: 7, FullName: "Ana", Email: "ana@example.com"},
		},
	}
	svc := newTestService(repo)

	customer, err := svc.GetCustomerByID(context.Background(), "acme", 7)
	if err != nil {
		t.Fatal(err)
	}
	if customer.Email != "ana@example.com" {
		t.Errorf("unexpected customer: %+v", customer)
	}

	if _, err := svc.GetCustomerByID(context.Background(), "acme", 0); err == nil {
		t.Error("expected error for invalid id")
	}
	if _, err := svc.GetCustomerByID(context.Background(), "acme", 99); err == nil {
		t.Error("expected error for unknown id")
	}
}
