package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/logger"

	"github.com/google/uuid"
)

// StoreRepository contract interface
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id uint64) (domain.Store, error)
	FindBySubdomain(ctx context.Context, subdomain string) (domain.Store, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uint64) error
}

// DatabaseProvisioner creates the dedicated tenant database for a new
// store. Schema migration happens lazily on first tenant resolution.
type DatabaseProvisioner interface {
	CreateDatabase(ctx context.Context, databaseName string) error
}

type storeService struct {
	storeRepo   StoreRepository
	provisioner DatabaseProvisioner
	dbPrefix    string
}

func NewStoreService(storeRepo StoreRepository, provisioner DatabaseProvisioner, dbPrefix string) *storeService {
	return &storeService{
		storeRepo:   storeRepo,
		provisioner: provisioner,
		dbPrefix:    dbPrefix,
	}
}

// Subdomains become both URLs and database name suffixes, so the
// charset is strict: lowercase alphanumerics with inner hyphens.
var validSubdomain = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

var reservedSubdomains = map[string]bool{
	"www":   true,
	"api":   true,
	"admin": true,
	"app":   true,
}

type CreateStoreInput struct {
	OwnerID   uint
	StoreName string
	Subdomain string
}

func (s *storeService) CreateStore(ctx context.Context, in CreateStoreInput) (domain.Store, error) {
	if in.StoreName == "" {
		return domain.Store{}, errors.New("store name is required")
	}

	subdomain := strings.ToLower(strings.TrimSpace(in.Subdomain))
	if !validSubdomain.MatchString(subdomain) {
		return domain.Store{}, errors.New("invalid subdomain format")
	}
	if reservedSubdomains[subdomain] {
		return domain.Store{}, errors.New("subdomain is reserved")
	}

	existing, err := s.storeRepo.FindBySubdomain(ctx, subdomain)
	if err == nil && existing.ID > 0 {
		return domain.Store{}, errors.New("subdomain already taken")
	}

	// Hyphens are legal in hostnames but not in database identifiers.
	databaseName := s.dbPrefix + strings.ReplaceAll(subdomain, "-", "_")

	if err := s.provisioner.CreateDatabase(ctx, databaseName); err != nil {
		logger.Error("failed to provision tenant database", "subdomain", subdomain, "error", err)
		return domain.Store{}, fmt.Errorf("failed to provision store database: %w", err)
	}

	newStore := domain.Store{
		OwnerID:      in.OwnerID,
		StoreName:    in.StoreName,
		Subdomain:    subdomain,
		DatabaseName: databaseName,
		ApiKey:       uuid.NewString(),
		IsActive:     true,
	}

	if err := s.storeRepo.Create(ctx, &newStore); err != nil {
		logger.Error("failed to create store", "subdomain", subdomain, "error", err)
		return domain.Store{}, err
	}

	logger.Info("store created", "store_id", newStore.ID, "subdomain", subdomain)

	return newStore, nil
}

func (s *storeService) GetStore(ctx context.Context, id uint64) (domain.Store, error) {
	return s.storeRepo.FindByID(ctx, id)
}

func (s *storeService) GetStoresByOwner(ctx context.Context, ownerID uint) ([]domain.Store, error) {
	return s.storeRepo.FindByOwner(ctx, ownerID)
}

// SetActive toggles whether the store's subdomain resolves at all.
func (s *storeService) SetActive(ctx context.Context, id uint64, ownerID uint, active bool) (domain.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}

	if store.OwnerID != ownerID {
		return domain.Store{}, errors.New("store does not belong to this owner")
	}

	store.IsActive = active
	if err := s.storeRepo.Update(ctx, &store); err != nil {
		return domain.Store{}, err
	}

	return store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, id uint64, ownerID uint, storeName string) (domain.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}

	if store.OwnerID != ownerID {
		return domain.Store{}, errors.New("store does not belong to this owner")
	}

	if storeName != "" {
		store.StoreName = storeName
	}

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		return domain.Store{}, err
	}

	return store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, id uint64, ownerID uint) error {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if store.OwnerID != ownerID {
		return errors.New("store does not belong to this owner")
	}

	// Soft delete only. The tenant database stays behind for manual
	// retention handling.
	return s.storeRepo.Delete(ctx, id)
}
