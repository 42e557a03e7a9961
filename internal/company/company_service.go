package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/authz"
	companyerrors "go-hrm/internal/company/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context, actor authz.Actor, f Filters) ([]CompanyResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (CompanyResponse, error)
	GetBySlug(ctx context.Context, actor authz.Actor, slug string) (CompanyResponse, error)
	Update(ctx context.Context, actor authz.Actor, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
	ToggleActive(ctx context.Context, actor authz.Actor, id string) (CompanyResponse, error)
	GetStatistics(ctx context.Context, actor authz.Actor, id string) (Statistics, error)
	UpdateSettings(ctx context.Context, actor authz.Actor, id string, settings map[string]any) (CompanyResponse, error)
	SetSetting(ctx context.Context, actor authz.Actor, id string, key string, value any) (CompanyResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger *zap.Logger) Service {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &service{db: db, repo: repo, logger: l.Named("company.service")}
}

// scoped hides other tenants' companies from non-super-admin actors. A
// cross-tenant id must be indistinguishable from a missing one.
func (s *service) scoped(actor authz.Actor, id string) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.CompanyID != id {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	actor authz.Actor,
	req CreateCompanyRequest,
) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	com := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Slug:     req.Slug,
		Logo:     req.Logo,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		slug, err := s.uniqueSlug(ctx, qtx, com.Slug, com.Name, "")
		if err != nil {
			return err
		}
		com.Slug = slug

		return qtx.Create(ctx, com)
	})
	if err != nil {
		s.logger.Error("create company failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create company success",
		zap.String("request_id", rid),
		zap.String("company_id", com.ID.String()),
		zap.String("slug", com.Slug),
	)

	return mapToResponse(*com), nil
}

// uniqueSlug resolves a free slug, disambiguating collisions with a numeric
// suffix: acme, acme-1, acme-2, ...
func (s *service) uniqueSlug(ctx context.Context, repo Repository, explicit, name, excludeID string) (string, error) {
	base := explicit
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		base = "company"
	}

	slug := base
	for counter := 1; ; counter++ {
		exists, err := repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *service) GetAll(
	ctx context.Context,
	actor authz.Actor,
	f Filters,
) ([]CompanyResponse, error) {
	if !actor.IsSuperAdmin() {
		// Tenant users only ever see their own company.
		com, err := s.repo.FindByID(ctx, actor.CompanyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []CompanyResponse{}, nil
			}
			return nil, err
		}
		return []CompanyResponse{mapToResponse(*com)}, nil
	}

	companies, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(companies), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (CompanyResponse, error) {
	if err := s.scoped(actor, id); err != nil {
		return CompanyResponse{}, err
	}

	com, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*com), nil
}

func (s *service) GetBySlug(
	ctx context.Context,
	actor authz.Actor,
	slug string,
) (CompanyResponse, error) {
	com, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if err := s.scoped(actor, com.ID.String()); err != nil {
		return CompanyResponse{}, err
	}

	return mapToResponse(*com), nil
}

func (s *service) Update(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	if err := s.scoped(actor, id); err != nil {
		return CompanyResponse{}, err
	}

	var updated Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		com, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			com.Name = *req.Name
			if req.Slug == nil {
				// Rename regenerates the slug unless one was given explicitly.
				slug, err := s.uniqueSlug(ctx, qtx, "", com.Name, id)
				if err != nil {
					return err
				}
				com.Slug = slug
			}
		}
		if req.Slug != nil {
			slug, err := s.uniqueSlug(ctx, qtx, *req.Slug, com.Name, id)
			if err != nil {
				return err
			}
			com.Slug = slug
		}
		if req.Logo != nil {
			com.Logo = *req.Logo
		}
		if req.Email != nil {
			com.Email = *req.Email
		}
		if req.Phone != nil {
			com.Phone = *req.Phone
		}
		if req.Address != nil {
			com.Address = *req.Address
		}

		if err := qtx.Update(ctx, com); err != nil {
			return err
		}

		updated = *com
		return nil
	})
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := s.scoped(actor, id); err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ToggleActive(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (CompanyResponse, error) {
	if err := s.scoped(actor, id); err != nil {
		return CompanyResponse{}, err
	}

	var updated Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		com, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		com.IsActive = !com.IsActive
		if err := qtx.Update(ctx, com); err != nil {
			return err
		}

		updated = *com
		return nil
	})
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func (s *service) GetStatistics(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (Statistics, error) {
	if err := s.scoped(actor, id); err != nil {
		return Statistics{}, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return Statistics{}, mapRepositoryError(err)
	}

	return s.repo.Statistics(ctx, id)
}

func (s *service) UpdateSettings(
	ctx context.Context,
	actor authz.Actor,
	id string,
	settings map[string]any,
) (CompanyResponse, error) {
	if err := s.scoped(actor, id); err != nil {
		return CompanyResponse{}, err
	}

	var updated Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		com, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if com.Settings == nil {
			com.Settings = map[string]any{}
		}
		for k, v := range settings {
			com.Settings[k] = v
		}

		if err := qtx.Update(ctx, com); err != nil {
			return err
		}

		updated = *com
		return nil
	})
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func (s *service) SetSetting(
	ctx context.Context,
	actor authz.Actor,
	id string,
	key string,
	value any,
) (CompanyResponse, error) {
	if err := s.scoped(actor, id); err != nil {
		return CompanyResponse{}, err
	}

	var updated Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		com, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		com.Settings = setSetting(com.Settings, key, value)

		if err := qtx.Update(ctx, com); err != nil {
			return err
		}

		updated = *com
		return nil
	})
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func mapToResponse(com Company) CompanyResponse {
	resp := CompanyResponse{
		ID:       com.ID.String(),
		Name:     com.Name,
		Slug:     com.Slug,
		Logo:     com.Logo,
		Email:    com.Email,
		Phone:    com.Phone,
		Address:  com.Address,
		Settings: com.Settings,
		IsActive: com.IsActive,
	}
	if !com.CreatedAt.IsZero() {
		resp.CreatedAt = com.CreatedAt.Format(time.RFC3339)
	}
	if !com.UpdatedAt.IsZero() {
		resp.UpdatedAt = com.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(companies []Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		res[i] = mapToResponse(c)
	}
	return res
}
