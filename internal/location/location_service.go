package location

import (
	"context"
	"time"

	locationerrors "go-hrm/internal/location/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLocationRequest) (LocationResponse, error)
	GetAll(ctx context.Context, companyID string, f Filters) ([]LocationResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LocationResponse, error)
	GetByCode(ctx context.Context, companyID, code string) (LocationResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	SetHeadquarters(ctx context.Context, companyID, id string) (LocationResponse, error)
	GetHeadquarters(ctx context.Context, companyID string) (*LocationResponse, error)
	GetCountries(ctx context.Context, companyID string) ([]string, error)
	GetStatistics(ctx context.Context, companyID, id string) (Statistics, error)
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
	return &service{db: db, repo: repo, logger: l.Named("location.service")}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateLocationRequest,
) (LocationResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	loc := &Location{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		Name:           req.Name,
		Code:           req.Code,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		PostalCode:     req.PostalCode,
		Timezone:       req.Timezone,
		Phone:          req.Phone,
		Email:          req.Email,
		IsHeadquarters: req.IsHeadquarters,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Creating as headquarters demotes any existing one in the same tx.
		if loc.IsHeadquarters {
			if err := qtx.UnsetHeadquarters(ctx, companyID, ""); err != nil {
				return err
			}
		}

		return qtx.Create(ctx, loc)
	})
	if err != nil {
		s.logger.Error("create location failed", zap.String("request_id", rid), zap.Error(err))
		return LocationResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create location success",
		zap.String("request_id", rid),
		zap.String("location_id", loc.ID.String()),
	)

	return mapToResponse(*loc), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	f Filters,
) ([]LocationResponse, error) {
	locs, err := s.repo.FindAllByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(locs), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (LocationResponse, error) {
	loc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*loc), nil
}

func (s *service) GetByCode(
	ctx context.Context,
	companyID, code string,
) (LocationResponse, error) {
	loc, err := s.repo.FindByCodeAndCompany(ctx, companyID, code)
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*loc), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateLocationRequest,
) (LocationResponse, error) {
	var updated Location
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		loc, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		becomingHQ := req.IsHeadquarters != nil && *req.IsHeadquarters && !loc.IsHeadquarters
		if becomingHQ {
			if err := qtx.UnsetHeadquarters(ctx, companyID, id); err != nil {
				return err
			}
		}

		applyUpdate(loc, req)

		if err := qtx.Update(ctx, loc); err != nil {
			return err
		}

		updated = *loc
		return nil
	})
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func applyUpdate(loc *Location, req UpdateLocationRequest) {
	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Code != nil {
		loc.Code = *req.Code
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.State != nil {
		loc.State = *req.State
	}
	if req.Country != nil {
		loc.Country = *req.Country
	}
	if req.PostalCode != nil {
		loc.PostalCode = *req.PostalCode
	}
	if req.Timezone != nil {
		loc.Timezone = *req.Timezone
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Email != nil {
		loc.Email = *req.Email
	}
	if req.IsHeadquarters != nil {
		loc.IsHeadquarters = *req.IsHeadquarters
	}
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
			return mapRepositoryError(err)
		}

		employees, err := qtx.CountEmployees(ctx, companyID, id)
		if err != nil {
			return err
		}
		if employees > 0 {
			return locationerrors.ErrHasEmployees
		}

		departments, err := qtx.CountDepartments(ctx, companyID, id)
		if err != nil {
			return err
		}
		if departments > 0 {
			return locationerrors.ErrHasDepartments
		}

		return qtx.Delete(ctx, companyID, id)
	})
}

func (s *service) SetHeadquarters(
	ctx context.Context,
	companyID, id string,
) (LocationResponse, error) {
	var updated Location
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		loc, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if err := qtx.UnsetHeadquarters(ctx, companyID, id); err != nil {
			return err
		}

		loc.IsHeadquarters = true
		if err := qtx.Update(ctx, loc); err != nil {
			return err
		}

		updated = *loc
		return nil
	})
	if err != nil {
		return LocationResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(updated), nil
}

func (s *service) GetHeadquarters(
	ctx context.Context,
	companyID string,
) (*LocationResponse, error) {
	loc, err := s.repo.FindHeadquarters(ctx, companyID)
	if err != nil {
		if isNotFound(err) {
			// A company may legitimately have no headquarters yet.
			return nil, nil
		}
		return nil, err
	}

	resp := mapToResponse(*loc)
	return &resp, nil
}

func (s *service) GetCountries(ctx context.Context, companyID string) ([]string, error) {
	return s.repo.Countries(ctx, companyID)
}

func (s *service) GetStatistics(
	ctx context.Context,
	companyID, id string,
) (Statistics, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return Statistics{}, mapRepositoryError(err)
	}

	return s.repo.Statistics(ctx, companyID, id)
}

func mapToResponse(loc Location) LocationResponse {
	resp := LocationResponse{
		ID:             loc.ID.String(),
		CompanyID:      loc.CompanyID.String(),
		Name:           loc.Name,
		Code:           loc.Code,
		Address:        loc.Address,
		City:           loc.City,
		State:          loc.State,
		Country:        loc.Country,
		PostalCode:     loc.PostalCode,
		Timezone:       loc.Timezone,
		Phone:          loc.Phone,
		Email:          loc.Email,
		IsHeadquarters: loc.IsHeadquarters,
	}
	if !loc.CreatedAt.IsZero() {
		resp.CreatedAt = loc.CreatedAt.Format(time.RFC3339)
	}
	if !loc.UpdatedAt.IsZero() {
		resp.UpdatedAt = loc.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(locs []Location) []LocationResponse {
	res := make([]LocationResponse, len(locs))
	for i, l := range locs {
		res[i] = mapToResponse(l)
	}
	return res
}
