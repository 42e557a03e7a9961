package jobtitle

import (
	"context"
	"encoding/json"
	"time"

	jobtitleerrors "go-hrm/internal/jobtitle/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const listCacheTTL = 5 * time.Minute

//go:generate mockgen -source=jobtitle_service.go -destination=mock/jobtitle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateJobTitleRequest) (JobTitleResponse, error)
	GetAll(ctx context.Context, companyID string, f Filters) ([]JobTitleResponse, error)
	GetByID(ctx context.Context, companyID, id string) (JobTitleResponse, error)
	GetByCode(ctx context.Context, companyID, code string) (JobTitleResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateJobTitleRequest) (JobTitleResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ToggleActive(ctx context.Context, companyID, id string) (JobTitleResponse, error)
	GetLevels(ctx context.Context, companyID string) ([]int, error)
	GetStatistics(ctx context.Context, companyID, id string) (Statistics, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	cache  *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, cache *redis.Client, logger *zap.Logger) Service {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &service{db: db, repo: repo, cache: cache, logger: l.Named("jobtitle.service")}
}

// validateBand rejects a band whose floor exceeds its ceiling. It runs on
// every write that touches either bound, regardless of which one changed.
func validateBand(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return jobtitleerrors.ErrInvalidSalaryBand
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateJobTitleRequest,
) (JobTitleResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := validateBand(req.MinSalary, req.MaxSalary); err != nil {
		return JobTitleResponse{}, err
	}

	level := req.Level
	if level == 0 {
		level = 1
	}

	jt := &JobTitle{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Level:       level,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, jt); err != nil {
		s.logger.Error("create job title failed", zap.String("request_id", rid), zap.Error(err))
		return JobTitleResponse{}, mapRepositoryError(err)
	}

	s.invalidateList(ctx, companyID)
	s.logger.Info("create job title success",
		zap.String("request_id", rid),
		zap.String("job_title_id", jt.ID.String()),
	)

	return mapToResponse(*jt), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	f Filters,
) ([]JobTitleResponse, error) {
	// Only the unfiltered listing is cached.
	if !isDefaultListing(f) || s.cache == nil {
		return s.fetchAll(ctx, companyID, f)
	}

	key := listCacheKey(companyID)
	if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var titles []JobTitleResponse
		if json.Unmarshal(data, &titles) == nil {
			return titles, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		titles, err := s.fetchAll(ctx, companyID, f)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(titles); err == nil {
			if err := s.cache.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
				s.logger.Warn("job title cache write failed", zap.Error(err))
			}
		}
		return titles, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]JobTitleResponse), nil
}

func isDefaultListing(f Filters) bool {
	return f.Level == nil && f.IsActive == nil && f.Search == "" && f.SortBy == "" && f.SortDir == ""
}

func (s *service) fetchAll(ctx context.Context, companyID string, f Filters) ([]JobTitleResponse, error) {
	titles, err := s.repo.FindAllByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(titles), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (JobTitleResponse, error) {
	jt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*jt), nil
}

func (s *service) GetByCode(
	ctx context.Context,
	companyID, code string,
) (JobTitleResponse, error) {
	jt, err := s.repo.FindByCodeAndCompany(ctx, companyID, code)
	if err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*jt), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateJobTitleRequest,
) (JobTitleResponse, error) {
	var updated JobTitle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		jt, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			jt.Name = *req.Name
		}
		if req.Code != nil {
			jt.Code = *req.Code
		}
		if req.Description != nil {
			jt.Description = *req.Description
		}
		if req.Level != nil {
			jt.Level = *req.Level
		}
		if req.MinSalary != nil {
			jt.MinSalary = req.MinSalary
		}
		if req.MaxSalary != nil {
			jt.MaxSalary = req.MaxSalary
		}

		// The band is checked against the merged state so updating only one
		// bound cannot slip past an existing other bound.
		if err := validateBand(jt.MinSalary, jt.MaxSalary); err != nil {
			return err
		}

		if err := qtx.Update(ctx, jt); err != nil {
			return err
		}

		updated = *jt
		return nil
	})
	if err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}

	s.invalidateList(ctx, companyID)
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
			return mapRepositoryError(err)
		}

		employees, err := qtx.CountEmployees(ctx, companyID, id)
		if err != nil {
			return err
		}
		if employees > 0 {
			return jobtitleerrors.ErrHasEmployees
		}

		return qtx.Delete(ctx, companyID, id)
	})
	if err != nil {
		return err
	}

	s.invalidateList(ctx, companyID)
	return nil
}

func (s *service) ToggleActive(
	ctx context.Context,
	companyID, id string,
) (JobTitleResponse, error) {
	jt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}

	jt.IsActive = !jt.IsActive
	if err := s.repo.Update(ctx, jt); err != nil {
		return JobTitleResponse{}, mapRepositoryError(err)
	}

	s.invalidateList(ctx, companyID)
	return mapToResponse(*jt), nil
}

func (s *service) GetLevels(ctx context.Context, companyID string) ([]int, error) {
	return s.repo.Levels(ctx, companyID)
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

func listCacheKey(companyID string) string {
	return "job_titles:list:" + companyID
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("job title cache invalidation failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func mapToResponse(jt JobTitle) JobTitleResponse {
	resp := JobTitleResponse{
		ID:          jt.ID.String(),
		CompanyID:   jt.CompanyID.String(),
		Name:        jt.Name,
		Code:        jt.Code,
		Description: jt.Description,
		Level:       jt.Level,
		MinSalary:   jt.MinSalary,
		MaxSalary:   jt.MaxSalary,
		IsActive:    jt.IsActive,
	}
	if !jt.CreatedAt.IsZero() {
		resp.CreatedAt = jt.CreatedAt.Format(time.RFC3339)
	}
	if !jt.UpdatedAt.IsZero() {
		resp.UpdatedAt = jt.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(titles []JobTitle) []JobTitleResponse {
	res := make([]JobTitleResponse, len(titles))
	for i, t := range titles {
		res[i] = mapToResponse(t)
	}
	return res
}
