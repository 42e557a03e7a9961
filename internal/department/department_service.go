package department

import (
	"context"
	"encoding/json"
	"time"

	departmenterrors "go-hrm/internal/department/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const treeCacheTTL = 5 * time.Minute

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string, f Filters) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentDetailResponse, error)
	GetByCode(ctx context.Context, companyID, code string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Move(ctx context.Context, companyID, id string, req MoveDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ToggleActive(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Tree(ctx context.Context, companyID, locationID string) ([]TreeNode, error)
	GetAncestors(ctx context.Context, companyID, id string) ([]DepartmentResponse, error)
	GetDescendants(ctx context.Context, companyID, id string) ([]DepartmentResponse, error)
	SetManager(ctx context.Context, companyID, id string, req SetManagerRequest) (DepartmentResponse, error)
	GetWithoutManager(ctx context.Context, companyID string) ([]DepartmentResponse, error)
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
	return &service{db: db, repo: repo, cache: cache, logger: l.Named("department.service")}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    true,
	}
	if req.LocationID != nil {
		lid := uuid.MustParse(*req.LocationID)
		dept.LocationID = &lid
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		parentID, err := s.resolveParent(ctx, qtx, companyID, dept.ID.String(), req.ParentID)
		if err != nil {
			return err
		}
		dept.ParentID = parentID

		if req.ManagerID != nil {
			mid, err := s.resolveManager(ctx, qtx, companyID, *req.ManagerID)
			if err != nil {
				return err
			}
			dept.ManagerID = mid
		}

		return qtx.Create(ctx, dept)
	})
	if err != nil {
		s.logger.Error("create department failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, companyID)
	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)

	return mapToResponse(*dept), nil
}

// resolveParent validates a requested parent against the company before a
// write. Order matters: a missing parent is InvalidParent, pointing at
// yourself is SelfParent, pointing into your own subtree is
// CircularReference.
func (s *service) resolveParent(
	ctx context.Context,
	qtx Repository,
	companyID, id string,
	requested *string,
) (*uuid.UUID, error) {
	if requested == nil {
		return nil, nil
	}

	parent, err := qtx.FindByIDAndCompany(ctx, companyID, *requested)
	if err != nil {
		if isNotFound(err) {
			return nil, departmenterrors.ErrInvalidParent
		}
		return nil, err
	}

	if parent.ID.String() == id {
		return nil, departmenterrors.ErrSelfParent
	}

	descendants, err := hierarchy{repo: qtx}.Descendants(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	for _, d := range descendants {
		if d.ID == parent.ID {
			return nil, departmenterrors.ErrCircularReference
		}
	}

	return &parent.ID, nil
}

func (s *service) resolveManager(
	ctx context.Context,
	qtx Repository,
	companyID, employeeID string,
) (*uuid.UUID, error) {
	ok, err := qtx.EmployeeExists(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, departmenterrors.ErrInvalidManager
	}

	mid := uuid.MustParse(employeeID)
	return &mid, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	f Filters,
) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAllByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentDetailResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentDetailResponse{}, mapRepositoryError(err)
	}

	ancestors, err := hierarchy{repo: s.repo}.Ancestors(ctx, companyID, dept)
	if err != nil {
		return DepartmentDetailResponse{}, err
	}

	path := dept.Name
	for _, a := range ancestors {
		path = a.Name + " > " + path
	}

	return DepartmentDetailResponse{
		DepartmentResponse: mapToResponse(*dept),
		Depth:              len(ancestors),
		Path:               path,
	}, nil
}

func (s *service) GetByCode(
	ctx context.Context,
	companyID, code string,
) (DepartmentResponse, error) {
	dept, err := s.repo.FindByCodeAndCompany(ctx, companyID, code)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	var updated Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			dept.Name = *req.Name
		}
		if req.Code != nil {
			dept.Code = *req.Code
		}
		if req.Description != nil {
			dept.Description = *req.Description
		}
		if req.LocationID != nil {
			lid := uuid.MustParse(*req.LocationID)
			dept.LocationID = &lid
		}
		if req.ManagerID != nil {
			mid, err := s.resolveManager(ctx, qtx, companyID, *req.ManagerID)
			if err != nil {
				return err
			}
			dept.ManagerID = mid
		}

		switch {
		case req.ParentID != nil:
			parentID, err := s.resolveParent(ctx, qtx, companyID, id, req.ParentID)
			if err != nil {
				return err
			}
			dept.ParentID = parentID
		case req.ClearParent:
			dept.ParentID = nil
		}

		if err := qtx.Update(ctx, dept); err != nil {
			return err
		}

		updated = *dept
		return nil
	})
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, companyID)
	return mapToResponse(updated), nil
}

func (s *service) Move(
	ctx context.Context,
	companyID, id string,
	req MoveDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	var updated Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		parentID, err := s.resolveParent(ctx, qtx, companyID, id, req.ParentID)
		if err != nil {
			return err
		}
		dept.ParentID = parentID

		if err := qtx.Update(ctx, dept); err != nil {
			return err
		}

		updated = *dept
		return nil
	})
	if err != nil {
		s.logger.Warn("move department rejected",
			zap.String("request_id", rid),
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, companyID)
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
			return departmenterrors.ErrHasEmployees
		}

		children, err := qtx.CountChildren(ctx, companyID, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return departmenterrors.ErrHasChildren
		}

		return qtx.Delete(ctx, companyID, id)
	})
	if err != nil {
		return err
	}

	s.invalidateTree(ctx, companyID)
	return nil
}

// ToggleActive flips the flag on the department alone. Children keep their
// own state.
func (s *service) ToggleActive(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.IsActive = !dept.IsActive
	if err := s.repo.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, companyID)
	return mapToResponse(*dept), nil
}

func (s *service) Tree(ctx context.Context, companyID, locationID string) ([]TreeNode, error) {
	// Only the unfiltered tree is cached; filtered views go straight to the
	// database.
	if locationID != "" || s.cache == nil {
		return s.buildTree(ctx, companyID, locationID)
	}

	key := treeCacheKey(companyID)
	if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var tree []TreeNode
		if json.Unmarshal(data, &tree) == nil {
			return tree, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		tree, err := s.buildTree(ctx, companyID, "")
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, key, data, treeCacheTTL).Err(); err != nil {
				s.logger.Warn("tree cache write failed", zap.Error(err))
			}
		}
		return tree, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TreeNode), nil
}

// buildTree assembles three levels: roots, their children, and grandchildren.
// Deeper departments are reachable through the descendants endpoint.
func (s *service) buildTree(ctx context.Context, companyID, locationID string) ([]TreeNode, error) {
	roots, err := s.repo.FindRoots(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tree := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		if !matchesLocation(root, locationID) {
			continue
		}

		node := newTreeNode(root)

		children, err := s.repo.FindChildren(ctx, companyID, root.ID.String())
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if !matchesLocation(child, locationID) {
				continue
			}

			childNode := newTreeNode(child)

			grandchildren, err := s.repo.FindChildren(ctx, companyID, child.ID.String())
			if err != nil {
				return nil, err
			}
			for _, gc := range grandchildren {
				if !matchesLocation(gc, locationID) {
					continue
				}
				childNode.Children = append(childNode.Children, newTreeNode(gc))
			}

			node.Children = append(node.Children, childNode)
		}

		tree = append(tree, node)
	}

	return tree, nil
}

func matchesLocation(dept Department, locationID string) bool {
	if locationID == "" {
		return true
	}
	return dept.LocationID != nil && dept.LocationID.String() == locationID
}

func newTreeNode(dept Department) TreeNode {
	var managerID *string
	if dept.ManagerID != nil {
		m := dept.ManagerID.String()
		managerID = &m
	}
	return TreeNode{
		ID:        dept.ID.String(),
		Name:      dept.Name,
		Code:      dept.Code,
		ManagerID: managerID,
		IsActive:  dept.IsActive,
		Children:  []TreeNode{},
	}
}

func treeCacheKey(companyID string) string {
	return "departments:tree:" + companyID
}

func (s *service) invalidateTree(ctx context.Context, companyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, treeCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("tree cache invalidation failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func (s *service) GetAncestors(
	ctx context.Context,
	companyID, id string,
) ([]DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ancestors, err := hierarchy{repo: s.repo}.Ancestors(ctx, companyID, dept)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(ancestors), nil
}

func (s *service) GetDescendants(
	ctx context.Context,
	companyID, id string,
) ([]DepartmentResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	descendants, err := hierarchy{repo: s.repo}.Descendants(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(descendants), nil
}

func (s *service) SetManager(
	ctx context.Context,
	companyID, id string,
	req SetManagerRequest,
) (DepartmentResponse, error) {
	var updated Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if req.ManagerID == nil {
			dept.ManagerID = nil
		} else {
			mid, err := s.resolveManager(ctx, qtx, companyID, *req.ManagerID)
			if err != nil {
				return err
			}
			dept.ManagerID = mid
		}

		if err := qtx.Update(ctx, dept); err != nil {
			return err
		}

		updated = *dept
		return nil
	})
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, companyID)
	return mapToResponse(updated), nil
}

func (s *service) GetWithoutManager(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindWithoutManager(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(depts), nil
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

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		CompanyID:   dept.CompanyID.String(),
		Name:        dept.Name,
		Code:        dept.Code,
		Description: dept.Description,
		IsActive:    dept.IsActive,
	}
	if dept.ParentID != nil {
		v := dept.ParentID.String()
		resp.ParentID = &v
	}
	if dept.LocationID != nil {
		v := dept.LocationID.String()
		resp.LocationID = &v
	}
	if dept.ManagerID != nil {
		v := dept.ManagerID.String()
		resp.ManagerID = &v
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
