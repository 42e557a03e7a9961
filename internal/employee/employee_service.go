package employee

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go-hrm/internal/authz"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	optionsCacheTTL = 5 * time.Minute
)

func optionsCacheKey(companyID string) string {
	return "employees:options:" + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor authz.Actor, f Filters) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, actor authz.Actor) ([]EmployeeOption, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (EmployeeResponse, error)
	GetByNumber(ctx context.Context, actor authz.Actor, number string) (EmployeeResponse, error)
	GetSelf(ctx context.Context, actor authz.Actor) (EmployeeResponse, error)
	Update(ctx context.Context, actor authz.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, actor authz.Actor, id string, req UpdateStatusRequest) (EmployeeResponse, error)
	Terminate(ctx context.Context, actor authz.Actor, id string, req TerminateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
	Restore(ctx context.Context, actor authz.Actor, id string) (EmployeeResponse, error)
	GetDeleted(ctx context.Context, actor authz.Actor) ([]EmployeeResponse, error)
	GetByDepartment(ctx context.Context, actor authz.Actor, departmentID string) ([]EmployeeResponse, error)
	GetDirectReports(ctx context.Context, actor authz.Actor, managerID string) ([]EmployeeResponse, error)
	GetManagers(ctx context.Context, actor authz.Actor, id string) ([]ManagerResponse, error)
	GetStatistics(ctx context.Context, actor authz.Actor) (Statistics, error)

	ListContacts(ctx context.Context, actor authz.Actor, employeeID string) ([]EmergencyContactResponse, error)
	AddContact(ctx context.Context, actor authz.Actor, employeeID string, req EmergencyContactRequest) (EmergencyContactResponse, error)
	UpdateContact(ctx context.Context, actor authz.Actor, employeeID, contactID string, req EmergencyContactRequest) (EmergencyContactResponse, error)
	DeleteContact(ctx context.Context, actor authz.Actor, employeeID, contactID string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	users   user.Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	authz   authz.Service
	rdb     *redis.Client
	sf      singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	authzService authz.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) Service {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		counter: counterRepo,
		outbox:  outboxRepo,
		authz:   authzService,
		rdb:     rdb,
		logger:  l.Named("employee.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	actor authz.Actor,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Gender:         req.Gender,
		MaritalStatus:  req.MaritalStatus,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
		HireDate:       hireDate,
		Status:         StatusActive,
		EmploymentType: req.EmploymentType,
		Salary:         req.Salary,
		Currency:       req.Currency,
	}
	if empl.EmploymentType == "" {
		empl.EmploymentType = EmploymentFullTime
	}
	if empl.Currency == "" {
		empl.Currency = "USD"
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("date_of_birth")
		}
		empl.DateOfBirth = &dob
	}
	if req.ProbationEndDate != "" {
		ped, err := time.Parse(dateLayout, req.ProbationEndDate)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("probation_end_date")
		}
		empl.ProbationEndDate = &ped
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := s.validateReferences(ctx, qtx, companyID, req.DepartmentID, req.JobTitleID, req.LocationID, empl); err != nil {
			return err
		}

		if empl.EmployeeNumber == "" {
			nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, "employee_number")
			if err != nil {
				return err
			}
			empl.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
		}

		account, err := s.provisionAccount(ctx, tx, companyID, empl)
		if err != nil {
			return err
		}
		empl.UserID = &account.ID

		if err := qtx.Create(ctx, empl); err != nil {
			return err
		}

		managers, err := s.buildManagers(ctx, qtx, companyID, empl.ID, req.Managers)
		if err != nil {
			return err
		}
		if len(managers) > 0 {
			if err := qtx.ReplaceManagers(ctx, companyID, empl.ID.String(), managers); err != nil {
				return err
			}
		}

		return s.enqueueEvent(ctx, tx, rid, events.EmployeeCreated, empl)
	})
	if err != nil {
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return s.respond(actor, *empl), nil
}

// provisionAccount creates the login account that backs a new employee. The
// password is random; the employee goes through the reset flow to pick one.
func (s *service) provisionAccount(ctx context.Context, tx *gorm.DB, companyID string, empl *Employee) (*user.User, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(base64.StdEncoding.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cid := uuid.MustParse(companyID)
	account := &user.User{
		ID:           uuid.New(),
		CompanyID:    &cid,
		Name:         empl.FullName(),
		Email:        empl.Email,
		PasswordHash: string(hash),
		Phone:        empl.Phone,
		IsActive:     true,
		Roles:        []string{authz.RoleEmployee},
	}

	if err := s.users.WithTx(tx).Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *service) validateReferences(
	ctx context.Context,
	qtx Repository,
	companyID string,
	departmentID, jobTitleID, locationID *string,
	empl *Employee,
) error {
	if departmentID != nil {
		ok, err := qtx.DepartmentExists(ctx, companyID, *departmentID)
		if err != nil {
			return err
		}
		if !ok {
			return employeeerrors.ErrInvalidDepartment
		}
		id := uuid.MustParse(*departmentID)
		empl.DepartmentID = &id
	}
	if jobTitleID != nil {
		ok, err := qtx.JobTitleExists(ctx, companyID, *jobTitleID)
		if err != nil {
			return err
		}
		if !ok {
			return employeeerrors.ErrInvalidJobTitle
		}
		id := uuid.MustParse(*jobTitleID)
		empl.JobTitleID = &id
	}
	if locationID != nil {
		ok, err := qtx.LocationExists(ctx, companyID, *locationID)
		if err != nil {
			return err
		}
		if !ok {
			return employeeerrors.ErrInvalidLocation
		}
		id := uuid.MustParse(*locationID)
		empl.LocationID = &id
	}
	return nil
}

// buildManagers validates a requested set of reporting lines and turns it
// into rows. At most one assignment may be primary, a manager must be an
// active employee of the company, and self-management is rejected.
func (s *service) buildManagers(
	ctx context.Context,
	qtx Repository,
	companyID string,
	employeeID uuid.UUID,
	reqs []ManagerAssignmentRequest,
) ([]EmployeeManager, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	primaries := 0
	now := time.Now().UTC()
	rows := make([]EmployeeManager, 0, len(reqs))

	for _, req := range reqs {
		if req.ManagerID == employeeID.String() {
			return nil, employeeerrors.ErrSelfManager
		}
		if req.IsPrimary {
			primaries++
			if primaries > 1 {
				return nil, employeeerrors.ErrMultiplePrimaryManagers
			}
		}

		ok, err := qtx.ManagerExists(ctx, companyID, req.ManagerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, employeeerrors.ErrInvalidManager
		}

		rows = append(rows, EmployeeManager{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: employeeID,
			ManagerID:  uuid.MustParse(req.ManagerID),
			IsPrimary:  req.IsPrimary,
			StartedAt:  now,
		})
	}

	return rows, nil
}

func (s *service) GetAll(
	ctx context.Context,
	actor authz.Actor,
	f Filters,
) ([]EmployeeResponse, error) {
	companyID := actor.CompanyID

	// Graduated read scope: company-wide, own department, or self.
	if ok, err := s.authz.Can(actor, authz.ResourceEmployees, authz.ActionViewAll); err != nil {
		return nil, err
	} else if !ok {
		if ok, err := s.authz.Can(actor, authz.ResourceEmployees, authz.ActionViewDepartment); err != nil {
			return nil, err
		} else if ok && actor.DepartmentID != "" {
			f.DepartmentID = actor.DepartmentID
		} else {
			return s.selfOnly(ctx, actor)
		}
	}

	empls, err := s.repo.FindAllByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}

	return s.respondList(actor, empls), nil
}

func (s *service) selfOnly(ctx context.Context, actor authz.Actor) ([]EmployeeResponse, error) {
	if actor.EmployeeID == "" {
		return []EmployeeResponse{}, nil
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		if isNotFound(err) {
			return []EmployeeResponse{}, nil
		}
		return nil, err
	}

	return []EmployeeResponse{s.respond(actor, *empl)}, nil
}

func (s *service) GetOptions(ctx context.Context, actor authz.Actor) ([]EmployeeOption, error) {
	companyID := actor.CompanyID

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, optionsCacheKey(companyID)).Bytes(); err == nil {
			var options []EmployeeOption
			if json.Unmarshal(data, &options) == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey(companyID), func() (any, error) {
		empls, err := s.repo.FindAllByCompany(ctx, companyID, Filters{})
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			options[i] = EmployeeOption{
				ID:             e.ID.String(),
				FullName:       e.FullName(),
				EmployeeNumber: e.EmployeeNumber,
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey(companyID), data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("options cache write failed", zap.Error(err))
				}
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.checkView(actor, empl); err != nil {
		return EmployeeResponse{}, err
	}

	return s.respond(actor, *empl), nil
}

func (s *service) GetByNumber(
	ctx context.Context,
	actor authz.Actor,
	number string,
) (EmployeeResponse, error) {
	empl, err := s.repo.FindByNumberAndCompany(ctx, actor.CompanyID, number)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.checkView(actor, empl); err != nil {
		return EmployeeResponse{}, err
	}

	return s.respond(actor, *empl), nil
}

// GetSelf resolves the employee record bound to the caller's own account.
// The lookup is by user id, not employee id, so it works even before the
// caller has learned their employee number.
func (s *service) GetSelf(ctx context.Context, actor authz.Actor) (EmployeeResponse, error) {
	empl, err := s.repo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if empl.CompanyID.String() != actor.CompanyID {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	return s.respond(actor, *empl), nil
}

// checkView hides records the actor may not read behind NotFound, so probing
// cannot distinguish "missing" from "not yours to see".
func (s *service) checkView(actor authz.Actor, empl *Employee) error {
	ok, err := s.authz.CanViewEmployee(actor, ref(empl))
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

// viewable drops records the actor may not read, so list endpoints obey the
// same graduated scope as GetByID.
func (s *service) viewable(actor authz.Actor, empls []Employee) []Employee {
	out := make([]Employee, 0, len(empls))
	for i := range empls {
		ok, err := s.authz.CanViewEmployee(actor, ref(&empls[i]))
		if err != nil || !ok {
			continue
		}
		out = append(out, empls[i])
	}
	return out
}

func (s *service) Update(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	var updated Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if req.Salary != nil || req.Currency != nil {
			ok, err := s.authz.Can(actor, authz.ResourceEmployees, authz.ActionUpdateSalary)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.ErrForbidden
			}
		}

		if err := s.applyUpdate(ctx, qtx, companyID, empl, req); err != nil {
			return err
		}

		if err := qtx.Update(ctx, empl); err != nil {
			return err
		}

		if err := s.syncAccount(ctx, tx, empl, req); err != nil {
			return err
		}

		if req.Managers != nil {
			managers, err := s.buildManagers(ctx, qtx, companyID, empl.ID, *req.Managers)
			if err != nil {
				return err
			}
			if err := qtx.ReplaceManagers(ctx, companyID, empl.ID.String(), managers); err != nil {
				return err
			}
		}

		if err := s.enqueueEvent(ctx, tx, rid, events.EmployeeUpdated, empl); err != nil {
			return err
		}

		updated = *empl
		return nil
	})
	if err != nil {
		s.logger.Error("update employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	return s.respond(actor, updated), nil
}

func (s *service) applyUpdate(
	ctx context.Context,
	qtx Repository,
	companyID string,
	empl *Employee,
	req UpdateEmployeeRequest,
) error {
	if err := s.validateReferences(ctx, qtx, companyID, req.DepartmentID, req.JobTitleID, req.LocationID, empl); err != nil {
		return err
	}

	if req.FirstName != nil {
		empl.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		empl.LastName = *req.LastName
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Gender != nil {
		empl.Gender = *req.Gender
	}
	if req.MaritalStatus != nil {
		empl.MaritalStatus = *req.MaritalStatus
	}
	if req.Address != nil {
		empl.Address = *req.Address
	}
	if req.City != nil {
		empl.City = *req.City
	}
	if req.Country != nil {
		empl.Country = *req.Country
	}
	if req.EmploymentType != nil {
		empl.EmploymentType = *req.EmploymentType
	}
	if req.Salary != nil {
		empl.Salary = req.Salary
	}
	if req.Currency != nil {
		empl.Currency = *req.Currency
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			empl.DateOfBirth = nil
		} else {
			dob, err := time.Parse(dateLayout, *req.DateOfBirth)
			if err != nil {
				return apperror.InvalidField("date_of_birth")
			}
			empl.DateOfBirth = &dob
		}
	}
	if req.ProbationEndDate != nil {
		if *req.ProbationEndDate == "" {
			empl.ProbationEndDate = nil
		} else {
			ped, err := time.Parse(dateLayout, *req.ProbationEndDate)
			if err != nil {
				return apperror.InvalidField("probation_end_date")
			}
			empl.ProbationEndDate = &ped
		}
	}

	return nil
}

// syncAccount keeps the linked login account's name and email in step with
// the employee record.
func (s *service) syncAccount(ctx context.Context, tx *gorm.DB, empl *Employee, req UpdateEmployeeRequest) error {
	if empl.UserID == nil {
		return nil
	}
	if req.FirstName == nil && req.LastName == nil && req.Email == nil && req.Phone == nil {
		return nil
	}

	users := s.users.WithTx(tx)
	account, err := users.FindByID(ctx, empl.UserID.String())
	if err != nil {
		return err
	}

	account.Name = empl.FullName()
	account.Email = empl.Email
	account.Phone = empl.Phone

	return users.Update(ctx, account)
}

func (s *service) UpdateStatus(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req UpdateStatusRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	var updated Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		// Termination carries dates and side effects; it has its own path.
		if empl.Status == StatusTerminated {
			return employeeerrors.ErrAlreadyTerminated
		}

		empl.Status = req.Status
		if err := qtx.Update(ctx, empl); err != nil {
			return err
		}

		if err := s.enqueueEvent(ctx, tx, rid, events.EmployeeStatusChanged, empl); err != nil {
			return err
		}

		updated = *empl
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return s.respond(actor, updated), nil
}

func (s *service) Terminate(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req TerminateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	termDate, err := time.Parse(dateLayout, req.TerminationDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("termination_date")
	}

	var updated Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if empl.Status == StatusTerminated {
			return employeeerrors.ErrAlreadyTerminated
		}

		empl.Status = StatusTerminated
		empl.TerminationDate = &termDate
		empl.TerminationReason = req.Reason

		if err := qtx.Update(ctx, empl); err != nil {
			return err
		}

		if empl.UserID != nil {
			if err := s.users.WithTx(tx).SetActive(ctx, empl.UserID.String(), false); err != nil {
				return err
			}
		}

		if err := s.enqueueEvent(ctx, tx, rid, events.EmployeeTerminated, empl); err != nil {
			return err
		}

		updated = *empl
		return nil
	})
	if err != nil {
		s.logger.Error("terminate employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	return s.respond(actor, updated), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id string) error {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}

		if err := qtx.SoftDelete(ctx, companyID, id); err != nil {
			return err
		}

		if empl.UserID != nil {
			if err := s.users.WithTx(tx).SetActive(ctx, empl.UserID.String(), false); err != nil {
				return err
			}
		}

		return s.enqueueEvent(ctx, tx, rid, events.EmployeeDeleted, empl)
	})
	if err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	return nil
}

// Restore brings an archived employee back. The status field is left exactly
// as it was at archive time; archival and employment status are independent.
func (s *service) Restore(ctx context.Context, actor authz.Actor, id string) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID

	var restored Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDIncludingDeleted(ctx, companyID, id)
		if err != nil {
			return err
		}

		if !empl.DeletedAt.Valid {
			return employeeerrors.ErrNotArchived
		}

		if err := qtx.Restore(ctx, companyID, id); err != nil {
			return err
		}

		if empl.UserID != nil {
			if err := s.users.WithTx(tx).SetActive(ctx, empl.UserID.String(), true); err != nil {
				return err
			}
		}

		if err := s.enqueueEvent(ctx, tx, rid, events.EmployeeRestored, empl); err != nil {
			return err
		}

		empl.DeletedAt = gorm.DeletedAt{}
		restored = *empl
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	return s.respond(actor, restored), nil
}

func (s *service) GetDeleted(ctx context.Context, actor authz.Actor) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindDeleted(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.respondList(actor, empls), nil
}

func (s *service) GetByDepartment(
	ctx context.Context,
	actor authz.Actor,
	departmentID string,
) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByDepartment(ctx, actor.CompanyID, departmentID)
	if err != nil {
		return nil, err
	}
	return s.respondList(actor, s.viewable(actor, empls)), nil
}

func (s *service) GetDirectReports(
	ctx context.Context,
	actor authz.Actor,
	managerID string,
) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindDirectReports(ctx, actor.CompanyID, managerID)
	if err != nil {
		return nil, err
	}
	return s.respondList(actor, s.viewable(actor, empls)), nil
}

func (s *service) GetManagers(
	ctx context.Context,
	actor authz.Actor,
	id string,
) ([]ManagerResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.checkView(actor, empl); err != nil {
		return nil, err
	}

	managers, err := s.repo.FindManagers(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}

	res := make([]ManagerResponse, len(managers))
	for i, m := range managers {
		res[i] = ManagerResponse{
			ManagerID: m.ManagerID.String(),
			IsPrimary: m.IsPrimary,
			StartedAt: m.StartedAt.Format(dateLayout),
		}
	}
	return res, nil
}

func (s *service) GetStatistics(ctx context.Context, actor authz.Actor) (Statistics, error) {
	return s.repo.Statistics(ctx, actor.CompanyID)
}

func (s *service) ListContacts(
	ctx context.Context,
	actor authz.Actor,
	employeeID string,
) ([]EmergencyContactResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.checkView(actor, empl); err != nil {
		return nil, err
	}

	contacts, err := s.repo.FindContacts(ctx, actor.CompanyID, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]EmergencyContactResponse, len(contacts))
	for i, c := range contacts {
		res[i] = mapContact(c)
	}
	return res, nil
}

func (s *service) AddContact(
	ctx context.Context,
	actor authz.Actor,
	employeeID string,
	req EmergencyContactRequest,
) (EmergencyContactResponse, error) {
	companyID := actor.CompanyID

	// The id comes straight off the URL; a malformed one reads as a missing
	// employee, same as a lookup miss.
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return EmergencyContactResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	contact := &EmergencyContact{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeID:   eid,
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Email:        req.Email,
		IsPrimary:    req.IsPrimary,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByIDAndCompany(ctx, companyID, employeeID); err != nil {
			return err
		}

		// A new primary demotes any existing one inside the same tx.
		if contact.IsPrimary {
			if err := qtx.UnsetPrimaryContacts(ctx, companyID, employeeID, ""); err != nil {
				return err
			}
		}

		return qtx.CreateContact(ctx, contact)
	})
	if err != nil {
		return EmergencyContactResponse{}, mapRepositoryError(err)
	}

	return mapContact(*contact), nil
}

func (s *service) UpdateContact(
	ctx context.Context,
	actor authz.Actor,
	employeeID, contactID string,
	req EmergencyContactRequest,
) (EmergencyContactResponse, error) {
	companyID := actor.CompanyID

	var updated EmergencyContact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		contact, err := qtx.FindContactByID(ctx, companyID, employeeID, contactID)
		if err != nil {
			if isNotFound(err) {
				return employeeerrors.ErrContactNotFound
			}
			return err
		}

		contact.Name = req.Name
		contact.Relationship = req.Relationship
		contact.Phone = req.Phone
		contact.Email = req.Email

		if req.IsPrimary && !contact.IsPrimary {
			if err := qtx.UnsetPrimaryContacts(ctx, companyID, employeeID, contactID); err != nil {
				return err
			}
		}
		contact.IsPrimary = req.IsPrimary

		if err := qtx.UpdateContact(ctx, contact); err != nil {
			return err
		}

		updated = *contact
		return nil
	})
	if err != nil {
		return EmergencyContactResponse{}, mapRepositoryError(err)
	}

	return mapContact(updated), nil
}

func (s *service) DeleteContact(
	ctx context.Context,
	actor authz.Actor,
	employeeID, contactID string,
) error {
	if _, err := s.repo.FindContactByID(ctx, actor.CompanyID, employeeID, contactID); err != nil {
		if isNotFound(err) {
			return employeeerrors.ErrContactNotFound
		}
		return err
	}

	return s.repo.DeleteContact(ctx, actor.CompanyID, employeeID, contactID)
}

func (s *service) enqueueEvent(ctx context.Context, tx *gorm.DB, rid, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:      eventType,
		EmployeeID:     empl.ID.String(),
		CompanyID:      empl.CompanyID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		Status:         empl.Status,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func ref(empl *Employee) authz.EmployeeRef {
	r := authz.EmployeeRef{
		ID:        empl.ID.String(),
		CompanyID: empl.CompanyID.String(),
	}
	if empl.DepartmentID != nil {
		r.DepartmentID = empl.DepartmentID.String()
	}
	return r
}

// respond maps an entity to its response shape, stripping salary fields the
// actor is not entitled to see.
func (s *service) respond(actor authz.Actor, empl Employee) EmployeeResponse {
	visible, err := s.authz.CanViewSalary(actor, ref(&empl))
	if err != nil {
		visible = false
	}
	return mapToResponse(empl, visible)
}

func (s *service) respondList(actor authz.Actor, empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = s.respond(actor, e)
	}
	return res
}

func mapToResponse(empl Employee, salaryVisible bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                empl.ID.String(),
		CompanyID:         empl.CompanyID.String(),
		EmployeeNumber:    empl.EmployeeNumber,
		FirstName:         empl.FirstName,
		LastName:          empl.LastName,
		FullName:          empl.FullName(),
		Email:             empl.Email,
		Phone:             empl.Phone,
		Gender:            empl.Gender,
		MaritalStatus:     empl.MaritalStatus,
		Address:           empl.Address,
		City:              empl.City,
		Country:           empl.Country,
		HireDate:          empl.HireDate.Format(dateLayout),
		TerminationReason: empl.TerminationReason,
		Status:            empl.Status,
		EmploymentType:    empl.EmploymentType,
	}
	if empl.UserID != nil {
		v := empl.UserID.String()
		resp.UserID = &v
	}
	if empl.DepartmentID != nil {
		v := empl.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if empl.JobTitleID != nil {
		v := empl.JobTitleID.String()
		resp.JobTitleID = &v
	}
	if empl.LocationID != nil {
		v := empl.LocationID.String()
		resp.LocationID = &v
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format(dateLayout)
	}
	if empl.ProbationEndDate != nil {
		resp.ProbationEndDate = empl.ProbationEndDate.Format(dateLayout)
	}
	if empl.TerminationDate != nil {
		resp.TerminationDate = empl.TerminationDate.Format(dateLayout)
	}
	if salaryVisible {
		resp.Salary = empl.Salary
		resp.Currency = empl.Currency
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.Format(time.RFC3339)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.Format(time.RFC3339)
	}
	if empl.DeletedAt.Valid {
		resp.DeletedAt = empl.DeletedAt.Time.Format(time.RFC3339)
	}
	return resp
}

func mapContact(c EmergencyContact) EmergencyContactResponse {
	return EmergencyContactResponse{
		ID:           c.ID.String(),
		EmployeeID:   c.EmployeeID.String(),
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
		Email:        c.Email,
		IsPrimary:    c.IsPrimary,
	}
}
