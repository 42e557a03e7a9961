package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrm/internal/authz"
	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService lets each test pin down just the methods it exercises.
type fakeService struct {
	employee.Service

	createFn  func(ctx context.Context, actor authz.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn  func(ctx context.Context, actor authz.Actor, f employee.Filters) ([]employee.EmployeeResponse, error)
	getByIDFn func(ctx context.Context, actor authz.Actor, id string) (employee.EmployeeResponse, error)
}

func (f *fakeService) Create(ctx context.Context, actor authz.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeService) GetAll(ctx context.Context, actor authz.Actor, fl employee.Filters) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, actor, fl)
}

func (f *fakeService) GetByID(ctx context.Context, actor authz.Actor, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}

func withActor(actor authz.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	}
}

func setupRouter(svc employee.Service, actor *authz.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := employee.NewHandler(svc)

	grp := r.Group("/employees")
	if actor != nil {
		grp.Use(withActor(*actor))
	}
	grp.POST("", h.Create)
	grp.GET("", h.GetAll)
	grp.GET("/:id", h.GetById)

	return r
}

func testActor() authz.Actor {
	return authz.Actor{
		UserID:    "u1",
		CompanyID: "c1",
		Roles:     []string{authz.RoleHRManager},
	}
}

func TestHandlerCreate(t *testing.T) {
	actor := testActor()
	svc := &fakeService{
		createFn: func(ctx context.Context, got authz.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, actor.UserID, got.UserID)
			assert.Equal(t, "Budi", req.FirstName)
			return employee.EmployeeResponse{
				ID:             "e1",
				EmployeeNumber: "EMP-000007",
				FirstName:      req.FirstName,
				LastName:       req.LastName,
				Status:         employee.StatusActive,
			}, nil
		},
	}
	router := setupRouter(svc, &actor)

	body, _ := json.Marshal(gin.H{
		"first_name": "Budi",
		"last_name":  "Santoso",
		"email":      "budi@example.com",
		"hire_date":  "2024-02-01",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool                      `json:"ok"`
		Data employee.EmployeeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "EMP-000007", envelope.Data.EmployeeNumber)
}

func TestHandlerCreate_ValidationError(t *testing.T) {
	actor := testActor()
	svc := &fakeService{
		createFn: func(ctx context.Context, actor authz.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			t.Fatal("service must not be called on invalid input")
			return employee.EmployeeResponse{}, nil
		},
	}
	router := setupRouter(svc, &actor)

	// hire_date is required by the binding.
	body, _ := json.Marshal(gin.H{
		"first_name": "Budi",
		"last_name":  "Santoso",
		"email":      "budi@example.com",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerGetAll_PassesQueryFilters(t *testing.T) {
	actor := testActor()
	var captured employee.Filters
	svc := &fakeService{
		getAllFn: func(ctx context.Context, actor authz.Actor, f employee.Filters) ([]employee.EmployeeResponse, error) {
			captured = f
			return []employee.EmployeeResponse{}, nil
		},
	}
	router := setupRouter(svc, &actor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees?status=active&department_id=d1&search=budi", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", captured.Status)
	assert.Equal(t, "d1", captured.DepartmentID)
	assert.Equal(t, "budi", captured.Search)
}

func TestHandlerGetById_NotFound(t *testing.T) {
	actor := testActor()
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, actor authz.Actor, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	router := setupRouter(svc, &actor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/e404", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Ok)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestHandler_MissingActorIsUnauthorized(t *testing.T) {
	svc := &fakeService{
		getAllFn: func(ctx context.Context, actor authz.Actor, f employee.Filters) ([]employee.EmployeeResponse, error) {
			t.Fatal("service must not be called without an actor")
			return nil, nil
		},
	}
	router := setupRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
