package department

import (
	"context"
	"strings"

	departmenterrors "go-hrm/internal/department/errors"
)

// hierarchy walks the adjacency list stored on departments. All traversals
// are bounded so a corrupted parent chain surfaces as ErrCycleDetected
// instead of an infinite loop.
type hierarchy struct {
	repo Repository
}

// Ancestors returns the chain from the department's direct parent up to the
// root, nearest first. The walk is capped at the company's department count;
// exceeding it means the parent chain loops.
func (h hierarchy) Ancestors(ctx context.Context, companyID string, dept *Department) ([]Department, error) {
	bound, err := h.repo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var chain []Department
	current := dept
	for current.ParentID != nil {
		if int64(len(chain)) >= bound {
			return nil, departmenterrors.ErrCycleDetected
		}

		parent, err := h.repo.FindByIDAndCompany(ctx, companyID, current.ParentID.String())
		if err != nil {
			return nil, err
		}

		chain = append(chain, *parent)
		current = parent
	}

	return chain, nil
}

// Descendants returns every department below the given one, depth first,
// siblings in name order. The starting department itself is excluded.
func (h hierarchy) Descendants(ctx context.Context, companyID, id string) ([]Department, error) {
	visited := map[string]bool{id: true}

	roots, err := h.repo.FindChildren(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	var result []Department
	stack := pushReversed(nil, roots)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		currentID := current.ID.String()
		if visited[currentID] {
			return nil, departmenterrors.ErrCycleDetected
		}
		visited[currentID] = true
		result = append(result, current)

		children, err := h.repo.FindChildren(ctx, companyID, currentID)
		if err != nil {
			return nil, err
		}
		stack = pushReversed(stack, children)
	}

	return result, nil
}

// pushReversed pushes siblings in reverse so the stack pops them in name
// order, keeping the depth-first output deterministic.
func pushReversed(stack, children []Department) []Department {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	return stack
}

// Depth is the number of ancestors above the department; roots sit at 0.
func (h hierarchy) Depth(ctx context.Context, companyID string, dept *Department) (int, error) {
	ancestors, err := h.Ancestors(ctx, companyID, dept)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

// Path renders the full chain from root down to the department itself,
// segments joined with " > ".
func (h hierarchy) Path(ctx context.Context, companyID string, dept *Department) (string, error) {
	ancestors, err := h.Ancestors(ctx, companyID, dept)
	if err != nil {
		return "", err
	}

	segments := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		segments = append(segments, ancestors[i].Name)
	}
	segments = append(segments, dept.Name)

	return strings.Join(segments, " > "), nil
}
