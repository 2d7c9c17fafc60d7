package gateway

import (
	"context"

	"newscout/domain"
	"newscout/driver"
)

// CategoryDriver reads the parent→child association edges from the
// relational store.
type CategoryDriver interface {
	ChildCategories(ctx context.Context, parentIDs []int64) ([]driver.CategoryEdgeRecord, error)
}

type CategoryRepositoryGateway struct {
	driver CategoryDriver
}

func NewCategoryRepositoryGateway(driver CategoryDriver) *CategoryRepositoryGateway {
	return &CategoryRepositoryGateway{
		driver: driver,
	}
}

func (g *CategoryRepositoryGateway) ChildCategories(ctx context.Context, parentIDs []int64) (map[int64][]int64, error) {
	if len(parentIDs) == 0 {
		return map[int64][]int64{}, nil
	}

	edges, err := g.driver.ChildCategories(ctx, parentIDs)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "ChildCategories",
			Err: err.Error(),
		}
	}

	associations := make([]domain.CategoryAssociation, len(edges))
	for i, e := range edges {
		associations[i] = domain.CategoryAssociation{
			ParentID: e.ParentID,
			ChildID:  e.ChildID,
		}
	}
	return domain.AdjacencyFromAssociations(associations), nil
}
