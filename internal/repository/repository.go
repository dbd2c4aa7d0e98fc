package repository

import (
	"context"
	"strings"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Store is the uniform persistence contract every entity repository
// satisfies: filtered retrieval with a total count, point lookup, and the
// three mutations. Mutations are atomic per statement; the pooled
// connection is scoped to the request context and released when the call
// returns. Store-level failures propagate wrapped and are never retried.
type Store[T any, F any] interface {
	List(ctx context.Context, filter F) ([]T, int, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) error
}

var (
	_ Store[models.Faculty, models.FacultyFilter]         = (*FacultyRepository)(nil)
	_ Store[models.Institute, models.InstituteFilter]     = (*InstituteRepository)(nil)
	_ Store[models.Division, models.DivisionFilter]       = (*DivisionRepository)(nil)
	_ Store[models.Journal, models.JournalFilter]         = (*JournalRepository)(nil)
	_ Store[models.Publication, models.PublicationFilter] = (*PublicationRepository)(nil)
)

func normalizeSort(sortBy string, allowed map[string]bool, order string) (string, string) {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	order = strings.ToUpper(order)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return sortBy, order
}

func normalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size, (page - 1) * size
}
