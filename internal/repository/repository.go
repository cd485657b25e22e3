package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bjo163/orderdesk/internal/domain"
)

// Repository is the GORM-backed CRUD store of one entity type. It holds no
// rows between calls: every mutation re-reads the row by key first.
type Repository[T any] struct {
	db     *gorm.DB
	entity domain.Entity
}

// New creates a repository for entity on db
func New[T any](db *gorm.DB, entity domain.Entity) *Repository[T] {
	return &Repository[T]{db: db, entity: entity}
}

// Entity returns the entity served by r
func (r *Repository[T]) Entity() domain.Entity {
	return r.entity
}

func (r *Repository[T]) op(name string) string {
	return fmt.Sprintf("%s %s", name, r.entity)
}

// Create inserts rec. Related rows set on rec are never written.
func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
	return storeErr(r.op("create"), err)
}

// CreateUnique inserts rec unless another row already holds value in column.
// The check and the insert are two separate statements, so concurrent callers
// can both pass the check.
func (r *Repository[T]) CreateUnique(ctx context.Context, rec *T, column string, value interface{}) error {
	taken, err := r.Taken(ctx, column, value, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrConflict
	}
	return r.Create(ctx, rec)
}

// Taken reports whether a row other than exceptID holds value in column.
func (r *Repository[T]) Taken(ctx context.Context, column string, value interface{}, exceptID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T)).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr(r.op("check"), err)
	}
	return count > 0, nil
}

// FindAll returns every row, unfiltered and unpaginated.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(r.op("list"), err)
	}
	return rows, nil
}

// FindByID returns the row with id, attaching the given relations.
func (r *Repository[T]) FindByID(ctx context.Context, id int64, includes ...domain.Relation) (*T, error) {
	q := r.db.WithContext(ctx)
	for _, rel := range includes {
		q = preload(q, rel)
	}
	var row T
	err := q.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(r.op("get"), err)
	}
	return &row, nil
}

// Get returns the row with id and its whole include tree.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	return r.FindByID(ctx, id, domain.IncludesOf(r.entity)...)
}

// FindOneBy returns the first row whose column equals value.
func (r *Repository[T]) FindOneBy(ctx context.Context, column string, value interface{}) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id ASC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(r.op("find"), err)
	}
	return &row, nil
}

// Update overwrites every column of the row with id by the values of rec,
// except the key and the creation time, and returns the stored row.
func (r *Repository[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Model(existing).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(rec).Error
	if err != nil {
		return nil, storeErr(r.op("update"), err)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the row with id. Rows referring to it are left in place.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
	return storeErr(r.op("delete"), err)
}

// Orphans counts, per dependent entity, the rows whose foreign key still
// names id. Delete leaves them in place.
func (r *Repository[T]) Orphans(ctx context.Context, id int64) (map[domain.Entity]int64, error) {
	out := make(map[domain.Entity]int64)
	for _, rel := range domain.DependentsOf(r.entity) {
		var n int64
		err := r.db.WithContext(ctx).
			Model(domain.ModelOf(rel.Target)).
			Where(clause.Eq{Column: clause.Column{Name: rel.ForeignKey}, Value: id}).
			Count(&n).Error
		if err != nil {
			return nil, storeErr(r.op("count dependents of"), err)
		}
		if n > 0 {
			out[rel.Target] = n
		}
	}
	return out, nil
}

// Count returns the number of rows.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, storeErr(r.op("count"), err)
	}
	return n, nil
}

func preload(q *gorm.DB, rel domain.Relation) *gorm.DB {
	cols := rel.Columns
	return q.Preload(rel.Association, func(db *gorm.DB) *gorm.DB {
		if len(cols) > 0 {
			db = db.Select(cols)
		}
		return db.Order("id ASC")
	})
}
