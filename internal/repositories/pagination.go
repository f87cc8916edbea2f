package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageQuery is the normalized pagination/filter/sort input shared by all
// listable resources.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
	SortBy string
}

// Normalize applies the defaults: page 1, limit 20, limit capped at 100.
func (q *PageQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// PageInfo is the pagination envelope returned next to every page slice.
type PageInfo struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
}

// BuildPageInfo computes the page arithmetic: last_page = ceil(total/limit),
// next_page nil past the last page, prev_page nil at or below zero.
func BuildPageInfo(total int64, page, limit int) PageInfo {
	lastPage := int((total + int64(limit) - 1) / int64(limit))

	info := PageInfo{
		Total:       total,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     limit,
	}

	if next := page + 1; next <= lastPage {
		info.NextPage = &next
	}
	if prev := page - 1; prev > 0 {
		info.PrevPage = &prev
	}
	return info
}

// ListDescriptor parameterizes the shared pagination query for one resource:
// which text columns a search matches and which sort fields are accepted.
// The three resource repositories differ only by their descriptor.
type ListDescriptor struct {
	// SearchFields are text columns combined with OR for substring search.
	SearchFields []string
	// SortFields maps the API sort name to the column it orders by.
	// A sortBy field missing from the map is ignored.
	SortFields map[string]string
	// Select, when set, replaces the column list of the page slice query.
	// Used to annotate rows with derived counts; it is not applied to the
	// count query.
	Select string
}

// Scope translates q into gorm conditions on top of db.
func (d ListDescriptor) Scope(q PageQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Search != "" && len(d.SearchFields) > 0 {
			pattern := "%" + q.Search + "%"
			conds := make([]string, len(d.SearchFields))
			args := make([]interface{}, len(d.SearchFields))
			for i, field := range d.SearchFields {
				conds[i] = fmt.Sprintf("%s ILIKE ?", field)
				args[i] = pattern
			}
			db = db.Where(strings.Join(conds, " OR "), args...)
		}

		if column, order, ok := d.ParseSortBy(q.SortBy); ok {
			db = db.Order(fmt.Sprintf("%s %s", column, order))
		}
		return db
	}
}

// ParseSortBy accepts "field" or "field,order". Unknown fields fall back to
// the store-default order; anything other than asc/desc becomes asc.
func (d ListDescriptor) ParseSortBy(sortBy string) (column, order string, ok bool) {
	if sortBy == "" {
		return "", "", false
	}

	field := sortBy
	order = "asc"
	if i := strings.Index(sortBy, ","); i >= 0 {
		field = sortBy[:i]
		if o := sortBy[i+1:]; o == "desc" {
			order = "desc"
		}
	}

	column, ok = d.SortFields[field]
	return column, order, ok
}

// Paginate runs the count and the page slice inside one transaction so both
// see a consistent snapshot. Extra scopes compose additional relational
// constraints (e.g. "notes in category X") with the ownership-scoped query.
func Paginate[T any](db *gorm.DB, q PageQuery, d ListDescriptor, scopes ...func(*gorm.DB) *gorm.DB) (PageInfo, []T, error) {
	q.Normalize()

	var (
		rows  []T
		total int64
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var model T
		base := tx.Model(&model).Scopes(scopes...)

		if err := base.Session(&gorm.Session{}).Scopes(d.Scope(q)).Count(&total).Error; err != nil {
			return err
		}

		slice := base.Session(&gorm.Session{}).Scopes(d.Scope(q))
		if d.Select != "" {
			slice = slice.Select(d.Select)
		}
		return slice.
			Offset(q.Limit * (q.Page - 1)).
			Limit(q.Limit).
			Find(&rows).Error
	})
	if err != nil {
		return PageInfo{}, nil, err
	}

	return BuildPageInfo(total, q.Page, q.Limit), rows, nil
}
