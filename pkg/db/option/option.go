package option

import (
	"fmt"
	"strings"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueryOption mutates a statement before it executes.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

type Operator string

const (
	EQ  Operator = "="
	NEQ Operator = "<>"
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
	IN  Operator = "IN"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a single column comparison. Field names are quoted by gorm.
func ApplyOperator(cond Condition) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(cond.Field)
		if field == "" {
			return db
		}
		col := clause.Column{Name: field}
		switch cond.Operator {
		case EQ, "":
			return db.Where(clause.Eq{Column: col, Value: cond.Value})
		case NEQ:
			return db.Where(clause.Neq{Column: col, Value: cond.Value})
		case GT:
			return db.Where(clause.Gt{Column: col, Value: cond.Value})
		case GTE:
			return db.Where(clause.Gte{Column: col, Value: cond.Value})
		case LT:
			return db.Where(clause.Lt{Column: col, Value: cond.Value})
		case LTE:
			return db.Where(clause.Lte{Column: col, Value: cond.Value})
		case IN:
			return db.Where(clause.IN{Column: col, Values: toValues(cond.Value)})
		default:
			_ = db.AddError(fmt.Errorf("unsupported operator %q", cond.Operator))
			return db
		}
	})
}

func toValues(v any) []any {
	switch values := v.(type) {
	case []any:
		return values
	case []string:
		out := make([]any, 0, len(values))
		for _, value := range values {
			out = append(out, value)
		}
		return out
	default:
		return []any{v}
	}
}

type QuerySortBy struct {
	SortBy  string
	OrderBy string
	Allow   map[string]bool
}

func WithQuerySortBy(sortBy, orderBy string, allow map[string]bool) QuerySortBy {
	return QuerySortBy{SortBy: sortBy, OrderBy: orderBy, Allow: allow}
}

// WithSortBy orders by an allow-listed column, defaulting to created_at desc.
func WithSortBy(sort QuerySortBy) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		column := strings.ToLower(strings.TrimSpace(sort.SortBy))
		if column == "" || !sort.Allow[column] {
			column = "created_at"
			if len(sort.Allow) > 0 && !sort.Allow[column] {
				return db
			}
		}
		desc := !strings.EqualFold(strings.TrimSpace(sort.OrderBy), "asc")
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	})
}

func WithLimit(limit int) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination seeks past the page token and fetches one extra row so callers
// can tell whether another page exists. Rows must be ordered by id ascending.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.Size()
		if token := strings.TrimSpace(page.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err != nil {
				_ = db.AddError(fmt.Errorf("%w: %v", pagination.ErrInvalidPageToken, err))
				return db
			}
			if cursor.ID != "" {
				db = db.Where("id > ?", cursor.ID)
			}
		}
		return db.Limit(size + 1)
	})
}
