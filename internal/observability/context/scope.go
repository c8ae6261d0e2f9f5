package context

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// Entity kinds a ledger request can be about.
const (
	EntityClient  = "client"
	EntityInvoice = "invoice"
	EntityQuote   = "quote"
)

// Scope names the ledger figure a request or command is computing. Middleware
// installs an empty scope and handlers fill it once their input is parsed, so
// request logs, spans and metrics can all report on it after the handler ran.
type Scope struct {
	Report   string
	Entity   string
	EntityID string
	Year     int
	Month    int

	queries atomic.Int64
}

type scopeKey struct{}

// WithScope returns ctx carrying a scope, reusing one that is already there.
func WithScope(ctx context.Context) (context.Context, *Scope) {
	if scope := ScopeFromContext(ctx); scope != nil {
		return ctx, scope
	}
	scope := &Scope{}
	return context.WithValue(ctx, scopeKey{}, scope), scope
}

// ScopeFromContext returns the request scope or nil. Setters on a nil scope are no-ops.
func ScopeFromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	scope, _ := ctx.Value(scopeKey{}).(*Scope)
	return scope
}

func (s *Scope) SetReport(report string) {
	if s == nil {
		return
	}
	s.Report = strings.TrimSpace(report)
}

func (s *Scope) SetEntity(kind string, id fmt.Stringer) {
	if s == nil || id == nil {
		return
	}
	s.Entity = kind
	s.EntityID = id.String()
}

// SetPeriod records the reporting period. A nil month covers the whole year.
func (s *Scope) SetPeriod(year int, month *int) {
	if s == nil {
		return
	}
	s.Year = year
	s.Month = 0
	if month != nil {
		s.Month = *month
	}
}

// Period formats the period as 2024 or 2024-03, empty when unset.
func (s *Scope) Period() string {
	if s == nil || s.Year == 0 {
		return ""
	}
	if s.Month == 0 {
		return fmt.Sprintf("%04d", s.Year)
	}
	return fmt.Sprintf("%04d-%02d", s.Year, s.Month)
}

// CountQuery records one store round trip made on behalf of the scope.
func (s *Scope) CountQuery() {
	if s == nil {
		return
	}
	s.queries.Add(1)
}

func (s *Scope) Queries() int64 {
	if s == nil {
		return 0
	}
	return s.queries.Load()
}

func (s *Scope) Empty() bool {
	return s == nil || (s.Report == "" && s.EntityID == "" && s.Year == 0)
}
