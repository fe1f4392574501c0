package utils

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 25
)

// Comparison operators accepted in bracketed filter keys, e.g.
// tuition[gte]=10000, and their SQL spellings.
var listOps = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// PageInfo points at an adjacent page of a listing.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries only the directions that actually exist.
type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

type filterClause struct {
	cond string
	args []interface{}
}

// ListQuery is a parsed filter/select/sort/pagination request. Every
// resource listing funnels through it.
type ListQuery struct {
	filters []filterClause
	selects []string
	orders  []string

	Page  int
	Limit int
}

// ParseListQuery reads the query string of a listing request. The four
// reserved keys (select, sort, page, limit) are directives; every other
// key becomes a filter, either plain equality or a bracketed comparison
// (gt, gte, lt, lte, in). Filter keys are trusted input and pass through
// to the storage query without schema validation.
func ParseListQuery(c *fiber.Ctx) *ListQuery {
	q := &ListQuery{Page: defaultPage, Limit: defaultLimit}

	for key, value := range c.Queries() {
		switch key {
		case "select":
			for _, field := range strings.Split(value, ",") {
				if field = strings.TrimSpace(field); field != "" {
					q.selects = append(q.selects, camelToSnake(field))
				}
			}
		case "sort":
			for _, field := range strings.Split(value, ",") {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				if strings.HasPrefix(field, "-") {
					q.orders = append(q.orders, camelToSnake(field[1:])+" desc")
				} else {
					q.orders = append(q.orders, camelToSnake(field))
				}
			}
		case "page":
			// Fail open to the default on non-numeric input.
			if page, err := strconv.Atoi(value); err == nil && page > 0 {
				q.Page = page
			}
		case "limit":
			if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
				q.Limit = limit
			}
		default:
			q.addFilter(key, value)
		}
	}

	return q
}

func (q *ListQuery) addFilter(key, value string) {
	field := key
	op := ""

	if open := strings.Index(key, "["); open > 0 && strings.HasSuffix(key, "]") {
		field = key[:open]
		op = key[open+1 : len(key)-1]
	}

	column := camelToSnake(field)

	switch {
	case op == "in":
		parts := strings.Split(value, ",")
		args := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			args = append(args, literalValue(strings.TrimSpace(p)))
		}
		q.filters = append(q.filters, filterClause{cond: column + " IN ?", args: []interface{}{args}})
	case listOps[op] != "":
		q.filters = append(q.filters, filterClause{
			cond: column + " " + listOps[op] + " ?",
			args: []interface{}{coerceValue(value)},
		})
	default:
		q.filters = append(q.filters, filterClause{cond: column + " = ?", args: []interface{}{literalValue(value)}})
	}
}

// Run executes the listing against model, scanning rows into dest and
// optionally expanding related records via preloads. The total used for
// the pagination boundaries is the count of the FILTERED set.
func (q *ListQuery) Run(db *gorm.DB, model interface{}, dest interface{}, preloads ...string) (int64, *Pagination, error) {
	var total int64
	counter := db.Model(model)
	for _, f := range q.filters {
		counter = counter.Where(f.cond, f.args...)
	}
	if err := counter.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	query := db.Model(model)
	for _, f := range q.filters {
		query = query.Where(f.cond, f.args...)
	}
	if len(q.selects) > 0 {
		query = query.Select(q.selects)
	}
	if len(q.orders) > 0 {
		for _, order := range q.orders {
			query = query.Order(order)
		}
	} else {
		query = query.Order("created_at desc")
	}
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	skip := (q.Page - 1) * q.Limit
	if err := query.Offset(skip).Limit(q.Limit).Find(dest).Error; err != nil {
		return 0, nil, err
	}

	pagination := &Pagination{}
	if int64(q.Page*q.Limit) < total {
		pagination.Next = &PageInfo{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Page > 1 {
		pagination.Prev = &PageInfo{Page: q.Page - 1, Limit: q.Limit}
	}

	return total, pagination, nil
}

// coerceValue gives range-comparison operands (gt, gte, lt, lte) a
// numeric type so the ordering behaves across drivers.
func coerceValue(value string) interface{} {
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// literalValue handles equality and IN operands. Booleans get typed so
// boolean columns match on every driver; everything else stays a string
// and the column's own type drives the comparison, so a numeric-looking
// value still matches a text column (weeks=8 against weeks "8").
func literalValue(value string) interface{} {
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	return value
}

// camelToSnake maps wire field names (averageCost) onto column names
// (average_cost).
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
