package query

import (
	"fmt"
	"strings"
)

// Condition is a WHERE clause fragment. Implementations generate Spanner SQL
// with named parameters (@pN); paramIndex keeps generated names unique
// across fragments.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

// Eq creates an equality comparison: Eq("status", "active") → "status = @p0".
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

type eqCondition struct {
	field string
	value interface{}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{paramName: c.value}
}

// Like creates a case-insensitive substring match used by the admin
// free-text search: Like("name", "shirt") → "LOWER(name) LIKE @p0" with the
// term wrapped in wildcards.
func Like(field, term string) Condition {
	return &likeCondition{field: field, term: term}
}

type likeCondition struct {
	field string
	term  string
}

func (c *likeCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	pattern := "%" + strings.ToLower(c.term) + "%"
	return fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName), map[string]interface{}{paramName: pattern}
}

// StartsWith creates a prefix match on a string column. Used for
// materialized-path descendant scans: StartsWith("path", "/electronics/").
func StartsWith(field, prefix string) Condition {
	return &startsWithCondition{field: field, prefix: prefix}
}

type startsWithCondition struct {
	field  string
	prefix string
}

func (c *startsWithCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("STARTS_WITH(%s, @%s)", c.field, paramName), map[string]interface{}{paramName: c.prefix}
}

// Or groups conditions with OR logic inside one parenthesized fragment.
func Or(conditions ...Condition) Condition {
	return &orCondition{conditions: conditions}
}

type orCondition struct {
	conditions []Condition
}

func (c *orCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	parts := make([]string, 0, len(c.conditions))
	params := make(map[string]interface{})
	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return "(" + strings.Join(parts, " OR ") + ")", params
}

// IsNull creates an IS NULL check.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

type isNullCondition struct {
	field string
}

func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates an IS NOT NULL check.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

type isNotNullCondition struct {
	field string
}

func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
