package dto

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// argPrefix keeps filter bind names apart from column values bound in the same statement.
const argPrefix = "where_"

// Condition is anything that renders to a parenthesised SQL predicate with named binds.
type Condition interface {
	GetWhereClause() (string, map[string]any)
}

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	return f.build(args), args
}

func (f Filter) column() string {
	if f.Table != "" {
		return f.Table + "." + f.Field
	}

	return f.Field
}

// build renders the predicate, registering its binds in args under names not already taken.
func (f Filter) build(args map[string]any) string {
	column := f.column()

	name := f.ArgName
	if name == "" {
		name = f.Field
	}

	bind := func(value any) string {
		key := uniqueArgName(args, argPrefix+name)
		args[key] = value

		return ":" + key
	}

	switch f.Operator {
	case FilterOperatorEq:
		return fmt.Sprintf("%s = %s", column, bind(f.Value))
	case FilterOperatorNotEq:
		return fmt.Sprintf("%s != %s", column, bind(f.Value))
	case FilterOperatorLessEq:
		return fmt.Sprintf("%s <= %s", column, bind(f.Value))
	case FilterOperatorGreaterEq:
		return fmt.Sprintf("%s >= %s", column, bind(f.Value))
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", column, bind(fmt.Sprintf("%%%v%%", f.Value)))
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
			return fmt.Sprintf("%s IN (%s)", column, bind(f.Value))
		}

		if val.Len() == 0 {
			return "FALSE"
		}

		named := make([]string, val.Len())
		for idx := range val.Len() {
			named[idx] = bind(val.Index(idx).Interface())
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", "))
	case FilterIsNotNull:
		return column + " IS NOT NULL"
	case FilterIsNull:
		return column + " IS NULL"
	default:
		return ""
	}
}

type FilterGroup struct {
	Filters  []Condition
	Operator string
}

// IsEmpty reports whether the group renders no predicate at all.
func (f FilterGroup) IsEmpty() bool {
	where, _ := f.GetWhereClause()

	return where == ""
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	return f.build(args), args
}

func (f FilterGroup) build(args map[string]any) string {
	operator := strings.ToUpper(f.Operator)
	if operator != FilterGroupOperatorOr {
		operator = FilterGroupOperatorAnd
	}

	clauses := make([]string, 0, len(f.Filters))

	for _, condition := range f.Filters {
		var where string

		switch c := condition.(type) {
		case Filter:
			where = c.build(args)
		case FilterGroup:
			where = c.build(args)
		case nil:
			continue
		default:
			clause, extra := c.GetWhereClause()
			for key, value := range extra {
				args[key] = value
			}

			where = clause
		}

		if where != "" {
			clauses = append(clauses, where)
		}
	}

	if len(clauses) == 0 {
		return ""
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")"
}

func uniqueArgName(args map[string]any, name string) string {
	if _, taken := args[name]; !taken {
		return name
	}

	for idx := 1; ; idx++ {
		candidate := name + "_" + strconv.Itoa(idx)
		if _, taken := args[candidate]; !taken {
			return candidate
		}
	}
}
