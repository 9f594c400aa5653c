package gateway

// Operator is a comparison applied by a predicate.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNeq      Operator = "neq"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpContains Operator = "contains" // array column contains every given element
	OpIsNull   Operator = "is_null"
)

// Predicate compares one field with a value. A predicate with Any set is a
// disjunction of those predicates instead.
type Predicate struct {
	Field string
	Op    Operator
	Value any
	Any   []Predicate
}

func Eq(field string, value any) Predicate  { return Predicate{Field: field, Op: OpEq, Value: value} }
func Neq(field string, value any) Predicate { return Predicate{Field: field, Op: OpNeq, Value: value} }
func Gt(field string, value any) Predicate  { return Predicate{Field: field, Op: OpGt, Value: value} }
func Gte(field string, value any) Predicate { return Predicate{Field: field, Op: OpGte, Value: value} }
func Lt(field string, value any) Predicate  { return Predicate{Field: field, Op: OpLt, Value: value} }
func Lte(field string, value any) Predicate { return Predicate{Field: field, Op: OpLte, Value: value} }
func IsNull(field string) Predicate         { return Predicate{Field: field, Op: OpIsNull} }

// Contains matches rows whose array column holds every element of values.
func Contains(field string, values []string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: values}
}

// Or matches rows satisfying at least one of preds.
func Or(preds ...Predicate) Predicate {
	return Predicate{Any: preds}
}

// Filter is a conjunction of predicates with an optional row limit.
type Filter struct {
	Where []Predicate
	Limit int
}

// Where starts a filter from preds.
func Where(preds ...Predicate) Filter {
	return Filter{Where: preds}
}

// And returns a copy of f with preds appended.
func (f Filter) And(preds ...Predicate) Filter {
	where := make([]Predicate, 0, len(f.Where)+len(preds))
	where = append(where, f.Where...)
	f.Where = append(where, preds...)
	return f
}

// WithLimit returns a copy of f returning at most n rows.
func (f Filter) WithLimit(n int) Filter {
	f.Limit = n
	return f
}

// Order sorts query results by one field.
type Order struct {
	Field      string
	Descending bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Descending: true} }

// OrderBy is shorthand for a list of orders.
func OrderBy(orders ...Order) []Order { return orders }
