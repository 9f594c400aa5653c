package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/metrics"
)

var paramName = regexp.MustCompile(`^p_[a-z_]+$`)

// PostgresGateway implements gateway.Gateway on PostgreSQL. Row ownership is
// enforced in every statement it builds: owned tables are filtered and written
// with user_id set to the user carried in the context.
type PostgresGateway struct {
	db      *sqlx.DB
	metrics metrics.Recorder
}

func NewPostgresGateway(db *sqlx.DB, rec metrics.Recorder) *PostgresGateway {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &PostgresGateway{db: db, metrics: rec}
}

var _ gateway.Gateway = (*PostgresGateway)(nil)

func (g *PostgresGateway) CurrentUser(ctx context.Context) (uuid.UUID, bool) {
	return gateway.UserFromContext(ctx)
}

func (g *PostgresGateway) Query(ctx context.Context, entity gateway.Entity, filter gateway.Filter, order []gateway.Order, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("query", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}

	b := &builder{t: t}
	conds := b.scope(userID)
	for _, p := range filter.Where {
		cond, err := b.predicate(p)
		if err != nil {
			return err
		}
		conds = append(conds, cond)
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM " + t.name)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if len(order) > 0 {
		terms := make([]string, 0, len(order))
		for _, o := range order {
			if !t.has(o.Field) {
				return unknownField(o.Field)
			}
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			terms = append(terms, o.Field+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(filter.Limit))
	}

	return g.db.SelectContext(ctx, dest, sb.String(), b.args...)
}

func (g *PostgresGateway) Insert(ctx context.Context, entity gateway.Entity, values gateway.Values, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("insert", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}
	row, err := stamp(t, userID, values)
	if err != nil {
		return err
	}

	b := &builder{t: t}
	cols := sortedKeys(row)
	query := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + b.values(cols, row) + ")"
	if dest == nil {
		_, err = g.db.ExecContext(ctx, query, b.args...)
		return err
	}
	return g.db.GetContext(ctx, dest, query+" RETURNING *", b.args...)
}

func (g *PostgresGateway) InsertMany(ctx context.Context, entity gateway.Entity, rows []gateway.Values, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("insert_many", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	stamped := make([]gateway.Values, 0, len(rows))
	union := map[string]bool{}
	for _, values := range rows {
		row, err := stamp(t, userID, values)
		if err != nil {
			return err
		}
		for col := range row {
			union[col] = true
		}
		stamped = append(stamped, row)
	}
	cols := slices.Sorted(maps.Keys(union))

	b := &builder{t: t}
	tuples := make([]string, 0, len(stamped))
	for _, row := range stamped {
		tuples = append(tuples, "("+b.values(cols, row)+")")
	}
	query := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES " +
		strings.Join(tuples, ", ") + " RETURNING *"

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := tx.SelectContext(ctx, dest, query, b.args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (g *PostgresGateway) Update(ctx context.Context, entity gateway.Entity, id uuid.UUID, patch gateway.Values, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("update", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return apperror.BadRequest("nothing to update")
	}

	b := &builder{t: t}
	cols := sortedKeys(patch)
	sets := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		if col == "id" || col == "user_id" || col == "is_default" || !t.writable(col) {
			return apperror.BadRequest(fmt.Sprintf("field %q cannot be updated", col))
		}
		sets = append(sets, col+" = "+b.arg(patch[col]))
	}
	if t.updatedAt {
		sets = append(sets, "updated_at = NOW()")
	}

	conds := []string{"id = " + b.arg(id)}
	if t.owned {
		conds = append(conds, "user_id = "+b.arg(userID))
	}
	query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") +
		" WHERE " + strings.Join(conds, " AND ") + " RETURNING *"

	return g.db.GetContext(ctx, dest, query, b.args...)
}

func (g *PostgresGateway) Upsert(ctx context.Context, entity gateway.Entity, values gateway.Values, conflictKeys []string, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("upsert", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}
	if len(conflictKeys) == 0 {
		return apperror.BadRequest("upsert needs at least one conflict key")
	}
	for _, key := range conflictKeys {
		if !t.has(key) {
			return unknownField(key)
		}
	}
	row, err := stamp(t, userID, values)
	if err != nil {
		return err
	}

	b := &builder{t: t}
	cols := sortedKeys(row)
	var sets []string
	for _, col := range cols {
		if col == "id" || col == "user_id" || col == "is_default" || slices.Contains(conflictKeys, col) {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	if t.updatedAt {
		sets = append(sets, "updated_at = NOW()")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + b.values(cols, row) + ")")
	sb.WriteString(" ON CONFLICT (" + strings.Join(conflictKeys, ", ") + ")")
	if len(sets) == 0 {
		sb.WriteString(" DO NOTHING")
	} else {
		sb.WriteString(" DO UPDATE SET " + strings.Join(sets, ", "))
		if t.owned {
			sb.WriteString(" WHERE " + t.name + ".user_id = EXCLUDED.user_id")
		}
	}
	sb.WriteString(" RETURNING *")

	err = g.db.GetContext(ctx, dest, sb.String(), b.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.Conflict(fmt.Sprintf("%s row already exists", entity))
	}
	return err
}

func (g *PostgresGateway) Delete(ctx context.Context, entity gateway.Entity, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { err = g.finish("delete", string(entity), start, err) }()

	t, userID, err := g.prepare(ctx, entity)
	if err != nil {
		return err
	}

	b := &builder{t: t}
	conds := []string{"id = " + b.arg(id)}
	if t.owned {
		conds = append(conds, "user_id = "+b.arg(userID))
	}
	result, err := g.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE "+strings.Join(conds, " AND "), b.args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (g *PostgresGateway) Call(ctx context.Context, proc gateway.Procedure, params gateway.Values, dest any) (err error) {
	start := time.Now()
	defer func() { err = g.finish("call", string(proc), start, err) }()

	userID, ok := g.CurrentUser(ctx)
	if !ok {
		return apperror.NotAuthenticated()
	}
	if !procedures[proc] {
		return apperror.BadRequest(fmt.Sprintf("unknown procedure %q", proc))
	}

	args := []any{userID}
	named := []string{"p_user_id => $1"}
	for _, name := range sortedKeys(params) {
		if !paramName.MatchString(name) || name == "p_user_id" {
			return apperror.BadRequest(fmt.Sprintf("invalid parameter %q", name))
		}
		args = append(args, sqlValue(params[name]))
		named = append(named, name+" => $"+strconv.Itoa(len(args)))
	}

	var raw []byte
	query := "SELECT " + string(proc) + "(" + strings.Join(named, ", ") + ")"
	if err := g.db.QueryRowxContext(ctx, query, args...).Scan(&raw); err != nil {
		return err
	}
	if raw == nil || dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s result: %w", proc, err)
	}
	return nil
}

func (g *PostgresGateway) prepare(ctx context.Context, entity gateway.Entity) (table, uuid.UUID, error) {
	userID, ok := g.CurrentUser(ctx)
	if !ok {
		return table{}, uuid.Nil, apperror.NotAuthenticated()
	}
	t, ok := tables[entity]
	if !ok {
		return table{}, uuid.Nil, apperror.BadRequest(fmt.Sprintf("unknown entity %q", entity))
	}
	return t, userID, nil
}

// finish records the operation and turns a failure into a *gateway.Error.
// A missing session is reported as is.
func (g *PostgresGateway) finish(op, entity string, start time.Time, err error) error {
	g.metrics.ObserveGateway(entity, op, time.Since(start), err)
	if err == nil || errors.Is(err, apperror.ErrNotAuthenticated) {
		return err
	}
	return &gateway.Error{Op: op, Entity: entity, Err: classify(entity, err)}
}

func classify(entity string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(entity + " row")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return apperror.Conflict(fmt.Sprintf("%s row already exists", entity))
		case "23503":
			return apperror.Conflict(fmt.Sprintf("%s row references missing or is referenced by other data", entity))
		case "23514", "22P02", "23502":
			return apperror.BadRequest(pqErr.Message)
		}
	}
	return err
}

// stamp copies values with ownership columns forced and an id assigned.
func stamp(t table, userID uuid.UUID, values gateway.Values) (gateway.Values, error) {
	row := make(gateway.Values, len(values)+2)
	for col, v := range values {
		if !t.writable(col) {
			return nil, unknownField(col)
		}
		row[col] = v
	}
	if t.owned {
		row["user_id"] = userID
	}
	if t.shared {
		row["is_default"] = false
	}
	if id, ok := row["id"]; !ok || id == nil {
		row["id"] = uuid.New()
	}
	return row, nil
}

func unknownField(field string) error {
	return apperror.BadRequest(fmt.Sprintf("unknown field %q", field))
}

func sortedKeys(values gateway.Values) []string {
	return slices.Sorted(maps.Keys(values))
}

func sqlValue(v any) any {
	switch x := v.(type) {
	case []string:
		return pq.Array(x)
	case []uuid.UUID:
		return pq.Array(x)
	}
	return v
}

// builder accumulates positional arguments for one statement.
type builder struct {
	t    table
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, sqlValue(v))
	return "$" + strconv.Itoa(len(b.args))
}

// values renders one VALUES tuple body; columns missing from row use DEFAULT.
func (b *builder) values(cols []string, row gateway.Values) string {
	out := make([]string, len(cols))
	for i, col := range cols {
		v, ok := row[col]
		if !ok {
			out[i] = "DEFAULT"
			continue
		}
		out[i] = b.arg(v)
	}
	return strings.Join(out, ", ")
}

func (b *builder) scope(userID uuid.UUID) []string {
	switch {
	case b.t.shared:
		return []string{"(is_default = true OR user_id = " + b.arg(userID) + ")"}
	case b.t.owned:
		return []string{"user_id = " + b.arg(userID)}
	}
	return nil
}

var comparisons = map[gateway.Operator]string{
	gateway.OpEq:  "=",
	gateway.OpNeq: "<>",
	gateway.OpGt:  ">",
	gateway.OpGte: ">=",
	gateway.OpLt:  "<",
	gateway.OpLte: "<=",
}

func (b *builder) predicate(p gateway.Predicate) (string, error) {
	if len(p.Any) > 0 {
		parts := make([]string, 0, len(p.Any))
		for _, sub := range p.Any {
			cond, err := b.predicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, cond)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}
	if !b.t.has(p.Field) {
		return "", unknownField(p.Field)
	}

	switch p.Op {
	case gateway.OpIsNull:
		return p.Field + " IS NULL", nil
	case gateway.OpContains:
		return p.Field + " @> " + b.arg(p.Value), nil
	case gateway.OpEq:
		if p.Value == nil {
			return p.Field + " IS NULL", nil
		}
	}
	cmp, ok := comparisons[p.Op]
	if !ok {
		return "", apperror.BadRequest(fmt.Sprintf("unsupported operator %q", p.Op))
	}
	return p.Field + " " + cmp + " " + b.arg(p.Value), nil
}
