package result

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
)

const defaultTable = "event"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresStore persists results in a table keyed by id.
// Duration is an INTERVAL, NULL until a pair completes.
type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, table string) (PostgresStore, error) {
	if table == "" {
		table = defaultTable
	}

	if !validTableName.MatchString(table) {
		return PostgresStore{}, fmt.Errorf("invalid table name %q", table)
	}

	return PostgresStore{
		db:    db,
		table: table,
	}, nil
}

func (s PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(255) PRIMARY KEY,
	duration INTERVAL,
	type VARCHAR(100),
	host VARCHAR(255),
	alert BOOLEAN NOT NULL DEFAULT FALSE
)`, s.table)

	return s.withConn(ctx, "failed to create table", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query)

		return err
	})
}

func (s PostgresStore) Reset(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.table)

	return s.withConn(ctx, "failed to reset table", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query)

		return err
	})
}

func (s PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, s.table)

	var exists bool

	err := s.withConn(ctx, "failed to check existence of %s", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, id).Scan(&exists)
	}, id)

	return exists, err
}

func (s PostgresStore) DurationUnset(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND duration IS NULL)`, s.table)

	var unset bool

	err := s.withConn(ctx, "failed to check duration of %s", func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, id).Scan(&unset)
	}, id)

	return unset, err
}

func (s PostgresStore) Insert(ctx context.Context, result entity.Result) (bool, error) {
	query := fmt.Sprintf(`
INSERT INTO %s (id, type, host, alert)
VALUES ($1, $2, $3, FALSE)
ON CONFLICT (id)
DO NOTHING`, s.table)

	var created bool

	err := s.withConn(ctx, "failed to insert %s", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, result.ID, result.Type, result.Host)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		created = n == 1

		return nil
	}, result.ID)

	return created, err
}

func (s PostgresStore) UpdateDurationAndAlert(ctx context.Context, id string, duration time.Duration, alert bool) (bool, error) {
	query := fmt.Sprintf(`
UPDATE %s
SET duration = $2::BIGINT * INTERVAL '1 microsecond',
	alert = $3
WHERE id = $1 AND duration IS NULL`, s.table)

	var updated bool

	err := s.withConn(ctx, "failed to update %s", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, id, duration.Microseconds(), alert)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		updated = n == 1

		return nil
	}, id)

	return updated, err
}

func (s PostgresStore) QueryAlerts(ctx context.Context) ([]entity.Result, error) {
	return s.query(ctx, "WHERE alert = TRUE")
}

func (s PostgresStore) QueryAll(ctx context.Context) ([]entity.Result, error) {
	return s.query(ctx, "")
}

func (s PostgresStore) query(ctx context.Context, where string) ([]entity.Result, error) {
	query := fmt.Sprintf(`
SELECT id, type, host, alert, (EXTRACT(EPOCH FROM duration) * 1000000)::BIGINT
FROM %s
%s
ORDER BY id`, s.table, where)

	var ret []entity.Result

	err := s.withConn(ctx, "failed to query results", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			result, err := scanResult(rows)
			if err != nil {
				return err
			}

			ret = append(ret, result)
		}

		return rows.Err()
	})

	return ret, err
}

// withConn runs fn on a dedicated connection, released on every path.
func (s PostgresStore) withConn(ctx context.Context, reason string, fn func(conn *sql.Conn) error, args ...interface{}) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return repo.NewConnectionError(err, reason, args...)
	}
	defer conn.Close()

	err = fn(conn)
	if err != nil {
		if isConnectionError(err) {
			return repo.NewConnectionError(err, reason, args...)
		}

		return repo.NewOperationError(err, reason, args...)
	}

	return nil
}

func scanResult(rows *sql.Rows) (entity.Result, error) {
	var (
		ret      entity.Result
		typ      sql.NullString
		host     sql.NullString
		duration sql.NullInt64
	)

	err := rows.Scan(&ret.ID, &typ, &host, &ret.Alert, &duration)
	if err != nil {
		return ret, err
	}

	ret.Type = typ.String
	ret.Host = host.String

	if duration.Valid {
		d := time.Duration(duration.Int64) * time.Microsecond
		ret.Duration = &d
	}

	return ret, nil
}

func isConnectionError(err error) bool {
	// Errors reported by the server are operation errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err)
}
