package postgres

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/service-dispatch/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
)

type Postgres struct {
	db *sqlx.DB
}

func NewDB(cfg config.Postgres, log *slog.Logger) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	log.Info("connected to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	return &Postgres{db: db}, nil
}

func (p *Postgres) DB() *sqlx.DB {
	return p.db
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// isInvalidAppointment reports whether Postgres refused the appointment
// value as a date/time literal.
func isInvalidAppointment(err error) bool {
	code := pqCode(err)

	return code == codeInvalidDatetime || code == codeDatetimeOverflow
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
