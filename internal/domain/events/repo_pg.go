package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notluquis/bioalergia-sub009/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const eventCols = `id, source_uid, summary, description, starts_at, ends_at, ignored,
	category, amount_expected, amount_paid, attended,
	dosage_value, dosage_unit, treatment_stage, control_included, is_domicilio,
	synced_at, created_at, updated_at`

func (r *repoPG) scanEvent(row pgx.Row) (*CalendarEvent, error) {
	var ev CalendarEvent
	err := row.Scan(&ev.ID, &ev.SourceUID, &ev.Summary, &ev.Description, &ev.StartsAt, &ev.EndsAt, &ev.Ignored,
		&ev.Category, &ev.AmountExpected, &ev.AmountPaid, &ev.Attended,
		&ev.DosageValue, &ev.DosageUnit, &ev.TreatmentStage, &ev.ControlIncluded, &ev.IsDomicilio,
		&ev.SyncedAt, &ev.CreatedAt, &ev.UpdatedAt)
	return &ev, err
}

func (r *repoPG) Upsert(ctx context.Context, ev *CalendarEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO calendar_events (id, source_uid, summary, description, starts_at, ends_at, ignored,
			category, amount_expected, amount_paid, attended,
			dosage_value, dosage_unit, treatment_stage, control_included, is_domicilio, synced_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW())
		ON CONFLICT (source_uid) DO UPDATE SET
			summary=EXCLUDED.summary, description=EXCLUDED.description,
			starts_at=EXCLUDED.starts_at, ends_at=EXCLUDED.ends_at, ignored=EXCLUDED.ignored,
			category=EXCLUDED.category, amount_expected=EXCLUDED.amount_expected,
			amount_paid=EXCLUDED.amount_paid, attended=EXCLUDED.attended,
			dosage_value=EXCLUDED.dosage_value, dosage_unit=EXCLUDED.dosage_unit,
			treatment_stage=EXCLUDED.treatment_stage, control_included=EXCLUDED.control_included,
			is_domicilio=EXCLUDED.is_domicilio, synced_at=NOW(), updated_at=NOW()
		RETURNING id, synced_at, created_at, updated_at`,
		ev.ID, ev.SourceUID, ev.Summary, ev.Description, ev.StartsAt, ev.EndsAt, ev.Ignored,
		ev.Category, ev.AmountExpected, ev.AmountPaid, ev.Attended,
		ev.DosageValue, ev.DosageUnit, ev.TreatmentStage, ev.ControlIncluded, ev.IsDomicilio).
		Scan(&ev.ID, &ev.SyncedAt, &ev.CreatedAt, &ev.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*CalendarEvent, error) {
	return r.scanEvent(r.conn(ctx).QueryRow(ctx, `SELECT `+eventCols+` FROM calendar_events WHERE id = $1`, id))
}

func (r *repoPG) GetBySourceUID(ctx context.Context, sourceUID string) (*CalendarEvent, error) {
	return r.scanEvent(r.conn(ctx).QueryRow(ctx, `SELECT `+eventCols+` FROM calendar_events WHERE source_uid = $1`, sourceUID))
}

func (r *repoPG) Update(ctx context.Context, ev *CalendarEvent) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE calendar_events SET summary=$2, description=$3, starts_at=$4, ends_at=$5, ignored=$6,
			category=$7, amount_expected=$8, amount_paid=$9, attended=$10,
			dosage_value=$11, dosage_unit=$12, treatment_stage=$13,
			control_included=$14, is_domicilio=$15, updated_at=NOW()
		WHERE id = $1`,
		ev.ID, ev.Summary, ev.Description, ev.StartsAt, ev.EndsAt, ev.Ignored,
		ev.Category, ev.AmountExpected, ev.AmountPaid, ev.Attended,
		ev.DosageValue, ev.DosageUnit, ev.TreatmentStage,
		ev.ControlIncluded, ev.IsDomicilio)
	return err
}

// filterSQL builds the WHERE clause shared by the count and data queries.
func filterSQL(filter ListFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	var args []interface{}
	if !filter.IncludeIgnored {
		where += ` AND ignored = FALSE`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND starts_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND starts_at < $%d`, len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Attended != nil {
		args = append(args, *filter.Attended)
		where += fmt.Sprintf(` AND attended = $%d`, len(args))
	}
	return where, args
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CalendarEvent, int, error) {
	where, args := filterSQL(filter)

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM calendar_events`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+eventCols+` FROM calendar_events`+where+
			fmt.Sprintf(` ORDER BY starts_at DESC NULLS LAST LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CalendarEvent
	for rows.Next() {
		ev, err := r.scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ev)
	}
	return items, total, nil
}
