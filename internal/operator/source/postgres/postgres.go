// Package postgres reads an operator record set from PostgreSQL tables.
//
// Records are stored relationally down to the MVNO filter; the payload of
// each MNO and MVNO is a JSON document with the same keys as the YAML files.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"opinfo/internal/operator/models"
	"opinfo/pkg/platform/sentinel"
)

const (
	selectMNOs = `SELECT position, data
		FROM mno
		ORDER BY position`

	selectMVNOs = `SELECT mno_position, position, data
		FROM mvno
		ORDER BY mno_position, position`

	selectFilters = `SELECT mno_position, mvno_position, type, regex
		FROM mvno_filter
		ORDER BY mno_position, mvno_position, position`
)

type mnoRow struct {
	Position int    `db:"position"`
	Data     []byte `db:"data"`
}

type mvnoRow struct {
	MNOPosition int    `db:"mno_position"`
	Position    int    `db:"position"`
	Data        []byte `db:"data"`
}

type filterRow struct {
	MNOPosition  int    `db:"mno_position"`
	MVNOPosition int    `db:"mvno_position"`
	Type         string `db:"type"`
	Regex        string `db:"regex"`
}

// Source loads one record set per Load call.
type Source struct {
	db     *sqlx.DB
	logger *slog.Logger
}

type Option func(*Source)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// Open connects to dsn with the lib/pq driver.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func New(db *sqlx.DB, opts ...Option) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	s := &Source{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s, nil
}

func (s *Source) Load(ctx context.Context) ([]models.RecordSet, error) {
	var mnoRows []mnoRow
	if err := s.db.SelectContext(ctx, &mnoRows, selectMNOs); err != nil {
		return nil, fmt.Errorf("select mno: %w: %w", sentinel.ErrUnavailable, err)
	}
	var mvnoRows []mvnoRow
	if err := s.db.SelectContext(ctx, &mvnoRows, selectMVNOs); err != nil {
		return nil, fmt.Errorf("select mvno: %w: %w", sentinel.ErrUnavailable, err)
	}
	var filterRows []filterRow
	if err := s.db.SelectContext(ctx, &filterRows, selectFilters); err != nil {
		return nil, fmt.Errorf("select mvno_filter: %w: %w", sentinel.ErrUnavailable, err)
	}

	set, err := assemble(mnoRows, mvnoRows, filterRows)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "loaded operator records from postgres",
		"mno_count", len(set.MNOs),
		"mvno_count", len(mvnoRows),
	)
	return []models.RecordSet{set}, nil
}

// assemble nests rows into MNO records. Rows referencing a parent that does
// not exist make the whole set invalid.
func assemble(mnoRows []mnoRow, mvnoRows []mvnoRow, filterRows []filterRow) (models.RecordSet, error) {
	set := models.RecordSet{Source: "postgres"}
	mnoAt := make(map[int]int, len(mnoRows))
	for _, row := range mnoRows {
		data, err := decodeData(row.Data)
		if err != nil {
			return models.RecordSet{}, fmt.Errorf("mno %d: %w", row.Position, err)
		}
		mnoAt[row.Position] = len(set.MNOs)
		set.MNOs = append(set.MNOs, models.MNO{Data: data})
	}

	type mvnoKey struct{ mno, mvno int }
	mvnoAt := make(map[mvnoKey]int, len(mvnoRows))
	for _, row := range mvnoRows {
		i, ok := mnoAt[row.MNOPosition]
		if !ok {
			return models.RecordSet{}, fmt.Errorf("mvno %d references mno %d: %w", row.Position, row.MNOPosition, sentinel.ErrNotFound)
		}
		data, err := decodeData(row.Data)
		if err != nil {
			return models.RecordSet{}, fmt.Errorf("mvno %d of mno %d: %w", row.Position, row.MNOPosition, err)
		}
		mvnoAt[mvnoKey{row.MNOPosition, row.Position}] = len(set.MNOs[i].MVNOs)
		set.MNOs[i].MVNOs = append(set.MNOs[i].MVNOs, models.MVNO{Data: data})
	}

	for _, row := range filterRows {
		key := mvnoKey{row.MNOPosition, row.MVNOPosition}
		j, ok := mvnoAt[key]
		if !ok {
			return models.RecordSet{}, fmt.Errorf("filter references mvno %d of mno %d: %w", row.MVNOPosition, row.MNOPosition, sentinel.ErrNotFound)
		}
		filter := models.Filter{Type: models.FilterType(row.Type), Regex: row.Regex}
		if !filter.Type.IsValid() {
			return models.RecordSet{}, fmt.Errorf("filter of mvno %d: unknown type %q: %w", row.MVNOPosition, row.Type, sentinel.ErrInvalidRecord)
		}
		mvno := &set.MNOs[mnoAt[row.MNOPosition]].MVNOs[j]
		mvno.Filters = append(mvno.Filters, filter)
	}
	return set, nil
}

func decodeData(raw []byte) (models.Data, error) {
	var data models.Data
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Data{}, fmt.Errorf("decode data: %w: %w", sentinel.ErrInvalidRecord, err)
	}
	if err := data.Validate(); err != nil {
		return models.Data{}, err
	}
	return data, nil
}
