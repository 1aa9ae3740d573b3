package postgres

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opinfo/internal/operator/models"
	"opinfo/pkg/platform/sentinel"
)

func newMock(t *testing.T) (*Source, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	src, err := New(sqlx.NewDb(db, "sqlmock"))
	require.NoError(t, err)
	return src, mock
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database handle is required")
}

func TestLoad(t *testing.T) {
	src, mock := newMock(t)

	mock.ExpectQuery(selectMNOs).WillReturnRows(
		sqlmock.NewRows([]string{"position", "data"}).
			AddRow(0, []byte(`{"uuid":"uuid400001","mccmnc":["400001"],"localized_name":[{"name":"name400001","language":"en"}]}`)).
			AddRow(1, []byte(`{"uuid":"uuid400002","mccmnc":["400002"]}`)),
	)
	mock.ExpectQuery(selectMVNOs).WillReturnRows(
		sqlmock.NewRows([]string{"mno_position", "position", "data"}).
			AddRow(0, 0, []byte(`{"uuid":"uuid400101","olp":[{"url":"x","method":"GET"}]}`)).
			AddRow(0, 1, nil),
	)
	mock.ExpectQuery(selectFilters).WillReturnRows(
		sqlmock.NewRows([]string{"mno_position", "mvno_position", "type", "regex"}).
			AddRow(0, 0, "OPERATOR_NAME", "name400101").
			AddRow(0, 0, "IMSI", "4000011.*"),
	)

	sets, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)

	set := sets[0]
	assert.Equal(t, "postgres", set.Source)
	require.Len(t, set.MNOs, 2)
	assert.Equal(t, "uuid400001", *set.MNOs[0].Data.UUID)
	assert.Equal(t, []models.LocalizedName{{Name: "name400001", Language: "en"}}, set.MNOs[0].Data.LocalizedNames)
	assert.Empty(t, set.MNOs[1].MVNOs)

	require.Len(t, set.MNOs[0].MVNOs, 2)
	first := set.MNOs[0].MVNOs[0]
	assert.Equal(t, "uuid400101", *first.Data.UUID)
	assert.Equal(t, []models.Filter{
		{Type: models.FilterOperatorName, Regex: "name400101"},
		{Type: models.FilterIMSI, Regex: "4000011.*"},
	}, first.Filters)
	assert.Empty(t, set.MNOs[0].MVNOs[1].Filters)
	assert.Nil(t, set.MNOs[0].MVNOs[1].Data.UUID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadEmptyTables(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(selectMNOs).WillReturnRows(sqlmock.NewRows([]string{"position", "data"}))
	mock.ExpectQuery(selectMVNOs).WillReturnRows(sqlmock.NewRows([]string{"mno_position", "position", "data"}))
	mock.ExpectQuery(selectFilters).WillReturnRows(sqlmock.NewRows([]string{"mno_position", "mvno_position", "type", "regex"}))

	sets, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Empty(t, sets[0].MNOs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadQueryError(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(selectMNOs).WillReturnError(errors.New("connection refused"))

	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssembleRejectsInconsistentRows(t *testing.T) {
	mnos := []mnoRow{{Position: 0, Data: []byte(`{"uuid":"a"}`)}}

	t.Run("orphan mvno", func(t *testing.T) {
		_, err := assemble(mnos, []mvnoRow{{MNOPosition: 9}}, nil)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("orphan filter", func(t *testing.T) {
		_, err := assemble(mnos, nil, []filterRow{{MNOPosition: 0, MVNOPosition: 3, Type: "IMSI"}})
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unknown filter type", func(t *testing.T) {
		_, err := assemble(mnos, []mvnoRow{{MNOPosition: 0}}, []filterRow{{Type: "COLOR"}})
		require.ErrorIs(t, err, sentinel.ErrInvalidRecord)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := assemble([]mnoRow{{Data: []byte(`{`)}}, nil, nil)
		require.ErrorIs(t, err, sentinel.ErrInvalidRecord)
	})

	t.Run("unknown portal method", func(t *testing.T) {
		_, err := assemble([]mnoRow{{Data: []byte(`{"olp":[{"url":"x","method":"PUT"}]}`)}}, nil, nil)
		require.ErrorIs(t, err, sentinel.ErrInvalidRecord)
	})

	t.Run("nameless localized name", func(t *testing.T) {
		_, err := assemble([]mnoRow{{Data: []byte(`{"localized_name":[{"language":"en"}]}`)}}, nil, nil)
		require.ErrorIs(t, err, sentinel.ErrInvalidRecord)
	})

	t.Run("nameless localized name on mvno", func(t *testing.T) {
		_, err := assemble(mnos, []mvnoRow{{MNOPosition: 0, Data: []byte(`{"localized_name":[{"name":""}]}`)}}, nil)
		require.ErrorIs(t, err, sentinel.ErrInvalidRecord)
	})
}
