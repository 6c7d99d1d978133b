package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM directions ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("dir-1", "Data").
			AddRow("dir-2", "Software"))
	mock.ExpectQuery(`SELECT id, name FROM cities ORDER BY name`).
		WillReturnError(errors.New("connection reset"))

	repo := NewCatalogRepository(db)
	dirs, err := repo.ListDirections(context.Background())
	require.NoError(t, err)
	require.Len(t, dirs, 2)
	assert.Equal(t, "Software", dirs[1].Name)

	_, err = repo.ListCities(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
