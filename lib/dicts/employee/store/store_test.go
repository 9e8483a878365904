package employeestore

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"personnel-admin/db/dbmock"
	"personnel-admin/models"
	dictapimodels "personnel-admin/models/api/dict"
	dbmodels "personnel-admin/models/db"
)

func TestEmployeeStore(t *testing.T) {
	t.Run(`list with search and status`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*LOWER\(last_name \|\| ' ' \|\| first_name\) like \$1 OR LOWER\(personal_number\) like \$2.* AND status = \$3 ORDER BY last_name, first_name`).
			WithArgs("%петров%", "%петров%", "active").
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "personal_number", "status"}).
				AddRow("E1", "Иван", "Петров", "0042", "active"))

		list, err := NewInstance(db).List(dictapimodels.EmployeeFind{Search: " Петров ", Status: "active"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Петров Иван", list[0].GetFullName())
	})

	t.Run(`list without filter`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" ORDER BY last_name, first_name`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		list, err := NewInstance(db).List(dictapimodels.EmployeeFind{})
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run(`get missing employee`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1`).
			WithArgs("E9", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		rec, err := NewInstance(db).GetByID("E9")
		require.NoError(t, err)
		require.Nil(t, rec)
	})

	t.Run(`personal number taken by other employee`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE LOWER\(personal_number\) = \$1 AND id <> \$2`).
			WithArgs("ab-1", "E1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		unique, err := NewInstance(db).IsUnique("E1", " AB-1 ")
		require.NoError(t, err)
		require.False(t, unique)
	})

	t.Run(`create`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectQuery(`INSERT INTO "employees"`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Иван", "Петров", "0042", "active").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("E1"))
		id, err := NewInstance(db).Create(dbmodels.Employee{
			FirstName:      "Иван",
			LastName:       "Петров",
			PersonalNumber: "0042",
			Status:         models.EmployeeStatusActive,
		})
		require.NoError(t, err)
		require.Equal(t, "E1", id)
	})

	t.Run(`update card`, func(t *testing.T) {
		db, mock := dbmock.New(t)
		mock.ExpectExec(`UPDATE "employees" SET .*"personal_number"=.* WHERE id = `).
			WillReturnResult(sqlmock.NewResult(0, 1))
		err := NewInstance(db).Update("E1", map[string]interface{}{"personal_number": "0043"})
		require.NoError(t, err)

		require.NoError(t, NewInstance(db).Update("E1", nil))
	})
}
