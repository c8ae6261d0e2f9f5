package option_test

import (
	"testing"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/option"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     int64 `gorm:"primaryKey"`
	Amount int64
	Name   string
}

func filterRange(t *testing.T) []row {
	t.Helper()
	conn := db.NewTest(t)
	require.NoError(t, conn.AutoMigrate(&row{}))
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, conn.Create(&row{ID: i, Amount: i * 10, Name: "r"}).Error)
	}

	var rows []row
	stmt := option.ApplyOperator(option.Condition{Field: "amount", Operator: option.GTE, Value: 20}).Apply(conn.Model(&row{}))
	stmt = option.ApplyOperator(option.Condition{Field: "amount", Operator: option.LT, Value: 50}).Apply(stmt)
	require.NoError(t, stmt.Order("id").Find(&rows).Error)
	return rows
}

func TestApplyOperatorBounds(t *testing.T) {
	rows := filterRange(t)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(2), rows[0].ID)
	assert.Equal(t, int64(4), rows[2].ID)
}

func TestApplyPaginationSeeksPastCursor(t *testing.T) {
	conn := db.NewTest(t)
	require.NoError(t, conn.AutoMigrate(&row{}))
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, conn.Create(&row{ID: i, Amount: i}).Error)
	}

	token, err := pagination.EncodeCursor(pagination.Cursor{ID: "2"})
	require.NoError(t, err)

	var rows []row
	stmt := option.ApplyPagination(pagination.Pagination{PageToken: token, PageSize: 2}).Apply(conn.Model(&row{}))
	require.NoError(t, stmt.Order("id asc").Find(&rows).Error)

	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].ID)
}

func TestApplyPaginationRejectsBadToken(t *testing.T) {
	conn := db.NewTest(t)
	require.NoError(t, conn.AutoMigrate(&row{}))

	var rows []row
	err := option.ApplyPagination(pagination.Pagination{PageToken: "!!"}).Apply(conn.Model(&row{})).Find(&rows).Error
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)
}

func TestWithSortByFallsBackToAllowedColumn(t *testing.T) {
	conn := db.NewTest(t)
	require.NoError(t, conn.AutoMigrate(&row{}))
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, conn.Create(&row{ID: i, Amount: 10 - i}).Error)
	}

	var rows []row
	stmt := option.WithSortBy(option.WithQuerySortBy("amount", "asc", map[string]bool{"amount": true})).Apply(conn.Model(&row{}))
	require.NoError(t, stmt.Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].ID)
}
