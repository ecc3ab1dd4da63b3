package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestGetReceiptsByUserNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReceiptRepository(db)

	userID := uuid.New()
	newer := uuid.New()
	older := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "merchant", "total", "purchase_date", "summary", "image_url", "created_at", "updated_at"}).
		AddRow(newer.String(), userID.String(), "Coffee House", 8.75, now, "Two lattes", "", now, now).
		AddRow(older.String(), userID.String(), "Processing...", 0.0, now, "", "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "receipts" WHERE user_id = .+ ORDER BY created_at desc`).
		WithArgs(userID.String()).
		WillReturnRows(rows)

	receipts, err := repo.GetReceiptsByUser(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, newer, receipts[0].ID)
	assert.Equal(t, older, receipts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReceiptByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReceiptRepository(db)

	id := uuid.NewString()
	mock.ExpectQuery(`SELECT \* FROM "receipts" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetReceiptByID(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReceipt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReceiptRepository(db)

	id := uuid.NewString()
	mock.ExpectExec(`DELETE FROM "receipts" WHERE id = .+`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteReceipt(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
