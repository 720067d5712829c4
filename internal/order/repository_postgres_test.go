package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func placedFixture() (Order, []Item, Payment) {
	ord := Order{
		Number: "a1b2", UserID: 7,
		TotalMRP: dec("300"), CouponDiscount: dec("20"), PlatformFee: dec("20"),
		ShippingFee: dec("100"), GrandTotal: dec("300"),
		Status: StatusPending, PaymentMethod: MethodCard, CreatedAt: "2026-03-10T10:00:00Z",
	}
	items := []Item{
		{ProductID: 1, Name: "Linen Shirt", UnitPrice: dec("100"), UnitMRP: dec("150"), Quantity: 2},
	}
	pay := Payment{Method: MethodCard, Status: PaymentPending, Amount: dec("300")}
	return ord, items, pay
}

func TestPlace_CommitsAllWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord, items, pay := placedFixture()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(55))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE applied_coupons").
		WithArgs(55, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	placed, err := repo.Place(ord, items, pay)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if placed.ID != 55 {
		t.Fatalf("expected order id 55, got %d", placed.ID)
	}
	if len(placed.Items) != 1 || placed.Items[0].OrderID != 55 {
		t.Fatalf("items should carry the new order id, got %+v", placed.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlace_RollsBackOnItemFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord, items, pay := placedFixture()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(55))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := repo.Place(ord, items, pay); err == nil {
		t.Fatal("expected failure to propagate")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlace_TranslatesForeignKeyViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord, items, pay := placedFixture()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(55))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "order_items_product_id_fkey"})
	mock.ExpectRollback()

	_, err = repo.Place(ord, items, pay)
	if !errors.Is(err, ErrBadReference) {
		t.Fatalf("expected ErrBadReference, got %v", err)
	}
	if err == nil || err.Error() == ErrBadReference.Error() {
		t.Fatalf("error should name the offending constraint, got %v", err)
	}
}
