package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vijaybala/invoice-tracker/internal/common"
)

func TestMapSaveErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "invoices_natural_key"}
	err := mapSaveError(fmt.Errorf("exec: %w", pgErr))
	if !errors.Is(err, common.ErrDuplicateInvoice) {
		t.Fatalf("err = %v, want ErrDuplicateInvoice", err)
	}
}

func TestMapSaveErrorOtherPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502"} // not_null_violation
	err := mapSaveError(pgErr)
	if errors.Is(err, common.ErrDuplicateInvoice) {
		t.Fatal("only unique violations may map to the duplicate sentinel")
	}
	if !errors.Is(err, common.ErrDatabase) {
		t.Fatal("non-duplicate storage failures must carry ErrDatabase")
	}
	var got *pgconn.PgError
	if !errors.As(err, &got) {
		t.Fatal("the original pg error must stay in the chain")
	}
}

func TestMapSaveErrorPlainError(t *testing.T) {
	base := errors.New("connection reset")
	err := mapSaveError(base)
	if errors.Is(err, common.ErrDuplicateInvoice) {
		t.Fatal("plain errors must not map to the duplicate sentinel")
	}
	if !errors.Is(err, common.ErrDatabase) {
		t.Fatal("non-duplicate storage failures must carry ErrDatabase")
	}
	if !errors.Is(err, base) {
		t.Fatal("the original error must stay in the chain")
	}
}
