package repository

import "testing"

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres like operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("PostgreSQL"); got != "ILIKE" {
		t.Fatalf("postgresql like operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite like operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("empty dialect like operator want LIKE got %s", got)
	}
}

func TestDayExprByDialect(t *testing.T) {
	got := dayExprByDialect("sqlite", "orders.created_at")
	want := "CAST(date(orders.created_at) AS TEXT)"
	if got != want {
		t.Fatalf("sqlite day expr want %s got %s", want, got)
	}

	got = dayExprByDialect("postgres", "orders.created_at")
	want = "to_char(orders.created_at, 'YYYY-MM-DD')"
	if got != want {
		t.Fatalf("postgres day expr want %s got %s", want, got)
	}
}

func TestMonthExprByDialect(t *testing.T) {
	got := monthExprByDialect("sqlite", "orders.created_at")
	want := "strftime('%m', orders.created_at)"
	if got != want {
		t.Fatalf("sqlite month expr want %s got %s", want, got)
	}

	got = monthExprByDialect("postgres", "orders.created_at")
	want = "to_char(orders.created_at, 'MM')"
	if got != want {
		t.Fatalf("postgres month expr want %s got %s", want, got)
	}
}

func TestYearExprByDialect(t *testing.T) {
	got := yearExprByDialect("sqlite", "orders.created_at")
	want := "strftime('%Y', orders.created_at)"
	if got != want {
		t.Fatalf("sqlite year expr want %s got %s", want, got)
	}

	got = yearExprByDialect("postgres", "orders.created_at")
	want = "to_char(orders.created_at, 'YYYY')"
	if got != want {
		t.Fatalf("postgres year expr want %s got %s", want, got)
	}
}

func TestDialectExprsDefaultToSQLiteWithoutDB(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db dialect want sqlite got %s", got)
	}
	if got := likeOperator(nil); got != "LIKE" {
		t.Fatalf("nil db like operator want LIKE got %s", got)
	}
	if got := dayExpr(nil, "created_at"); got != "CAST(date(created_at) AS TEXT)" {
		t.Fatalf("nil db day expr unexpected: %s", got)
	}
	if got := monthExpr(nil, "created_at"); got != "strftime('%m', created_at)" {
		t.Fatalf("nil db month expr unexpected: %s", got)
	}
	if got := yearExpr(nil, "created_at"); got != "strftime('%Y', created_at)" {
		t.Fatalf("nil db year expr unexpected: %s", got)
	}
}
