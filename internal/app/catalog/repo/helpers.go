package repo

import (
	"math/big"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// moneyScale is the decimal precision used when reading NUMERIC columns.
const moneyScale = 9

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func stringPtr(ns spanner.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.StringVal
	return &v
}

func numericFromDecimal(d decimal.Decimal) spanner.NullNumeric {
	return spanner.NullNumeric{Numeric: *d.Rat(), Valid: true}
}

func decimalFromNumeric(n spanner.NullNumeric) decimal.Decimal {
	rat := new(big.Rat).Set(&n.Numeric)
	return decimal.NewFromBigRat(rat, moneyScale)
}

func nullJSON(v interface{}) spanner.NullJSON {
	if v == nil {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: v, Valid: true}
}

// dirtyWithPrefix reports whether a field or any of its dotted sub-keys is
// dirty. Map-shaped aggregate fields track per-entry ("attributes.<id>") but
// persist as one JSON column.
func dirtyWithPrefix(changes *domain.ChangeTracker, field string) bool {
	for _, f := range changes.DirtyFields() {
		if f == field || strings.HasPrefix(f, field+".") {
			return true
		}
	}
	return false
}
