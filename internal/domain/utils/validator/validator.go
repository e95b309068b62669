// Package validator holds the caller-side argument checks the services
// run before touching the repositories. Field semantics beyond these
// bounds (budget cover, referential integrity) are enforced by the
// storage layer itself.
package validator

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// positions are the recognized position codes; empty means unset.
var positions = map[string]struct{}{
	"GK":  {},
	"DEF": {},
	"MID": {},
	"FWD": {},
}

func EntityID(id string) bool {
	return id != "" && utf8.RuneCountInString(id) <= 100
}

func DisplayName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= 100
}

func Position(position string) bool {
	if position == "" {
		return true
	}
	_, ok := positions[position]
	return ok
}

func Age(age int) bool {
	return age >= 0 && age <= 100
}

func Amount(amount decimal.Decimal) bool {
	return !amount.IsNegative()
}
