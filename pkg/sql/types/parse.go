// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strconv"
	"strings"

	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
)

var typNameLiterals = map[string]Family{
	"NULL":              UnknownFamily,
	"BOOLEAN":           BoolFamily,
	"BOOL":              BoolFamily,
	"TINYINT":           TinyIntFamily,
	"SMALLINT":          SmallIntFamily,
	"INT":               IntFamily,
	"INTEGER":           IntFamily,
	"BIGINT":            BigIntFamily,
	"REAL":              RealFamily,
	"FLOAT":             DoubleFamily,
	"DOUBLE":            DoubleFamily,
	"DOUBLE PRECISION":  DoubleFamily,
	"DECIMAL":           DecimalFamily,
	"DEC":               DecimalFamily,
	"NUMERIC":           DecimalFamily,
	"DATE":              DateFamily,
	"TIME":              TimeFamily,
	"TIMESTAMP":         TimestampFamily,
	"CHAR":              CharFamily,
	"CHARACTER":         CharFamily,
	"VARCHAR":           VarCharFamily,
	"CHAR VARYING":      VarCharFamily,
	"CHARACTER VARYING": VarCharFamily,
}

// Parse parses the SQL rendering of a type, as produced by SQLString. The
// accepted form is
//
//	name [ '(' n [ ',' m ] ')' ] [ NOT NULL ]
//
// Types are nullable unless NOT NULL is given.
func Parse(s string) (*T, error) {
	str := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	nullable := true
	if rest, ok := strings.CutSuffix(str, " NOT NULL"); ok {
		str, nullable = rest, false
	}

	name, args := str, ""
	if i := strings.IndexByte(str, '('); i >= 0 {
		if !strings.HasSuffix(str, ")") {
			return nil, pgerror.Newf(pgcode.Syntax, "malformed type %q", s)
		}
		name, args = strings.TrimSpace(str[:i]), str[i+1:len(str)-1]
	}
	fam, ok := typNameLiterals[name]
	if !ok {
		return nil, pgerror.Newf(pgcode.UndefinedObject, "type %q does not exist", name)
	}

	var params []int32
	if args != "" {
		for _, a := range strings.Split(args, ",") {
			n, err := strconv.ParseInt(strings.TrimSpace(a), 10, 32)
			if err != nil || n < 0 {
				return nil, pgerror.Newf(pgcode.Syntax, "invalid type parameter %q in %q", a, s)
			}
			params = append(params, int32(n))
		}
	}

	switch fam {
	case DecimalFamily:
		if len(params) > 2 {
			return nil, pgerror.Newf(pgcode.Syntax, "too many parameters for %s", name)
		}
		prec, scale := int32(DefaultDecimalPrecision), int32(DefaultDecimalScale)
		if len(params) > 0 {
			prec = params[0]
		}
		if len(params) > 1 {
			scale = params[1]
		}
		if prec == 0 || prec > GetLimits().MaxDecimalPrecisionScale {
			return nil, pgerror.Newf(pgcode.Syntax,
				"precision %d for %s is out of range", prec, name)
		}
		if scale > prec {
			return nil, pgerror.Newf(pgcode.Syntax,
				"scale %d for %s exceeds precision %d", scale, name, prec)
		}
		return MakeDecimal(prec, scale, nullable), nil
	case CharFamily, VarCharFamily:
		if len(params) > 1 {
			return nil, pgerror.Newf(pgcode.Syntax, "too many parameters for %s", name)
		}
		width := int32(1)
		if fam == VarCharFamily {
			width = MaxVarCharLength
		}
		if len(params) == 1 {
			width = params[0]
		}
		if fam == CharFamily {
			if width < 1 || width > MaxCharLength {
				return nil, pgerror.Newf(pgcode.Syntax, "length %d for %s is out of range", width, name)
			}
			return MakeChar(width, nullable), nil
		}
		if width < 1 || width > MaxVarCharLength {
			return nil, pgerror.Newf(pgcode.Syntax, "length %d for %s is out of range", width, name)
		}
		return MakeVarChar(width, nullable), nil
	default:
		if len(params) > 0 {
			return nil, pgerror.Newf(pgcode.Syntax, "type %s does not take parameters", name)
		}
		return MakeScalar(fam, nullable), nil
	}
}
