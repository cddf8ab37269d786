// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "github.com/lib/pq/oid"

// familyOids maps each family onto the Postgres type OID that the execution
// engine reports to clients. TINYINT has no Postgres counterpart and is
// widened to int2 on the wire.
var familyOids = [NumFamilies]oid.Oid{
	UnknownFamily:   oid.T_unknown,
	BoolFamily:      oid.T_bool,
	TinyIntFamily:   oid.T_int2,
	SmallIntFamily:  oid.T_int2,
	IntFamily:       oid.T_int4,
	BigIntFamily:    oid.T_int8,
	RealFamily:      oid.T_float4,
	DoubleFamily:    oid.T_float8,
	DecimalFamily:   oid.T_numeric,
	DateFamily:      oid.T_date,
	TimeFamily:      oid.T_time,
	TimestampFamily: oid.T_timestamp,
	CharFamily:      oid.T_bpchar,
	VarCharFamily:   oid.T_varchar,
}

// Oid returns the type's Postgres OID.
func (t *T) Oid() oid.Oid {
	return familyOids[t.family]
}

// FamilyForOid returns the family that is reported with the given OID. The
// second return value is false for OIDs that no family uses.
func FamilyForOid(o oid.Oid) (Family, bool) {
	if o == oid.T_int2 {
		return SmallIntFamily, true
	}
	for fam, famOid := range familyOids {
		if famOid == o {
			return Family(fam), true
		}
	}
	return UnknownFamily, false
}
