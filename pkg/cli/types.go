// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/lib/pq/oid"
	"github.com/olekukonko/tablewriter"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "list the type families and their compile-time properties",
	Long: `
Prints one row per type family: its precedence when combined with other
families, the Postgres type it is reported as, its default width, and the
runtime interface and native kind its values use.
`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

var typesColumns = []string{"family", "precedence", "oid", "max width", "interface", "native"}

func runTypes(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(typesColumns)
	nRows := 0
	for fam := types.Family(0); fam < types.NumFamilies; fam++ {
		typ := types.MakeScalar(fam, true)
		tc := typecomp.Get(fam)
		native := "-"
		if k, ok := tc.PrimitiveKind(); ok {
			native = k.String()
		}
		table.Append([]string{
			fam.Name(),
			strconv.Itoa(fam.Precedence()),
			oid.TypeName[typ.Oid()],
			strconv.Itoa(int(typ.MaxWidth())),
			tc.InterfaceName(),
			native,
		})
		nRows++
	}
	table.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", nRows)
	return err
}
