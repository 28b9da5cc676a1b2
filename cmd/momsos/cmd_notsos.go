// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/momsos/poly"
)

func newNotSosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "not-sos",
		Short: "Show that the Motzkin polynomial is not SOS while (x²+y²)·Motzkin is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.driver()
			if err != nil {
				return err
			}
			m := poly.Motzkin()
			r2, err := poly.NormSq(m.Arity())
			if err != nil {
				return err
			}
			weighted, err := poly.Multiply(r2, m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range []struct {
				name string
				p    *poly.Polynomial[poly.Real]
			}{
				{"motzkin", m},
				{"(x^2+y^2)*motzkin", weighted},
			} {
				check, err := d.IsSos(cmd.Context(), c.p)
				if err != nil {
					return fmt.Errorf("%s: %w", c.name, err)
				}
				fmt.Fprintf(out, "%s: %s\n", c.name, check)
			}

			return nil
		},
	}
}
