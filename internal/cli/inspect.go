package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/ncgrid/packing"
	"github.com/arloliu/ncgrid/store"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List dimensions, variables and global attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.inspect(args[0])
		},
	}
}

func (a *app) inspect(path string) error {
	st, err := a.open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	dims, err := st.Dimensions()
	if err != nil {
		return err
	}

	a.printf("file: %s\n\ndimensions:\n", path)
	for _, d := range dims {
		if d.Unlimited {
			a.printf("  %s = UNLIMITED (%d currently)\n", d.Name, d.Length)
		} else {
			a.printf("  %s = %d\n", d.Name, d.Length)
		}
	}

	vars, err := st.Variables()
	if err != nil {
		return err
	}

	a.printf("\nvariables:\n")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tTYPE\tDIMENSIONS\tSHAPE\tFACTOR\tCHECKSUM")
	for _, v := range vars {
		factor, err := v.Factor(packing.DefaultMissing())
		if err != nil {
			return err
		}

		arr, err := v.Read()
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "  %s\t%s\t(%s)\t%v\t%s\t%016x\n",
			v.Name(), v.DataType(), strings.Join(v.Dimensions(), ", "), v.Shape(), factor, arr.Checksum())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	globals, err := st.GlobalAttributes()
	if err != nil {
		return err
	}

	a.printf("\nglobal attributes:\n")
	for _, attr := range globals {
		a.printf("  %s = %s\n", attr.Name(), attributeText(attr))
	}

	return nil
}

func attributeText(attr store.Attribute) string {
	if attr.IsString() {
		return fmt.Sprintf("%q", attr.StringValue())
	}

	return attr.StringValue()
}
