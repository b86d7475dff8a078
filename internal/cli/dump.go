package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newDumpCommand(a *app) *cobra.Command {
	f := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   "dump FILE VARIABLE",
		Short: "Print the decoded values of a variable, one grid row per line",
		Example: `  ncgrid dump rain.nc.gz rainfall --time 0 --invert
  ncgrid dump obs.nc temperature --station 3 --preset grid`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.dump(args[0], args[1], f)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func (a *app) dump(path, name string, f *decodeFlags) error {
	st, err := a.open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	v, err := st.FindVariable(name)
	if err != nil {
		return err
	}

	out, err := a.decodeVariable(v, f)
	if err != nil {
		return err
	}

	for _, s := range out.strings {
		a.printf("%s\n", s)
	}

	for _, b := range out.blocks {
		if b.label != "" {
			a.printf("# %s\n", b.label)
		}

		row := make([]string, 0, b.cols)
		for i, value := range b.values {
			row = append(row, value.String())
			if (i+1)%b.cols == 0 || i == len(b.values)-1 {
				a.printf("%s\n", strings.Join(row, " "))
				row = row[:0]
			}
		}
	}

	return nil
}
