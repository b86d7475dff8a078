package cli

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/ncgrid/grid"
)

func newStatsCommand(a *app) *cobra.Command {
	f := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   "stats FILE VARIABLE",
		Short: "Summarize the non-missing decoded values of a variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.stats(args[0], args[1], f)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func (a *app) stats(path, name string, f *decodeFlags) error {
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

	s := grid.Summarize(out.values(), out.missing)
	a.printf("variable: %s\n", name)
	a.printf("count:    %d\n", s.Count)
	a.printf("missing:  %d\n", s.Missing)
	a.printf("min:      %g\n", s.Min)
	a.printf("max:      %g\n", s.Max)
	a.printf("mean:     %g\n", s.Mean)
	a.printf("stddev:   %g\n", s.StdDev)
	a.printf("sum:      %g\n", s.Sum)

	return nil
}
