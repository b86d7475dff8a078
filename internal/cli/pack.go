package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/ncgrid/compress"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/store"
)

func newPackCommand(a *app) *cobra.Command {
	var compression string
	cmd := &cobra.Command{
		Use:   "pack IN OUT",
		Short: "Copy a file, compressing the output as a whole",
		Long: `pack copies every dimension, variable, attribute and value of IN to OUT.

Without --compression the algorithm is taken from the extension of OUT, then from
the configuration file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.pack(args[0], args[1], compression)
		},
	}
	cmd.Flags().StringVarP(&compression, "compression", "c", "", "zstd, s2, lz4, gzip or none")

	return cmd
}

func (a *app) pack(in, out, compression string) error {
	ct, err := a.outputCompression(out, compression)
	if err != nil {
		return err
	}

	src, err := a.open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	d, err := store.NewDefinerFrom(src)
	if err != nil {
		return err
	}

	w, err := d.Create(out, store.WithLogger(a.logger), store.WithCompression(ct))
	if err != nil {
		return err
	}

	vars, err := src.Variables()
	if err != nil {
		_ = w.Close()
		return err
	}

	for _, v := range vars {
		arr, err := v.Read()
		if err != nil {
			_ = w.Close()
			return err
		}

		if err := w.Write(v.Name(), arr); err != nil {
			_ = w.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	stats := w.Stats()
	a.logger.Info("packed file",
		zap.String("in", in),
		zap.String("out", out),
		zap.Stringer("compression", ct),
		zap.Int64("original", stats.OriginalSize),
		zap.Int64("compressed", stats.CompressedSize))

	a.printf("%s -> %s (%s)\n", in, out, ct)
	a.printf("variables:  %d\n", len(vars))
	a.printf("original:   %d bytes\n", stats.OriginalSize)
	a.printf("compressed: %d bytes\n", stats.CompressedSize)
	a.printf("ratio:      %.3f\n", stats.CompressionRatio())

	return nil
}

// outputCompression resolves the flag, the output extension, then the config.
func (a *app) outputCompression(out, flag string) (format.CompressionType, error) {
	if flag != "" {
		ct, ok := format.ParseCompression(flag)
		if !ok {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, flag)
		}

		return ct, nil
	}

	if ct := compress.DetectFromPath(out); ct != format.CompressionNone {
		return ct, nil
	}

	return a.cfg.CompressionType(), nil
}
