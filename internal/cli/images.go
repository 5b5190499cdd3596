package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Codingworld786/ecommerce-fullstack/internal/media"
)

func NewImagesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Prepare product images",
	}
	cmd.AddCommand(newImagesOptimizeCommand(rootOpts))
	return cmd
}

func newImagesOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	var src, dst string
	var width uint

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Shrink product images to a maximum width",
		Long: `Resize every JPEG and PNG image in --src to at most --width pixels wide
and write it under the same name into --dst. Other files are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if src == "" || dst == "" {
				return NewExitError(ExitCommandError, "--src and --dst are required")
			}
			res, err := media.OptimizeDir(src, dst, width)
			if err != nil {
				return WrapExitError(ExitFailure, "optimize images", err)
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Optimized %d image(s), skipped %d file(s)\n", len(res.Optimized), len(res.Skipped))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&src, "src", "", "directory of original images")
	cmd.Flags().StringVar(&dst, "dst", "static/images/products", "output directory")
	cmd.Flags().UintVar(&width, "width", media.DefaultMaxWidth, "maximum width in pixels")
	return cmd
}
