package cmd

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/geom"
	"github.com/dendrascience/utilkit/svg"
)

// NewSVGCmd creates the svg command with small drawing demos.
func NewSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Draw simple SVG documents",
	}
	cmd.AddCommand(newSVGGridCmd(), newSVGRectCmd())
	return cmd
}

func newSVGGridCmd() *cobra.Command {
	var (
		cols, rows int
		size, gap  float64
		rotate     float64
		out        string
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Draw a grid of coloured cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cols <= 0 || rows <= 0 || size <= 0 {
				return fmt.Errorf("--cols, --rows and --size must be positive")
			}
			doc := drawGrid(cols, rows, size, gap, rotate)
			return writeSVG(cmd, doc, out)
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 8, "Number of columns")
	cmd.Flags().IntVar(&rows, "rows", 8, "Number of rows")
	cmd.Flags().Float64Var(&size, "size", 20, "Cell size in pixels")
	cmd.Flags().Float64Var(&gap, "gap", 2, "Gap between cells in pixels")
	cmd.Flags().Float64Var(&rotate, "rotate", 0, "Rotate each cell about its centre, in degrees")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

// drawGrid lays out cols x rows cells, shading them along a hue gradient.
func drawGrid(cols, rows int, size, gap, rotate float64) *svg.Element {
	step := size + gap
	width := float64(cols)*step + gap
	height := float64(rows)*step + gap
	doc := svg.Document(width, height)
	doc.Add(svg.Rect(geom.Rect(0, 0, width, height)).Fill(color.White))

	cells := svg.Group().ID("cells").StrokeWidth(0.5).Stroke(color.Black)
	theta := rotate * math.Pi / 180
	n := cols * rows
	for i := range n {
		r := geom.Rect(gap+float64(i%cols)*step, gap+float64(i/cols)*step, size, size)
		hue := 360 * float64(i) / float64(n)
		cell := svg.Rect(r).Fill(colorful.Hsv(hue, 0.6, 0.9))
		if theta != 0 {
			cell.Transform(geom.RotationAbout(theta, r.Center()))
		}
		cells.Add(cell)
	}
	return doc.Add(cells)
}

func newSVGRectCmd() *cobra.Command {
	var (
		width, height float64
		fill, stroke  string
		out           string
	)

	cmd := &cobra.Command{
		Use:   "rect",
		Short: "Draw a single rectangle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := colorful.Hex(fill)
			if err != nil {
				return fmt.Errorf("invalid --fill: %w", err)
			}
			s, err := colorful.Hex(stroke)
			if err != nil {
				return fmt.Errorf("invalid --stroke: %w", err)
			}
			doc := svg.Document(width, height)
			doc.Add(svg.Rect(geom.Rect(0, 0, width, height).Inset(2, 2)).Fill(f).Stroke(s).StrokeWidth(2))
			return writeSVG(cmd, doc, out)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 100, "Width in pixels")
	cmd.Flags().Float64Var(&height, "height", 60, "Height in pixels")
	cmd.Flags().StringVar(&fill, "fill", "#4080c0", "Fill colour as #rrggbb")
	cmd.Flags().StringVar(&stroke, "stroke", "#000000", "Stroke colour as #rrggbb")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

func writeSVG(cmd *cobra.Command, doc *svg.Element, out string) error {
	if out == "" {
		_, err := doc.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := doc.SaveFile(out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
