package cmd

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dendrascience/utilkit/console"
	"github.com/dendrascience/utilkit/netutil"
)

// NewDownloadCmd creates the download subcommand.
func NewDownloadCmd() *cobra.Command {
	var (
		output  string
		timeout time.Duration
		rateStr string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "download URL...",
		Short: "Download URLs to local files",
		Long: `Download each URL once, without retrying. With a single URL --output
names the destination file; with several it names a directory. By default
files are named after the last URL path element.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []netutil.Option{
				netutil.WithTimeout(timeout),
				netutil.WithLogger(logger),
			}
			if rateStr != "" {
				bps, err := humanize.ParseBytes(rateStr)
				if err != nil {
					return fmt.Errorf("invalid --rate %q: %w", rateStr, err)
				}
				opts = append(opts, netutil.WithRateLimit(int(bps)))
			}
			con := console.New(cmd.OutOrStdout())
			if !quiet && len(args) == 1 {
				opts = append(opts, netutil.WithProgress(con.Progress))
			}
			dl := netutil.NewDownloader(opts...)

			if len(args) == 1 {
				dest := output
				if dest == "" {
					dest = nameFromURL(args[0])
				}
				n, err := dl.Download(cmd.Context(), args[0], dest)
				if err != nil {
					return err
				}
				con.Success("%s (%s)", dest, humanize.IBytes(uint64(n)))
				return nil
			}

			jobs := make([]netutil.Job, len(args))
			for i, u := range args {
				jobs[i] = netutil.Job{URL: u, Dest: filepath.Join(output, nameFromURL(u))}
			}
			if err := dl.DownloadAll(cmd.Context(), jobs, 4); err != nil {
				return err
			}
			con.Success("downloaded %d files", len(jobs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, or directory for several URLs")
	cmd.Flags().DurationVar(&timeout, "timeout", netutil.DefaultTimeout, "Timeout for each download")
	cmd.Flags().StringVar(&rateStr, "rate", "", "Limit the transfer rate, for example 512KiB")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")

	return cmd
}

// nameFromURL picks a local file name from the last path element of raw.
func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "download"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}
