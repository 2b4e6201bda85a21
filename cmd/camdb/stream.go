package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/use-go/camdrv/pkg/core"
)

var streamFlags struct {
	stream  string
	profile int
	codec   string
	res     string
	fps     int
	bitrate int
	gop     int
}

var streamCmd = &cobra.Command{
	Use:   "stream <model>",
	Short: "Preview the requests that open a stream",
	Long: `Preview the requests that open a stream. With --codec the encoder
settings are written before the media request.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cam, _, err := camera(args[0])
		if err != nil {
			return err
		}

		req := core.StreamRequest{Profile: streamFlags.profile}
		var ok bool
		if req.Stream, ok = core.ParseStreamType(streamFlags.stream); !ok {
			return errors.NotValidf("stream %q", streamFlags.stream)
		}
		if streamFlags.codec != "" {
			codec, ok := core.ParseCodec(streamFlags.codec)
			if !ok {
				return errors.NotValidf("codec %q", streamFlags.codec)
			}
			req.ConsiderConfig = true
			req.Config = core.StreamConfig{
				Codec:        codec,
				Resolution:   streamFlags.res,
				Framerate:    streamFlags.fps,
				BitrateMode:  core.BitrateConstant,
				BitrateIndex: streamFlags.bitrate,
				GOP:          streamFlags.gop,
			}
		}

		drv, err := newDriver()
		if err != nil {
			return err
		}
		list, err := drv.GetStream(cam, req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPROTOCOL\tAUTH\tURL")
		for _, r := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Method, r.Protocol, r.Auth, r.URL)
		}
		return w.Flush()
	},
}

func init() {
	f := streamCmd.Flags()
	f.StringVar(&streamFlags.stream, "stream", "main", "main or sub")
	f.IntVar(&streamFlags.profile, "profile", 0, "profile number, 0 picks the stream default")
	f.StringVar(&streamFlags.codec, "codec", "", "write an encoder config with this codec first")
	f.StringVar(&streamFlags.res, "resolution", "1920x1080", "encoder resolution")
	f.IntVar(&streamFlags.fps, "fps", 25, "encoder framerate")
	f.IntVar(&streamFlags.bitrate, "bitrate", 11, "constant bitrate index")
	f.IntVar(&streamFlags.gop, "gop", 50, "key frame interval")
}
