package shell

import (
	"context"
	"errors"
	"flag"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex"
)

func recognizeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "recognize",
		Help: "recognize the loaded gesture, or a given file, as latex",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("recognize", flag.ContinueOnError)
			jsonOutput := flagSet.Bool("j", false, "print the full result as json")

			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			gesture := ctx.Gesture
			if rest := flagSet.Args(); len(rest) > 0 {
				var err error
				gesture, err = LoadGesture(rest[0])
				if err != nil {
					c.Err(err)
					return
				}
			}
			if len(gesture) == 0 {
				c.Err(errors.New("no gesture loaded"))
				return
			}

			opts := []inktex.RecognizeOption{inktex.WithMode(ctx.Mode)}
			if ctx.BeamWidth > 0 {
				opts = append(opts, inktex.WithBeamWidth(ctx.BeamWidth))
			}

			res, err := ctx.Recognizer.Recognize(context.Background(), gesture, opts...)
			if err != nil {
				c.Err(err)
				return
			}

			if *jsonOutput {
				if err := displayResultJSON(c, res); err != nil {
					c.Err(err)
				}
				return
			}

			if res.LaTeX == "" {
				c.Println("no expression recognized")
				return
			}
			c.Println(res.LaTeX)
		},
	}
}
