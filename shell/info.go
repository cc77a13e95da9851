package shell

import (
	"errors"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex/encoding/ink"
	"github.com/jotspot/inktex/preprocess"
)

func infoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "info",
		Help: "show geometry of the loaded gesture",
		Func: func(c *ishell.Context) {
			if len(ctx.Gesture) == 0 {
				c.Err(errors.New("no gesture loaded"))
				return
			}

			box, _ := ink.BoundingBox(ctx.Gesture)
			c.Printf("source: %s\n", ctx.Source)
			c.Printf("strokes: %d\n", len(ctx.Gesture))
			c.Printf("points: %d\n", ink.PointCount(ctx.Gesture))
			c.Printf("bounding box: %.1f x %.1f\n", box.Width(), box.Height())
			c.Printf("path length: %.1f\n", ink.PathLength(ctx.Gesture))

			if preprocess.IsMeaningful(ctx.Gesture) {
				c.Println("meaningful: yes")
			} else {
				c.Println("meaningful: no, recognition would skip it")
			}
		},
	}
}
