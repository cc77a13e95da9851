package shell

import (
	"errors"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex/export"
)

func exportCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "export",
		Help: "export the loaded gesture as pdf",
		Func: func(c *ishell.Context) {
			if len(ctx.Gesture) == 0 {
				c.Err(errors.New("no gesture loaded"))
				return
			}

			outputName := defaultOutput(ctx.Source, "pdf")
			if len(c.Args) > 0 {
				outputName = c.Args[0]
			}

			if err := export.GesturePDF(ctx.Gesture, outputName); err != nil {
				c.Err(err)
				return
			}

			c.Printf("exported to %s\n", outputName)
		},
	}
}
