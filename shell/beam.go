package shell

import (
	"errors"
	"strconv"

	"github.com/abiosoft/ishell"
)

func beamCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "beam",
		Help: "show or set the beam width, 0 means the configured default",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Println(ctx.BeamWidth)
				return
			}

			width, err := strconv.Atoi(c.Args[0])
			if err != nil || width < 0 {
				c.Err(errors.New("beam width must be a non-negative number"))
				return
			}

			ctx.BeamWidth = width
			c.Println("OK")
		},
	}
}
