package shell

import (
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex"
)

func modeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "mode",
		Help: "show or set the recognition mode: auto, number",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Println(string(ctx.Mode))
				return
			}

			switch m := inktex.Mode(c.Args[0]); m {
			case inktex.ModeAuto, inktex.ModeNumber:
				ctx.Mode = m
			default:
				c.Err(fmt.Errorf("unknown mode: %s", c.Args[0]))
				return
			}

			c.SetPrompt(ctx.prompt())
		},
	}
}
