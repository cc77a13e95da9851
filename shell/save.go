package shell

import (
	"errors"
	"os"

	"github.com/abiosoft/ishell"
)

func saveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "save",
		Help: "save the loaded gesture in the binary ink format",
		Func: func(c *ishell.Context) {
			if len(ctx.Gesture) == 0 {
				c.Err(errors.New("no gesture loaded"))
				return
			}

			outputName := defaultOutput(ctx.Source, "ink")
			if len(c.Args) > 0 {
				outputName = c.Args[0]
			}

			data, err := ctx.Gesture.MarshalBinary()
			if err != nil {
				c.Err(err)
				return
			}
			if err := os.WriteFile(outputName, data, 0644); err != nil {
				c.Err(err)
				return
			}

			c.Printf("saved to %s\n", outputName)
		},
	}
}
