package shell

import (
	"errors"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex/encoding/ink"
)

// LoadGesture reads a gesture file, trying the binary ink format
// first and falling back to json.
func LoadGesture(path string) (ink.Gesture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var g ink.Gesture
	if err := g.UnmarshalBinary(data); err == nil {
		return g, nil
	}
	return ink.FromJSON(data)
}

func loadCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "load",
		Help: "load a gesture file, binary or json",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing gesture file"))
				return
			}

			name := c.Args[0]
			gesture, err := LoadGesture(name)
			if err != nil {
				c.Err(err)
				return
			}

			ctx.Gesture = gesture
			ctx.Source = name
			c.Printf("loaded %d stroke(s), %d point(s)\n", len(gesture), ink.PointCount(gesture))
		},
	}
}
