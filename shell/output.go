package shell

import (
	"encoding/json"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex"
)

func displayResultJSON(c *ishell.Context, res *inktex.Result) error {
	output, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	c.Println(string(output))
	return nil
}
