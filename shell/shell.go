// Package shell is an interactive console around a Recognizer, for
// trying gestures and tuning decode settings without writing code.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/jotspot/inktex"
	"github.com/jotspot/inktex/encoding/ink"
)

// ShellCtxt carries the state shared by all commands.
type ShellCtxt struct {
	Recognizer *inktex.Recognizer
	Mode       inktex.Mode
	BeamWidth  int
	Gesture    ink.Gesture
	Source     string
}

func (ctx *ShellCtxt) prompt() string {
	return fmt.Sprintf("[%s]>", ctx.Mode)
}

func defaultOutput(source, ext string) string {
	if source == "" {
		return "gesture." + ext
	}
	nameOnly := strings.TrimSuffix(source, filepath.Ext(source))
	return nameOnly + "." + ext
}

// RunShell starts the console. When args are given they are executed
// as a single command line instead of entering interactive mode.
func RunShell(r *inktex.Recognizer, args []string) error {
	shell := ishell.New()

	ctx := &ShellCtxt{
		Recognizer: r,
		Mode:       inktex.ModeAuto,
	}

	shell.Println("inktex interactive console, type 'help' for a list of commands")
	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(loadCmd(ctx))
	shell.AddCmd(infoCmd(ctx))
	shell.AddCmd(recognizeCmd(ctx))
	shell.AddCmd(modeCmd(ctx))
	shell.AddCmd(beamCmd(ctx))
	shell.AddCmd(exportCmd(ctx))
	shell.AddCmd(saveCmd(ctx))

	if len(args) > 0 {
		return shell.Process(args...)
	}

	shell.Run()
	return nil
}
