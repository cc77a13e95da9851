package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jotspot/inktex"
	"github.com/jotspot/inktex/config"
	"github.com/jotspot/inktex/executor/remote"
	"github.com/jotspot/inktex/export"
	"github.com/jotspot/inktex/shell"
)

func main() {
	inputName := flag.String("i", "", "gesture file to recognize, omit to start the interactive shell")
	outputName := flag.String("o", "", "output filename")
	configFile := flag.String("c", "", "config file")
	serviceURL := flag.String("s", "http://localhost:8475", "executor service url")
	mode := flag.String("m", string(inktex.ModeAuto), "recognition mode: auto or number")
	extract := flag.String("e", "", "export instead of recognizing, p - pdf")
	flag.Parse()
	var err error

	switch *extract {

	case "p":
		err = exportPdf(*inputName, *outputName)
	case "":
		err = run(*inputName, *outputName, *configFile, *serviceURL, *mode, flag.Args())
	default:
		err = fmt.Errorf("unknown export format: %s", *extract)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputName, outputName, configFile, serviceURL, mode string, args []string) error {
	ctx := context.Background()

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return err
		}
	}

	client, err := remote.NewClient(serviceURL)
	if err != nil {
		return err
	}

	r, err := inktex.New(ctx, client, cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if inputName == "" {
		return shell.RunShell(r, args)
	}

	m := inktex.Mode(mode)
	if m != inktex.ModeAuto && m != inktex.ModeNumber {
		return fmt.Errorf("unknown mode: %s", mode)
	}

	gesture, err := shell.LoadGesture(inputName)
	if err != nil {
		return err
	}

	res, err := r.Recognize(ctx, gesture, inktex.WithMode(m))
	if err != nil {
		return err
	}

	if outputName != "" {
		return os.WriteFile(outputName, []byte(res.LaTeX+"\n"), 0644)
	}

	fmt.Println(res.LaTeX)
	return nil
}

func exportPdf(inputName, outputName string) error {
	if inputName == "" {
		return errors.New("missing input file")
	}

	if outputName == "" {
		nameOnly := strings.TrimSuffix(inputName, filepath.Ext(inputName))
		outputName = nameOnly + ".pdf"
	}

	gesture, err := shell.LoadGesture(inputName)
	if err != nil {
		return err
	}

	return export.GesturePDF(gesture, outputName)
}
