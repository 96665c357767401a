package main

import (
	"os"

	"github.com/urfave/cli"

	"brdf-viewer/log"
)

var logger = log.New("cmd")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "brdf-viewer"
	app.Usage = "inspect models under an interactive microfacet BRDF"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "dir, d",
			Usage: "directory to load models from (default \"models\")",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML file overriding the built-in settings",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "window width",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "window height",
		},
		cli.BoolFlag{
			Name:  "per-object",
			Usage: "keep separate shading parameters for each model",
		},
		cli.BoolFlag{
			Name:  "all",
			Usage: "draw every model side by side",
		},
		cli.StringSliceFlag{
			Name:  "primitive, p",
			Value: &cli.StringSlice{},
			Usage: "add a built-in shape (sphere, torus); may be repeated",
		},
		cli.BoolFlag{
			Name:  "watch",
			Usage: "load, reload and drop models as files change in the model directory",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = Run
	return app
}

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	switch {
	case ctx.Bool("vv"):
		verbosity = 2
	case ctx.Bool("v"):
		verbosity = 1
	}
	log.SetLevel(log.ForVerbosity(verbosity))
}
