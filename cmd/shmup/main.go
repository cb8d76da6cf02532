package main

import (
	"flag"

	"github.com/gekko3d/shmup"
)

func main() {
	atlas := flag.String("atlas", "assets/shmup.atlas", "atlas manifest path")
	width := flag.Int("width", 800, "window width")
	height := flag.Int("height", 600, "window height")
	seed := flag.Int64("seed", 0, "simulation seed, 0 for time-based")
	debug := flag.Bool("debug", false, "verbose logging")
	noAudio := flag.Bool("no-audio", false, "disable sound effects")
	flag.Parse()

	builder := shmup.NewAppBuilder().
		UseModule(
			shmup.LoggingModule{Prefix: "shmup", Debug: *debug},
			shmup.AssetServerModule{},
			shmup.NewPlatformWindow(*width, *height, "Shmup"),
			shmup.InputModule{},
			shmup.TimeModule{},
			shmup.GameModule{AtlasPath: *atlas, Seed: *seed},
			shmup.RenderModule{},
		)
	if !*noAudio {
		builder.UseModule(shmup.AudioModule{})
	}

	builder.Build().Run()
}
