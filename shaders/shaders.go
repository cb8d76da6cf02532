package shaders

import (
	_ "embed"
)

//go:embed sprite.wgsl
var SpriteWGSL string
