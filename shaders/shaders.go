package shaders

import (
	_ "embed"
)

//go:embed effect.wgsl
var EffectWGSL string

//go:embed text.wgsl
var TextWGSL string
