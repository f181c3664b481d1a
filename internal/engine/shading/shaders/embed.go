// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader transforms surface vertices and forwards the raw
// position, normal and texture coordinate to the fragment stage.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFragmentShader shades a fragment with three diffuse point lights
// over the red channel of the bound texture.
//
//go:embed surface.frag
var SurfaceFragmentShader string
