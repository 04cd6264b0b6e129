// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms lit, textured scene geometry.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader applies ambient and point lighting to the texture.
//
//go:embed scene.frag
var SceneFragmentShader string
