package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// loadLitShader returns the directional light + ambient shader shared by every
// primitive kind. Vertex attributes match raylib's generated meshes.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// Wireframe and translucent draws use the same program; alpha comes from colDiffuse.
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

var (
	ambientColor = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor   = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// setLitShaderUniforms uploads the per-frame light and camera terms. Values are
// copied into local arrays before crossing cgo.
func (r *Renderer) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := ambientColor
	col := lightColor
	setVec := func(name string, v []float32, typ rl.ShaderUniformDataType) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, 1)
		}
	}
	setVec("viewPos", viewPos[:], rl.ShaderUniformVec3)
	setVec("lightDir", lightDir[:], rl.ShaderUniformVec3)
	setVec("ambient", amb[:], rl.ShaderUniformVec4)
	setVec("lightColor", col[:], rl.ShaderUniformVec3)
	setVec("lightIntensity", []float32{lightIntensity}, rl.ShaderUniformFloat)
	setVec("specularPower", []float32{specularPower}, rl.ShaderUniformFloat)
	setVec("specularStrength", []float32{specularStrength}, rl.ShaderUniformFloat)
}
