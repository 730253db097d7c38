package graphics

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// skyboxPaths are tried in order so the backdrop is found from the repo root or cmd/corebell.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

const skyboxScale = 1000

// skybox draws an image around the camera. A 2:1 image is sampled as an
// equirectangular panorama by the panorama shader; anything else is loaded
// as a cubemap strip or cross.
type skybox struct {
	path      string
	panorama  bool
	ready     bool
	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	camPosLoc int32
	texLoc    int32
}

// findSkybox returns the first existing skybox image, or nil.
func findSkybox() *skybox {
	for _, p := range skyboxPaths {
		if _, err := os.Stat(p); err == nil {
			return &skybox{path: p}
		}
	}
	return nil
}

// load allocates GPU resources. It runs on the first draw, after the window exists,
// and reports whether the skybox can be drawn.
func (s *skybox) load() bool {
	if s.ready {
		return true
	}
	if s.path == "" {
		return false
	}
	path := s.path
	s.path = ""
	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return false
	}
	defer rl.UnloadImage(img)

	aspect := float32(img.Width) / float32(img.Height)
	s.panorama = aspect >= 1.8 && aspect <= 2.2
	s.mtl = rl.LoadMaterialDefault()
	if s.panorama {
		s.tex = rl.LoadTextureFromImage(img)
		shader := rl.LoadShaderFromMemory(panoramaVS, panoramaFS)
		if !rl.IsTextureValid(s.tex) || !rl.IsShaderValid(shader) {
			return false
		}
		s.mtl.Shader = shader
		s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
		s.texLoc = rl.GetShaderLocation(shader, "skybox")
	} else {
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		if !rl.IsTextureValid(s.tex) {
			return false
		}
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.ready = true
	return true
}

// draw renders a large cube centered on the camera without writing depth.
func (s *skybox) draw(cam rl.Camera3D) {
	if !s.load() {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	defer func() {
		rl.EnableBackfaceCulling()
		rl.EnableDepthMask()
	}()
	p := cam.Position
	if s.panorama {
		if s.camPosLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{p.X, p.Y, p.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	world := rl.MatrixMultiply(rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale), rl.MatrixTranslate(p.X, p.Y, p.Z))
	rl.DrawMesh(s.mesh, s.mtl, world)
}

// The panorama shader maps the view direction to longitude/latitude.
const (
	panoramaVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 worldPos;
void main() {
  vec4 p = matModel * vec4(vertexPosition, 1.0);
  worldPos = p.xyz;
  gl_Position = matProjection * matView * p;
}
`
	panoramaFS = `#version 330
in vec3 worldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
const float PI = 3.14159265359;
void main() {
  vec3 d = normalize(worldPos - cameraPosition);
  vec2 uv = vec2(atan(d.z, d.x) / (2.0 * PI) + 0.5, 0.5 - asin(clamp(d.y, -1.0, 1.0)) / PI);
  finalColor = texture(skybox, uv);
}
`
)
