package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/rs/zerolog/log"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

// emissiveStrengthExt is the KHR_materials_emissive_strength extension
// key, read directly from the material's Extensions map since the
// qmuntal/gltf base types predate that extension.
const emissiveStrengthExt = "KHR_materials_emissive_strength"

// LoadGLTF loads a glTF 2.0 document (external buffers resolved relative
// to path, as gltf.Open already does) and converts its supported subset
// — meshes, PBR materials, node hierarchy, and a perspective camera —
// into a *scene.Scene.
func LoadGLTF(path string, width, height, rayDepth, samples int) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, newLoadError(FileNotFound, "opening glTF document %q: %w", path, err)
	}
	return convertDocument(doc, width, height, rayDepth, samples)
}

func convertDocument(doc *gltf.Document, width, height, rayDepth, samples int) (*scene.Scene, error) {
	materials := make([]core.Material, len(doc.Materials))
	for i, m := range doc.Materials {
		materials[i] = convertMaterial(m)
	}

	var figures []*core.Primitive
	var cam scene.Camera
	haveCamera := false

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < len(doc.Scenes) {
		for _, idx := range doc.Scenes[sceneIdx].Nodes {
			walkNode(doc, int(idx), core.IdentityTransform(), materials, &figures, &cam, &haveCamera)
		}
	}

	if !haveCamera {
		cam = scene.Camera{
			Position: core.Vec3{Z: -1},
			Right:    core.Vec3{X: 1},
			Up:       core.Vec3{Y: 1},
			Forward:  core.Vec3{Z: 1},
			FovX:     1.0,
		}
	}

	return scene.New(figures, width, height, cam, core.Color{}, rayDepth, samples), nil
}

func walkNode(doc *gltf.Document, nodeIdx int, parent core.Transform, materials []core.Material, figures *[]*core.Primitive, cam *scene.Camera, haveCamera *bool) {
	node := doc.Nodes[nodeIdx]
	local := nodeLocalTransform(node)
	world := core.Compose(parent, local)

	if node.Mesh != nil {
		*figures = append(*figures, meshTriangles(doc, doc.Meshes[*node.Mesh], world, materials)...)
	}

	if node.Camera != nil {
		*cam = cameraFromNode(doc.Cameras[*node.Camera], world)
		*haveCamera = true
	}

	for _, child := range node.Children {
		walkNode(doc, int(child), world, materials, figures, cam, haveCamera)
	}
}

// identityMatrix16 is the column-major identity matrix, the JSON default
// gltf.Node.UnmarshalJSON pre-seeds Matrix with before decoding. A node
// that omits "matrix" entirely still decodes to this value, not the Go
// zero value; comparing against the zero [16]float64{} here would take
// the matrix branch for every TRS-only node and silently discard its
// Translation/Rotation/Scale. An all-zero Matrix (a node literal built
// without going through JSON) is not an affine transform and is treated
// as absent as well.
var identityMatrix16 = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func nodeLocalTransform(node *gltf.Node) core.Transform {
	if node.Matrix != identityMatrix16 && node.Matrix != ([16]float64{}) {
		return core.NewTransformFromColumnMajor16(node.Matrix)
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	translation := core.Vec3{X: t[0], Y: t[1], Z: t[2]}
	rotation := core.NewQuat(r[0], r[1], r[2], r[3])
	scale := core.Vec3{X: s[0], Y: s[1], Z: s[2]}
	return core.NewTRS(translation, rotation, scale)
}

// meshTriangles flattens a mesh's triangle primitives into world-space
// core.Primitive values, applying world to every vertex so the resulting
// Primitive carries an identity instance transform — gltf transforms are
// baked into vertex positions rather than mapped onto Position/Rotation,
// since a node's transform may include non-uniform scale and skew the
// rigid-body assumption core.Primitive's Position+Rotation model makes.
func meshTriangles(doc *gltf.Document, mesh *gltf.Mesh, world core.Transform, materials []core.Material) []*core.Primitive {
	var out []*core.Primitive

	for _, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			log.Warn().Int("mode", int(prim.Mode)).Msg("skipping non-triangle glTF primitive")
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			log.Warn().Err(err).Msg("skipping glTF primitive with unreadable positions")
			continue
		}
		for i := range positions {
			positions[i] = world.Apply(positions[i])
		}

		mat := core.Material{Kind: core.Diffuse, Color: core.Color{X: 1, Y: 1, Z: 1}}
		if prim.Material != nil {
			mat = materials[*prim.Material]
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				log.Warn().Err(err).Msg("skipping glTF primitive with unreadable indices")
				continue
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a := positions[indices[i]]
			b := positions[indices[i+1]]
			c := positions[indices[i+2]]
			out = append(out, &core.Primitive{
				Kind:     core.Triangle,
				Rotation: core.IdentityQuat(),
				Material: mat,
				Data3:    a,
				Data2:    b,
				Data:     c,
			})
		}
	}

	return out
}

func convertMaterial(m *gltf.Material) core.Material {
	color := core.Color{X: 1, Y: 1, Z: 1}
	metallic := 1.0
	alpha := 1.0
	if m.PBRMetallicRoughness != nil {
		pbr := m.PBRMetallicRoughness
		if pbr.BaseColorFactor != nil {
			bc := *pbr.BaseColorFactor
			color = core.Color{X: float64(bc[0]), Y: float64(bc[1]), Z: float64(bc[2])}
			alpha = float64(bc[3])
		}
		if pbr.MetallicFactor != nil {
			metallic = float64(*pbr.MetallicFactor)
		}
	}

	emission := core.Color{
		X: float64(m.EmissiveFactor[0]),
		Y: float64(m.EmissiveFactor[1]),
		Z: float64(m.EmissiveFactor[2]),
	}
	if ext, ok := m.Extensions[emissiveStrengthExt]; ok {
		if strength, ok := extractEmissiveStrength(ext); ok {
			emission = emission.Multiply(strength)
		}
	}

	return core.MaterialFromAlphaMetallic(color, emission, alpha, metallic, 1.5)
}

func extractEmissiveStrength(ext any) (float64, bool) {
	m, ok := ext.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m["emissiveStrength"].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

func cameraFromNode(cam *gltf.Camera, world core.Transform) scene.Camera {
	fovY := 0.8
	aspect := 1.0
	if cam.Perspective != nil {
		fovY = float64(cam.Perspective.Yfov)
		if cam.Perspective.AspectRatio != nil {
			aspect = float64(*cam.Perspective.AspectRatio)
		}
	}
	fovX := 2 * math.Atan(math.Tan(fovY/2)*aspect)

	return scene.Camera{
		Position: world.Apply(core.Vec3{}),
		Right:    world.ApplyDirection(core.Vec3{X: 1}).Normalize(),
		Up:       world.ApplyDirection(core.Vec3{Y: 1}).Normalize(),
		Forward:  world.ApplyDirection(core.Vec3{Z: -1}).Normalize(),
		FovX:     fovX,
	}
}

func readPositions(doc *gltf.Document, accessorIdx uint32) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("POSITION accessor is not VEC3")
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("POSITION accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[view.Buffer].Data

	stride := view.ByteStride
	if stride == 0 {
		stride = 12
	}
	start := view.ByteOffset + accessor.ByteOffset

	out := make([]core.Vec3, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = core.Vec3{
			X: float64(readFloat32(buf[off:])),
			Y: float64(readFloat32(buf[off+4:])),
			Z: float64(readFloat32(buf[off+8:])),
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx uint32) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("index accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[view.Buffer].Data
	start := view.ByteOffset + accessor.ByteOffset

	switch accessor.ComponentType {
	case gltf.ComponentUshort:
		stride := view.ByteStride
		if stride == 0 {
			stride = 2
		}
		out := make([]int, accessor.Count)
		for i := range out {
			off := start + i*stride
			out[i] = int(uint16(buf[off]) | uint16(buf[off+1])<<8)
		}
		return out, nil
	case gltf.ComponentUint:
		stride := view.ByteStride
		if stride == 0 {
			stride = 4
		}
		out := make([]int, accessor.Count)
		for i := range out {
			off := start + i*stride
			out[i] = int(uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24)
		}
		return out, nil
	default:
		return nil, newLoadError(UnsupportedGLTF, "unsupported index component type %v", accessor.ComponentType)
	}
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
