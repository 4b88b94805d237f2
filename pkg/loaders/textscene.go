package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

// defaultRayDepth matches the teacher's sampling default when a scene
// file omits RAY_DEPTH.
const defaultRayDepth = 8

// textSceneParser holds the in-progress scene state while scanning a
// text scene file line by line, mirroring the teacher's pbrt.go scanner
// structure: a bufio.Scanner driving a small parser struct that tracks
// "current primitive" state across lines.
type textSceneParser struct {
	width, height int
	bgColor       core.Color
	camera        scene.Camera
	rayDepth      int
	samples       int

	figures []*core.Primitive
	current *core.Primitive

	// awaitingShape is true immediately after a NEW_PRIMITIVE line; the
	// next non-blank line must be a shape declaration.
	awaitingShape bool
}

func newTextSceneParser() *textSceneParser {
	return &textSceneParser{
		rayDepth: defaultRayDepth,
		samples:  1,
		camera: scene.Camera{
			Right:   core.Vec3{X: 1},
			Up:      core.Vec3{Y: 1},
			Forward: core.Vec3{Z: 1},
			FovX:    1.0,
		},
	}
}

// LoadTextScene opens and parses a text scene file.
func LoadTextScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(FileNotFound, "opening scene file %q: %w", path, err)
	}
	defer f.Close()

	return ParseTextScene(f)
}

// ParseTextScene reads the line-oriented text scene grammar from r.
// Unrecognized commands are logged at Warn and skipped; parsing
// continues to the end of the file.
func ParseTextScene(r io.Reader) (*scene.Scene, error) {
	p := newTextSceneParser()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.processLine(line); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Str("text", line).Msg("skipping scene line")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, newLoadError(Parse, "reading scene file: %w", err)
	}

	return scene.New(p.figures, p.width, p.height, p.camera, p.bgColor, p.rayDepth, p.samples), nil
}

func (p *textSceneParser) processLine(line string) error {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	if p.awaitingShape {
		p.awaitingShape = false
		return p.parseShape(cmd, args)
	}

	switch cmd {
	case "DIMENSIONS":
		w, h, err := parseInt2(args)
		if err != nil {
			return err
		}
		p.width, p.height = w, h

	case "BG_COLOR":
		c, err := parseVec3(args)
		if err != nil {
			return err
		}
		p.bgColor = c

	case "CAMERA_POSITION":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		p.camera.Position = v

	case "CAMERA_RIGHT":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		p.camera.Right = v

	case "CAMERA_UP":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		p.camera.Up = v

	case "CAMERA_FORWARD":
		v, err := parseVec3(args)
		if err != nil {
			return err
		}
		p.camera.Forward = v

	case "CAMERA_FOV_X":
		f, err := parseFloat1(args)
		if err != nil {
			return err
		}
		p.camera.FovX = f

	case "NEW_PRIMITIVE":
		p.awaitingShape = true

	case "POSITION":
		return p.withCurrent(func(prim *core.Primitive) error {
			v, err := parseVec3(args)
			if err != nil {
				return err
			}
			prim.Position = v
			return nil
		})

	case "ROTATION":
		return p.withCurrent(func(prim *core.Primitive) error {
			v, err := parseFloats(args, 4)
			if err != nil {
				return err
			}
			prim.Rotation = core.NewQuat(v[0], v[1], v[2], v[3])
			return nil
		})

	case "COLOR":
		return p.withCurrent(func(prim *core.Primitive) error {
			c, err := parseVec3(args)
			if err != nil {
				return err
			}
			prim.Material.Color = c
			return nil
		})

	case "METALLIC":
		return p.withCurrent(func(prim *core.Primitive) error {
			prim.Material.Kind = core.Metallic
			return nil
		})

	case "DIELECTRIC":
		return p.withCurrent(func(prim *core.Primitive) error {
			prim.Material.Kind = core.Dielectric
			return nil
		})

	case "IOR":
		return p.withCurrent(func(prim *core.Primitive) error {
			f, err := parseFloat1(args)
			if err != nil {
				return err
			}
			prim.Material.IOR = f
			return nil
		})

	case "EMISSION":
		return p.withCurrent(func(prim *core.Primitive) error {
			c, err := parseVec3(args)
			if err != nil {
				return err
			}
			prim.Material.Emission = c
			return nil
		})

	case "RAY_DEPTH":
		n, err := parseInt1(args)
		if err != nil {
			return err
		}
		p.rayDepth = n

	case "SAMPLES":
		n, err := parseInt1(args)
		if err != nil {
			return err
		}
		p.samples = n

	default:
		return newLoadError(UnknownCommand, "unknown command %q", cmd)
	}

	return nil
}

func (p *textSceneParser) withCurrent(fn func(*core.Primitive) error) error {
	if p.current == nil {
		return newLoadError(Parse, "property given with no active primitive")
	}
	return fn(p.current)
}

func (p *textSceneParser) parseShape(kind string, args []string) error {
	prim := &core.Primitive{Rotation: core.IdentityQuat()}

	switch kind {
	case "PLANE":
		n, err := parseVec3(args)
		if err != nil {
			return err
		}
		prim.Kind = core.Plane
		prim.Data = n.Normalize()

	case "ELLIPSOID":
		r, err := parseVec3(args)
		if err != nil {
			return err
		}
		prim.Kind = core.Ellipsoid
		prim.Data = r

	case "BOX":
		half, err := parseVec3(args)
		if err != nil {
			return err
		}
		prim.Kind = core.Box
		prim.Data = half

	case "TRIANGLE":
		v, err := parseFloats(args, 9)
		if err != nil {
			return err
		}
		prim.Kind = core.Triangle
		a := core.Vec3{X: v[0], Y: v[1], Z: v[2]}
		b := core.Vec3{X: v[3], Y: v[4], Z: v[5]}
		c := core.Vec3{X: v[6], Y: v[7], Z: v[8]}
		prim.Data3, prim.Data2, prim.Data = a, b, c

	default:
		return newLoadError(Parse, "unrecognized shape %q after NEW_PRIMITIVE", kind)
	}

	p.figures = append(p.figures, prim)
	p.current = prim
	return nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing number %q: %w", a, err)
		}
		out[i] = f
	}
	return out, nil
}

func parseVec3(args []string) (core.Vec3, error) {
	v, err := parseFloats(args, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseFloat1(args []string) (float64, error) {
	v, err := parseFloats(args, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func parseInt1(args []string) (int, error) {
	f, err := parseFloat1(args)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseInt2(args []string) (int, int, error) {
	v, err := parseFloats(args, 2)
	if err != nil {
		return 0, 0, err
	}
	return int(v[0]), int(v[1]), nil
}
