package glbuild

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

const VersionStr = "#version 430\n"

// Shader stores information for automatically generating SDF GLSL functions.
type Shader interface {
	// AppendShaderName appends the name of the GL shader function
	// to the buffer and returns the result. It should be unique to that shader.
	AppendShaderName(b []byte) []byte
	// AppendShaderBody appends the body of the shader function to the
	// buffer and returns the result.
	AppendShaderBody(b []byte) []byte
}

// Shader3D can create SDF shader source code for an arbitrary 3D shape.
type Shader3D interface {
	Shader
	// ForEachChild iterats over the Shader3D's direct Shader3D children.
	// Unary operations have one child i.e: Translate, Onion.
	// Binary operations have two children i.e: Union, Intersection, Difference.
	ForEachChild(userData any, fn func(userData any, s *Shader3D) error) error
	// Bounds returns the Shader3D's bounding box where the SDF is negative.
	Bounds() ms3.Box
}

// Shader2D can create SDF shader source code for an arbitrary 2D shape.
type Shader2D interface {
	Shader
	// ForEach2DChild iterats over the Shader2D's direct Shader2D children.
	// Unary operations have one child i.e: Translate, Rotate.
	// Binary operations have two children i.e: Union, Intersection, Difference.
	ForEach2DChild(userData any, fn func(userData any, s *Shader2D) error) error
	// Bounds returns the Shader2D's bounding box where the SDF is negative.
	Bounds() ms2.Box
}

// shader3D2D can create SDF shader source code for a operation that receives 2D
// shaders to generate a 3D shape.
type shader3D2D interface {
	Shader3D
	ForEach2DChild(userData any, fn func(userData any, s *Shader2D) error) error
}

// Uniform names shared by all fragment programs written by [Programmer].
const (
	UniformResolution = "uResolution" // vec2: framebuffer size in pixels.
	UniformTime       = "uTime"       // float: seconds since start.
	UniformCursor     = "uCursor"     // vec2: cursor in centered coordinates.
	UniformEye        = "uEye"        // vec3: camera position.
	UniformTarget     = "uTarget"     // vec3: camera look-at point.
	UniformFocal      = "uFocal"      // float: focal length, 0.5/tan(fov/2).
	UniformLight      = "uLight"      // vec3: unit direction towards the light.
)

// Programmer implements shader generation logic for Shader type.
type Programmer struct {
	scratchNodes []Shader
	scratch      []byte
	// names maps shader names to body hashes for checking duplicates.
	names map[uint64]uint64

	maxSteps    int
	maxDist     float32
	surfEps     float32
	normalEps   float32
	ambient     float32
	shadowSharp float32
}

// NewDefaultProgrammer returns a Programmer with reasonable default parameters
// for ray marching scenes of around unit size.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratchNodes: make([]Shader, 64),
		scratch:      make([]byte, 1024), // Max length of shader token is around 1024..1060 characters.
		names:        make(map[uint64]uint64),
		maxSteps:     160,
		maxDist:      100,
		surfEps:      1e-3,
		normalEps:    0.01,
		ambient:      0.1,
		shadowSharp:  8,
	}
}

// SetMarchLimits sets the sphere tracing budget baked into ray marching programs.
func (p *Programmer) SetMarchLimits(maxSteps int, maxDist, surfaceEpsilon float32) {
	if maxSteps < 1 || maxDist <= 0 || surfaceEpsilon <= 0 {
		panic("invalid ray march limits")
	}
	p.maxSteps = maxSteps
	p.maxDist = maxDist
	p.surfEps = surfaceEpsilon
}

// SetShading sets the normal estimation step, ambient light floor and soft shadow
// sharpness baked into ray marching programs.
func (p *Programmer) SetShading(normalEps, ambient, shadowSharpness float32) {
	if normalEps <= 0 || ambient < 0 || ambient > 1 || shadowSharpness <= 0 {
		panic("invalid shading parameters")
	}
	p.normalEps = normalEps
	p.ambient = ambient
	p.shadowSharp = shadowSharpness
}

//go:embed frag2d_footer.glsl
var frag2DFooter []byte

//go:embed raymarch_footer.glsl
var raymarchFooter []byte

// WriteFragSDF2 writes a complete fragment program to w that visualizes the
// distance field of obj, colouring the inside and outside with distance bands
// and drawing the distance at the cursor as a circle.
func (p *Programmer) WriteFragSDF2(w io.Writer, obj Shader2D) (n int, err error) {
	n, err = io.WriteString(w, VersionStr)
	if err != nil {
		return n, err
	}
	ngot, err := fmt.Fprintf(w, "\nuniform vec2 %s;\nuniform float %s;\nuniform vec2 %s;\n\n",
		UniformResolution, UniformTime, UniformCursor)
	n += ngot
	if err != nil {
		return n, err
	}
	baseName, ngot, err := p.WriteSDFDecl(w, obj)
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = io.WriteString(w, "\nfloat sdf(vec2 p) { return "+baseName+"(p); }\n\n")
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = w.Write(frag2DFooter)
	n += ngot
	return n, err
}

// WriteFragRaymarchSDF3 writes a complete fragment program to w that sphere
// traces obj from a camera, estimating normals by central differences and
// shading with a directional light, soft shadows and an ambient floor.
func (p *Programmer) WriteFragRaymarchSDF3(w io.Writer, obj Shader3D) (n int, err error) {
	n, err = io.WriteString(w, VersionStr)
	if err != nil {
		return n, err
	}
	var hdr []byte
	hdr = append(hdr, '\n')
	hdr = appendUniform(hdr, "vec2", UniformResolution)
	hdr = appendUniform(hdr, "float", UniformTime)
	hdr = appendUniform(hdr, "vec2", UniformCursor)
	hdr = appendUniform(hdr, "vec3", UniformEye)
	hdr = appendUniform(hdr, "vec3", UniformTarget)
	hdr = appendUniform(hdr, "float", UniformFocal)
	hdr = appendUniform(hdr, "vec3", UniformLight)
	hdr = append(hdr, '\n')
	hdr = AppendDefineDecl(hdr, "MAX_STEPS", strconv.Itoa(p.maxSteps))
	hdr = AppendDefineDecl(hdr, "MAX_DIST", string(AppendFloat(nil, '-', '.', p.maxDist)))
	hdr = AppendDefineDecl(hdr, "SURF_EPS", string(AppendFloat(nil, '-', '.', p.surfEps)))
	hdr = AppendDefineDecl(hdr, "NORMAL_EPS", string(AppendFloat(nil, '-', '.', p.normalEps)))
	hdr = AppendDefineDecl(hdr, "AMBIENT", string(AppendFloat(nil, '-', '.', p.ambient)))
	hdr = AppendDefineDecl(hdr, "SHADOW_K", string(AppendFloat(nil, '-', '.', p.shadowSharp)))
	hdr = append(hdr, '\n')
	ngot, err := w.Write(hdr)
	n += ngot
	if err != nil {
		return n, err
	}
	baseName, ngot, err := p.WriteSDFDecl(w, obj)
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = io.WriteString(w, "\nfloat sdf(vec3 p) { return "+baseName+"(p); }\n\n")
	n += ngot
	if err != nil {
		return n, err
	}
	ngot, err = w.Write(raymarchFooter)
	n += ngot
	return n, err
}

func appendUniform(b []byte, typename, name string) []byte {
	b = append(b, "uniform "...)
	b = append(b, typename...)
	b = append(b, ' ')
	b = append(b, name...)
	return append(b, ";\n"...)
}

// WriteSDFDecl writes the SDF shader function declarations and returns the top-level SDF function name.
func (p *Programmer) WriteSDFDecl(w io.Writer, s Shader) (baseName string, n int, err error) {
	baseName, nodes, err := ParseAppendNodes(p.scratchNodes[:0], s)
	if err != nil {
		return "", 0, err
	}
	n, err = p.writeShaders(w, nodes)
	if err != nil {
		return "", n, err
	}
	return baseName, n, nil
}

func (p *Programmer) writeShaders(w io.Writer, nodes []Shader) (n int, err error) {
	clear(p.names)
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		var name, body []byte
		p.scratch, name, body = AppendShaderSource(p.scratch[:0], node)
		nameHash := hash(name, 0)
		bodyHash := hash(body, nameHash) // Body hash mixes name as well.
		gotBodyHash, nameConflict := p.names[nameHash]
		if nameConflict {
			// Name already exists in tree, check if bodies are identical.
			if bodyHash == gotBodyHash {
				continue // Shader already written and is identical, skip.
			}
			return n, fmt.Errorf("duplicate %T shader name %q w/ body:\n%s", unwraproot(node), name, body)
		}
		p.names[nameHash] = bodyHash
		ngot, err := w.Write(p.scratch)
		n += ngot
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

const shorteningBufsize = 1024

// ShortenNames3D rewrites names of shaders in the tree longer than maxRewriteLen
// so that the generated GLSL stays under driver identifier length limits.
func ShortenNames3D(root *Shader3D, maxRewriteLen int) error {
	scratch := make([]byte, shorteningBufsize)
	rewrite3 := func(a any, s3 *Shader3D) error {
		scratch = rewriteName3(s3, scratch, maxRewriteLen)
		return nil
	}
	rewrite2 := func(a any, s2 *Shader2D) error {
		scratch = rewriteName2(s2, scratch, maxRewriteLen)
		return nil
	}
	err := forEachNodeBFS(*root, rewrite3, rewrite2)
	if err != nil {
		return err
	}
	return rewrite3(nil, root)
}

// ShortenNames2D is the 2D version of [ShortenNames3D].
func ShortenNames2D(root *Shader2D, maxRewriteLen int) error {
	scratch := make([]byte, shorteningBufsize)
	rewrite3 := func(a any, s3 *Shader3D) error {
		scratch = rewriteName3(s3, scratch, maxRewriteLen)
		return nil
	}
	rewrite2 := func(a any, s2 *Shader2D) error {
		scratch = rewriteName2(s2, scratch, maxRewriteLen)
		return nil
	}
	err := forEachNodeBFS(*root, rewrite3, rewrite2)
	if err != nil {
		return err
	}
	return rewrite2(nil, root)
}

func rewriteName3(s3 *Shader3D, scratch []byte, rewritelen int) []byte {
	sd3 := *s3
	if _, ok := sd3.(*nameOverloadShader3D); ok {
		return scratch // Already overloaded.
	}
	name, scratch := makeShortname(sd3, scratch, rewritelen)
	if name == nil {
		return scratch
	}
	*s3 = &nameOverloadShader3D{Shader: sd3, name: name}
	return scratch
}

func rewriteName2(s2 *Shader2D, scratch []byte, rewritelen int) []byte {
	sd2 := *s2
	if _, ok := sd2.(*nameOverloadShader2D); ok {
		return scratch // Already overloaded.
	}
	name, scratch := makeShortname(sd2, scratch, rewritelen)
	if name == nil {
		return scratch
	}
	*s2 = &nameOverloadShader2D{Shader: sd2, name: name}
	return scratch
}

// makeShortname returns a name truncated to rewritelen and suffixed with a hash of the full name and body.
func makeShortname(s Shader, scratch []byte, rewritelen int) (newNameOrNil []byte, newScratch []byte) {
	var h uint64 = 0xff51afd7ed558ccd
	scratch = s.AppendShaderName(scratch[:0])
	if len(scratch) < rewritelen {
		return nil, scratch // Already short name, no need to rewrite.
	}
	newName := append([]byte{}, scratch[:rewritelen]...)
	h = hash(scratch, h)
	scratch = s.AppendShaderBody(scratch[:0])
	h = hash(scratch, h)
	newName = strconv.AppendUint(newName, h, 32)
	return newName, scratch
}

// ParseAppendNodes parses the shader object tree and appends all nodes in Breadth First order
// to the dst Shader argument buffer and returns the result.
func ParseAppendNodes(dst []Shader, root Shader) (baseName string, nodes []Shader, err error) {
	if root == nil {
		return "", nil, errors.New("nil shader object")
	}
	baseName = string(root.AppendShaderName([]byte{}))
	if baseName == "" {
		return "", nil, errors.New("empty shader name")
	}
	dst, err = AppendAllNodes(dst, root)
	if err != nil {
		return "", nil, err
	}
	return baseName, dst, nil
}

// AppendShaderSource appends the GL code of a single shader to the dst byte buffer.  If dst's
// capacity is grown during the writing the buffer with augmented capacity is returned. If not the same input dst is returned.
// name and body byte slices pointing to the result buffer are also returned for convenience.
func AppendShaderSource(dst []byte, s Shader) (result, name, body []byte) {
	dst = append(dst, "float "...)
	nameStart := len(dst)
	dst = s.AppendShaderName(dst)
	nameEnd := len(dst)
	_, is3D := s.(Shader3D)
	if is3D {
		dst = append(dst, "(vec3 p){\n"...)
	} else {
		dst = append(dst, "(vec2 p){\n"...)
	}
	bodyStart := len(dst)
	dst = s.AppendShaderBody(dst)
	bodyEnd := len(dst)
	dst = append(dst, "\n}\n"...)
	return dst, dst[nameStart:nameEnd], dst[bodyStart:bodyEnd]
}

// AppendAllNodes BFS iterates over all of root's descendants and appends all nodes
// found to dst.
//
// To generate shaders one must iterate over nodes in reverse order to ensure
// the first iterated nodes are the nodes with no dependencies on other nodes.
func AppendAllNodes(dst []Shader, root Shader) ([]Shader, error) {
	children := []Shader{root}
	add3 := func(userData any, s *Shader3D) error {
		children = append(children, *s)
		return nil
	}
	add2 := func(userData any, s *Shader2D) error {
		children = append(children, *s)
		return nil
	}
	err := forEachNodeBFS(root, add3, add2)
	if err != nil {
		return nil, err
	}
	dst = append(dst, children...)
	return dst, nil
}

func forEachNodeBFS(root Shader, fn3 func(userData any, s3 *Shader3D) error, fn2 func(userData any, s2 *Shader2D) error) error {
	var userData any
	children := []Shader{root}
	nextChild := 0
	nilChild := errors.New("got nil child in shader tree")
	for len(children[nextChild:]) > 0 {
		newChildren := children[nextChild:]
		for _, obj := range newChildren {
			nextChild++
			obj3, ok3 := obj.(Shader3D)
			obj2, ok2 := obj.(Shader2D)
			if !ok2 && !ok3 {
				return fmt.Errorf("found shader %T that does not implement Shader3D nor Shader2D", obj)
			}
			var err error
			if ok3 {
				err = obj3.ForEachChild(userData, func(userData any, s *Shader3D) error {
					if s == nil || *s == nil {
						return nilChild
					}
					children = append(children, *s)
					return fn3(userData, s)
				})
				if obj32, ok32 := obj.(shader3D2D); ok32 && err == nil {
					// The Shader3D obj contains Shader2D children, such is case for 2D->3D operations i.e: extrusion.
					err = obj32.ForEach2DChild(userData, func(userData any, s *Shader2D) error {
						if s == nil || *s == nil {
							return nilChild
						}
						children = append(children, *s)
						return fn2(userData, s)
					})
				}
			}
			if err == nil && !ok3 && ok2 {
				err = obj2.ForEach2DChild(userData, func(userData any, s *Shader2D) error {
					if s == nil || *s == nil {
						return nilChild
					}
					children = append(children, *s)
					return fn2(userData, s)
				})
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func forEachNodeDFS(obj Shader, fnEnter, fnExit func(s Shader) error) (err error) {
	obj3, ok3 := obj.(Shader3D)
	obj2, ok2 := obj.(Shader2D)
	if !ok2 && !ok3 {
		return fmt.Errorf("found shader %T that does not implement Shader3D nor Shader2D", obj)
	}
	err = fnEnter(obj)
	if err != nil {
		return err
	}
	if ok3 {
		err = obj3.ForEachChild(nil, func(userData any, s *Shader3D) error {
			return forEachNodeDFS(*s, fnEnter, fnExit)
		})
		if obj32, ok32 := obj.(shader3D2D); ok32 && err == nil {
			err = obj32.ForEach2DChild(nil, func(userData any, s *Shader2D) error {
				return forEachNodeDFS(*s, fnEnter, fnExit)
			})
		}
	} else {
		err = obj2.ForEach2DChild(nil, func(userData any, s *Shader2D) error {
			return forEachNodeDFS(*s, fnEnter, fnExit)
		})
	}
	if err != nil {
		return err
	}
	return fnExit(obj)
}

func countDirectChildren(obj Shader) (directChildren int) {
	count3 := func(userData any, s *Shader3D) error {
		directChildren++
		return nil
	}
	count2 := func(userData any, s *Shader2D) error {
		directChildren++
		return nil
	}
	if obj3, ok := obj.(Shader3D); ok {
		obj3.ForEachChild(nil, count3)
		if obj32, ok := obj.(shader3D2D); ok {
			obj32.ForEach2DChild(nil, count2)
		}
	} else if obj2, ok := obj.(Shader2D); ok {
		obj2.ForEach2DChild(nil, count2)
	}
	return directChildren
}

// FormatShader returns a compact textual representation of the tree
// such as "smoothUnion(circle,translate2D(rect))".
func FormatShader(sh Shader) string {
	if sh == nil {
		panic("nil shader")
	}
	prevWasPrimitive := false
	var sb strings.Builder
	err := forEachNodeDFS(sh, func(s Shader) error {
		if prevWasPrimitive {
			sb.WriteByte(',')
		}
		prevWasPrimitive = false
		tp := reflect.TypeOf(unwraproot(s))
		if tp.Kind() == reflect.Pointer {
			tp = tp.Elem()
		}
		sb.WriteString(tp.Name())
		if countDirectChildren(s) != 0 {
			sb.WriteByte('(')
		}
		return nil
	}, func(s Shader) error {
		isPrimitive := countDirectChildren(s) == 0
		if !isPrimitive {
			sb.WriteByte(')')
		}
		prevWasPrimitive = true
		return nil
	})
	if err != nil {
		return err.Error()
	}
	return sb.String()
}

func AppendDefineDecl(b []byte, aliasToDefine, aliasReplace string) []byte {
	b = append(b, "#define "...)
	b = append(b, aliasToDefine...)
	b = append(b, ' ')
	b = append(b, aliasReplace...)
	b = append(b, '\n')
	return b
}

// AppendDistanceDecl appends a float declaration assigned the result of
// calling s's function with the GLSL position expression as argument.
func AppendDistanceDecl(b []byte, floatVarname, sdfPositionArgInput string, s Shader) []byte {
	b = append(b, "float "...)
	b = append(b, floatVarname...)
	b = append(b, '=')
	b = s.AppendShaderName(b)
	b = append(b, '(')
	b = append(b, sdfPositionArgInput...)
	b = append(b, ");\n"...)
	return b
}

func AppendVec3Decl(b []byte, vec3Varname string, v ms3.Vec) []byte {
	b = append(b, "vec3 "...)
	b = append(b, vec3Varname...)
	b = append(b, "=vec3("...)
	b = AppendFloats(b, ',', '-', '.', v.X, v.Y, v.Z)
	b = append(b, ')', ';', '\n')
	return b
}

func AppendVec2Decl(b []byte, vec2Varname string, v ms2.Vec) []byte {
	b = append(b, "vec2 "...)
	b = append(b, vec2Varname...)
	b = append(b, "=vec2("...)
	b = AppendFloats(b, ',', '-', '.', v.X, v.Y)
	b = append(b, ')', ';', '\n')
	return b
}

func AppendFloatDecl(b []byte, floatVarname string, v float32) []byte {
	b = append(b, "float "...)
	b = append(b, floatVarname...)
	b = append(b, '=')
	b = AppendFloat(b, '-', '.', v)
	b = append(b, ';', '\n')
	return b
}

func AppendIntDecl(b []byte, intVarname string, v int) []byte {
	b = append(b, "int "...)
	b = append(b, intVarname...)
	b = append(b, '=')
	b = strconv.AppendInt(b, int64(v), 10)
	b = append(b, ';', '\n')
	return b
}

const decimalDigits = 9

// AppendFloat appends v with a fixed number of decimals and trailing zeros trimmed.
// neg and decimal replace the minus sign and decimal point, which lets
// callers embed numbers in identifiers, i.e: AppendFloat(b, 'n', 'p', -1.5) appends "n1p5".
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	// Finally trim zeroes.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

func AppendFloats(b []byte, sep, neg, decimal byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, neg, decimal, v)
		if sep != 0 && i != len(s)-1 {
			b = append(b, sep)
		}
	}
	return b
}

// XYZBits selects a set of the x, y and z axes.
type XYZBits uint8

const (
	xBit XYZBits = 1 << iota
	yBit
	zBit
)

func (xyz XYZBits) X() bool { return xyz&xBit != 0 }
func (xyz XYZBits) Y() bool { return xyz&yBit != 0 }
func (xyz XYZBits) Z() bool { return xyz&zBit != 0 }

func NewXYZBits(x, y, z bool) XYZBits {
	return XYZBits(b2i(x) | b2i(y)<<1 | b2i(z)<<2)
}

func (xyz XYZBits) AppendMapped(b []byte, Map [3]byte) []byte {
	if xyz.X() {
		b = append(b, Map[0])
	}
	if xyz.Y() {
		b = append(b, Map[1])
	}
	if xyz.Z() {
		b = append(b, Map[2])
	}
	return b
}

func (xyz XYZBits) AppendMapped_XYZ(b []byte) []byte {
	return xyz.AppendMapped(b, [3]byte{'X', 'Y', 'Z'})
}

func (xyz XYZBits) AppendMapped_xyz(b []byte) []byte {
	return xyz.AppendMapped(b, [3]byte{'x', 'y', 'z'})
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mirrors of gleval.SDF3 and gleval.SDF2 interfaces to avoid cyclic dependencies.
type (
	sdf3 interface {
		Evaluate(pos []ms3.Vec, dist []float32, userData any) error
	}
	sdf2 interface {
		Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	}
)

type nameOverloadShader3D struct {
	Shader Shader3D
	name   []byte
}

func (nos3 *nameOverloadShader3D) Bounds() ms3.Box { return nos3.Shader.Bounds() }

func (nos3 *nameOverloadShader3D) ForEachChild(userData any, fn func(userData any, s *Shader3D) error) error {
	return nos3.Shader.ForEachChild(userData, fn)
}

func (nos3 *nameOverloadShader3D) AppendShaderBody(b []byte) []byte {
	return nos3.Shader.AppendShaderBody(b)
}

// ForEach2DChild calls the underlying Shader's ForEach2DChild. This method is called for 3D shapes that
// use 2D shaders such as extrusion.
func (nos3 *nameOverloadShader3D) ForEach2DChild(userData any, fn func(userData any, s *Shader2D) error) (err error) {
	s2, ok := nos3.Shader.(shader3D2D)
	if ok {
		err = s2.ForEach2DChild(userData, fn)
	}
	return err
}

// Evaluate implements the gleval.SDF3 interface.
func (nos3 *nameOverloadShader3D) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	sdf, ok := nos3.Shader.(sdf3)
	if !ok {
		return fmt.Errorf("%T does not implement gleval.SDF3", nos3.Shader)
	}
	return sdf.Evaluate(pos, dist, userData)
}

func (nos3 *nameOverloadShader3D) AppendShaderName(b []byte) []byte {
	return append(b, nos3.name...)
}

func (nos3 *nameOverloadShader3D) unwrap() Shader { return nos3.Shader }

type nameOverloadShader2D struct {
	Shader Shader2D
	name   []byte
}

func (nos2 *nameOverloadShader2D) Bounds() ms2.Box { return nos2.Shader.Bounds() }

func (nos2 *nameOverloadShader2D) ForEach2DChild(userData any, fn func(userData any, s *Shader2D) error) error {
	return nos2.Shader.ForEach2DChild(userData, fn)
}

func (nos2 *nameOverloadShader2D) AppendShaderName(b []byte) []byte {
	return append(b, nos2.name...)
}

func (nos2 *nameOverloadShader2D) AppendShaderBody(b []byte) []byte {
	return nos2.Shader.AppendShaderBody(b)
}

// Evaluate implements the gleval.SDF2 interface.
func (nos2 *nameOverloadShader2D) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	sdf, ok := nos2.Shader.(sdf2)
	if !ok {
		return fmt.Errorf("%T does not implement gleval.SDF2", nos2.Shader)
	}
	return sdf.Evaluate(pos, dist, userData)
}

func (nos2 *nameOverloadShader2D) unwrap() Shader { return nos2.Shader }

func hash(b []byte, in uint64) uint64 {
	x := in
	for len(b) >= 8 {
		x ^= binary.LittleEndian.Uint64(b)
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
		b = b[8:]
	}
	if len(b) > 0 {
		var buf [8]byte
		copy(buf[:], b)
		x ^= binary.LittleEndian.Uint64(buf[:])
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
	}
	return x
}

func unwraproot(s Shader) Shader {
	i := 0
	var sbase Shader
	for s != nil && i < 6 {
		sbase = s
		s = unwrap(s)
		i++
	}
	return sbase
}

func unwrap(s Shader) Shader {
	if unwrapper, ok := s.(interface{ unwrap() Shader }); ok {
		return unwrapper.unwrap()
	}
	return nil
}
