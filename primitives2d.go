package shaderart

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/shaderart/glbuild"
)

func appendVec2Name(b []byte, vecs ...ms2.Vec) []byte {
	for i, v := range vecs {
		if i > 0 {
			b = append(b, '_')
		}
		b = glbuild.AppendFloats(b, '_', 'n', 'p', v.X, v.Y)
	}
	return b
}

type circle2D struct {
	r float32
}

// NewCircle creates a circle of a radius centered at the origin (x,y)=(0,0).
func (bld *Builder) NewCircle(radius float32) glbuild.Shader2D {
	if badDim(radius) {
		bld.shapeErrorf("bad circle radius: %g", radius)
	}
	return &circle2D{r: radius}
}

func (c *circle2D) Bounds() ms2.Box {
	r := c.r
	return ms2.NewBox(-r, -r, r, r)
}

func (c *circle2D) AppendShaderName(b []byte) []byte {
	b = append(b, "circle"...)
	b = glbuild.AppendFloat(b, 'n', 'p', c.r)
	return b
}

func (c *circle2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", c.r)
	b = append(b, "return length(p)-r;"...)
	return b
}

func (c *circle2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type rect2D struct {
	d ms2.Vec
}

// NewRectangle creates a rectangle centered at (x,y)=(0,0) with given x and y dimensions.
func (bld *Builder) NewRectangle(x, y float32) glbuild.Shader2D {
	if badDim(x) || badDim(y) {
		bld.shapeErrorf("bad rectangle dimension")
	}
	return &rect2D{d: ms2.Vec{X: x, Y: y}}
}

func (c *rect2D) Bounds() ms2.Box {
	return ms2.NewBox(-c.d.X/2, -c.d.Y/2, c.d.X/2, c.d.Y/2)
}

func (c *rect2D) AppendShaderName(b []byte) []byte {
	b = append(b, "rect"...)
	return appendVec2Name(b, c.d)
}

func (c *rect2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "b", ms2.Scale(0.5, c.d))
	b = append(b, `vec2 d=abs(p)-b;
return length(max(d,0.0))+min(max(d.x,d.y),0.0);`...)
	return b
}

func (c *rect2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type roundRect2D struct {
	d ms2.Vec
	r float32
}

// NewRoundedRectangle creates a rectangle of outer dimensions x and y with
// corners rounded by radius round.
func (bld *Builder) NewRoundedRectangle(x, y, round float32) glbuild.Shader2D {
	if badDim(x) || badDim(y) {
		bld.shapeErrorf("bad rounded rectangle dimension")
	}
	if round < 0 || 2*round > math32.Min(x, y) {
		bld.shapeErrorf("bad rounded rectangle rounding %g for dimensions %gx%g", round, x, y)
	}
	return &roundRect2D{d: ms2.Vec{X: x, Y: y}, r: round}
}

func (c *roundRect2D) Bounds() ms2.Box {
	return ms2.NewBox(-c.d.X/2, -c.d.Y/2, c.d.X/2, c.d.Y/2)
}

func (c *roundRect2D) AppendShaderName(b []byte) []byte {
	b = append(b, "roundrect"...)
	b = appendVec2Name(b, c.d)
	b = append(b, 'r')
	return glbuild.AppendFloat(b, 'n', 'p', c.r)
}

func (c *roundRect2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "b", ms2.AddScalar(-c.r, ms2.Scale(0.5, c.d)))
	b = glbuild.AppendFloatDecl(b, "r", c.r)
	b = append(b, `vec2 d=abs(p)-b;
return length(max(d,0.0))+min(max(d.x,d.y),0.0)-r;`...)
	return b
}

func (c *roundRect2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type segment2D struct {
	a, b ms2.Vec
}

// NewSegment2D creates the zero-thickness line segment between a and b.
// Its distance field is unsigned.
func (bld *Builder) NewSegment2D(a, b ms2.Vec) glbuild.Shader2D {
	if ms2.Norm2(ms2.Sub(b, a)) < epstol*epstol {
		bld.shapeErrorf("degenerate segment %v-%v", a, b)
	}
	return &segment2D{a: a, b: b}
}

func (s *segment2D) Bounds() ms2.Box {
	return ms2.Box{Min: ms2.MinElem(s.a, s.b), Max: ms2.MaxElem(s.a, s.b)}
}

func (s *segment2D) AppendShaderName(b []byte) []byte {
	b = append(b, "segment"...)
	return appendVec2Name(b, s.a, s.b)
}

func (s *segment2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "a", s.a)
	b = glbuild.AppendVec2Decl(b, "b", s.b)
	b = append(b, `vec2 pa=p-a, ba=b-a;
float h=clamp(dot(pa,ba)/dot(ba,ba),0.0,1.0);
return length(pa-ba*h);`...)
	return b
}

func (s *segment2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type capsule2D struct {
	a, b ms2.Vec
	r    float32
}

// NewCapsule2D creates the set of points within radius of the segment a-b.
func (bld *Builder) NewCapsule2D(a, b ms2.Vec, radius float32) glbuild.Shader2D {
	if badDim(radius) {
		bld.shapeErrorf("bad capsule radius")
	}
	if ms2.Norm2(ms2.Sub(b, a)) < epstol*epstol {
		bld.shapeErrorf("degenerate capsule segment %v-%v", a, b)
	}
	return &capsule2D{a: a, b: b, r: radius}
}

func (c *capsule2D) Bounds() ms2.Box {
	bb := ms2.Box{Min: ms2.MinElem(c.a, c.b), Max: ms2.MaxElem(c.a, c.b)}
	return ms2.Box{Min: ms2.AddScalar(-c.r, bb.Min), Max: ms2.AddScalar(c.r, bb.Max)}
}

func (c *capsule2D) AppendShaderName(b []byte) []byte {
	b = append(b, "capsule2D"...)
	b = appendVec2Name(b, c.a, c.b)
	b = append(b, 'r')
	return glbuild.AppendFloat(b, 'n', 'p', c.r)
}

func (c *capsule2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "a", c.a)
	b = glbuild.AppendVec2Decl(b, "b", c.b)
	b = glbuild.AppendFloatDecl(b, "r", c.r)
	b = append(b, `vec2 pa=p-a, ba=b-a;
float h=clamp(dot(pa,ba)/dot(ba,ba),0.0,1.0);
return length(pa-ba*h)-r;`...)
	return b
}

func (c *capsule2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type equilateralTri2D struct {
	side float32
}

// NewEquilateralTriangle creates an equilateral triangle with a given side
// length with its centroid located at the origin and a vertex pointing towards +y.
func (bld *Builder) NewEquilateralTriangle(side float32) glbuild.Shader2D {
	if badDim(side) {
		bld.shapeErrorf("bad equilateral triangle side")
	}
	return &equilateralTri2D{side: side}
}

func (t *equilateralTri2D) Bounds() ms2.Box {
	circumradius := t.side / sqrt3
	return ms2.Box{
		Min: ms2.Vec{X: -t.side / 2, Y: -circumradius / 2},
		Max: ms2.Vec{X: t.side / 2, Y: circumradius},
	}
}

func (t *equilateralTri2D) AppendShaderName(b []byte) []byte {
	b = append(b, "eqtri"...)
	return glbuild.AppendFloat(b, 'n', 'p', t.side)
}

func (t *equilateralTri2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", t.side/2)
	b = append(b, `const float k=sqrt(3.0);
p.x=abs(p.x)-r;
p.y=p.y+r/k;
if(p.x+k*p.y>0.0) p=vec2(p.x-k*p.y,-k*p.x-p.y)/2.0;
p.x-=clamp(p.x,-2.0*r,0.0);
return -length(p)*sign(p.y);`...)
	return b
}

func (t *equilateralTri2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type tri2D struct {
	p0, p1, p2 ms2.Vec
}

// NewTriangle creates a triangle with the given vertices in any winding order.
func (bld *Builder) NewTriangle(p0, p1, p2 ms2.Vec) glbuild.Shader2D {
	e0, e2 := ms2.Sub(p1, p0), ms2.Sub(p0, p2)
	if math32.Abs(e0.X*e2.Y-e0.Y*e2.X) < epstol {
		bld.shapeErrorf("degenerate triangle %v %v %v", p0, p1, p2)
	}
	return &tri2D{p0: p0, p1: p1, p2: p2}
}

func (t *tri2D) Bounds() ms2.Box {
	return ms2.Box{
		Min: ms2.MinElem(t.p0, ms2.MinElem(t.p1, t.p2)),
		Max: ms2.MaxElem(t.p0, ms2.MaxElem(t.p1, t.p2)),
	}
}

func (t *tri2D) AppendShaderName(b []byte) []byte {
	b = append(b, "tri"...)
	return appendVec2Name(b, t.p0, t.p1, t.p2)
}

func (t *tri2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "p0", t.p0)
	b = glbuild.AppendVec2Decl(b, "p1", t.p1)
	b = glbuild.AppendVec2Decl(b, "p2", t.p2)
	b = append(b, `vec2 e0=p1-p0, e1=p2-p1, e2=p0-p2;
vec2 v0=p-p0, v1=p-p1, v2=p-p2;
vec2 pq0=v0-e0*clamp(dot(v0,e0)/dot(e0,e0),0.0,1.0);
vec2 pq1=v1-e1*clamp(dot(v1,e1)/dot(e1,e1),0.0,1.0);
vec2 pq2=v2-e2*clamp(dot(v2,e2)/dot(e2,e2),0.0,1.0);
float s=sign(e0.x*e2.y-e0.y*e2.x);
vec2 d=min(min(vec2(dot(pq0,pq0),s*(v0.x*e0.y-v0.y*e0.x)),
	vec2(dot(pq1,pq1),s*(v1.x*e1.y-v1.y*e1.x))),
	vec2(dot(pq2,pq2),s*(v2.x*e2.y-v2.y*e2.x)));
return -sqrt(d.x)*sign(d.y);`...)
	return b
}

func (t *tri2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type hex2D struct {
	r float32
}

// NewHexagon creates a regular hexagon with flat top and bottom sides whose
// apothem (center to side distance) is r.
func (bld *Builder) NewHexagon(r float32) glbuild.Shader2D {
	if badDim(r) {
		bld.shapeErrorf("bad hexagon apothem")
	}
	return &hex2D{r: r}
}

func (h *hex2D) Bounds() ms2.Box {
	circumradius := 2 * h.r / sqrt3
	return ms2.NewBox(-circumradius, -h.r, circumradius, h.r)
}

func (h *hex2D) AppendShaderName(b []byte) []byte {
	b = append(b, "hex"...)
	return glbuild.AppendFloat(b, 'n', 'p', h.r)
}

func (h *hex2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", h.r)
	b = append(b, `const vec3 k=vec3(-0.8660254038,0.5,0.577350269);
p=abs(p);
p-=2.0*min(dot(k.xy,p),0.0)*k.xy;
p-=vec2(clamp(p.x,-k.z*r,k.z*r),r);
return length(p)*sign(p.y);`...)
	return b
}

func (h *hex2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type regularPolygon2D struct {
	r float32
	n int
}

// NewRegularPolygon creates a regular polygon of n sides with its vertices
// on a circle of radius r and a vertex pointing towards +y.
func (bld *Builder) NewRegularPolygon(r float32, n int) glbuild.Shader2D {
	if badDim(r) {
		bld.shapeErrorf("bad regular polygon radius")
	}
	if n < 3 {
		bld.shapeErrorf("regular polygon needs at least 3 sides, got %d", n)
	}
	return &regularPolygon2D{r: r, n: n}
}

func (rp *regularPolygon2D) Bounds() ms2.Box {
	return ms2.NewBox(-rp.r, -rp.r, rp.r, rp.r)
}

func (rp *regularPolygon2D) AppendShaderName(b []byte) []byte {
	b = append(b, "ngon"...)
	b = strconv.AppendInt(b, int64(rp.n), 10)
	b = append(b, '_')
	return glbuild.AppendFloat(b, 'n', 'p', rp.r)
}

func (rp *regularPolygon2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", rp.r)
	b = glbuild.AppendFloatDecl(b, "an", math32.Pi/float32(rp.n))
	b = append(b, `vec2 acs=vec2(cos(an),sin(an));
float bn=mod(atan(p.x,p.y),2.0*an)-an;
p=length(p)*vec2(cos(bn),abs(sin(bn)));
p-=r*acs;
p.y+=clamp(-p.y,0.0,r*acs.y);
return length(p)*sign(p.x);`...)
	return b
}

func (rp *regularPolygon2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type arc2D struct {
	sc     ms2.Vec
	radius float32
	thick  float32
}

// NewArc creates a circular arc of the given radius and thickness spanning
// aperture radians, symmetric about the +y axis.
func (bld *Builder) NewArc(radius, aperture, thick float32) glbuild.Shader2D {
	if badDim(radius) || badDim(thick) {
		bld.shapeErrorf("bad arc radius or thickness")
	}
	if !(aperture > 0) || aperture > 2*math32.Pi {
		bld.shapeErrorf("bad arc aperture %g, must be in (0, 2pi]", aperture)
	}
	s, c := math32.Sincos(aperture / 2)
	return &arc2D{sc: ms2.Vec{X: s, Y: c}, radius: radius, thick: thick}
}

func (a *arc2D) Bounds() ms2.Box {
	r := a.radius + a.thick/2
	return ms2.NewBox(-r, -r, r, r)
}

func (a *arc2D) AppendShaderName(b []byte) []byte {
	b = append(b, "arc"...)
	b = appendVec2Name(b, a.sc)
	b = append(b, '_')
	return glbuild.AppendFloats(b, '_', 'n', 'p', a.radius, a.thick)
}

func (a *arc2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "sc", a.sc)
	b = glbuild.AppendFloatDecl(b, "ra", a.radius)
	b = glbuild.AppendFloatDecl(b, "rb", a.thick/2)
	b = append(b, `p.x=abs(p.x);
return ((sc.y*p.x>sc.x*p.y) ? length(p-sc*ra) : abs(length(p)-ra))-rb;`...)
	return b
}

func (a *arc2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type cross2D struct {
	b ms2.Vec
	r float32
}

// NewCross creates a plus sign of tip to tip size whose arms have width thick.
// Its boundary is offset inwards by round, rounding the outer corners.
func (bld *Builder) NewCross(size, thick, round float32) glbuild.Shader2D {
	if badDim(size) || badDim(thick) || thick >= size {
		bld.shapeErrorf("bad cross dimensions size=%g thick=%g", size, thick)
	}
	if round < 0 || round >= thick/2 {
		bld.shapeErrorf("bad cross rounding %g", round)
	}
	return &cross2D{b: ms2.Vec{X: size / 2, Y: thick / 2}, r: round}
}

func (c *cross2D) Bounds() ms2.Box {
	return ms2.NewBox(-c.b.X, -c.b.X, c.b.X, c.b.X)
}

func (c *cross2D) AppendShaderName(b []byte) []byte {
	b = append(b, "cross"...)
	b = appendVec2Name(b, c.b)
	b = append(b, 'r')
	return glbuild.AppendFloat(b, 'n', 'p', c.r)
}

func (c *cross2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "b", c.b)
	b = glbuild.AppendFloatDecl(b, "r", c.r)
	b = append(b, `p=abs(p);
p=(p.y>p.x) ? p.yx : p.xy;
vec2 q=p-b;
float k=max(q.y,q.x);
vec2 w=(k>0.0) ? q : vec2(b.y-p.x,-k);
return sign(k)*length(max(w,0.0))+r;`...)
	return b
}

func (c *cross2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

type rhombus2D struct {
	b ms2.Vec
}

// NewRhombus creates a rhombus centered at the origin with diagonals of length x and y.
func (bld *Builder) NewRhombus(x, y float32) glbuild.Shader2D {
	if badDim(x) || badDim(y) {
		bld.shapeErrorf("bad rhombus diagonals")
	}
	return &rhombus2D{b: ms2.Vec{X: x / 2, Y: y / 2}}
}

func (r *rhombus2D) Bounds() ms2.Box {
	return ms2.NewBox(-r.b.X, -r.b.Y, r.b.X, r.b.Y)
}

func (r *rhombus2D) AppendShaderName(b []byte) []byte {
	b = append(b, "rhombus"...)
	return appendVec2Name(b, r.b)
}

func (r *rhombus2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "b", r.b)
	b = append(b, `p=abs(p);
vec2 q=b-2.0*p;
float h=clamp((q.x*b.x-q.y*b.y)/dot(b,b),-1.0,1.0);
float d=length(p-0.5*b*vec2(1.0-h,1.0+h));
return d*sign(p.x*b.y+p.y*b.x-b.x*b.y);`...)
	return b
}

func (r *rhombus2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}
