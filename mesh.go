package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the GPU vertex layout consumed by the effect pipeline. The
// attribute slots match the vertex stage contract: position, normal,
// tangent, texture coordinate.
type Vertex struct {
	Position [3]float32 `lumen:"layout" location:"0" format:"float3"`
	Normal   [3]float32 `lumen:"layout" location:"1" format:"float3"`
	Tangent  [3]float32 `lumen:"layout" location:"2" format:"float3"`
	TexCoord [2]float32 `lumen:"layout" location:"3" format:"float2"`
}

// Attributes adapts a vertex for the reference shading stages.
func (v Vertex) Attributes() VertexAttributes {
	return VertexAttributes{
		Position: mgl32.Vec3(v.Position),
		Normal:   mgl32.Vec3(v.Normal),
		Tangent:  mgl32.Vec3(v.Tangent),
		TexCoord: mgl32.Vec2(v.TexCoord),
	}
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// flatVertex builds a vertex in the XY plane with normal +Z, tangent +X
// and the texture coordinate derived from the local position, so that
// local (0,0) lands on uv (0.5, 0.5), the center of the radial falloff.
func flatVertex(x, y float32) Vertex {
	return Vertex{
		Position: [3]float32{x, y, 0},
		Normal:   [3]float32{0, 0, 1},
		Tangent:  [3]float32{1, 0, 0},
		TexCoord: [2]float32{x*0.5 + 0.5, y*0.5 + 0.5},
	}
}

// QuadMesh is a quad spanning [-1,1] x [-ratio,ratio], the canonical
// carrier for the radial effect (a ball is a quad whose falloff clips it
// to a disk).
func QuadMesh(ratio float32) Mesh {
	return Mesh{
		Vertices: []Vertex{
			flatVertex(-1, -ratio),
			flatVertex(1, -ratio),
			flatVertex(1, ratio),
			flatVertex(-1, ratio),
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// BallMesh is the unit quad; the fragment falloff shapes it into a disk.
func BallMesh() Mesh {
	return QuadMesh(1)
}

// DiskMesh is a triangle fan approximating the unit disk with the given
// number of rim segments (minimum 3).
func DiskMesh(segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	vertices := make([]Vertex, 0, segments+1)
	vertices = append(vertices, flatVertex(0, 0))
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		vertices = append(vertices, flatVertex(float32(math.Cos(a)), float32(math.Sin(a))))
	}

	indices := make([]uint16, 0, segments*3)
	for i := 0; i < segments; i++ {
		next := uint16(1 + (i+1)%segments)
		indices = append(indices, 0, uint16(i+1), next)
	}
	return Mesh{Vertices: vertices, Indices: indices}
}

// StarMesh fans the given rim points (wound counter-clockwise, local
// coordinates within [-1,1]) around their centroid. Used for star and
// polygon outlines.
func StarMesh(points []mgl32.Vec2) Mesh {
	if len(points) < 3 {
		panic("star mesh needs at least 3 points")
	}

	var center mgl32.Vec2
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Mul(1 / float32(len(points)))

	vertices := make([]Vertex, 0, len(points)+1)
	vertices = append(vertices, flatVertex(center.X(), center.Y()))
	for _, p := range points {
		vertices = append(vertices, flatVertex(p.X(), p.Y()))
	}

	indices := make([]uint16, 0, len(points)*3)
	for i := 0; i < len(points); i++ {
		next := uint16(1 + (i+1)%len(points))
		indices = append(indices, 0, uint16(i+1), next)
	}
	return Mesh{Vertices: vertices, Indices: indices}
}

// TriangleMesh is a single triangle from three local points.
func TriangleMesh(a, b, c mgl32.Vec2) Mesh {
	return Mesh{
		Vertices: []Vertex{
			flatVertex(a.X(), a.Y()),
			flatVertex(b.X(), b.Y()),
			flatVertex(c.X(), c.Y()),
		},
		Indices: []uint16{0, 1, 2},
	}
}

// ComputeTangents rebuilds per-vertex tangents from UV-space triangle
// derivatives for caller-supplied meshes whose tangents are missing or
// stale. Normals must already be set. Triangles with a degenerate UV area
// contribute nothing.
func ComputeTangents(m *Mesh) {
	tangents := make([]mgl32.Vec3, len(m.Vertices))

	accumulate := func(i0, i1, i2 uint16) {
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		e1 := mgl32.Vec3(v1.Position).Sub(mgl32.Vec3(v0.Position))
		e2 := mgl32.Vec3(v2.Position).Sub(mgl32.Vec3(v0.Position))

		du1 := v1.TexCoord[0] - v0.TexCoord[0]
		dv1 := v1.TexCoord[1] - v0.TexCoord[1]
		du2 := v2.TexCoord[0] - v0.TexCoord[0]
		dv2 := v2.TexCoord[1] - v0.TexCoord[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		tangents[i0] = tangents[i0].Add(t)
		tangents[i1] = tangents[i1].Add(t)
		tangents[i2] = tangents[i2].Add(t)
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			accumulate(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			accumulate(uint16(i), uint16(i+1), uint16(i+2))
		}
	}

	for i := range m.Vertices {
		n := mgl32.Vec3(m.Vertices[i].Normal)
		t := tangents[i]

		// Gram-Schmidt against the normal.
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LenSqr() < 1e-8 {
			// Degenerate: pick any direction perpendicular to the normal.
			if mgl32.Abs(n.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n.Y()))
			}
		}
		m.Vertices[i].Tangent = [3]float32(t.Normalize())
	}
}
