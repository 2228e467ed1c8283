// SPDX-License-Identifier: GPL-2.0-or-later

// Package render draws a parsed mesh with per pixel lighting.
package render

import (
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/google/uuid"

	"meshview/conlog"
	"meshview/glh"
	"meshview/lighting"
	"meshview/obj"
)

const (
	positionAttrib = 0
	normalAttrib   = 1
)

// Uniform is a value that can be written to a shader uniform location.
type Uniform interface {
	SetAsUniform(id int32)
}

// MeshDrawer owns the GPU copy of one mesh. All methods must be called on
// the thread owning the GL context.
type MeshDrawer struct {
	id        uuid.UUID
	vao       *glh.VertexArray
	prog      *glh.Program
	positions *glh.Buffer
	normals   *glh.Buffer
	elements  *glh.Buffer

	indexCount   int32
	indexType    uint32
	normalsBound bool

	projection int32
	modelview  int32
	lightDir   int32
	viewDir    int32
	baseColor  int32
	ambient    int32
	diffuse    int32
	specular   int32
	shininess  int32
}

func newMeshDrawProgram() (*glh.Program, error) {
	return glh.NewProgram(vertexSourceMeshDrawer, fragmentSourceMeshDrawer)
}

// NewMeshDrawer compiles the shader program and uploads the buffers of m.
// Nothing of m is read after it returns.
func NewMeshDrawer(m *obj.Mesh, p lighting.Params) (*MeshDrawer, error) {
	d := &MeshDrawer{
		id: uuid.Must(uuid.NewV7()),
	}
	var err error
	d.prog, err = newMeshDrawProgram()
	if err != nil {
		return nil, err
	}
	d.projection = d.prog.GetUniformLocation("projection")
	d.modelview = d.prog.GetUniformLocation("modelview")
	d.lightDir = d.prog.GetUniformLocation("LightDir")
	d.viewDir = d.prog.GetUniformLocation("ViewDir")
	d.baseColor = d.prog.GetUniformLocation("BaseColor")
	d.ambient = d.prog.GetUniformLocation("Ambient")
	d.diffuse = d.prog.GetUniformLocation("Diffuse")
	d.specular = d.prog.GetUniformLocation("Specular")
	d.shininess = d.prog.GetUniformLocation("Shininess")

	d.vao = glh.NewVertexArray()
	d.vao.Bind()
	defer gl.BindVertexArray(0)

	d.positions = glh.NewBuffer(glh.ArrayBuffer)
	d.positions.Bind()
	setFloats(d.positions, m.Positions)
	gl.VertexAttribPointerWithOffset(positionAttrib, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(positionAttrib)

	d.normalsBound = useNormals(m)
	if d.normalsBound {
		d.normals = glh.NewBuffer(glh.ArrayBuffer)
		d.normals.Bind()
		setFloats(d.normals, m.Normals)
		gl.VertexAttribPointerWithOffset(normalAttrib, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(normalAttrib)
	} else {
		gl.DisableVertexAttribArray(normalAttrib)
		if m.NormalCount() > 0 {
			conlog.Printf("mesh has %d normals for %d vertices, ignoring them\n",
				m.NormalCount(), m.VertexCount())
		}
	}

	// the element buffer binding is part of the vertex array state
	d.elements = glh.NewBuffer(glh.ElementArrayBuffer)
	d.elements.Bind()
	switch m.Indices.Width() {
	case obj.Index16:
		if ix := m.Indices.Uint16(); len(ix) > 0 {
			d.elements.SetData(m.Indices.ByteSize(), glh.Ptr(ix))
		}
	default:
		if ix := m.Indices.Uint32(); len(ix) > 0 {
			d.elements.SetData(m.Indices.ByteSize(), glh.Ptr(ix))
		}
	}
	d.indexCount = int32(m.Indices.Len())
	d.indexType = indexType(m.Indices.Width())

	d.prog.Use()
	d.setLighting(p)

	conlog.DPrintf("mesh %v: %d vertices, %d triangles, %d bit indices\n",
		d.id, m.VertexCount(), m.TriangleCount(), m.Indices.Width())
	runtime.AddCleanup(d, func(id uuid.UUID) {
		conlog.DPrintf("mesh %v released\n", id)
	}, d.id)
	return d, nil
}

func setFloats(b *glh.Buffer, v []float32) {
	if len(v) == 0 {
		return
	}
	b.SetData(4*len(v), glh.Ptr(v))
}

func (d *MeshDrawer) setLighting(p lighting.Params) {
	gl.Uniform3f(d.lightDir, p.LightDir[0], p.LightDir[1], p.LightDir[2])
	gl.Uniform3f(d.viewDir, p.ViewDir[0], p.ViewDir[1], p.ViewDir[2])
	gl.Uniform3f(d.baseColor, p.BaseColor[0], p.BaseColor[1], p.BaseColor[2])
	gl.Uniform1f(d.ambient, p.Ambient)
	gl.Uniform1f(d.diffuse, p.Diffuse)
	gl.Uniform1f(d.specular, p.Specular)
	gl.Uniform1f(d.shininess, p.Shininess)
}

// Draw issues a single indexed draw of the uploaded triangles.
func (d *MeshDrawer) Draw(mv, p Uniform) {
	if d.indexCount == 0 {
		return
	}
	d.prog.Use()
	d.vao.Bind()
	defer gl.BindVertexArray(0)
	p.SetAsUniform(d.projection)
	mv.SetAsUniform(d.modelview)
	if !d.normalsBound {
		// every vertex faces the viewer
		gl.VertexAttrib3f(normalAttrib, 0, 0, 1)
	}
	gl.DrawElements(gl.TRIANGLES, d.indexCount, d.indexType, gl.PtrOffset(0))
}

func indexType(w obj.IndexWidth) uint32 {
	if w == obj.Index16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// useNormals reports whether the normals buffer can serve as a per vertex
// attribute.
func useNormals(m *obj.Mesh) bool {
	return m.NormalCount() > 0 && m.NormalCount() >= m.VertexCount()
}

// Clear prepares the frame buffer for a new frame.
func Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Setup sets the fixed pipeline state of the viewer.
func Setup() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
}

func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels returns the RGBA content of the back buffer, bottom row first.
func ReadPixels(width, height int) []byte {
	data := make([]byte, 4*width*height)
	if len(data) == 0 {
		return data
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	return data
}
