package kaboom

import "reflect"

// DrawRaw queues a primitive. Each vertex position passes through the
// current transform and is projected to normalized device coordinates.
// Indices are relative to verts. When tex or shader differs from the bound
// one, the pending queue is flushed first. Bindings of the same shader with
// equal uniforms count as the same. A nil tex draws untextured.
func (r *Renderer) DrawRaw(verts []Vertex, indices []uint32, tex *Texture, shader *ShaderBinding) {
	if tex == nil {
		tex = r.defTex
	}
	if tex != r.curTex || !sameShader(shader, r.curShader) {
		r.Flush()
		r.curTex = tex
		r.curShader = shader
	}

	base := uint32(len(r.vqueue) / vertexStride)

	for _, v := range verts {
		p := r.toNDC(r.transform.MultVec2(v.Pos.XY()))
		r.vqueue = append(r.vqueue,
			float32(p.X), float32(p.Y), float32(v.Pos.Z),
			float32(v.UV.X), float32(v.UV.Y),
			float32(v.Color.R), float32(v.Color.G), float32(v.Color.B), float32(v.Color.A),
		)
	}
	for _, i := range indices {
		r.iqueue = append(r.iqueue, base+i)
	}
}

func sameShader(a, b *ShaderBinding) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Shader != b.Shader {
		return false
	}
	if len(a.Uniforms) == 0 && len(b.Uniforms) == 0 {
		return true
	}
	return reflect.DeepEqual(a.Uniforms, b.Uniforms)
}

// Flush submits all queued geometry as one batch. An empty queue submits
// nothing.
func (r *Renderer) Flush() {
	if len(r.vqueue) == 0 || len(r.iqueue) == 0 {
		r.vqueue = r.vqueue[:0]
		r.iqueue = r.iqueue[:0]
		return
	}

	r.backend.Submit(Batch{
		Vertices: r.vqueue,
		Indices:  r.iqueue,
		Texture:  r.curTex,
		Shader:   r.curShader,
	})
	r.drawCalls++

	r.vqueue = r.vqueue[:0]
	r.iqueue = r.iqueue[:0]
}

// QueuedVertices returns the number of vertices waiting to be flushed.
func (r *Renderer) QueuedVertices() int { return len(r.vqueue) / vertexStride }
