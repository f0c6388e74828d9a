package kaboom

// builtinComponent marks components whose state lives in a typed slot.
type builtinComponent interface {
	Component
	builtin()
}

func isBuiltin(c Component) bool {
	_, ok := c.(builtinComponent)
	return ok
}

type posComp Vec2

// Pos sets the object's position.
func Pos(x, y float64) Component { return posComp{x, y} }

func (c posComp) Attach(o *GameObject) { o.Pos = Vec2(c) }
func (posComp) builtin() {}

type scaleComp Vec2

// Scale sets the object's scale.
func Scale(x, y float64) Component { return scaleComp{x, y} }

func (c scaleComp) Attach(o *GameObject) { o.SetScale(Vec2(c)) }
func (scaleComp) builtin() {}

type rotateComp float64

// Rotate sets the object's angle in radians.
func Rotate(angle float64) Component { return rotateComp(angle) }

func (c rotateComp) Attach(o *GameObject) { o.angle = float64(c) }
func (rotateComp) builtin() {}

type colorComp Color

// Colored tints the object.
func Colored(c Color) Component { return colorComp(c) }

func (c colorComp) Attach(o *GameObject) { o.SetColor(Color(c)) }
func (colorComp) builtin() {}

type originComp Anchor

// Origin sets the object's anchor, e.g. AnchorCenter.
func Origin(a Anchor) Component { return originComp(a) }

func (c originComp) Attach(o *GameObject) { o.SetOrigin(Anchor(c)) }
func (originComp) builtin() {}

type layerComp string

// Layer places the object on a named layer. Objects on different layers
// never collide.
func Layer(name string) Component { return layerComp(name) }

func (c layerComp) Attach(o *GameObject) { o.SetLayer(string(c)) }
func (layerComp) builtin() {}

type zComp float64

// Z sets the depth bias used when the scene declares no layers.
func Z(z float64) Component { return zComp(z) }

func (c zComp) Attach(o *GameObject) { o.z = float64(c) }
func (zComp) builtin() {}

type solidComp struct{}

// Solid makes other objects' Resolve push out of this one.
func Solid() Component { return solidComp{} }

func (solidComp) Attach(o *GameObject) { o.solid = true }
func (solidComp) builtin() {}

// Timer accumulates the object's unpaused lifetime.
type Timer struct {
	Time float64
}

// NewTimer returns a timer starting at zero.
func NewTimer() *Timer { return &Timer{} }

func (t *Timer) Attach(o *GameObject) {
	o.timer = t
	o.On(EventUpdate, func(obj *GameObject, _ ...any) {
		t.Time += obj.engine().dt
	})
}

func (*Timer) builtin() {}

// RectShape draws a filled rectangle and gets an area of the same size.
type RectShape struct {
	Width, Height float64
}

// NewRectShape returns a w×h rectangle.
func NewRectShape(w, h float64) *RectShape {
	return &RectShape{Width: w, Height: h}
}

func (r *RectShape) Attach(o *GameObject) {
	o.rect = r
	o.On(EventAdd, func(obj *GameObject, _ ...any) {
		if obj.area == nil {
			obj.Use(AreaFromSize(r.Width, r.Height, obj.Origin()))
		}
	})
	o.On(EventDraw, func(obj *GameObject, _ ...any) {
		obj.engine().gfx.DrawRect(obj.Pos, r.Width, r.Height, QuadConf{
			Scale:  obj.Scale(),
			Rot:    obj.angle,
			Color:  obj.Color(),
			Origin: obj.Origin(),
			Z:      obj.drawZ(),
			Shader: obj.shaderRef(),
		})
	})
}

func (*RectShape) builtin() {}

// ShaderComp draws the object with a named shader.
type ShaderComp struct {
	Name     string
	Uniforms map[string]any
	binding  *ShaderBinding
}

// UseShader looks the shader up when attached. A missing shader is logged
// and the object draws with the default pipeline.
func UseShader(name string, uniforms map[string]any) *ShaderComp {
	return &ShaderComp{Name: name, Uniforms: uniforms}
}

func (s *ShaderComp) Attach(o *GameObject) {
	o.shader = s
	if e := o.engine(); e != nil {
		if sh := e.assets.Shader(s.Name); sh != nil {
			s.binding = &ShaderBinding{Shader: sh, Uniforms: s.Uniforms}
		}
	}
}

func (*ShaderComp) builtin() {}

func (o *GameObject) shaderRef() *ShaderBinding {
	if o.shader == nil {
		return nil
	}
	return o.shader.binding
}
