package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/molten/common"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeBlock
)

const groundGraceFrames = 6

// PhysicsSystem owns the chipmunk space. It creates bodies for new
// PhysicsBody entities, steps the space by one fixed step and writes
// positions back to transforms. Blocks that begin touching a solid get a
// WallHit.
type PhysicsSystem struct {
	space         *cp.Space
	step          float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	blockShapes  map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	grace        map[ecs.Entity]int
	hits         map[ecs.Entity]*component.WallHit
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(step float64) *PhysicsSystem {
	if step <= 0 {
		step = common.Step
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:        space,
		step:         step,
		entities:     make(map[ecs.Entity]*bodyInfo),
		blockShapes:  make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grace:        make(map[ecs.Entity]int),
		hits:         make(map[ecs.Entity]*component.WallHit),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.resetContacts()

	ps.space.Step(ps.step)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	blockHandler := ps.space.NewCollisionHandler(collisionTypeBlock, collisionTypeSolid)
	blockHandler.UserData = ps
	blockHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		block, ok := lookupShape(arb, sys.blockShapes)
		if !ok {
			return true
		}
		hit := sys.hits[block]
		if hit == nil {
			hit = &component.WallHit{}
			sys.hits[block] = hit
		}
		n := arb.Normal()
		hit.Count++
		hit.NormalX, hit.NormalY = n.X, n.Y
		return true
	}

	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeBlock} {
		groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, other)
		groundHandler.UserData = ps
		groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			player, ok := lookupShape(arb, sys.groundShapes)
			if !ok {
				return true
			}
			sys.grace[player] = groundGraceFrames
			return true
		}
	}

	ps.handlersReady = true
}

// lookupShape finds the entity owning either shape of the arbiter.
func lookupShape(arb *cp.Arbiter, shapes map[*cp.Shape]ecs.Entity) (ecs.Entity, bool) {
	a, b := arb.Shapes()
	if e, ok := shapes[a]; ok {
		return e, true
	}
	e, ok := shapes[b]
	return e, ok
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(e, transform, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	cx, cy := common.Center(transform.X, transform.Y, width, height)

	if bodyComp.Static {
		bb := cp.BB{L: transform.X, B: transform.Y, R: transform.X + width, T: transform.Y + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// rotation is locked for everything the game moves
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	body.SetAngle(0)
	if bodyComp.NoGravity {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)

	info := &bodyInfo{body: body}
	ps.space.AddBody(body)

	switch bodyComp.Role {
	case component.BodyRolePlayer:
		shape.SetCollisionType(collisionTypePlayer)
		ground := cp.NewBox2(body, cp.BB{
			L: -width * 0.45,
			B: height / 2.0,
			R: width * 0.45,
			T: height/2.0 + 2,
		}, 0)
		ground.SetSensor(true)
		ground.SetCollisionType(collisionTypePlayerGround)
		ps.space.AddShape(shape)
		ps.space.AddShape(ground)
		ps.groundShapes[ground] = e
		info.shapes = []*cp.Shape{shape, ground}
		return info
	case component.BodyRoleBlock:
		shape.SetCollisionType(collisionTypeBlock)
		ps.blockShapes[shape] = e
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}

	ps.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) resetContacts() {
	for e, g := range ps.grace {
		if g > 0 {
			ps.grace[e] = g - 1
		}
	}
	clear(ps.hits)
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		p.Grounded = ps.grace[e] > 0
	})

	for e, hit := range ps.hits {
		if !w.IsAlive(e) {
			continue
		}
		if pending, ok := ecs.Get(w, e, component.WallHitComponent.Kind()); ok {
			pending.Count += hit.Count
			pending.NormalX, pending.NormalY = hit.NormalX, hit.NormalY
			continue
		}
		h := *hit
		_ = ecs.Add(w, e, component.WallHitComponent.Kind(), &h)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		width, height := bodyComp.Width, bodyComp.Height
		if width <= 0 || height <= 0 {
			width, height = 32, 32
		}
		transform.X = pos.X - width/2.0
		transform.Y = pos.Y - height/2.0
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.blockShapes, shape)
			delete(ps.groundShapes, shape)
		}
		if !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.grace, e)
	}
}
