package movingblock

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	DefaultZoomSpeed = 480.0
	// a missing ReturnAccel brings a block from ZoomSpeed to rest in half a
	// second.
	returnAccelPerSpeed = 2.0
)

// Tuning configures a BodyMover. Speeds are in world units per second,
// ReturnAccel in units per second squared.
type Tuning struct {
	DirX        float64
	DirY        float64
	Distance    float64
	ZoomSpeed   float64
	ReturnAccel float64
	ReturnSpeed float64
	Epsilon     float64
	// Step is the fixed simulation step in seconds.
	Step float64
}

func (t Tuning) withDefaults() Tuning {
	if t.DirX == 0 && t.DirY == 0 {
		t.DirX = 1
	}
	t.DirX, t.DirY = normalize(t.DirX, t.DirY)
	if t.Epsilon <= 0 {
		t.Epsilon = 1
	}
	if t.Step <= 0 {
		t.Step = 1.0 / 60.0
	}
	if t.ZoomSpeed <= 0 {
		t.ZoomSpeed = DefaultZoomSpeed
	}
	if t.ReturnAccel <= 0 {
		t.ReturnAccel = t.ZoomSpeed * returnAccelPerSpeed
	}
	if t.ReturnSpeed <= 0 {
		t.ReturnSpeed = t.ZoomSpeed
	}
	return t
}

// BodyMover moves a chipmunk body along a single axis from the position it
// had when the mover was created.
type BodyMover struct {
	body   *cp.Body
	tuning Tuning

	startX, startY float64
	// aim is the raw override from the last Aim, cleared by Stop. dir and
	// speed are the values the current zoom uses.
	aim        Input
	dirX, dirY float64
	speed      float64
}

// NewBodyMover returns a mover for body. A mover without a body reports
// itself unavailable to the block machine.
func NewBodyMover(body *cp.Body, t Tuning) *BodyMover {
	m := &BodyMover{body: body}
	if body != nil {
		pos := body.Position()
		m.startX, m.startY = pos.X, pos.Y
	}
	m.Retune(t)
	return m
}

// Available reports whether the mover has a body to drive.
func (m *BodyMover) Available() bool {
	return m != nil && m.body != nil
}

// Retune replaces the tuning. The start position and any aim of the zoom in
// flight are kept.
func (m *BodyMover) Retune(t Tuning) {
	m.tuning = t.withDefaults()
	m.applyAim()
}

func (m *BodyMover) applyAim() {
	if m.aim.DirX != 0 || m.aim.DirY != 0 {
		m.dirX, m.dirY = normalize(m.aim.DirX, m.aim.DirY)
	} else {
		m.dirX, m.dirY = m.tuning.DirX, m.tuning.DirY
	}
	if m.aim.Speed > 0 {
		m.speed = m.aim.Speed
	} else {
		m.speed = m.tuning.ZoomSpeed
	}
}

func (m *BodyMover) Tuning() Tuning {
	return m.tuning
}

// Start returns the rest position.
func (m *BodyMover) Start() (x, y float64) {
	return m.startX, m.startY
}

// Direction returns the current zoom axis.
func (m *BodyMover) Direction() (x, y float64) {
	return m.dirX, m.dirY
}

// Stop halts the body and drops any aim, so the next zoom uses the tuning.
func (m *BodyMover) Stop() {
	if m == nil {
		return
	}
	m.aim = Input{}
	m.applyAim()
	if !m.Available() {
		return
	}
	m.body.SetVelocity(0, 0)
	m.body.SetAngularVelocity(0)
}

// Aim overrides direction and speed for the next zoom. Zero values use the
// configured ones.
func (m *BodyMover) Aim(dx, dy, speed float64) {
	m.aim = Input{DirX: dx, DirY: dy, Speed: speed}
	m.applyAim()
}

func (m *BodyMover) BeginZoom() {
	if !m.Available() {
		return
	}
	m.body.SetVelocity(m.dirX*m.speed, m.dirY*m.speed)
}

// Decelerate pushes the body back towards the start by one step of
// ReturnAccel, braking any outward motion first. Speed towards the start is
// clamped to ReturnSpeed.
func (m *BodyMover) Decelerate() {
	if !m.Available() {
		return
	}
	v := m.body.Velocity()
	dv := m.tuning.ReturnAccel * m.tuning.Step
	vx := v.X - m.dirX*dv
	vy := v.Y - m.dirY*dv
	inbound := vx*m.dirX+vy*m.dirY < 0
	if s := math.Hypot(vx, vy); inbound && s > m.tuning.ReturnSpeed {
		k := m.tuning.ReturnSpeed / s
		vx *= k
		vy *= k
	}
	m.body.SetVelocity(vx, vy)
}

// travel is the displacement from start projected on the zoom axis.
func (m *BodyMover) travel() float64 {
	if !m.Available() {
		return 0
	}
	pos := m.body.Position()
	return (pos.X-m.startX)*m.dirX + (pos.Y-m.startY)*m.dirY
}

func (m *BodyMover) IsAtZoomEnd() bool {
	return m.travel() >= m.tuning.Distance-m.tuning.Epsilon
}

// IsAtStart is also true once the block has overshot the start.
func (m *BodyMover) IsAtStart() bool {
	return m.travel() <= m.tuning.Epsilon
}

func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
