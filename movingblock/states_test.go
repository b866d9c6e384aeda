package movingblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/molten/fsm"
)

type recordingMover struct {
	stops, zooms, decels int
	atZoomEnd, atStart   bool

	aims []Input
}

func (m *recordingMover) Stop()             { m.stops++ }
func (m *recordingMover) BeginZoom()        { m.zooms++ }
func (m *recordingMover) Decelerate()       { m.decels++ }
func (m *recordingMover) IsAtZoomEnd() bool { return m.atZoomEnd }
func (m *recordingMover) IsAtStart() bool   { return m.atStart }

type aimingMover struct {
	recordingMover
}

func (m *aimingMover) Aim(dx, dy, speed float64) {
	m.aims = append(m.aims, Input{DirX: dx, DirY: dy, Speed: speed})
}

func newBlock(t *testing.T, mv Mover) *Machine {
	t.Helper()
	m, err := New(mv)
	require.NoError(t, err)
	return m
}

func TestIdleStaysIdle(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)

	for i := 0; i < 50; i++ {
		require.NoError(t, m.Tick())
	}

	assert.Equal(t, StateIdle, m.Current())
	assert.Equal(t, 1, mv.stops)
	assert.Zero(t, mv.zooms)
	assert.Zero(t, mv.decels)
}

func TestIdleIgnoresWallHit(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)

	require.NoError(t, m.Notify(WallHit()))

	assert.Equal(t, StateIdle, m.Current())
	assert.Equal(t, recordingMover{stops: 1}, *mv)
}

func TestIdleActivates(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)

	require.NoError(t, m.Notify(Activate(Input{})))

	assert.Equal(t, StateZooming, m.Current())
	assert.Equal(t, 1, mv.zooms)
}

func TestActivateAimsWhenSupported(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       Input
		wantAims []Input
	}{
		{"empty_input_resets_to_tuning", Input{}, []Input{{}}},
		{"direction", Input{DirX: 0, DirY: -1}, []Input{{DirY: -1}}},
		{"speed_only", Input{Speed: 900}, []Input{{Speed: 900}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			mv := &aimingMover{}
			m := newBlock(t, mv)

			require.NoError(t, m.Notify(Activate(c.in)))
			assert.Equal(t, c.wantAims, mv.aims)
			assert.Equal(t, 1, mv.zooms)
		})
	}
}

func TestZoomingReturnsAtZoomEnd(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)
	require.NoError(t, m.Transition(StateZooming, Input{}))

	for i := 0; i < 10; i++ {
		require.NoError(t, m.Tick())
		require.Equal(t, StateZooming, m.Current())
	}

	mv.atZoomEnd = true
	require.NoError(t, m.Tick())
	assert.Equal(t, StateReturning, m.Current())

	returning := 0
	for _, r := range m.History() {
		if r.To == StateReturning {
			returning++
		}
	}
	assert.Equal(t, 1, returning)
	assert.Zero(t, mv.decels, "returning has no entry action")
}

func TestZoomingWallHitReturns(t *testing.T) {
	t.Parallel()

	for _, atEnd := range []bool{false, true} {
		mv := &recordingMover{atZoomEnd: atEnd}
		m := newBlock(t, mv)
		require.NoError(t, m.Transition(StateZooming, Input{}))

		require.NoError(t, m.Notify(WallHit()))
		assert.Equal(t, StateReturning, m.Current())
	}
}

func TestReturningDeceleratesUntilStart(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)
	require.NoError(t, m.Transition(StateReturning, Input{}))

	for i := 1; i <= 5; i++ {
		require.NoError(t, m.Tick())
		require.Equal(t, i, mv.decels)
		require.Equal(t, StateReturning, m.Current())
	}

	mv.atStart = true
	require.NoError(t, m.Tick())
	assert.Equal(t, StateIdle, m.Current())
	assert.Equal(t, 6, mv.decels)
	assert.Equal(t, 2, mv.stops)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Tick())
	}
	assert.Equal(t, 6, mv.decels)
}

func TestReturningWallHitGoesIdle(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)
	require.NoError(t, m.Transition(StateReturning, Input{}))

	require.NoError(t, m.Notify(WallHit()))

	assert.Equal(t, StateIdle, m.Current())
	assert.Zero(t, mv.decels)
}

func TestUnregisteredStateKeepsBlockWorking(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)
	require.NoError(t, m.Transition(StateZooming, Input{}))

	err := m.Transition("spinning", Input{})

	var cfg *fsm.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, fsm.StateID("spinning"), cfg.State)
	assert.Equal(t, StateZooming, m.Current())

	mv.atZoomEnd = true
	require.NoError(t, m.Tick())
	assert.Equal(t, StateReturning, m.Current())
}

func TestStepHandlesWallHitBeforeTick(t *testing.T) {
	t.Parallel()

	mv := &recordingMover{}
	m := newBlock(t, mv)
	require.NoError(t, m.Transition(StateZooming, Input{}))

	m.Post(WallHit())
	require.NoError(t, m.Step())

	assert.Equal(t, StateReturning, m.Current())
	assert.Equal(t, 1, mv.decels, "the step's tick reaches the returning state")
}

func TestNilMoverFailsLoudly(t *testing.T) {
	t.Parallel()

	var typedNil *BodyMover
	cases := []struct {
		name  string
		mover Mover
	}{
		{"nil_interface", nil},
		{"typed_nil_body_mover", typedNil},
		{"body_mover_without_body", NewBodyMover(nil, Tuning{ZoomSpeed: 100})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var m *Machine
			var err error
			require.NotPanics(t, func() { m, err = New(c.mover) })
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, fsm.ErrCapabilityUnavailable)
		})
	}
}

func TestDefinitionRegistersAllStates(t *testing.T) {
	t.Parallel()

	def := NewDefinition()
	require.NoError(t, def.Validate())
	assert.Equal(t, []fsm.StateID{StateIdle, StateReturning, StateZooming}, def.States())
}
