package physics

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

func TestSimulateOrder(t *testing.T) {
	var stats StepStats
	var timings []StepTiming
	w := newTestWorld(WithStepSink(StepSinkFunc(func(st StepTiming) {
		timings = append(timings, st)
		stats.ObserveStep(st)
	})))
	k := w.CreateBody(BodyDef{Type: Kinematic, Collider: CircleCollider(5), Position: vec(0, -20), LinearVelocity: vec(0, 12)})
	w.CreateBody(BodyDef{Type: Static, Collider: RectangleCollider(20, 10), Position: vec(0, 0)})

	w.Simulate(1)

	// integrated to (0,-8), then corrected by 0.9 * 2
	if math.Abs(k.Position().Y+9.8) > 1e-9 {
		t.Fatalf("expected y -9.8 after one step, got %v", k.Position())
	}
	if len(k.Contacts()) != 1 {
		t.Fatalf("expected contacts from this step, got %d", len(k.Contacts()))
	}
	if w.StepCount() != 1 || len(timings) != 1 {
		t.Fatalf("expected one step reported, got %d/%d", w.StepCount(), len(timings))
	}
	st := timings[0]
	if st.Step != 1 || st.DT != 1 || st.Corrected != 1 || st.Detection.Contacts != 1 {
		t.Fatalf("unexpected timing %+v", st)
	}
	if stats.Steps != 1 || stats.Contacts != 1 || stats.Mean() != st.Total() {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStepStatsEmpty(t *testing.T) {
	var s StepStats
	if s.Mean() != 0 {
		t.Fatalf("expected zero mean, got %v", s.Mean())
	}
}

func TestSettingsDefaults(t *testing.T) {
	w := NewWorld(Settings{})
	if w.Settings() != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", w.Settings())
	}
	w = NewWorld(Settings{Relaxation: 2})
	if w.Settings().Relaxation != DefaultRelaxation {
		t.Fatalf("expected relaxation clamp, got %v", w.Settings().Relaxation)
	}
	if w.TileMap().TileSize() != vec(DefaultTileSize, DefaultTileSize) {
		t.Fatalf("unexpected tile size %v", w.TileMap().TileSize())
	}
}

func TestRemoveBody(t *testing.T) {
	w := newTestWorld()
	k := w.CreateBody(BodyDef{Name: "player", Type: Kinematic, Collider: CircleCollider(5), Position: vec(0, -8)})
	floor := w.CreateBody(BodyDef{Type: Static, Collider: TileCollider(), Position: vec(0, 0)})
	w.CreateBody(BodyDef{Type: Static, Collider: TileCollider(), Position: vec(10, 0)})
	w.DetectCollisions()
	if len(k.Contacts()) == 0 {
		t.Fatalf("expected contacts before removal")
	}

	if !w.RemoveBody(floor) {
		t.Fatalf("expected removal to succeed")
	}
	if w.RemoveBody(floor) {
		t.Fatalf("expected second removal to fail")
	}
	if w.Len() != 2 {
		t.Fatalf("expected 2 bodies, got %d", w.Len())
	}
	for _, c := range k.Contacts() {
		if c.Other == floor {
			t.Fatalf("contact against removed body kept")
		}
	}
	if w.TileMap().Occupied(GridCoord{X: 0, Y: 0}) {
		t.Fatalf("removed tile still occupies its cell")
	}
	right := w.TileMap().Occupants(GridCoord{X: 1, Y: 0})[0]
	if right.NormalFilter() != NormalAll {
		t.Fatalf("expected neighbor filter restored, got %v", right.NormalFilter())
	}

	other := newTestWorld()
	if other.RemoveBody(k) {
		t.Fatalf("expected removal from a foreign world to fail")
	}
}

func TestRemovedBodyStaysOutOfTileMap(t *testing.T) {
	w := newTestWorld()
	tile := w.CreateBody(BodyDef{Type: Static, Collider: TileCollider(), Position: vec(0, 0)})
	rect := w.CreateBody(BodyDef{Type: Static, Collider: RectangleCollider(10, 10), Position: vec(10, 0)})

	if !w.RemoveBody(rect) {
		t.Fatalf("expected removal to succeed")
	}
	rect.SetTileCollider()

	if tile.NormalFilter() != NormalAll {
		t.Fatalf("live tile filter changed by removed body: %v", tile.NormalFilter())
	}
	if n := w.TileMap().Len(); n != 1 {
		t.Fatalf("expected 1 tile registered, got %d", n)
	}
	if w.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", w.Len())
	}
	if w.RemoveBody(rect) {
		t.Fatalf("expected removal of a removed body to fail")
	}
}

func TestLookup(t *testing.T) {
	w := newTestWorld()
	wall := w.CreateBody(BodyDef{Name: "wall", Type: Static, Collider: RectangleCollider(2, 2)})
	player := w.CreateBody(BodyDef{Name: "player", Type: Kinematic, Collider: CircleCollider(1)})

	if got, ok := w.Body(player.ID()); !ok || got != player {
		t.Fatalf("lookup by id failed")
	}
	if _, ok := w.Body(uuid.New()); ok {
		t.Fatalf("expected unknown id to miss")
	}
	if got, ok := w.BodyByName("wall"); !ok || got != wall {
		t.Fatalf("lookup by name failed")
	}
	if _, ok := w.BodyByName(""); ok {
		t.Fatalf("expected empty name to miss")
	}
	if wall.ID() == player.ID() {
		t.Fatalf("expected distinct ids")
	}
	bodies := w.Bodies()
	if len(bodies) != 2 || bodies[0] != wall || bodies[1] != player {
		t.Fatalf("expected static bodies first, got %v", bodies)
	}
}

func TestQueryAABB(t *testing.T) {
	w := newTestWorld()
	a := w.CreateBody(BodyDef{Type: Static, Collider: RectangleCollider(2, 2), Position: vec(0, 0)})
	b := w.CreateBody(BodyDef{Type: Kinematic, Collider: CircleCollider(1), Position: vec(10, 0)})
	w.CreateBody(BodyDef{Type: Static, Collider: CircleCollider(1), Position: vec(50, 50)})

	got := w.QueryAABB(cp.BB{L: -1, B: -1, R: 9, T: 1})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected query result %v", got)
	}
	if got := w.QueryAABB(cp.BB{L: 100, B: 100, R: 101, T: 101}); len(got) != 0 {
		t.Fatalf("expected empty query, got %v", got)
	}
}
