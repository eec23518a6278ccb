package selector

import (
	"errors"
	"math"
	"testing"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/pointer"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/testutil"
	"github.com/frudas24/roiselect/internal/viewport"
)

// rig is the collaborator set shared by the selector tests.
type rig struct {
	host   *testutil.FakeHost
	rec    *testutil.Recorder
	events *pointer.Dispatcher
}

// newRig returns a fake host, a recording surface and a live dispatcher.
func newRig() *rig {
	return &rig{
		host:   &testutil.FakeHost{},
		rec:    testutil.NewRecorder(100, 80),
		events: pointer.NewDispatcher(),
	}
}

// deps bundles the rig for a selector constructor.
func (r *rig) deps() Deps {
	return Deps{Host: r.host, Surface: r.rec, Events: r.events}
}

// move dispatches a pointer move.
func (r *rig) move(x, y float64) {
	r.events.Dispatch(pointer.Move, geom.Pt(x, y))
}

// up dispatches a pointer release.
func (r *rig) up(x, y float64) {
	r.events.Dispatch(pointer.Up, geom.Pt(x, y))
}

// TestNewMachine_RequiresDeps verifies missing collaborators are rejected.
func TestNewMachine_RequiresDeps(t *testing.T) {
	r := newRig()
	d := r.deps()
	d.Host = nil
	if _, err := NewFancyBox(d); err == nil {
		t.Fatalf("expected error without host")
	}
	d = r.deps()
	d.Surface = nil
	if _, err := NewFreehand(d); err == nil {
		t.Fatalf("expected error without surface")
	}
	d = r.deps()
	d.Events = nil
	if _, err := NewDirectedRect(d); err == nil {
		t.Fatalf("expected error without events")
	}
}

// TestNames verifies names and shape kinds of the selectors.
func TestNames(t *testing.T) {
	r := newRig()
	fb, _ := NewFancyBox(r.deps())
	fh, _ := NewFreehand(r.deps())
	dr, _ := NewDirectedRect(r.deps())
	cases := []struct {
		sel  Selector
		name string
		kind shape.Kind
	}{
		{fb, FancyBoxName, shape.KindRect},
		{fh, FreehandName, shape.KindLineString},
		{dr, DirectedRectName, shape.KindPolygon},
	}
	for _, c := range cases {
		if c.sel.Name() != c.name || c.sel.SupportedShapeType() != c.kind {
			t.Fatalf("expected %s/%s, got %s/%s", c.name, c.kind, c.sel.Name(), c.sel.SupportedShapeType())
		}
	}
}

// TestStartSelection_FiresStartedAndArms verifies the started event and listener registration.
func TestStartSelection_FiresStartedAndArms(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	if err := m.StartSelection(3, 4); err != nil {
		t.Fatalf("start: %v", err)
	}
	if m.State() != StateArmed {
		t.Fatalf("expected armed, got %s", m.State())
	}
	if r.events.Len() != 2 {
		t.Fatalf("expected 2 listeners, got %d", r.events.Len())
	}
	if len(r.host.Events) != 1 || r.host.Events[0].Name != EventStarted {
		t.Fatalf("expected started event, got %#v", r.host.Events)
	}
	if p, ok := r.host.Events[0].Payload.(Started); !ok || p.OffsetX != 3 || p.OffsetY != 4 {
		t.Fatalf("unexpected payload %#v", r.host.Events[0].Payload)
	}
}

// TestStartSelection_NotIdle verifies a second start is rejected.
func TestStartSelection_NotIdle(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	_ = m.StartSelection(0, 0)
	if err := m.StartSelection(1, 1); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected ErrNotIdle, got %v", err)
	}
	if r.events.Len() != 2 {
		t.Fatalf("expected listeners unchanged, got %d", r.events.Len())
	}
}

// TestStopSelection_Idempotent verifies stop before start and twice in a row.
func TestStopSelection_Idempotent(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	m.StopSelection()
	m.StopSelection()
	if r.rec.Last().Name != "Clear" {
		t.Fatalf("expected surface cleared, got %#v", r.rec.Last())
	}

	_ = m.StartSelection(5, 5)
	m.StopSelection()
	m.StopSelection()
	if r.events.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", r.events.Len())
	}
	if m.State() != StateIdle {
		t.Fatalf("expected idle, got %s", m.State())
	}
	if _, ok := m.Shape(); ok {
		t.Fatalf("expected no shape after stop")
	}
	if len(r.host.Events) != 1 {
		t.Fatalf("stop must not fire events, got %#v", r.host.Events)
	}
}

// TestFancyBox_BelowThresholdCancels verifies small boxes produce no shape.
func TestFancyBox_BelowThresholdCancels(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	_ = m.StartSelection(10, 10)
	r.move(12, 12)
	if _, ok := m.Shape(); ok {
		t.Fatalf("expected no shape for 2px box")
	}
	r.up(12, 12)
	if r.host.Count(EventCanceled) != 1 || r.host.Count(EventCompleted) != 0 {
		t.Fatalf("expected one cancel, got %#v", r.host.Events)
	}
	if m.State() != StateCanceled {
		t.Fatalf("expected canceled, got %s", m.State())
	}
	if r.events.Len() != 0 {
		t.Fatalf("expected listeners released, got %d", r.events.Len())
	}
}

// TestFancyBox_CompletesWithRect verifies the committed rectangle.
func TestFancyBox_CompletesWithRect(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	_ = m.StartSelection(10, 10)
	r.move(20, 25)

	sh, ok := m.Shape()
	if !ok {
		t.Fatalf("expected shape")
	}
	want := shape.Rect{X: 10, Y: 10, Width: 9, Height: 14}
	if sh.Type != shape.KindRect || sh.Rect != want {
		t.Fatalf("expected %+v, got %+v", want, sh)
	}

	r.up(20, 25)
	if r.host.Count(EventCompleted) != 1 {
		t.Fatalf("expected completed event, got %#v", r.host.Events)
	}
	done := r.host.Events[len(r.host.Events)-1].Payload.(Completed)
	if done.Shape.Rect != want {
		t.Fatalf("unexpected payload shape %+v", done.Shape)
	}
	b := done.ViewportBounds
	if b.Left != 10 || b.Top != 10 || b.Right != 20 || b.Bottom != 25 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

// TestFancyBox_ReverseDrag verifies dragging up-left normalizes the box.
func TestFancyBox_ReverseDrag(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	_ = m.StartSelection(20, 25)
	r.move(10, 10)
	sh, ok := m.Shape()
	if !ok || sh.Rect != (shape.Rect{X: 10, Y: 10, Width: 9, Height: 14}) {
		t.Fatalf("unexpected shape %+v ok=%v", sh, ok)
	}
}

// TestFancyBox_ItemTransform verifies the rectangle is mapped to item space.
func TestFancyBox_ItemTransform(t *testing.T) {
	r := newRig()
	r.host.ToItem = func(p geom.Point) geom.Point { return geom.Pt(p.X*2, p.Y*2) }
	m, _ := NewFancyBox(r.deps())
	_ = m.StartSelection(10, 10)
	r.move(20, 25)
	sh, _ := m.Shape()
	if sh.Rect != (shape.Rect{X: 20, Y: 20, Width: 18, Height: 28}) {
		t.Fatalf("unexpected item rect %+v", sh.Rect)
	}
}

// TestFancyBox_PreviewMasks verifies the preview fills the mask and outlines the box.
func TestFancyBox_PreviewMasks(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	_ = m.StartSelection(10, 10)
	r.rec.Reset()
	r.move(20, 25)
	if r.rec.Count("Rect") != 5 {
		t.Fatalf("expected 4 mask rects and an outline, got %d", r.rec.Count("Rect"))
	}
	if r.rec.Count("Fill") != 1 || r.rec.Count("Stroke") != 1 {
		t.Fatalf("expected one fill and one stroke, got %#v", r.rec.Calls)
	}
}

// TestFreehand_RoundTrip verifies the trace is committed unchanged under identity.
func TestFreehand_RoundTrip(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	_ = m.StartSelection(0, 0)
	r.move(0, 0)
	r.move(1, 1)
	r.move(2, 2)
	r.up(2, 2)

	if r.host.Count(EventCompleted) != 1 {
		t.Fatalf("expected completed, got %#v", r.host.Events)
	}
	done := r.host.Events[len(r.host.Events)-1].Payload.(Completed)
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)}
	if done.Shape.Type != shape.KindPolygon || len(done.Shape.Points) != len(want) {
		t.Fatalf("unexpected shape %+v", done.Shape)
	}
	for i, p := range want {
		if done.Shape.Points[i] != p {
			t.Fatalf("point %d: expected %+v, got %+v", i, p, done.Shape.Points[i])
		}
	}
}

// TestFreehand_EmptyTraceCompletes verifies a click without moves still completes.
func TestFreehand_EmptyTraceCompletes(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	_ = m.StartSelection(4, 4)
	r.up(4, 4)
	if r.host.Count(EventCompleted) != 1 {
		t.Fatalf("expected completed, got %#v", r.host.Events)
	}
	if m.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", m.State())
	}
}

// TestFreehand_PreviewStrokes verifies the trace is stroked once it has two points.
func TestFreehand_PreviewStrokes(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	_ = m.StartSelection(0, 0)
	r.rec.Reset()
	r.move(1, 1)
	if r.rec.Count("Stroke") != 0 {
		t.Fatalf("expected no stroke for a single point")
	}
	r.move(5, 5)
	if r.rec.Count("Stroke") != 1 || r.rec.Count("LineTo") != 1 {
		t.Fatalf("expected one stroked segment, got %#v", r.rec.Calls)
	}
}

// TestDirectedRect_SingleCompletedEvent verifies one finalize event per full gesture.
func TestDirectedRect_SingleCompletedEvent(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(0, 0)
	for i := 1; i <= 5; i++ {
		r.move(float64(2*i), float64(i))
	}
	r.up(10, 5)
	if m.State() != StateArmed {
		t.Fatalf("expected still armed after first release, got %s", m.State())
	}
	for i := 1; i <= 4; i++ {
		r.move(float64(2*i), float64(i+2))
	}
	r.up(8, 6)
	r.up(9, 9)

	if r.host.Count(EventCompleted) != 1 || r.host.Count(EventCanceled) != 0 {
		t.Fatalf("expected exactly one completed, got %#v", r.host.Events)
	}
	if r.events.Len() != 0 {
		t.Fatalf("expected listeners released, got %d", r.events.Len())
	}
}

// TestDirectedRect_ShapeCorners verifies the committed polygon geometry.
func TestDirectedRect_ShapeCorners(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(0, 0)
	r.up(10, 5)
	r.up(8, 6)

	done := r.host.Events[len(r.host.Events)-1].Payload.(Completed)
	want := geom.ComputeParameters(geom.Pt(0, 0), []geom.Point{geom.Pt(10, 5), geom.Pt(8, 6)}, geom.Pt(8, 6)).Corners()
	if len(done.Shape.Points) != 4 {
		t.Fatalf("expected 4 corners, got %+v", done.Shape)
	}
	for i := range want {
		if done.Shape.Points[i] != want[i] {
			t.Fatalf("corner %d: expected %+v, got %+v", i, want[i], done.Shape.Points[i])
		}
	}
	b := done.ViewportBounds
	if b.Left != 0 || b.Top != 0 || b.Right != 10 || b.Bottom != 6 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

// TestDirectedRect_PreviewHandle verifies the handle is drawn between the two releases.
func TestDirectedRect_PreviewHandle(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(0, 0)
	r.move(4, 2)
	if r.rec.Count("Arc") != 0 {
		t.Fatalf("expected no handle before first release")
	}
	r.up(10, 5)
	r.rec.Reset()
	r.move(8, 6)
	if r.rec.Count("Arc") != 2 {
		t.Fatalf("expected handle fill and stroke, got %#v", r.rec.Calls)
	}
	if r.rec.Count("Stroke") != 3 {
		t.Fatalf("expected two outline passes and a handle stroke, got %d", r.rec.Count("Stroke"))
	}
}

// TestListenersReleasedAfterFinalize verifies no listener survives a finished gesture.
func TestListenersReleasedAfterFinalize(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	for i := 0; i < 3; i++ {
		if err := m.StartSelection(0, 0); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		r.move(1, 1)
		r.up(1, 1)
		if r.events.Len() != 0 {
			t.Fatalf("gesture %d leaked %d listeners", i, r.events.Len())
		}
		m.StopSelection()
	}
	if r.host.Count(EventCompleted) != 3 {
		t.Fatalf("expected 3 completions, got %d", r.host.Count(EventCompleted))
	}
}

// TestDrawShape_Highlight verifies committed shapes use the highlight colour.
func TestDrawShape_Highlight(t *testing.T) {
	r := newRig()
	m, _ := NewFreehand(r.deps())
	sh := shape.NewPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(5, 5)})
	if err := m.DrawShape(r.rec, sh, true); err != nil {
		t.Fatalf("draw: %v", err)
	}
	hl := style.Default().Highlight.Hex()
	found := false
	for _, c := range r.rec.Calls {
		if c.Name == "SetStroke" && c.Color == hl {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected highlight stroke %s, got %#v", hl, r.rec.Calls)
	}
	if r.rec.Count("ClosePath") != 2 {
		t.Fatalf("expected closed ring per pass, got %d", r.rec.Count("ClosePath"))
	}
}

// TestDrawShape_FancyBoxIgnoresPolygons verifies kind mismatch draws nothing.
func TestDrawShape_FancyBoxIgnoresPolygons(t *testing.T) {
	r := newRig()
	m, _ := NewFancyBox(r.deps())
	if err := m.DrawShape(r.rec, shape.NewPolygon(nil), false); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(r.rec.Calls) != 0 {
		t.Fatalf("expected no calls, got %#v", r.rec.Calls)
	}
	if err := m.DrawShape(r.rec, shape.NewRect(shape.Rect{X: 1, Y: 1, Width: 4, Height: 4}), false); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if r.rec.Count("Rect") != 2 || r.rec.Count("Stroke") != 2 {
		t.Fatalf("expected outer and inner rect, got %#v", r.rec.Calls)
	}
}

// TestDirectedRect_ItemTransform verifies every corner goes through the host transform.
func TestDirectedRect_ItemTransform(t *testing.T) {
	r := newRig()
	r.host.ToItem = viewport.NewTransform(2, 10, 0).ToItem
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(10, 0)
	r.up(30, 10)
	r.up(26, 12)

	if r.host.Count(EventCompleted) != 1 {
		t.Fatalf("expected completed, got %#v", r.host.Events)
	}
	done := r.host.Events[len(r.host.Events)-1].Payload.(Completed)
	want := []geom.Point{geom.Pt(5, 10), geom.Pt(-11, -2), geom.Pt(-5, -10), geom.Pt(11, 2)}
	if len(done.Shape.Points) != len(want) {
		t.Fatalf("expected 4 corners, got %+v", done.Shape)
	}
	for i, p := range want {
		got := done.Shape.Points[i]
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Fatalf("corner %d: expected %+v, got %+v", i, p, got)
		}
	}
	b := done.ViewportBounds
	if b.Left != 10 || b.Top != 0 || b.Right != 30 || b.Bottom != 12 {
		t.Fatalf("bounds must stay in viewport space, got %+v", b)
	}
}

// TestDirectedRect_StopInSecondPhase verifies a forced stop after the first release frees the
// listeners and a new gesture starts cleanly.
func TestDirectedRect_StopInSecondPhase(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(0, 0)
	r.move(10, 5)
	r.up(10, 5)
	r.move(8, 6)
	if m.State() != StateArmed || r.events.Len() != 2 {
		t.Fatalf("expected armed with 2 listeners, got %s / %d", m.State(), r.events.Len())
	}

	m.StopSelection()
	if m.State() != StateIdle || r.events.Len() != 0 {
		t.Fatalf("expected idle with no listeners, got %s / %d", m.State(), r.events.Len())
	}
	r.up(8, 6)
	if r.host.Count(EventCompleted) != 0 || r.host.Count(EventCanceled) != 0 {
		t.Fatalf("stopped gesture must not finalize, got %#v", r.host.Events)
	}

	if err := m.StartSelection(1, 1); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if r.events.Len() != 2 {
		t.Fatalf("expected 2 listeners after restart, got %d", r.events.Len())
	}
	r.up(11, 6)
	r.up(9, 7)
	if r.host.Count(EventCompleted) != 1 || r.events.Len() != 0 {
		t.Fatalf("expected one completion and released listeners, got %#v / %d", r.host.Events, r.events.Len())
	}
}

// TestMachine_ErrReportsPreviewFailure verifies preview failures surface through Err and clear on the next event.
func TestMachine_ErrReportsPreviewFailure(t *testing.T) {
	r := newRig()
	m, _ := NewDirectedRect(r.deps())
	_ = m.StartSelection(0, 0)
	r.rec.FailWith = errors.New("raster failed")
	r.move(10, 5)
	if m.Err() == nil || m.Err().Error() != "raster failed" {
		t.Fatalf("expected raster failure, got %v", m.Err())
	}
	r.rec.FailWith = nil
	r.move(12, 6)
	if m.Err() != nil {
		t.Fatalf("expected error cleared, got %v", m.Err())
	}
}
