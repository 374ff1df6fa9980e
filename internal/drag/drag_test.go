package drag

import (
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
)

type testDoc struct {
	frame   frame.Frame
	palette *palette.Palette
}

func (d *testDoc) Frame() *frame.Frame { return &d.frame }
func (d *testDoc) Palette() *palette.Palette { return d.palette }

func newTestDoc(t *testing.T) *testDoc {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})
	p, err := palette.Import(img)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	return &testDoc{palette: p}
}

// centre of a frame cell in window coordinates
func frameAt(x, y int) Point {
	l := DefaultLayout()
	p := l.FrameCellRect(x, y)
	return Point{X: p.X + l.CellSize/2, Y: p.Y + l.CellSize/2}
}

func paletteAt(x, y int) Point {
	l := DefaultLayout()
	p := l.PaletteCellRect(x, y)
	return Point{X: p.X + l.CellSize/2, Y: p.Y + l.CellSize/2}
}

func TestLayout_Side(t *testing.T) {
	l := DefaultLayout()
	if l.Side(Point{X: 288, Y: 40}) != SideFrame {
		t.Error("expected boundary itself to be frame side")
	}
	if l.Side(Point{X: 288.5, Y: 40}) != SidePalette {
		t.Error("expected right of boundary to be palette side")
	}
	if l.Side(frameAt(15, 15)) != SideFrame {
		t.Error("expected last frame cell to be frame side")
	}
}

func TestLayout_Cells(t *testing.T) {
	l := DefaultLayout()

	if x, y, ok := l.FrameCell(Point{X: 16, Y: 32}); !ok || x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d) ok=%v", x, y, ok)
	}
	if x, y, ok := l.FrameCell(Point{X: 16 + 16*3 + 5, Y: 32 + 16*4 + 15}); !ok || x != 3 || y != 4 {
		t.Errorf("expected (3,4), got (%d,%d) ok=%v", x, y, ok)
	}
	if _, _, ok := l.FrameCell(Point{X: 10, Y: 40}); ok {
		t.Error("expected left of the grid to be out of bounds")
	}
	if _, _, ok := l.FrameCell(Point{X: 280, Y: 40}); ok {
		t.Error("expected gap between grids to be out of bounds")
	}
	if x, y, ok := l.PaletteCell(Point{X: 288 + 16*2 + 1, Y: 32 + 16 + 1}); !ok || x != 2 || y != 1 {
		t.Errorf("expected palette (2,1), got (%d,%d) ok=%v", x, y, ok)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		mods Modifiers
		want Action
	}{
		{Modifiers{}, ActionNone},
		{Modifiers{Shift: true}, ActionDelete},
		{Modifiers{Ctrl: true}, ActionMove},
		{Modifiers{Cmd: true}, ActionMove},
		{Modifiers{Shift: true, Ctrl: true}, ActionDelete},
	}
	for _, c := range cases {
		if got := Classify(c.mods); got != c.want {
			t.Errorf("Classify(%+v): expected %s, got %s", c.mods, c.want, got)
		}
	}
}

func TestPaletteDrag_AssignsReference(t *testing.T) {
	doc := newTestDoc(t)
	m := New(DefaultLayout())

	m.Press(doc, paletteAt(2, 1), Modifiers{})
	if m.State() != StateDragging {
		t.Fatalf("expected dragging, got %s", m.State())
	}
	m.Move(frameAt(5, 6), Modifiers{})

	prev, ok := m.Preview()
	if !ok || prev.Color.B != 255 {
		t.Errorf("expected blue preview, got %+v ok=%v", prev, ok)
	}

	if out := m.Release(frameAt(5, 6), Modifiers{Ctrl: true}); out != OutcomeAssign {
		t.Fatalf("expected assign, got %s", out)
	}
	if got := doc.frame.Get(5, 6); !got.Set || got.Ref != (frame.Ref{X: 2, Y: 1}) {
		t.Errorf("expected ref (2,1), got %+v", got)
	}
	if m.State() != StateIdle {
		t.Errorf("expected idle after release, got %s", m.State())
	}
	if m.Session().Side != SideNone {
		t.Error("expected session to be reset")
	}
}

func TestPaletteDrag_ReleaseOutsideCancels(t *testing.T) {
	doc := newTestDoc(t)
	m := New(DefaultLayout())

	m.Press(doc, paletteAt(0, 0), Modifiers{})
	if out := m.Release(paletteAt(3, 3), Modifiers{}); out != OutcomeCancel {
		t.Errorf("expected cancel, got %s", out)
	}
	if doc.frame.Used() != 0 {
		t.Error("expected frame to be untouched")
	}
}

func TestPaletteDrag_OutOfPaletteCancels(t *testing.T) {
	doc := newTestDoc(t)
	m := New(DefaultLayout())

	m.Press(doc, Point{X: 600, Y: 40}, Modifiers{})
	if out := m.Release(frameAt(1, 1), Modifiers{}); out != OutcomeCancel {
		t.Errorf("expected cancel, got %s", out)
	}
	if doc.frame.Used() != 0 {
		t.Error("expected frame to be untouched")
	}
}

func TestPaletteDrag_EmptySlotStillAssigns(t *testing.T) {
	doc := newTestDoc(t)
	m := New(DefaultLayout())

	m.Press(doc, paletteAt(9, 9), Modifiers{})
	if _, ok := m.Preview(); ok {
		t.Error("expected no preview for an empty palette slot")
	}
	if out := m.Release(frameAt(0, 0), Modifiers{}); out != OutcomeAssign {
		t.Fatalf("expected assign, got %s", out)
	}
	if got := doc.frame.Get(0, 0); got.Ref != (frame.Ref{X: 9, Y: 9}) {
		t.Errorf("expected ref (9,9), got %+v", got)
	}
}

func TestFrameDrag_CtrlMoves(t *testing.T) {
	doc := newTestDoc(t)
	ref := frame.Ref{X: 0, Y: 0}
	doc.frame.Set(1, 1, frame.Some(ref))
	m := New(DefaultLayout())

	ctrl := Modifiers{Ctrl: true}
	m.Press(doc, frameAt(1, 1), ctrl)
	m.Move(frameAt(4, 2), ctrl)

	prev, ok := m.Preview()
	if !ok || !prev.HideStart || prev.StartX != 1 || prev.StartY != 1 {
		t.Errorf("expected move preview hiding (1,1), got %+v ok=%v", prev, ok)
	}

	if out := m.Release(frameAt(4, 2), ctrl); out != OutcomeMove {
		t.Fatalf("expected move, got %s", out)
	}
	if got := doc.frame.Get(4, 2); !got.Set || got.Ref != ref {
		t.Errorf("expected ref at target, got %+v", got)
	}
	if doc.frame.Get(1, 1).Set {
		t.Error("expected source cell to be cleared")
	}
}

func TestFrameDrag_CmdMoves(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(0, 0, frame.Some(frame.Ref{X: 2, Y: 1}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(0, 0), Modifiers{})
	if out := m.Release(frameAt(15, 15), Modifiers{Cmd: true}); out != OutcomeMove {
		t.Fatalf("expected move, got %s", out)
	}
	if !doc.frame.Get(15, 15).Set || doc.frame.Get(0, 0).Set {
		t.Error("expected reference to move to (15,15)")
	}
}

func TestFrameDrag_MoveOntoItselfKeepsReference(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(2, 2, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(2, 2), Modifiers{Ctrl: true})
	if out := m.Release(frameAt(2, 2), Modifiers{Ctrl: true}); out != OutcomeNone {
		t.Errorf("expected none, got %s", out)
	}
	if !doc.frame.Get(2, 2).Set {
		t.Error("expected reference to survive")
	}
}

func TestFrameDrag_MoveOutOfBoundsCancels(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(2, 2, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(2, 2), Modifiers{Ctrl: true})
	if out := m.Release(Point{X: 5, Y: 5}, Modifiers{Ctrl: true}); out != OutcomeCancel {
		t.Errorf("expected cancel, got %s", out)
	}
	if !doc.frame.Get(2, 2).Set {
		t.Error("expected reference to stay")
	}
}

func TestFrameDrag_MoveEmptyCellCancels(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(7, 7, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(3, 3), Modifiers{Ctrl: true})
	if out := m.Release(frameAt(7, 7), Modifiers{Ctrl: true}); out != OutcomeCancel {
		t.Errorf("expected cancel, got %s", out)
	}
	if !doc.frame.Get(7, 7).Set {
		t.Error("expected target to keep its reference")
	}
}

func TestFrameDrag_NoModifierIsNoop(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(1, 1, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(1, 1), Modifiers{})
	m.Move(frameAt(3, 3), Modifiers{})
	if _, ok := m.Preview(); ok {
		t.Error("expected no preview without modifiers")
	}
	if out := m.Release(frameAt(3, 3), Modifiers{}); out != OutcomeNone {
		t.Errorf("expected none, got %s", out)
	}
	if !doc.frame.Get(1, 1).Set || doc.frame.Get(3, 3).Set {
		t.Error("expected frame to be unchanged")
	}
}

func TestFrameDrag_ShiftMassDelete(t *testing.T) {
	doc := newTestDoc(t)
	for x := 0; x < 5; x++ {
		doc.frame.Set(x, 0, frame.Some(frame.Ref{}))
	}
	m := New(DefaultLayout())
	shift := Modifiers{Shift: true}

	m.Press(doc, frameAt(0, 0), shift)
	if doc.frame.Get(0, 0).Set {
		t.Error("expected shift press to erase immediately")
	}
	for x := 1; x < 4; x++ {
		m.Move(frameAt(x, 0), shift)
	}
	if out := m.Release(frameAt(4, 0), shift); out != OutcomeDelete {
		t.Errorf("expected delete, got %s", out)
	}
	if doc.frame.Used() != 0 {
		t.Errorf("expected all swept cells cleared, %d remain", doc.frame.Used())
	}
}

func TestFrameDrag_ShiftOnlyWhileHeld(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(1, 0, frame.Some(frame.Ref{}))
	doc.frame.Set(2, 0, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(0, 0), Modifiers{})
	m.Move(frameAt(1, 0), Modifiers{})
	m.Move(frameAt(2, 0), Modifiers{Shift: true})
	m.Release(frameAt(2, 0), Modifiers{})

	if !doc.frame.Get(1, 0).Set {
		t.Error("expected (1,0) to survive without shift")
	}
	if doc.frame.Get(2, 0).Set {
		t.Error("expected (2,0) to be deleted while shift was held")
	}
}

func TestSide_FixedAtPress(t *testing.T) {
	doc := newTestDoc(t)
	doc.frame.Set(0, 0, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	m.Press(doc, frameAt(0, 0), Modifiers{})
	m.Move(paletteAt(0, 0), Modifiers{})
	if m.Session().Side != SideFrame {
		t.Errorf("expected side to stay frame, got %s", m.Session().Side)
	}
	m.Release(paletteAt(0, 0), Modifiers{})
}

func TestRelease_WithoutPressIsNoop(t *testing.T) {
	_ = newTestDoc(t)
	m := New(DefaultLayout())
	if out := m.Release(frameAt(0, 0), Modifiers{}); out != OutcomeNone {
		t.Errorf("expected none, got %s", out)
	}
	m.Move(frameAt(0, 0), Modifiers{Shift: true})
	if m.State() != StateIdle {
		t.Errorf("expected idle, got %s", m.State())
	}
}

func TestCancel(t *testing.T) {
	doc := newTestDoc(t)
	m := New(DefaultLayout())
	m.Press(doc, paletteAt(0, 0), Modifiers{})
	m.Cancel()
	if m.State() != StateIdle {
		t.Errorf("expected idle, got %s", m.State())
	}
	if m.Release(frameAt(0, 0), Modifiers{}) != OutcomeNone {
		t.Error("expected release after cancel to do nothing")
	}
	if doc.frame.Used() != 0 {
		t.Error("expected frame to be untouched")
	}
}

// twoFrameDoc lets a test switch the current frame in the middle of a drag.
type twoFrameDoc struct {
	frames  [2]frame.Frame
	current int
	palette *palette.Palette
}

func (d *twoFrameDoc) Frame() *frame.Frame { return &d.frames[d.current] }
func (d *twoFrameDoc) Palette() *palette.Palette { return d.palette }

func TestFrameDrag_MoveStaysOnPressFrame(t *testing.T) {
	doc := &twoFrameDoc{palette: newTestDoc(t).palette}
	ref := frame.Ref{X: 2, Y: 1}
	doc.frames[0].Set(0, 0, frame.Some(ref))
	doc.frames[1].Set(2, 0, frame.Some(frame.Ref{}))
	m := New(DefaultLayout())

	ctrl := Modifiers{Ctrl: true}
	m.Press(doc, frameAt(0, 0), ctrl)
	doc.current = 1
	if out := m.Release(frameAt(2, 0), ctrl); out != OutcomeMove {
		t.Fatalf("expected move, got %s", out)
	}

	if got := doc.frames[0].Get(2, 0); !got.Set || got.Ref != ref {
		t.Errorf("expected ref moved within frame 0, got %+v", got)
	}
	if doc.frames[0].Get(0, 0).Set {
		t.Error("expected frame 0 source cell to be cleared")
	}
	if !doc.frames[1].Get(2, 0).Set {
		t.Error("expected frame 1 to be untouched")
	}
}

func TestPaletteDrag_AssignsToPressFrame(t *testing.T) {
	doc := &twoFrameDoc{palette: newTestDoc(t).palette}
	m := New(DefaultLayout())

	m.Press(doc, paletteAt(0, 0), Modifiers{})
	doc.current = 1
	if out := m.Release(frameAt(3, 3), Modifiers{}); out != OutcomeAssign {
		t.Fatalf("expected assign, got %s", out)
	}
	if !doc.frames[0].Get(3, 3).Set {
		t.Error("expected assignment on frame 0")
	}
	if doc.frames[1].Used() != 0 {
		t.Errorf("expected frame 1 untouched, got %d cells", doc.frames[1].Used())
	}
}
