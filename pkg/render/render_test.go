package render

import (
	"testing"

	"github.com/matzehuels/phylodraw/pkg/layout"
	"github.com/matzehuels/phylodraw/pkg/newick"
	"github.com/matzehuels/phylodraw/pkg/styles"
)

func testConfig(t *testing.T) *styles.Config {
	t.Helper()
	cfg, err := styles.Resolve(styles.Default())
	if err != nil {
		t.Fatalf("Resolve(Default()) error = %v", err)
	}
	return cfg
}

func renderTree(t *testing.T, input string, opts ...layout.Option) (*newick.Tree, layout.Layout, []Command) {
	t.Helper()
	tree, err := newick.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	l := layout.Build(tree, opts...)
	return tree, l, Render(tree, l, testConfig(t))
}

func split(cmds []Command) (lines, texts []Command) {
	for _, c := range cmds {
		switch c.Kind {
		case KindLine:
			lines = append(lines, c)
		case KindText:
			texts = append(texts, c)
		}
	}
	return lines, texts
}

func TestRenderCommandCounts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines int
		texts int
	}{
		{"two tips", "(A:1,B:2);", 2, 2},
		{"nested", "(A,(B,C));", 4, 3},
		{"single labeled tip", "A;", 0, 1},
		{"unlabeled tips skipped", "(A,,(B,));", 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, cmds := renderTree(t, tt.input)
			lines, texts := split(cmds)
			if len(lines) != tt.lines {
				t.Errorf("line commands = %d, want %d", len(lines), tt.lines)
			}
			if len(texts) != tt.texts {
				t.Errorf("text commands = %d, want %d", len(texts), tt.texts)
			}
		})
	}
}

func TestRenderEdgesBeforeLabels(t *testing.T) {
	_, _, cmds := renderTree(t, "(A,(B,C));")

	seenText := false
	for i, c := range cmds {
		if c.Kind == KindText {
			seenText = true
		}
		if c.Kind == KindLine && seenText {
			t.Fatalf("command[%d] is a line after the first label", i)
		}
	}
}

func TestRenderLabelOrder(t *testing.T) {
	_, _, cmds := renderTree(t, "(C,(A,B),D);")

	_, texts := split(cmds)
	want := []string{"C", "A", "B", "D"}
	if len(texts) != len(want) {
		t.Fatalf("text commands = %d, want %d", len(texts), len(want))
	}
	for i, label := range want {
		if texts[i].Text != label {
			t.Errorf("label[%d] = %q, want %q", i, texts[i].Text, label)
		}
	}
}

func TestRenderElbowGeometry(t *testing.T) {
	tree, l, cmds := renderTree(t, "(A:1,B:2);", layout.WithMode(layout.Phylogram))

	lines, _ := split(cmds)
	if len(lines) != 2 {
		t.Fatalf("line commands = %d, want 2", len(lines))
	}

	root := l.Points[tree.Root.ID]
	for i, tip := range tree.Tips() {
		pts := lines[i].Points
		if len(pts) != 3 {
			t.Fatalf("edge[%d] has %d points, want 3", i, len(pts))
		}
		child := l.Points[tip.ID]

		if pts[0] != root {
			t.Errorf("edge[%d] starts at %v, want parent %v", i, pts[0], root)
		}
		// Corner: child's depth at the parent's secondary coordinate.
		corner := layout.Point{X: child.X, Y: root.Y}
		if pts[1] != corner {
			t.Errorf("edge[%d] corner = %v, want %v", i, pts[1], corner)
		}
		if pts[2] != child {
			t.Errorf("edge[%d] ends at %v, want child %v", i, pts[2], child)
		}
	}
}

func TestRenderInternalLabelsNotDrawn(t *testing.T) {
	_, _, cmds := renderTree(t, "((A,B)anc,C)root;")

	_, texts := split(cmds)
	for _, c := range texts {
		if c.Text == "anc" || c.Text == "root" {
			t.Errorf("internal label %q was drawn", c.Text)
		}
	}
	if len(texts) != 3 {
		t.Errorf("text commands = %d, want 3", len(texts))
	}
}

func TestRenderLabelsOffsetOutward(t *testing.T) {
	tree, l, cmds := renderTree(t, "(A:1,B:2);", layout.WithMode(layout.Phylogram))

	_, texts := split(cmds)
	for i, tip := range tree.Tips() {
		p := l.Points[tip.ID]
		if texts[i].Anchor.X <= p.X {
			t.Errorf("label %q anchored at X=%v, want > tip X=%v", tip.Label, texts[i].Anchor.X, p.X)
		}
		if texts[i].Anchor.Y != p.Y {
			t.Errorf("label %q anchored at Y=%v, want tip Y=%v", tip.Label, texts[i].Anchor.Y, p.Y)
		}
	}
}

func TestRenderVerticalOffset(t *testing.T) {
	tree, l, cmds := renderTree(t, "(A,B);", layout.WithOrientation(layout.Vertical))

	_, texts := split(cmds)
	for i, tip := range tree.Tips() {
		p := l.Points[tip.ID]
		if texts[i].Anchor.Y <= p.Y {
			t.Errorf("label %q anchored at Y=%v, want > tip Y=%v", tip.Label, texts[i].Anchor.Y, p.Y)
		}
		if texts[i].Anchor.X != p.X {
			t.Errorf("label %q anchored at X=%v, want tip X=%v", tip.Label, texts[i].Anchor.X, p.X)
		}
	}
}

func TestRenderStyleApplied(t *testing.T) {
	cfg := testConfig(t)
	_, _, cmds := renderTree(t, "(A,B);")

	lines, texts := split(cmds)
	for _, c := range lines {
		if c.Width != cfg.BranchSize {
			t.Errorf("line width = %v, want %v", c.Width, cfg.BranchSize)
		}
		if c.Color.Hex != cfg.BranchColor.Hex {
			t.Errorf("line color = %v, want %v", c.Color.Hex, cfg.BranchColor.Hex)
		}
	}
	for _, c := range texts {
		if c.Size != cfg.TipLabelSize {
			t.Errorf("text size = %v, want %v", c.Size, cfg.TipLabelSize)
		}
		if c.Color.Hex != cfg.TipLabelColor.Hex {
			t.Errorf("text color = %v, want %v", c.Color.Hex, cfg.TipLabelColor.Hex)
		}
		if c.HJust != cfg.HJust || c.VJust != cfg.VJust || c.Angle != cfg.Angle {
			t.Errorf("text justification = (%v, %v, %v), want (%v, %v, %v)",
				c.HJust, c.VJust, c.Angle, cfg.HJust, cfg.VJust, cfg.Angle)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	_, _, a := renderTree(t, "((A:1,B:2):0.5,C:3);", layout.WithMode(layout.Phylogram))
	_, _, b := renderTree(t, "((A:1,B:2):0.5,C:3);", layout.WithMode(layout.Phylogram))

	if len(a) != len(b) {
		t.Fatalf("command counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			t.Errorf("command[%d] differs between runs", i)
		}
		if len(a[i].Points) != len(b[i].Points) {
			t.Errorf("command[%d] point counts differ", i)
			continue
		}
		for j := range a[i].Points {
			if a[i].Points[j] != b[i].Points[j] {
				t.Errorf("command[%d] point[%d] differs", i, j)
			}
		}
	}
}
