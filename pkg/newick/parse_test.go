package newick

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/phylodraw/pkg/errors"
)

func TestParseTipOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tips  []string
	}{
		{
			name:  "flat clade",
			input: "(A,B,C);",
			tips:  []string{"A", "B", "C"},
		},
		{
			name:  "nested clade",
			input: "(A,(B,C),D);",
			tips:  []string{"A", "B", "C", "D"},
		},
		{
			name:  "single leaf",
			input: "A;",
			tips:  []string{"A"},
		},
		{
			name:  "lengths do not affect order",
			input: "((C:9,D:1):5,(A:2,B:3):1);",
			tips:  []string{"C", "D", "A", "B"},
		},
		{
			name:  "quoted labels",
			input: "('Homo sapiens','Pan ''paniscus''');",
			tips:  []string{"Homo sapiens", "Pan 'paniscus'"},
		},
		{
			name:  "whitespace is insignificant",
			input: "(A, \n\t(B , C)\n);",
			tips:  []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}

			tips := tree.Tips()
			if len(tips) != len(tt.tips) {
				t.Fatalf("TipCount = %d, want %d", len(tips), len(tt.tips))
			}
			for i, tip := range tips {
				if tip.Label != tt.tips[i] {
					t.Errorf("tip[%d] = %q, want %q", i, tip.Label, tt.tips[i])
				}
			}
		})
	}
}

func TestParseBranchLengths(t *testing.T) {
	tree, err := Parse("(A:1.5,B:0,C);")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tips := tree.Tips()
	if tips[0].Length == nil || *tips[0].Length != 1.5 {
		t.Errorf("A length = %v, want 1.5", tips[0].Length)
	}

	// An explicit zero is recorded, not treated as absent.
	if tips[1].Length == nil {
		t.Error("B length = nil, want explicit 0")
	} else if *tips[1].Length != 0 {
		t.Errorf("B length = %v, want 0", *tips[1].Length)
	}

	// No length recorded stays nil.
	if tips[2].Length != nil {
		t.Errorf("C length = %v, want nil", *tips[2].Length)
	}
}

func TestParseRootDecoration(t *testing.T) {
	tree, err := Parse("(A:1,B:2)root:0.5;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tree.Root.Label != "root" {
		t.Errorf("root label = %q, want %q", tree.Root.Label, "root")
	}
	if tree.Root.Length == nil || *tree.Root.Length != 0.5 {
		t.Errorf("root length = %v, want 0.5", tree.Root.Length)
	}
}

func TestParseInternalLabels(t *testing.T) {
	tree, err := Parse("((B:6,(A:5,C:3)anc:5)x:3,D:11);")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var found []string
	for _, n := range tree.Nodes() {
		if !n.IsTip() && n.Label != "" {
			found = append(found, n.Label)
		}
	}
	want := []string{"x", "anc"}
	if len(found) != len(want) {
		t.Fatalf("internal labels = %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Errorf("internal label[%d] = %q, want %q", i, found[i], want[i])
		}
	}
}

func TestParseAnonymousTips(t *testing.T) {
	tree, err := Parse("(,(,));")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tree.TipCount() != 3 {
		t.Errorf("TipCount = %d, want 3", tree.TipCount())
	}
	for _, tip := range tree.Tips() {
		if tip.Label != "" {
			t.Errorf("anonymous tip has label %q", tip.Label)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	input := "((raccoon:19.2,bear:6.8):0.8,(sea_lion:12,seal:12.0):7.5,dog:25.5);"

	a, err := Parse(input)
	if err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	b, err := Parse(input)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}

	if a.NodeCount() != b.NodeCount() {
		t.Errorf("NodeCount %d != %d", a.NodeCount(), b.NodeCount())
	}
	for i := range a.Tips() {
		at, bt := a.Tips()[i], b.Tips()[i]
		if at.Label != bt.Label || at.ID != bt.ID {
			t.Errorf("tip[%d] = (%q, %d), want (%q, %d)", i, bt.Label, bt.ID, at.Label, at.ID)
		}
	}
}

func TestParsePreOrderIDs(t *testing.T) {
	tree, err := Parse("(A,(B,C));")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Nodes() walks pre-order, so IDs must be 0..n-1 in slice order.
	for i, n := range tree.Nodes() {
		if n.ID != i {
			t.Errorf("node[%d].ID = %d, want %d", i, n.ID, i)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"only terminator", ";"},
		{"missing terminator", "(A,B)"},
		{"unbalanced open", "((A,B);"},
		{"unbalanced close", "(A,B));"},
		{"trailing content", "(A,B);(C,D);"},
		{"bad length", "(A:abc,B);"},
		{"negative length", "(A:-1,B);"},
		{"missing length after colon", "(A:,B);"},
		{"unterminated quote", "('A,B);"},
		{"stray bracket", "(A,B]);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", tt.input)
			}
			if !errors.Is(err, errors.ErrCodeSyntax) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeSyntax)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	// The stray ']' sits on line 2.
	_, err := Parse("(A,\nB]);")
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name line 2", err.Error())
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "tree.nwk")
	if err := os.WriteFile(path, []byte("(A:1,B:2);\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if tree.TipCount() != 2 {
		t.Errorf("TipCount = %d, want 2", tree.TipCount())
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.nwk"))
	if err == nil {
		t.Fatal("ParseFile() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestParseFileDirectory(t *testing.T) {
	_, err := ParseFile(t.TempDir())
	if err == nil {
		t.Fatal("ParseFile() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestTreeMaxDepth(t *testing.T) {
	tests := []struct {
		input string
		depth int
	}{
		{"A;", 0},
		{"(A,B);", 1},
		{"(A,(B,C));", 2},
		{"(A,(B,(C,D)));", 3},
	}

	for _, tt := range tests {
		tree, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		if got := tree.MaxDepth(); got != tt.depth {
			t.Errorf("MaxDepth(%q) = %d, want %d", tt.input, got, tt.depth)
		}
	}
}
