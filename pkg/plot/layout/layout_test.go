package layout

import (
	"math"
	"testing"

	"github.com/murzabaevb/levelplot/pkg/signal"
)

func mustDataset(t *testing.T, rows []signal.Row) *signal.Dataset {
	t.Helper()
	ds, err := signal.NewDataset(rows)
	if err != nil {
		t.Fatalf("NewDataset() error: %v", err)
	}
	return ds
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildPairSymmetricOffsets(t *testing.T) {
	// The canonical overlap example: intervals [1,4] and [3,7] at level 2.
	ds := mustDataset(t, []signal.Row{
		{Chart: "A", Legend: "S1", Start: 1, Stop: 4, Level: 2},
		{Chart: "A", Legend: "S2", Start: 3, Stop: 7, Level: 2},
	})

	l := Build(ds)
	segs := l.Charts[0].Segments

	// Offsets symmetric around the shared level: 2-d and 2+d
	if !almostEqual(segs[0].DisplayLevel(), 2-DefaultSeparationStep/2) {
		t.Errorf("S1 display level = %v, want %v", segs[0].DisplayLevel(), 2-DefaultSeparationStep/2)
	}
	if !almostEqual(segs[1].DisplayLevel(), 2+DefaultSeparationStep/2) {
		t.Errorf("S2 display level = %v, want %v", segs[1].DisplayLevel(), 2+DefaultSeparationStep/2)
	}

	// Each keeps its own color
	if segs[0].Color == segs[1].Color {
		t.Error("overlapping segments should keep distinct legend colors")
	}

	// Separation at least one step
	gap := math.Abs(segs[1].DisplayLevel() - segs[0].DisplayLevel())
	if gap < DefaultSeparationStep-1e-9 {
		t.Errorf("separation = %v, want >= %v", gap, DefaultSeparationStep)
	}
}

func TestBuildClusterOfThree(t *testing.T) {
	// Three mutually overlapping rows at one level spread as {-d, 0, +d}.
	ds := mustDataset(t, []signal.Row{
		{Chart: "OverlapTest", Legend: "Signal_A", Start: 1, Stop: 5, Level: 2},
		{Chart: "OverlapTest", Legend: "Signal_B", Start: 2, Stop: 4, Level: 2},
		{Chart: "OverlapTest", Legend: "Signal_C", Start: 3, Stop: 6, Level: 2},
	})

	l := Build(ds)
	segs := l.Charts[0].Segments

	want := []float64{-DefaultSeparationStep, 0, DefaultSeparationStep}
	for i, w := range want {
		if !almostEqual(segs[i].Offset, w) {
			t.Errorf("segment %d offset = %v, want %v", i, segs[i].Offset, w)
		}
	}
}

func TestBuildChainedCluster(t *testing.T) {
	// A overlaps B, B overlaps C, but A and C do not touch: still one
	// connected cluster of three.
	ds := mustDataset(t, []signal.Row{
		{Chart: "A", Legend: "S1", Start: 0, Stop: 2, Level: 1},
		{Chart: "A", Legend: "S2", Start: 1.5, Stop: 4, Level: 1},
		{Chart: "A", Legend: "S3", Start: 3.5, Stop: 6, Level: 1},
	})

	l := Build(ds)
	segs := l.Charts[0].Segments

	for _, s := range segs[1:] {
		if s.Cluster != segs[0].Cluster {
			t.Fatal("chained overlaps should share one cluster")
		}
	}
	if !almostEqual(segs[0].Offset, -DefaultSeparationStep) ||
		!almostEqual(segs[1].Offset, 0) ||
		!almostEqual(segs[2].Offset, DefaultSeparationStep) {
		t.Errorf("offsets = %v, %v, %v; want symmetric spread", segs[0].Offset, segs[1].Offset, segs[2].Offset)
	}
}

func TestBuildTouchingEndpointsCollide(t *testing.T) {
	// Closed-boundary intersection: [1,3] and [3,5] share the point x=3.
	ds := mustDataset(t, []signal.Row{
		{Chart: "A", Legend: "S1", Start: 1, Stop: 3, Level: 2},
		{Chart: "A", Legend: "S2", Start: 3, Stop: 5, Level: 2},
	})

	l := Build(ds)
	segs := l.Charts[0].Segments
	if segs[0].Offset == 0 && segs[1].Offset == 0 {
		t.Error("touching endpoints should count as a collision")
	}
}

func TestBuildNoCollisionKeepsLevel(t *testing.T) {
	ds := mustDataset(t, []signal.Row{
		// Disjoint intervals in one chart
		{Chart: "A", Legend: "S1", Start: 1, Stop: 2, Level: 2},
		{Chart: "A", Legend: "S2", Start: 4, Stop: 6, Level: 2},
		// Overlapping intervals far apart vertically
		{Chart: "A", Legend: "S3", Start: 1, Stop: 6, Level: 10},
		// Same interval in a different chart
		{Chart: "B", Legend: "S4", Start: 1, Stop: 2, Level: 2},
	})

	l := Build(ds)
	for _, chart := range l.Charts {
		for _, s := range chart.Segments {
			if s.Offset != 0 {
				t.Errorf("chart %s legend %s: offset = %v, want 0 (no collision)", chart.ID, s.Legend, s.Offset)
			}
		}
	}
}

func TestBuildLevelsWithinThresholdCollide(t *testing.T) {
	ds := mustDataset(t, []signal.Row{
		{Chart: "A", Legend: "S1", Start: 1, Stop: 5, Level: 2.0},
		{Chart: "A", Legend: "S2", Start: 2, Stop: 6, Level: 2.4}, // within 0.5
		{Chart: "A", Legend: "S3", Start: 2, Stop: 6, Level: 2.9}, // 0.9 away from S1, 0.5 from S2 (not < 0.5)
	})

	l := Build(ds)
	segs := l.Charts[0].Segments

	if segs[0].Cluster != segs[1].Cluster {
		t.Error("levels within the collision threshold should cluster")
	}
	if segs[2].Cluster == segs[0].Cluster {
		t.Error("level difference equal to the threshold should not cluster")
	}
	if segs[2].Offset != 0 {
		t.Errorf("non-colliding segment offset = %v, want 0", segs[2].Offset)
	}
}

func TestBuildDeterminism(t *testing.T) {
	rows := []signal.Row{
		{Chart: "A", Legend: "S1", Start: 1, Stop: 5, Level: 2},
		{Chart: "A", Legend: "S2", Start: 2, Stop: 4, Level: 2},
		{Chart: "B", Legend: "S3", Start: 0, Stop: 9, Level: -1},
		{Chart: "B", Legend: "S1", Start: 3, Stop: 7, Level: -1.2},
	}

	l1 := Build(mustDataset(t, rows))
	l2 := Build(mustDataset(t, rows))

	for ci := range l1.Charts {
		for si := range l1.Charts[ci].Segments {
			a, b := l1.Charts[ci].Segments[si], l2.Charts[ci].Segments[si]
			if a.Offset != b.Offset || a.Color != b.Color {
				t.Fatalf("chart %d segment %d differs between runs: %+v vs %+v", ci, si, a, b)
			}
		}
	}
}

func TestBuildXRange(t *testing.T) {
	rows := []signal.Row{
		{Chart: "RangeTest", Legend: "RangeSignal", Start: 2, Stop: 8, Level: 3},
	}

	t.Run("auto range pads by one unit", func(t *testing.T) {
		l := Build(mustDataset(t, rows))
		if !l.XAuto {
			t.Error("XAuto = false, want true")
		}
		if l.XMin != 1 || l.XMax != 9 {
			t.Errorf("auto range = [%v, %v], want [1, 9]", l.XMin, l.XMax)
		}
	})

	t.Run("explicit range wins over data extent", func(t *testing.T) {
		l := Build(mustDataset(t, rows), WithXRange(2, 8))
		if l.XAuto {
			t.Error("XAuto = true, want false")
		}
		if l.XMin != 2 || l.XMax != 8 {
			t.Errorf("range = [%v, %v], want [2, 8]", l.XMin, l.XMax)
		}
	})
}

func TestBuildSharedXRangeAcrossCharts(t *testing.T) {
	ds := mustDataset(t, []signal.Row{
		{Chart: "A", Legend: "S1", Start: 0, Stop: 2, Level: 1},
		{Chart: "B", Legend: "S2", Start: 5, Stop: 10, Level: 1},
	})

	l := Build(ds)
	if l.XMin != -1 || l.XMax != 11 {
		t.Errorf("shared range = [%v, %v], want [-1, 11]", l.XMin, l.XMax)
	}
}

func TestBuildYExtent(t *testing.T) {
	t.Run("padded around displayed levels", func(t *testing.T) {
		ds := mustDataset(t, []signal.Row{
			{Chart: "A", Legend: "S1", Start: 1, Stop: 4, Level: 2},
			{Chart: "A", Legend: "S2", Start: 6, Stop: 8, Level: 5},
		})
		c := Build(ds).Charts[0]
		if c.YMin != 1.5 || c.YMax != 5.5 {
			t.Errorf("y-extent = [%v, %v], want [1.5, 5.5]", c.YMin, c.YMax)
		}
		if c.ZeroVisible() {
			t.Error("zero line should not be visible for all-positive levels")
		}
	})

	t.Run("zero line visible when levels span zero", func(t *testing.T) {
		ds := mustDataset(t, []signal.Row{
			{Chart: "A", Legend: "S1", Start: 1, Stop: 4, Level: 3},
			{Chart: "A", Legend: "S2", Start: 6, Stop: 8, Level: -2},
		})
		c := Build(ds).Charts[0]
		if !c.ZeroVisible() {
			t.Error("zero line should be visible when levels span zero")
		}
	})
}

func TestBuildCustomStepAndThreshold(t *testing.T) {
	rows := []signal.Row{
		{Chart: "A", Legend: "S1", Start: 1, Stop: 5, Level: 2.0},
		{Chart: "A", Legend: "S2", Start: 2, Stop: 6, Level: 3.0},
	}

	// Default threshold (0.5): one level unit apart, no collision.
	l := Build(mustDataset(t, rows))
	if l.Charts[0].Segments[0].Offset != 0 {
		t.Error("default threshold should not treat levels 1.0 apart as colliding")
	}

	// Widened threshold: now they collide, spread by the custom step.
	l = Build(mustDataset(t, rows), WithCollisionThreshold(1.5), WithSeparationStep(1.0))
	segs := l.Charts[0].Segments
	if !almostEqual(segs[1].DisplayLevel()-segs[0].DisplayLevel(), 2.0) {
		t.Errorf("display gap = %v, want 2.0 (level gap 1.0 plus step 1.0)",
			segs[1].DisplayLevel()-segs[0].DisplayLevel())
	}
}
