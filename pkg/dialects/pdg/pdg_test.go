package pdg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pdt/internal/testutil"
	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// mcdLine formats one record in the fixed-column layout.
func mcdLine(kind byte, ids []int, value, plus, minus, name string) string {
	var sb strings.Builder
	sb.WriteByte(kind)
	for i := range maxIDs {
		if i < len(ids) {
			fmt.Fprintf(&sb, "%8d", ids[i])
		} else {
			sb.WriteString(strings.Repeat(" ", idWidth))
		}
	}
	fmt.Fprintf(&sb, "%-18s %-8s %-8s %s", value, plus, minus, name)
	return sb.String()
}

func table(t *testing.T, sink *testutil.RecordingSink, lines ...string) *pdt.Table {
	t.Helper()
	tbl := pdt.NewTable("pdg", pdt.WithLogger(testutil.NewTestLogger(t)))
	src := "* PDG mass/width table\n*\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, pdt.Build(tbl, func(b *pdt.Builder) error {
		return New(dialect.Config{}).Add(strings.NewReader(src), b)
	}, pdt.WithDiagnostics(sink)))
	return tbl
}

func TestLayout(t *testing.T) {
	l := mcdLine('M', []int{211}, "1.3957018E-01", "+3.5E-07", "-3.5E-07", "pi                   +")
	assert.Equal(t, "211", dialect.Column(l, colIDs, colIDs+idWidth))
	assert.Equal(t, "1.3957018E-01", dialect.Column(l, colValue, colValueEnd))
	assert.Equal(t, "+3.5E-07", dialect.Column(l, colPlus, colPlusEnd))
	assert.Equal(t, "-3.5E-07", dialect.Column(l, colMinus, colMinusEnd))
	assert.True(t, strings.HasPrefix(l[colName:], "pi"))
}

func TestAdd_MassAndWidth(t *testing.T) {
	sink := &testutil.RecordingSink{}
	tbl := table(t, sink,
		mcdLine('M', []int{211}, "1.3957018E-01", "+3.5E-07", "-3.5E-07", "pi                   +"),
		mcdLine('W', []int{211}, "2.5284E-17", "+5.0E-21", "-5.0E-21", "pi                   +"),
		mcdLine('M', []int{111}, "1.349766E-01", "+6.0E-07", "-6.0E-07", "pi                   0"),
	)
	assert.Equal(t, 0, sink.Len())
	assert.Equal(t, 3, tbl.Size(), "pi+, pi- and the self-conjugate pi0")

	pip, ok := tbl.Particle(211)
	require.True(t, ok)
	assert.Equal(t, "pi+", pip.Name())
	assert.Equal(t, Source, pip.Source())
	assert.InDelta(t, 1.3957018e-01, pip.Mass().Value, 1e-15)
	assert.InDelta(t, 3.5e-07, pip.Mass().Sigma, 1e-18)
	assert.InDelta(t, 2.5284e-17, pip.TotalWidth().Value, 1e-25)
	assert.InDelta(t, 1.0, pip.Charge(), 1e-15)

	pim, ok := tbl.ParticleByName("pi-")
	require.True(t, ok)
	assert.Equal(t, pid.ID(-211), pim.ID())
	assert.InDelta(t, -1.0, pim.Charge(), 1e-15)
	assert.InDelta(t, 1.3957018e-01, pim.Mass().Value, 1e-15)
	assert.InDelta(t, 2.5284e-17, pim.TotalWidth().Value, 1e-25, "antiparticle follows the width line")

	pi0, ok := tbl.Particle(-111)
	require.True(t, ok)
	assert.Equal(t, "pi0", pi0.Name())
}

func TestAdd_MultipleCodesPerLine(t *testing.T) {
	tbl := table(t, &testutil.RecordingSink{},
		mcdLine('M', []int{2224, 2214, 2114, 1114}, "1.232E+00", "+2.0E-03", "-2.0E-03", "Delta                ++,+,0,-"),
	)
	assert.Equal(t, 8, tbl.Size())

	tests := []struct {
		id     pid.ID
		name   string
		charge float64
	}{
		{2224, "Delta++", 2},
		{2214, "Delta+", 1},
		{2114, "Delta0", 0},
		{1114, "Delta-", -1},
		{-2224, "Delta~--", -2},
		{-1114, "Delta~+", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tbl.Particle(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.name, p.Name())
			assert.InDelta(t, tt.charge, p.Charge(), 1e-15)
			assert.InDelta(t, 1.232, p.Mass().Value, 1e-12)
		})
	}
}

func TestAdd_FractionalCharge(t *testing.T) {
	tbl := table(t, &testutil.RecordingSink{},
		mcdLine('M', []int{1}, "4.8E-03", "+7.0E-04", "-3.0E-04", "d                    -1/3"),
		mcdLine('M', []int{2}, "2.3E-03", "+7.0E-04", "-5.0E-04", "u                    +2/3"),
	)
	d, ok := tbl.Particle(1)
	require.True(t, ok)
	assert.Equal(t, "d", d.Name())
	assert.InDelta(t, -1.0/3, d.Charge(), 1e-15)
	assert.InDelta(t, 5.0e-4, d.Mass().Sigma, 1e-15, "average of the two error magnitudes")

	u, ok := tbl.Particle(2)
	require.True(t, ok)
	assert.InDelta(t, 2.0/3, u.Charge(), 1e-15)

	ubar, ok := tbl.Particle(-2)
	require.True(t, ok)
	assert.InDelta(t, -2.0/3, ubar.Charge(), 1e-15)
}

func TestAdd_MalformedLines(t *testing.T) {
	sink := &testutil.RecordingSink{}
	tbl := table(t, sink,
		"M     211",
		mcdLine('M', []int{211}, "abc", "", "", "pi +"),
		mcdLine('M', []int{321}, "4.93677E-01", "", "", "K                    x"),
		"Mxxxxxxxx                        1.0E+00",
		"X   some other record type",
		"",
		mcdLine('M', []int{22}, "0.E+00", "+0.0E+00", "-0.0E+00", "gamma                0"),
	)
	assert.Equal(t, 4, sink.Count(string(pdt.DiagMalformedLine)))
	_, ok := tbl.Particle(22)
	assert.True(t, ok)
}

func TestParseCharge(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"0", 0, false},
		{"+", 1, false},
		{"++", 2, false},
		{"-", -1, false},
		{"--", -2, false},
		{"-1/3", -1.0 / 3, false},
		{"+2/3", 2.0 / 3, false},
		{"x", 0, true},
		{"1/0", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCharge(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-15)
		})
	}
}
