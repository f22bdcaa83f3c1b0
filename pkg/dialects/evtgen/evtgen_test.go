package evtgen

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pdt/internal/testutil"
	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

const pdl = `* EvtGen particle table
*
add  p Particle  e-          11   5.11E-04   0.0   0.0   -3   1   0.0      11
add  p Particle  e+         -11   5.11E-04   0.0   0.0    3   1   0.0     -11
add  p Particle  gamma       22   0.0        0.0   0.0    0   2   0.0      22
add  p Particle  u            2   0.33       0.0   0.0    2   1   0.0       2
add  p Particle  pi+        211   0.13957    0.0   0.0    3   0   7.8045  211
add  p Particle  pi-       -211   0.13957    0.0   0.0   -3   0   7.8045 -211
add  p Particle  pi0        111   0.134977   0.0   0.0    0   0   2.5e-05 111
add  p Particle  K+         321   0.493677   0.0   0.0    3   0   3.712   321
add  p Particle  K-        -321   0.493677   0.0   0.0   -3   0   3.712  -321
add  p Particle  J/psi      443   3.0969     9.29e-05 0.0 0   2   0.0     443
add  p Particle  B0         511   5.27965    0.0   0.0    0   0   0.4557  511
add  p Particle  anti-B0   -511   5.27965    0.0   0.0    0   0   0.4557 -511
add  p Particle  Delta++   2224   1.232      0.117 0.4    6   3   0.0    2224
`

func build(t *testing.T, sink *testutil.RecordingSink, streams ...string) *pdt.Table {
	t.Helper()
	table := pdt.NewTable("evtgen", pdt.WithLogger(testutil.NewTestLogger(t)))
	a := New(dialect.Config{Logger: testutil.NewTestLogger(t)})
	err := pdt.Build(table, func(b *pdt.Builder) error {
		for _, s := range streams {
			if err := a.Add(strings.NewReader(s), b); err != nil {
				return err
			}
		}
		return nil
	}, pdt.WithDiagnostics(sink))
	require.NoError(t, err)
	return table
}

func particle(t *testing.T, table *pdt.Table, name string) *pdt.Particle {
	t.Helper()
	p, ok := table.ParticleByName(name)
	require.True(t, ok, "particle %q", name)
	return p
}

func TestAdd_Particles(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, pdl)

	assert.Equal(t, 13, table.Size())
	assert.Equal(t, 0, sink.Len())

	pi := particle(t, table, "pi+")
	assert.Equal(t, pid.ID(211), pi.ID())
	assert.Equal(t, Source, pi.Source())
	assert.Equal(t, 211, pi.OriginalID())
	assert.InDelta(t, 0.13957, pi.Mass().Value, 1e-12)
	assert.Equal(t, 0.0, pi.Mass().Sigma)
	assert.InDelta(t, 7.8045, pi.Lifetime().Value, 7.8045*1e-12)

	jpsi := particle(t, table, "J/psi")
	assert.InDelta(t, 9.29e-05, jpsi.TotalWidth().Value, 1e-15, "explicit width wins")
	assert.Equal(t, 1.0, jpsi.Spin().Total)

	delta := particle(t, table, "Delta++")
	assert.InDelta(t, 0.4, delta.UpperCutoff(), 1e-12)
	assert.Equal(t, 1.5, delta.Spin().Total)
	assert.InDelta(t, 2.0, delta.Charge(), 1e-12)
}

func TestAdd_ChargeThirds(t *testing.T) {
	table := build(t, &testutil.RecordingSink{}, pdl)

	tests := []struct {
		name string
		want float64
	}{
		{"pi+", 1.0},
		{"pi-", -1.0},
		{"u", 2.0 / 3.0},
		{"pi0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, particle(t, table, tt.name).Charge(), 1e-15)
		})
	}
	assert.InDelta(t, 0.6666666666666666, particle(t, table, "u").Charge(), 1e-15)
}

func TestAdd_SpinHalving(t *testing.T) {
	table := build(t, &testutil.RecordingSink{},
		pdl+"add  p Particle  weird  213  0.775  0.149  0.0  3  5  0.0  213\n")

	assert.Equal(t, 0.5, particle(t, table, "e-").Spin().Total)
	assert.Equal(t, 0.0, particle(t, table, "pi+").Spin().Total)
	assert.Equal(t, 1.0, particle(t, table, "gamma").Spin().Total)
	// the codec says J=1 for 213; the file value wins
	assert.Equal(t, 2.5, particle(t, table, "weird").Spin().Total)
}

func TestAdd_WidthLifetimeInversion(t *testing.T) {
	table := build(t, &testutil.RecordingSink{}, pdl)

	for _, name := range []string{"pi+", "K+", "B0", "pi0"} {
		p := particle(t, table, name)
		w := p.TotalWidth().Value
		require.Greater(t, w, 0.0, name)
		lt := pdt.LifetimeFromWidth(w)
		assert.InDelta(t, 0, math.Abs(lt-p.Lifetime().Value)/lt, 1e-12, name)
	}
	assert.InDelta(t, 0.4557, pdt.LifetimeFromWidth(particle(t, table, "B0").TotalWidth().Value), 1e-12)

	e := particle(t, table, "e-")
	assert.Equal(t, 0.0, e.TotalWidth().Value, "zero c·tau means stable")
	assert.True(t, e.IsStable())
}

func TestAdd_MalformedLines(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, `
add  p Particle  bad   211   notamass  0.0  0.0  3  0  7.8  211
add  p Particle  short 211
add  p Particle  pi+   211   0.13957   0.0  0.0  3  0  7.8045  211
Define dm
Define dm abc
FutureKeyword with some arguments
`)

	assert.Equal(t, 1, table.Size())
	assert.Equal(t, 4, sink.Count(string(pdt.DiagMalformedLine)))
	particle(t, table, "pi+")
}

func TestAdd_Untranslatable(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := pdt.NewTable("t")
	a := New(dialect.Config{Translator: dialect.NewMap(map[int]int{211: 211}, nil)})
	require.NoError(t, pdt.Build(table, func(b *pdt.Builder) error {
		return a.Add(strings.NewReader(pdl), b)
	}, pdt.WithDiagnostics(sink)))

	assert.Equal(t, 2, table.Size(), "pi+ and, through the negative rule, pi-")
	assert.Equal(t, 11, sink.Count(string(pdt.DiagInvalidIdentifier)))
}

func TestAliasAndChargeConj(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := pdt.NewTable("alias")
	a := New(dialect.Config{})

	var ad *pdt.AliasData
	err := pdt.Build(table, func(b *pdt.Builder) error {
		if err := a.Add(strings.NewReader(pdl), b); err != nil {
			return err
		}
		if err := a.Add(strings.NewReader(`
Alias      MyB0       B0
Alias      Myanti-B0  anti-B0
ChargeConj MyB0       Myanti-B0
ChargeConj NotAnAlias Whatever
Define     dm         0.507e12
`), b); err != nil {
			return err
		}

		var ok bool
		ad, ok = b.Alias("MyB0")
		require.True(t, ok)
		assert.Equal(t, 2, b.AliasCount())
		assert.False(t, b.HasAlias("NotAnAlias"), "ChargeConj never creates an alias")

		v, ok := b.Definitions().Value("dm")
		require.True(t, ok)
		assert.InDelta(t, 0.507e12, v, 1)
		return nil
	}, pdt.WithDiagnostics(sink))
	require.NoError(t, err)

	assert.Equal(t, "Myanti-B0", ad.ChargeConj)
	assert.Equal(t, "B0", ad.Particle)
	assert.Equal(t, pid.ID(511), ad.ID)
	assert.Equal(t, 1, sink.Count(string(pdt.DiagUndefinedReference)))

	_, ok := table.ParticleByName("MyB0")
	assert.False(t, ok, "aliases are not published")
	assert.Equal(t, 13, table.Size())
}

func TestChargeConj_UndefinedLeavesStateUnchanged(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := pdt.NewTable("cc")
	a := New(dialect.Config{})
	require.NoError(t, pdt.Build(table, func(b *pdt.Builder) error {
		require.NoError(t, a.Add(strings.NewReader(pdl+"Alias MyB0 B0\n"), b))
		before := *mustAlias(t, b, "MyB0")

		require.NoError(t, a.Add(strings.NewReader("ChargeConj Nobody Myanti-B0\n"), b))

		assert.Equal(t, before, *mustAlias(t, b, "MyB0"))
		assert.Equal(t, 1, b.AliasCount())
		return nil
	}, pdt.WithDiagnostics(sink)))

	assert.Equal(t, 1, sink.Count(string(pdt.DiagUndefinedReference)))
}

func mustAlias(t *testing.T, b *pdt.Builder, name string) *pdt.AliasData {
	t.Helper()
	ad, ok := b.Alias(name)
	require.True(t, ok)
	return ad
}

func TestDecayBlock(t *testing.T) {
	decays := `
Decay B0
* a comment inside the block
# another comment
; and another

0.5000   K+    pi-                 PHSP;
0.3000   J/psi pi0                 SVS;
0.2000   e+    e-   gamma  PHOTOS  PHSP;
Enddecay
add  p Particle  after  223  0.78265  0.00849  0.0  0  2  0.0  223
Decay anti-B0
0.5000   K-    pi+                 PHSP;
Enddecay
`
	table := build(t, &testutil.RecordingSink{}, pdl, decays)

	b0 := particle(t, table, "B0")
	ch := b0.Decays()
	require.Len(t, ch, 3, "comments and blank lines are skipped")
	assert.InDelta(t, 0.5, ch[0].BranchingFraction, 1e-12)
	assert.Equal(t, []pdt.DecayProduct{{ID: 321, Name: "K+"}, {ID: -211, Name: "pi-"}}, ch[0].Products)
	assert.Equal(t, "PHSP", ch[0].Model)
	assert.Equal(t, "SVS", ch[1].Model)
	assert.Equal(t, "PHOTOS", ch[2].Model)
	assert.Equal(t, []string{"PHSP"}, ch[2].Params)

	// the line after Enddecay is a top-level statement again
	after := particle(t, table, "after")
	assert.Equal(t, pid.ID(223), after.ID())
	assert.Empty(t, after.Decays())

	require.Len(t, particle(t, table, "anti-B0").Decays(), 1)
}

func TestDecayBlock_AliasAndUnknown(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := pdt.NewTable("alias-decay")
	a := New(dialect.Config{})
	require.NoError(t, pdt.Build(table, func(b *pdt.Builder) error {
		require.NoError(t, a.Add(strings.NewReader(pdl), b))
		require.NoError(t, a.Add(strings.NewReader(`
Alias MyJpsi J/psi
Decay MyJpsi
1.0 e+ e- PHSP;
Enddecay
Decay Nonexistent
add  p Particle  hidden  223  0.78 0.0 0.0 0 2 0.0 223
1.0 e+ e- PHSP;
Enddecay
`), b))

		ad := mustAlias(t, b, "MyJpsi")
		require.Len(t, ad.Decays, 1)
		assert.Equal(t, "e+", ad.Decays[0].Products[0].Name)
		assert.False(t, b.HasParticleName("hidden"), "lines inside an unknown block are not statements")
		return nil
	}, pdt.WithDiagnostics(sink)))

	assert.Empty(t, particle(t, table, "J/psi").Decays(), "alias decays stay on the alias")
	assert.Equal(t, 1, sink.Count(string(pdt.DiagUndefinedReference)))
}

func TestDecayBlock_Unterminated(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, pdl, "Decay B0\n1.0 K+ pi- PHSP;\n")

	assert.Len(t, particle(t, table, "B0").Decays(), 1)
	assert.Equal(t, 1, sink.Count(string(pdt.DiagMalformedLine)))
}

func TestDecayBlock_BadChannel(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, pdl, `Decay B0
abc K+ pi- PHSP;
0.5 NOTAPARTICLE PHSP;
0.5 K+ pi- PHSP;
Enddecay
`)

	assert.Len(t, particle(t, table, "B0").Decays(), 1)
	assert.Equal(t, 2, sink.Count(string(pdt.DiagMalformedLine)))
}

func TestCDecay(t *testing.T) {
	t.Run("particle", func(t *testing.T) {
		table := build(t, &testutil.RecordingSink{}, pdl, `
Decay B0
0.6   K+  pi-   PHSP;
0.4   J/psi pi0 SVS 1.0 0.0;
Enddecay
CDecay anti-B0
`)
		got := particle(t, table, "anti-B0").Decays()
		require.Len(t, got, 2)
		assert.InDelta(t, 0.6, got[0].BranchingFraction, 1e-12)
		assert.Equal(t, []pdt.DecayProduct{{ID: -321, Name: "K-"}, {ID: 211, Name: "pi+"}}, got[0].Products)
		assert.Equal(t, []pdt.DecayProduct{{ID: 443, Name: "J/psi"}, {ID: 111, Name: "pi0"}}, got[1].Products,
			"self-conjugate daughters keep their code")
		assert.Equal(t, []string{"1.0", "0.0"}, got[1].Params)

		assert.Len(t, particle(t, table, "B0").Decays(), 2, "source table untouched")
	})

	t.Run("alias", func(t *testing.T) {
		table := pdt.NewTable("cdecay-alias")
		a := New(dialect.Config{})
		require.NoError(t, pdt.Build(table, func(b *pdt.Builder) error {
			require.NoError(t, a.Add(strings.NewReader(pdl), b))
			require.NoError(t, a.Add(strings.NewReader(`
Alias      MyB0      B0
Alias      Myanti-B0 anti-B0
ChargeConj MyB0      Myanti-B0
Decay MyB0
1.0 K+ pi- PHSP;
Enddecay
CDecay Myanti-B0
`), b))
			ad := mustAlias(t, b, "Myanti-B0")
			require.Len(t, ad.Decays, 1)
			assert.Equal(t, "K-", ad.Decays[0].Products[0].Name)
			assert.Equal(t, "pi+", ad.Decays[0].Products[1].Name)
			return nil
		}))
	})

	t.Run("no partner", func(t *testing.T) {
		sink := &testutil.RecordingSink{}
		table := build(t, sink, pdl, "CDecay Nobody\nCDecay Delta++\n")
		assert.Equal(t, 2, sink.Count(string(pdt.DiagUndefinedReference)))
		assert.Empty(t, particle(t, table, "Delta++").Decays())
	})
}

func TestParticleOverride(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, pdl, "Particle B0 5.2796 0.001\nParticle Nobody 1.0\n")

	b0 := particle(t, table, "B0")
	assert.InDelta(t, 5.2796, b0.Mass().Value, 1e-12)
	assert.InDelta(t, 0.001, b0.TotalWidth().Value, 1e-12)
	assert.Equal(t, 1, sink.Count(string(pdt.DiagUndefinedReference)))
}

func TestIgnoredKeywords(t *testing.T) {
	sink := &testutil.RecordingSink{}
	table := build(t, sink, pdl, `
JetSetPar PARJ(21)=0.36
yesPhotos
ModelAlias myModel SVS
SetLineshapePW D*+ D0 pi+ 2
End
`)
	assert.Equal(t, 13, table.Size())
	assert.Equal(t, 0, sink.Len())
}

func TestAdd_ClosedBuilder(t *testing.T) {
	b := pdt.NewBuilder(pdt.NewTable("closed"))
	require.NoError(t, b.Close())

	err := New(dialect.Config{}).Add(strings.NewReader(pdl), b)
	assert.True(t, errors.Is(err, pdt.ErrBuilderClosed))
}

func TestRegistered(t *testing.T) {
	a, err := dialect.New("EvtGen", dialect.Config{})
	require.NoError(t, err)
	assert.Equal(t, Name, a.Name())
}
