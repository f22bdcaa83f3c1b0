package dialect

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pdt/pkg/pdt"
)

type fakeAdapter struct {
	cfg Config
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Add(io.Reader, *pdt.Builder) error { return nil }

func registerFake(t *testing.T) {
	t.Helper()
	Register(Registration{
		Name:        "Fake",
		Description: "test dialect",
		Factory:     func(cfg Config) Adapter { return &fakeAdapter{cfg: cfg} },
	})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "fake")
		registryMu.Unlock()
	})
}

func TestUnknownDialectError_Error(t *testing.T) {
	err := &UnknownDialectError{
		Name:      "herwig",
		Available: []string{"evtgen", "pdg"},
	}

	msg := err.Error()

	assert.Contains(t, msg, "herwig", "error should mention the requested dialect")
	assert.Contains(t, msg, "evtgen", "error should list available dialects")
	assert.Contains(t, msg, "pdg", "error should list available dialects")
	assert.Contains(t, msg, "Hint:", "error should include a hint")
}

func TestRegistry(t *testing.T) {
	registerFake(t)

	t.Run("case-insensitive lookup", func(t *testing.T) {
		assert.True(t, IsRegistered("fake"))
		assert.True(t, IsRegistered("FAKE"))
		r, ok := Get("Fake")
		require.True(t, ok)
		assert.Equal(t, "test dialect", r.Description)
	})

	t.Run("list is sorted", func(t *testing.T) {
		names := List()
		assert.Contains(t, names, "fake")
		assert.IsNonDecreasing(t, names)
		assert.Len(t, Registrations(), len(names))
	})

	t.Run("new passes config", func(t *testing.T) {
		a, err := New("fake", Config{Translator: Identity{}})
		require.NoError(t, err)
		fa, ok := a.(*fakeAdapter)
		require.True(t, ok)
		assert.Equal(t, Identity{}, fa.cfg.Translator)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := New("herwig", Config{})
		var unknown *UnknownDialectError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "herwig", unknown.Name)
		assert.Contains(t, unknown.Available, "fake")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New("", Config{})
		assert.ErrorIs(t, err, ErrDialectRequired)
	})
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	assert.NotNil(t, cfg.LoggerOrDiscard())
	assert.Equal(t, Identity{}, cfg.TranslatorOr(Identity{}))

	m := NewMap(nil, nil)
	cfg.Translator = m
	assert.Same(t, m, cfg.TranslatorOr(Identity{}))
}

func TestRegistration_DefaultTranslator(t *testing.T) {
	assert.Equal(t, Identity{}, Registration{}.DefaultTranslator())

	m := NewMap(map[int]int{1: 2}, nil)
	r := Registration{Translator: m}
	assert.Same(t, m, r.DefaultTranslator())
}
