package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticleName(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{2212, "p+"},
		{-2212, "p~-"},
		{211, "pi+"},
		{-211, "pi-"},
		{-11, "e+"},
		{-24, "W-"},
		{-311, "K~0"},
		{-2112, "n~0"},
		{111, "pi0"},
		{1000020040, "alpha"},
		{1000080160, "nucleus(A=16,Z=8)"},
		{-1000080160, "anti-nucleus(A=16,Z=8)"},
		{7777777, "7777777"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Name())
		})
	}
}

func TestSetNameDictionary(t *testing.T) {
	t.Cleanup(func() { SetNameDictionary(nil) })

	SetNameDictionary(MapDictionary{211: "piplus"})
	assert.Equal(t, "piplus", ParticleName(211))
	assert.Equal(t, "2212", ParticleName(2212))

	SetNameDictionary(nil)
	assert.Equal(t, "p+", ParticleName(2212))
}
