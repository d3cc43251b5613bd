package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

func validDesign() Design {
	return Design{
		WireDiameter: 3.0,
		MeanDiameter: 24.0,
		ActiveCoils:  8,
		FreeLength:   50.0,
		Material:     0,
	}
}

func TestNewCompressionGeometry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g, err := NewCompressionGeometry(validDesign())
		require.NoError(t, err)
		assert.Equal(t, SpringCompression, g.Type)
		assert.Equal(t, 8, g.ActiveCoils)
	})

	t.Run("solid height exceeds free length", func(t *testing.T) {
		d := validDesign()
		d.FreeLength = 25.0 // (8+2)*3 = 30mm solid
		_, err := NewCompressionGeometry(d)
		require.Error(t, err)
		assert.Equal(t, errors.InvalidGeometry, errors.CodeOf(err))
	})

	t.Run("wire thicker than coil", func(t *testing.T) {
		d := validDesign()
		d.MeanDiameter = 2.0
		_, err := NewCompressionGeometry(d)
		assert.Error(t, err)
	})

	t.Run("zero coils", func(t *testing.T) {
		d := validDesign()
		d.ActiveCoils = 0
		_, err := NewCompressionGeometry(d)
		assert.Error(t, err)
	})
}

func TestExtensionAndTorsionGeometry(t *testing.T) {
	d := validDesign()

	g, err := NewExtensionGeometry(d, 1.5)
	require.NoError(t, err)
	assert.Equal(t, SpringExtension, g.Type)
	assert.Equal(t, 1.5, g.HookGap)

	_, err = NewExtensionGeometry(d, -1)
	assert.Error(t, err)

	g, err = NewTorsionGeometry(d, 30)
	require.NoError(t, err)
	assert.Equal(t, SpringTorsion, g.Type)
	assert.Equal(t, 30.0, g.LegLength)

	_, err = NewTorsionGeometry(d, 0)
	assert.Error(t, err)
}

func TestNewConicalGeometry(t *testing.T) {
	d := validDesign()

	g, err := NewConicalGeometry(d, 12.0)
	require.NoError(t, err)
	assert.Equal(t, SpringConical, g.Type)
	assert.Equal(t, 12.0, g.SmallMeanDiameter)

	// Small end must be strictly inside (wireDiameter, meanDiameter).
	_, err = NewConicalGeometry(d, 2.0)
	assert.Error(t, err)
	_, err = NewConicalGeometry(d, 24.0)
	assert.Error(t, err)
}

func TestResolveGeometry(t *testing.T) {
	d := validDesign()

	for _, st := range []SpringType{SpringCompression, SpringExtension, SpringTorsion, SpringConical} {
		t.Run(string(st), func(t *testing.T) {
			g, err := ResolveGeometry(d, WorkingConditions{SpringType: st})
			require.NoError(t, err)
			assert.Equal(t, st, g.Type)
		})
	}

	_, err := ResolveGeometry(d, WorkingConditions{SpringType: "wave"})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidGeometry, errors.CodeOf(err))

	assert.False(t, SpringType("wave").Valid())
	assert.True(t, SpringCompression.Valid())
}
