package simio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sago35/keyinput"
)

func TestPinScript(t *testing.T) {
	p := NewPin(keyinput.On, keyinput.Off)
	p.Hold(keyinput.On, 2)
	require.Equal(t, 4, p.Len())

	got := []keyinput.Level{p.Get(), p.Get(), p.Get(), p.Get(), p.Get()}
	assert.Equal(t, []keyinput.Level{keyinput.On, keyinput.Off, keyinput.On, keyinput.On, keyinput.Off}, got)
	assert.Equal(t, 5, p.Reads())
	assert.Equal(t, 0, p.Len())

	p.Idle = keyinput.On
	assert.Equal(t, keyinput.On, p.Get())
}

func TestPinConfigure(t *testing.T) {
	p := NewPin()
	require.NoError(t, p.Configure())
	assert.Equal(t, 1, p.Configured())

	p.Err = errors.New("no such pin")
	assert.EqualError(t, p.Configure(), "no such pin")
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		in   string
		want []keyinput.Level
	}{
		{"", []keyinput.Level{}},
		{"10", []keyinput.Level{keyinput.On, keyinput.Off}},
		{"1.-_xX", []keyinput.Level{keyinput.On, keyinput.Off, keyinput.Off, keyinput.Off, keyinput.On, keyinput.On}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevels(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevels("10a")
	assert.Error(t, err)
	_, err = ParseLevels("#")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	assert.Equal(t, []keyinput.Level{keyinput.Off, keyinput.Off, keyinput.Off}, Run(keyinput.Off, 3))
	assert.Empty(t, Run(keyinput.On, 0))
}
