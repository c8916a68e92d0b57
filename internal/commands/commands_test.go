package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line  string
		args  []string
		isCmd bool
	}{
		{"cmd spawn -sides 5", []string{"spawn", "-sides", "5"}, true},
		{"cmd   pause  ", []string{"pause"}, true},
		{"cmd ", nil, true},
		{"spawn -sides 5", nil, false},
		{"CMD pause", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		assert.Equal(t, tt.isCmd, ok, tt.line)
		assert.Equal(t, tt.args, args, tt.line)
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()

	fs := NewFlagSet("spawn")
	sides := fs.Int("sides", 4, "number of sides")
	var ran int
	r.Register("spawn", "add a body", fs, func() error {
		ran = *sides
		return nil
	})
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func() error { return boom })

	require.NoError(t, r.Execute([]string{"spawn", "-sides", "7"}))
	assert.Equal(t, 7, ran)

	assert.ErrorIs(t, r.Execute(nil), ErrMissingCommand)
	assert.ErrorIs(t, r.Execute([]string{"warp"}), ErrUnknownCommand)
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)
	assert.Error(t, r.Execute([]string{"spawn", "-sides", "many"}))
	assert.Error(t, r.Execute([]string{"spawn", "-colour", "red"}))

	assert.Equal(t, []string{"fail", "spawn"}, r.Names())
	assert.Equal(t, []string{"fail: always fails", "spawn: add a body"}, r.Help())
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("impulse")
	x := fs.Float64("x", 0, "")
	var got []float64
	r.Register("impulse", "", fs, func() error {
		got = append(got, *x)
		return nil
	})

	require.NoError(t, r.Execute([]string{"impulse", "-x", "3"}))
	require.NoError(t, r.Execute([]string{"impulse"}))
	assert.Equal(t, []float64{3, 0}, got)
}
