package app_test

import (
	"testing"

	"github.com/dkeye/pong/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestStrikePolicy(t *testing.T) {
	p := app.NewStrikePolicy(3)

	assert.Equal(t, app.DropFrame, p.OnBackPressure("A"))
	assert.Equal(t, app.DropFrame, p.OnBackPressure("A"))
	p.OnDelivered("A")
	assert.Equal(t, app.DropFrame, p.OnBackPressure("A"))
	assert.Equal(t, app.DropFrame, p.OnBackPressure("A"))
	assert.Equal(t, app.KickMember, p.OnBackPressure("A"))

	assert.Equal(t, app.DropFrame, p.OnBackPressure("B"))
	p.Forget("B")
	assert.Equal(t, app.DropFrame, p.OnBackPressure("B"))
}

func TestStrikePolicy_NeverKicks(t *testing.T) {
	p := app.NewStrikePolicy(0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, app.DropFrame, p.OnBackPressure("A"))
	}
}
