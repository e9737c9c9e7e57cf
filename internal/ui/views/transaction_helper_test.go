package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/tally/internal/constants"
)

func TestFlow(t *testing.T) {
	names := map[int64]string{1: "Bank", 2: "Cash"}
	one, two, gone := int64(1), int64(2), int64(9)

	assert.Equal(t, "Bank -> Cash", Flow(names, &one, &two))
	assert.Equal(t, "-> Cash", Flow(names, nil, &two))
	assert.Equal(t, "Bank", Flow(names, &one, nil))
	assert.Equal(t, "[ID: 9]", Flow(names, &gone, nil))
	assert.Equal(t, "-", Flow(names, nil, nil))
}

func TestLegLabels(t *testing.T) {
	src, dest := LegLabels(constants.TypeTransfer)
	assert.Equal(t, "source account", src)
	assert.Equal(t, "receiving account", dest)

	src, dest = LegLabels(constants.TypeIncome)
	assert.Empty(t, src)
	assert.Equal(t, "receiving account", dest)
}
