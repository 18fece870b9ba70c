package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gimnasio-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"  José  PÉREZ ": "jose perez",
		"Núñez":          "nunez",
		"Jane Doe":       "jane doe",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textnorm.Fold(in), in)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "Jane Doe", textnorm.CollapseSpaces("  Jane \t Doe "))
}
