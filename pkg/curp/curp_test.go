package curp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/pkg/curp"
)

func TestValidate_Aceptada(t *testing.T) {
	assert.NoError(t, curp.Validate("ABCD010101HDFRRN09"))
}

func TestValidate_LongitudIncorrecta(t *testing.T) {
	err := curp.Validate("ABCD010101HDF")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "18")
}

func TestValidate_MinusculasRechazadas(t *testing.T) {
	assert.Error(t, curp.Validate("abcd010101hdfrrn09"))
	assert.NoError(t, curp.Validate(curp.Normalize("  abcd010101hdfrrn09 ")))
}

func TestCheckDigit_VectoresConocidos(t *testing.T) {
	cases := map[string]byte{
		"GODE561231HDFRRN0": '0',
		"BADD110313HCMLNS0": '6',
	}
	for base, want := range cases {
		got, err := curp.CheckDigit(base)
		require.NoError(t, err)
		assert.Equal(t, want, got, base)
	}
}

func TestValidateStrict(t *testing.T) {
	assert.NoError(t, curp.ValidateStrict("GODE561231HDFRRN00"))
	assert.NoError(t, curp.ValidateStrict("BADD110313HCMLNS06"))

	// dígito verificador alterado
	assert.Error(t, curp.ValidateStrict("GODE561231HDFRRN01"))
	// la segunda letra debe ser vocal
	assert.Error(t, curp.ValidateStrict("ABCD010101HDFRRN09"))
}
