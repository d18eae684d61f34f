package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/extract"
)

func TestReconcileNumericFieldsNeverTrusted(t *testing.T) {
	base := extract.Fields{IDNumber: "123412341234"}

	t.Run("invalid hint id falls back to regex value", func(t *testing.T) {
		hint := CardFields{IDNumber: "12345"}
		out := Reconcile(hint, base, nil)
		assert.Equal(t, "123412341234", out.IDNumber)
	})

	t.Run("valid hint id accepted", func(t *testing.T) {
		hint := CardFields{IDNumber: "999988887777666"}
		out := Reconcile(hint, base, nil)
		// 15 digits: still invalid, regex value stands.
		assert.Equal(t, "123412341234", out.IDNumber)

		hint = CardFields{IDNumber: "9999888877776655"[:12]}
		out = Reconcile(hint, base, nil)
		assert.Equal(t, "999988887777", out.IDNumber)
	})

	t.Run("invalid vid dropped even when base empty", func(t *testing.T) {
		hint := CardFields{VIDNumber: "not-a-number"}
		out := Reconcile(hint, extract.Fields{}, nil)
		assert.Equal(t, "", out.VIDNumber)
	})

	t.Run("valid vid and postal accepted", func(t *testing.T) {
		hint := CardFields{VIDNumber: "1234123412341234", PostalCode: "560001"}
		out := Reconcile(hint, extract.Fields{}, nil)
		assert.Equal(t, "1234123412341234", out.VIDNumber)
		assert.Equal(t, "560001", out.PostalCode)
	})

	t.Run("oversized postal rejected", func(t *testing.T) {
		hint := CardFields{PostalCode: "5600011"}
		out := Reconcile(hint, extract.Fields{PostalCode: "110001"}, nil)
		assert.Equal(t, "110001", out.PostalCode)
	})
}

func TestReconcileFreeTextFields(t *testing.T) {
	base := extract.Fields{Name: "Regex Name", Address: "Regex Address"}

	hint := CardFields{Name: " Rohit Sharma ", Address: "42 Gandhi Street, Jaipur", DateOfBirth: "23/09/1994", Gender: "female"}
	out := Reconcile(hint, base, nil)

	assert.Equal(t, "Rohit Sharma", out.Name)
	assert.Equal(t, "42 Gandhi Street, Jaipur", out.Address)
	assert.Equal(t, "23/09/1994", out.DateOfBirth)
	assert.Equal(t, constants.GenderFemale, out.Gender)
}

func TestReconcileEmptyHintKeepsBase(t *testing.T) {
	base := extract.Fields{
		Name:     "Rohit Sharma",
		IDNumber: "123412341234",
		Gender:   constants.GenderMale,
	}
	out := Reconcile(CardFields{}, base, nil)
	assert.Equal(t, base, out)
}

func TestReconcileUnknownGenderKept(t *testing.T) {
	base := extract.Fields{Gender: constants.GenderMale}
	out := Reconcile(CardFields{Gender: "unknown"}, base, nil)
	assert.Equal(t, constants.GenderMale, out.Gender)
}

func TestParseHint(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		hint := ParseHint(`{"name":"A","id_number":"123412341234"}`, nil)
		assert.Equal(t, "A", hint.Name)
		assert.Equal(t, "123412341234", hint.IDNumber)
	})

	t.Run("prose wrapped response", func(t *testing.T) {
		hint := ParseHint("Here you go:\n```json\n{\"gender\":\"Male\"}\n```", nil)
		assert.Equal(t, "Male", hint.Gender)
	})

	t.Run("malformed response is an empty hint", func(t *testing.T) {
		assert.Equal(t, CardFields{}, ParseHint("no json at all", nil))
	})

	t.Run("non string field types rejected by schema", func(t *testing.T) {
		assert.Equal(t, CardFields{}, ParseHint(`{"id_number": 123412341234}`, nil))
	})
}
