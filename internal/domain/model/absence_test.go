package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterAndCountAbsences(t *testing.T) {
	list := []Absence{
		{ID: 1, Status: JustificationPending},
		{ID: 2, Status: JustificationAccepted},
		{ID: 3, Status: JustificationPending},
		{ID: 4, Status: "OTRO"},
	}

	assert.Len(t, FilterAbsences(list, ""), 4)
	pending := FilterAbsences(list, JustificationPending)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(3), pending[1].ID)

	counts := CountAbsences(list)
	assert.Equal(t, 2, counts[JustificationPending])
	assert.Equal(t, 1, counts[JustificationAccepted])
	assert.Equal(t, 0, counts[JustificationRejected])
}

func TestParseJustificationStatus(t *testing.T) {
	st, ok := ParseJustificationStatus("todas")
	assert.True(t, ok)
	assert.Empty(t, st)

	st, ok = ParseJustificationStatus("injustificada")
	assert.True(t, ok)
	assert.Equal(t, JustificationRejected, st)

	_, ok = ParseJustificationStatus("nope")
	assert.False(t, ok)
}

func TestAbsenceWorkflowPredicates(t *testing.T) {
	assert.True(t, CanJustify(Absence{Status: JustificationPending}))
	assert.True(t, CanJustify(Absence{Status: JustificationRejected}))
	assert.False(t, CanJustify(Absence{Status: JustificationAccepted}))

	assert.True(t, CanEvaluate(Absence{Status: JustificationPending}))
	assert.False(t, CanEvaluate(Absence{Status: JustificationRejected}))
}

func TestParseEvaluateAction(t *testing.T) {
	a, err := ParseEvaluateAction("approve")
	require.NoError(t, err)
	assert.Equal(t, EvaluateApprove, a)
	assert.Equal(t, JustificationAccepted, a.Result())

	a, err = ParseEvaluateAction("RECHAZAR")
	require.NoError(t, err)
	assert.Equal(t, JustificationRejected, a.Result())

	_, err = ParseEvaluateAction("maybe")
	assert.Error(t, err)
}

func TestValidateJustification(t *testing.T) {
	got, err := ValidateJustification("  certificado médico  ")
	require.NoError(t, err)
	assert.Equal(t, "certificado médico", got)

	_, err = ValidateJustification("   ")
	assert.Error(t, err)

	_, err = ValidateJustification(strings.Repeat("x", maxJustificationLen+1))
	assert.Error(t, err)
}

func TestEvaluation_Validate(t *testing.T) {
	assert.NoError(t, Evaluation{Action: EvaluateReject, Note: "sin comprobante"}.Validate())
	assert.Error(t, Evaluation{Action: "X"}.Validate())
	assert.Error(t, Evaluation{Action: EvaluateApprove, Note: strings.Repeat("n", maxEvaluationNote+1)}.Validate())
}

func TestJustificationStatus_Label(t *testing.T) {
	assert.Equal(t, "Justificada", JustificationAccepted.Label())
	assert.Equal(t, "Sin justificar", JustificationStatus("").Label())
}
