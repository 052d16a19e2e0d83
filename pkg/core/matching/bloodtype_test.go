package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

func TestCompatibleDonorTypes_UniversalRecipient(t *testing.T) {
	// AB+ can receive from everyone
	compatible := CompatibleDonorTypes(model.BloodTypeABPos)
	assert.Len(t, compatible, 8)
	assert.ElementsMatch(t, model.AllBloodTypes(), compatible)
}

func TestCompatibleDonorTypes_UniversalDonorOnly(t *testing.T) {
	// O- can only receive from O-
	compatible := CompatibleDonorTypes(model.BloodTypeONeg)
	assert.Equal(t, []model.BloodType{model.BloodTypeONeg}, compatible)
}

func TestCompatibleDonorTypes_APositive(t *testing.T) {
	compatible := CompatibleDonorTypes(model.BloodTypeAPos)
	assert.ElementsMatch(t, []model.BloodType{
		model.BloodTypeONeg,
		model.BloodTypeOPos,
		model.BloodTypeANeg,
		model.BloodTypeAPos,
	}, compatible)
}

func TestCompatibleDonorTypes_GarbageInput(t *testing.T) {
	assert.Empty(t, CompatibleDonorTypes(""))
	assert.Empty(t, CompatibleDonorTypes("X+"))
	assert.Empty(t, CompatibleDonorTypes("ab+"))
}

func TestCompatibleDonorTypes_SymmetryWithForwardTable(t *testing.T) {
	// D in CompatibleDonorTypes(R) exactly when R is in D's "can give to" set
	for _, donorType := range model.AllBloodTypes() {
		for _, recipientType := range model.AllBloodTypes() {
			inverted := false
			for _, dt := range CompatibleDonorTypes(recipientType) {
				if dt == donorType {
					inverted = true
					break
				}
			}
			assert.Equal(t, CanDonateTo(donorType, recipientType), inverted,
				"donor %s / recipient %s", donorType, recipientType)
		}
	}
}

func TestCanDonateTo_ONegGivesToAll(t *testing.T) {
	for _, recipientType := range model.AllBloodTypes() {
		assert.True(t, CanDonateTo(model.BloodTypeONeg, recipientType))
	}
}

func TestCanDonateTo_ABPosGivesOnlyToABPos(t *testing.T) {
	for _, recipientType := range model.AllBloodTypes() {
		expected := recipientType == model.BloodTypeABPos
		assert.Equal(t, expected, CanDonateTo(model.BloodTypeABPos, recipientType))
	}
}
