package matching

import "github.com/bhyulljz/rakt-matching/pkg/core/model"

// bloodCompatibility encodes the fixed ABO/Rh transfusion relation as
// donor type -> recipient types it can safely supply.
var bloodCompatibility = map[model.BloodType][]model.BloodType{
	model.BloodTypeONeg:  {model.BloodTypeONeg, model.BloodTypeOPos, model.BloodTypeANeg, model.BloodTypeAPos, model.BloodTypeBNeg, model.BloodTypeBPos, model.BloodTypeABNeg, model.BloodTypeABPos},
	model.BloodTypeOPos:  {model.BloodTypeOPos, model.BloodTypeAPos, model.BloodTypeBPos, model.BloodTypeABPos},
	model.BloodTypeANeg:  {model.BloodTypeANeg, model.BloodTypeAPos, model.BloodTypeABNeg, model.BloodTypeABPos},
	model.BloodTypeAPos:  {model.BloodTypeAPos, model.BloodTypeABPos},
	model.BloodTypeBNeg:  {model.BloodTypeBNeg, model.BloodTypeBPos, model.BloodTypeABNeg, model.BloodTypeABPos},
	model.BloodTypeBPos:  {model.BloodTypeBPos, model.BloodTypeABPos},
	model.BloodTypeABNeg: {model.BloodTypeABNeg, model.BloodTypeABPos},
	model.BloodTypeABPos: {model.BloodTypeABPos},
}

// CanDonateTo reports whether blood of the donor type can safely be
// transfused to a recipient of the given type.
func CanDonateTo(donor, recipient model.BloodType) bool {
	for _, rt := range bloodCompatibility[donor] {
		if rt == recipient {
			return true
		}
	}
	return false
}

// CompatibleDonorTypes inverts the compatibility table: it returns every donor
// type that can supply the given recipient type, in canonical order.
// An unrecognized or empty recipient type yields an empty set, which the
// caller treats as "no compatible donors".
func CompatibleDonorTypes(recipient model.BloodType) []model.BloodType {
	compatible := make([]model.BloodType, 0, 8)
	for _, donorType := range model.AllBloodTypes() {
		if CanDonateTo(donorType, recipient) {
			compatible = append(compatible, donorType)
		}
	}
	return compatible
}
