package patient

import (
	"strconv"
	"strings"

	"aftercare-assistant/pkg"
)

// Summary renders a record into the fixed-order context block both
// handlers feed to the language model.  The rendering is deterministic:
// the same record always yields byte-identical output.
func Summary(rec pkg.PatientRecord) string {
	var b strings.Builder

	b.WriteString("Patient: " + rec.Name + "\n")
	b.WriteString("DOB: " + rec.DateOfBirth + "\n")
	b.WriteString("Discharge Date: " + rec.DischargeDate + "\n\n")

	b.WriteString("PRIMARY DIAGNOSIS: " + rec.PrimaryDiagnosis + "\n")
	b.WriteString("Secondary Conditions: " + strings.Join(rec.SecondaryDiagnoses, ", ") + "\n\n")

	b.WriteString("MEDICATIONS:\n")
	for _, med := range rec.Medications {
		b.WriteString("  - " + med + "\n")
	}
	b.WriteString("\n")

	b.WriteString("DIETARY RESTRICTIONS: " + rec.DietaryRestrictions + "\n\n")
	b.WriteString("FOLLOW-UP: " + rec.FollowUp + "\n\n")

	b.WriteString("WARNING SIGNS TO WATCH FOR:\n" + rec.WarningSigns + "\n\n")
	b.WriteString("DISCHARGE INSTRUCTIONS:\n" + rec.DischargeInstructions + "\n\n")

	b.WriteString("LAB RESULTS:\n")
	b.WriteString("  - Creatinine: " + formatValue(rec.LabResults.CreatinineMgDl) + " mg/dL\n")
	b.WriteString("  - eGFR: " + formatValue(rec.LabResults.EGFRMlMin) + " mL/min\n")
	b.WriteString("  - Potassium: " + formatValue(rec.LabResults.PotassiumMeqL) + " mEq/L\n")
	b.WriteString("  - Hemoglobin: " + formatValue(rec.LabResults.HemoglobinGDl) + " g/dL")

	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
