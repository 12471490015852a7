package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"aftercare-assistant/pkg"
)

// Store wraps read access to the patients table.  The caller is
// responsible for managing the DB connection lifecycle.
type Store struct {
	DB *sql.DB
}

// NewStore constructs a Store from an existing sql.DB.
func NewStore(db *sql.DB) *Store { return &Store{DB: db} }

const patientColumns = `id, patient_name, date_of_birth, admission_date, discharge_date,
       primary_diagnosis, secondary_diagnoses, medications, dietary_restrictions,
       follow_up, warning_signs, discharge_instructions, lab_results,
       contact_phone, emergency_contact`

// SearchByName returns every patient whose name contains the given text,
// case-insensitively, ordered by name.  Serialized columns are decoded
// into typed values before the records are returned.
func (s *Store) SearchByName(ctx context.Context, name string) ([]pkg.PatientRecord, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+patientColumns+`
         FROM patients
         WHERE patient_name ILIKE '%' || $1 || '%'
         ORDER BY patient_name`, name)
	if err != nil {
		return nil, fmt.Errorf("query patients by name: %w", err)
	}
	defer rows.Close()

	var records []pkg.PatientRecord
	for rows.Next() {
		rec, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AllNames lists every stored patient name, ordered, for operator tooling.
func (s *Store) AllNames(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT patient_name FROM patients ORDER BY patient_name`)
	if err != nil {
		return nil, fmt.Errorf("query patient names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanPatient(rows *sql.Rows) (pkg.PatientRecord, error) {
	var (
		rec                              pkg.PatientRecord
		secondaries, meds, labs, contact []byte
	)
	if err := rows.Scan(
		&rec.ID, &rec.Name, &rec.DateOfBirth, &rec.AdmissionDate, &rec.DischargeDate,
		&rec.PrimaryDiagnosis, &secondaries, &meds, &rec.DietaryRestrictions,
		&rec.FollowUp, &rec.WarningSigns, &rec.DischargeInstructions, &labs,
		&rec.ContactPhone, &contact,
	); err != nil {
		return pkg.PatientRecord{}, fmt.Errorf("scan patient row: %w", err)
	}

	var err error
	if rec.SecondaryDiagnoses, err = decodeStringList(secondaries); err != nil {
		return pkg.PatientRecord{}, fmt.Errorf("patient %d secondary_diagnoses: %w", rec.ID, err)
	}
	if rec.Medications, err = decodeStringList(meds); err != nil {
		return pkg.PatientRecord{}, fmt.Errorf("patient %d medications: %w", rec.ID, err)
	}
	if rec.LabResults, err = decodeLabResults(labs); err != nil {
		return pkg.PatientRecord{}, fmt.Errorf("patient %d lab_results: %w", rec.ID, err)
	}
	if rec.EmergencyContact, err = decodeEmergencyContact(contact); err != nil {
		return pkg.PatientRecord{}, fmt.Errorf("patient %d emergency_contact: %w", rec.ID, err)
	}
	return rec, nil
}

func decodeStringList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeLabResults(raw []byte) (pkg.LabResults, error) {
	var labs pkg.LabResults
	if len(raw) == 0 {
		return labs, nil
	}
	if err := json.Unmarshal(raw, &labs); err != nil {
		return pkg.LabResults{}, err
	}
	return labs, nil
}

func decodeEmergencyContact(raw []byte) (pkg.EmergencyContact, error) {
	var contact pkg.EmergencyContact
	if len(raw) == 0 {
		return contact, nil
	}
	if err := json.Unmarshal(raw, &contact); err != nil {
		return pkg.EmergencyContact{}, err
	}
	return contact, nil
}
